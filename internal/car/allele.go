// Package car provides the ClinGen Allele Registry client and the
// registry record decoding into the shared variant model.
package car

import (
	"path"
	"strconv"
	"strings"

	"github.com/clingen-dx/vartitle/internal/variant"
)

// Allele is the registry's response for one allele. Only the parts the
// title pipeline and variant decoding consume are modeled.
type Allele struct {
	ID                string             `json:"@id"`
	ExternalRecords   *ExternalRecords   `json:"externalRecords,omitempty"`
	GenomicAlleles    []GenomicAllele    `json:"genomicAlleles,omitempty"`
	TranscriptAlleles []TranscriptAllele `json:"transcriptAlleles,omitempty"`
	AminoAcidAlleles  []TranscriptAllele `json:"aminoAcidAlleles,omitempty"`
}

// ExternalRecords cross-references the allele to other databases.
type ExternalRecords struct {
	ClinVarVariations []ClinVarVariation `json:"ClinVarVariations,omitempty"`
	DBSNP             []DBSNPRecord      `json:"dbSNP,omitempty"`
}

// ClinVarVariation is one ClinVar cross-reference.
type ClinVarVariation struct {
	VariationID int64 `json:"variationId"`
}

// DBSNPRecord is one dbSNP cross-reference.
type DBSNPRecord struct {
	RS int64 `json:"rs"`
}

// GenomicAllele is the allele expressed against a genomic reference.
type GenomicAllele struct {
	HGVS            []string `json:"hgvs,omitempty"`
	ReferenceGenome string   `json:"referenceGenome,omitempty"`
}

// TranscriptAllele is the allele expressed against a transcript (or, for
// aminoAcidAlleles, a protein) reference.
type TranscriptAllele struct {
	HGVS          []string       `json:"hgvs,omitempty"`
	GeneSymbol    string         `json:"geneSymbol,omitempty"`
	ProteinEffect *ProteinEffect `json:"proteinEffect,omitempty"`
}

// ProteinEffect is the registry's protein-level consequence for a
// transcript allele.
type ProteinEffect struct {
	HGVS string `json:"hgvs,omitempty"`
}

// GeneSymbols returns the distinct gene symbols across the allele's
// transcript alleles, in first-seen order.
func (a *Allele) GeneSymbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, t := range a.TranscriptAlleles {
		if t.GeneSymbol == "" || seen[t.GeneSymbol] {
			continue
		}
		seen[t.GeneSymbol] = true
		symbols = append(symbols, t.GeneSymbol)
	}
	return symbols
}

// DecodeVariant converts a registry allele record into a Variant.
//
// Genomic NC_ names are filed under their reference genome; CM_ assembly
// accessions are skipped; every other HGVS expression (genomic without a
// reference genome, transcript, amino acid) lands in the others bucket.
func DecodeVariant(a *Allele) *variant.Variant {
	v := &variant.Variant{
		CARID: path.Base(a.ID),
	}

	if a.ExternalRecords != nil {
		if len(a.ExternalRecords.ClinVarVariations) > 0 {
			v.ClinVarVariantID = strconv.FormatInt(a.ExternalRecords.ClinVarVariations[0].VariationID, 10)
		}
		for _, record := range a.ExternalRecords.DBSNP {
			v.DBSNPIDs = append(v.DBSNPIDs, strconv.FormatInt(record.RS, 10))
		}
	}

	names := decodeHGVSNames(a)
	if names != nil {
		v.HGVSNames = names
	}

	return v
}

func decodeHGVSNames(a *Allele) *variant.HGVSNames {
	names := &variant.HGVSNames{}
	empty := true

	for _, genomic := range a.GenomicAlleles {
		for _, hgvs := range genomic.HGVS {
			switch {
			case strings.HasPrefix(hgvs, "CM"):
				continue
			case strings.HasPrefix(hgvs, "NC"):
				switch genomic.ReferenceGenome {
				case variant.AssemblyGRCh37:
					names.GRCh37 = hgvs
				case variant.AssemblyGRCh38:
					names.GRCh38 = hgvs
				default:
					names.Others = append(names.Others, hgvs)
				}
			default:
				names.Others = append(names.Others, hgvs)
			}
			empty = false
		}
	}

	for _, alleles := range [][]TranscriptAllele{a.AminoAcidAlleles, a.TranscriptAlleles} {
		for _, allele := range alleles {
			for _, hgvs := range allele.HGVS {
				names.Others = append(names.Others, hgvs)
				empty = false
			}
		}
	}

	if empty {
		return nil
	}
	return names
}
