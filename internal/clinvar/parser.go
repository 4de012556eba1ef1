// Package clinvar provides the ClinVar efetch client and the VCV XML
// parser producing the shared variant model.
package clinvar

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/clingen-dx/vartitle/internal/variant"
)

// Parse errors for structurally unusable VCV documents. A document
// without a VariationArchive (or without any allele-bearing record)
// usually means the variation id does not exist; callers treat these as
// not-found rather than failures.
var (
	ErrNoVariationArchive = errors.New("no VariationArchive element in variant XML")
	ErrNoRecord           = errors.New("no InterpretedRecord or IncludedRecord element in variant XML")
)

// vcvDocument mirrors the slice of a ClinVar VCV response this parser
// consumes.
type vcvDocument struct {
	VariationArchive *variationArchive `xml:"VariationArchive"`
}

type variationArchive struct {
	VariationID       string  `xml:"VariationID,attr"`
	VariationName     string  `xml:"VariationName,attr"`
	VariationType     string  `xml:"VariationType,attr"`
	InterpretedRecord *record `xml:"InterpretedRecord"`
	IncludedRecord    *record `xml:"IncludedRecord"`
}

type record struct {
	SimpleAllele *alleleNode `xml:"SimpleAllele"`
	Haplotype    *alleleNode `xml:"Haplotype"`
	Genotype     *genotype   `xml:"Genotype"`
}

type genotype struct {
	VariationID  string      `xml:"VariationID,attr"`
	SimpleAllele *alleleNode `xml:"SimpleAllele"`
	Haplotype    *alleleNode `xml:"Haplotype"`
}

// alleleNode models both SimpleAllele and Haplotype elements: the parser
// reads the same children off whichever one represents the variation.
type alleleNode struct {
	VariationID   string      `xml:"VariationID,attr"`
	VariantType   string      `xml:"VariantType"`
	OtherNames    []string    `xml:"OtherNameList>Name"`
	ProteinChange string      `xml:"ProteinChange"`
	GeneList      []gene      `xml:"GeneList>Gene"`
	HGVSList      []hgvsEntry `xml:"HGVSlist>HGVS"`
	XRefs         []xref      `xml:"XRefList>XRef"`
	Location      *location   `xml:"Location"`
	SimpleAllele  *alleleNode `xml:"SimpleAllele"`
}

type gene struct {
	GeneID   string `xml:"GeneID,attr"`
	Symbol   string `xml:"Symbol,attr"`
	FullName string `xml:"FullName,attr"`
	HGNCID   string `xml:"HGNC_ID,attr"`
}

type hgvsEntry struct {
	Assembly             string                `xml:"Assembly,attr"`
	Type                 string                `xml:"Type,attr"`
	NucleotideExpression *expression           `xml:"NucleotideExpression"`
	ProteinExpression    *expression           `xml:"ProteinExpression"`
	MolecularConsequence []molecularConseqAttr `xml:"MolecularConsequence"`
}

type expression struct {
	SequenceAccessionVersion string `xml:"sequenceAccessionVersion,attr"`
	Change                   string `xml:"change,attr"`
	Expression               string `xml:"Expression"`
}

type molecularConseqAttr struct {
	DB   string `xml:"DB,attr"`
	ID   string `xml:"ID,attr"`
	Type string `xml:"Type,attr"`
}

type xref struct {
	DB   string `xml:"DB,attr"`
	ID   string `xml:"ID,attr"`
	Type string `xml:"Type,attr"`
}

type location struct {
	SequenceLocations []sequenceLocation `xml:"SequenceLocation"`
}

type sequenceLocation struct {
	Assembly                 string `xml:"Assembly,attr"`
	AssemblyAccessionVersion string `xml:"AssemblyAccessionVersion,attr"`
	AssemblyStatus           string `xml:"AssemblyStatus,attr"`
	Chr                      string `xml:"Chr,attr"`
	Accession                string `xml:"Accession,attr"`
	Start                    string `xml:"start,attr"`
	Stop                     string `xml:"stop,attr"`
	ReferenceAllele          string `xml:"referenceAllele,attr"`
	AlternateAllele          string `xml:"alternateAllele,attr"`
}

// Parse decodes a VCV XML document into a Variant.
func Parse(raw []byte) (*variant.Variant, error) {
	v, _, err := parse(raw, false)
	return v, err
}

// ParseExtended decodes a VCV XML document into a Variant plus the
// extension consumed by the primary-transcript extractor and the
// preferred-title gene inference.
func ParseExtended(raw []byte) (*variant.Variant, *variant.ClinVarExtension, error) {
	return parse(raw, true)
}

func parse(raw []byte, extended bool) (*variant.Variant, *variant.ClinVarExtension, error) {
	var doc vcvDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode variant XML: %w", err)
	}

	archive := doc.VariationArchive
	if archive == nil {
		return nil, nil, ErrNoVariationArchive
	}

	v := &variant.Variant{
		ClinVarVariantTitle: archive.VariationName,
		ClinVarVariantID:    archive.VariationID,
	}

	rec := archive.InterpretedRecord
	interpreted := rec != nil
	if rec == nil {
		rec = archive.IncludedRecord
	}
	if rec == nil {
		return nil, nil, ErrNoRecord
	}

	allele := findAllele(rec, archive.VariationID, interpreted)

	var decoded *hgvsDecodeResult
	if allele != nil {
		v.VariationType = allele.VariantType
		if len(allele.OtherNames) > 0 {
			v.OtherNameList = allele.OtherNames
		}

		decoded = decodeHGVSNames(allele.HGVSList, extended)
		v.HGVSNames = decoded.names

		for _, x := range allele.XRefs {
			switch x.DB {
			case "ClinGen":
				v.CARID = x.ID
			case "dbSNP":
				v.DBSNPIDs = append(v.DBSNPIDs, x.ID)
			}
		}
	}

	if !extended {
		return v, nil, nil
	}

	if allele == nil || decoded == nil {
		return v, nil, nil
	}

	ext := buildExtension(archive, allele, decoded)
	return v, ext, nil
}

// findAllele locates the element carrying the variation's allele data.
// Normally that is the record's SimpleAllele; haplotype variations hang
// the data off a Haplotype element, and interpreted genotype variations
// nest one more level down.
func findAllele(rec *record, variationID string, interpreted bool) *alleleNode {
	if rec.SimpleAllele != nil && rec.SimpleAllele.VariationID == variationID {
		return rec.SimpleAllele
	}
	if rec.Haplotype != nil && rec.Haplotype.VariationID == variationID {
		return rec.Haplotype
	}
	if interpreted && rec.Genotype != nil && rec.Genotype.VariationID == variationID {
		if rec.Genotype.SimpleAllele != nil {
			return rec.Genotype.SimpleAllele
		}
		if rec.Genotype.Haplotype != nil && rec.Genotype.Haplotype.SimpleAllele != nil {
			return rec.Genotype.Haplotype.SimpleAllele
		}
	}
	return nil
}

type hgvsDecodeResult struct {
	names                 *variant.HGVSNames
	molecularConsequences []variant.MolecularConsequence
	nucleotideChanges     []variant.NucleotideChange
	proteinChanges        []variant.NucleotideChange
}

// decodeHGVSNames files nucleotide expressions by assembly (everything
// without an Assembly attribute, and all protein expressions, go into the
// others bucket) and, for the extended parse, collects the coding
// nucleotide changes, protein changes and molecular consequences.
func decodeHGVSNames(entries []hgvsEntry, extended bool) *hgvsDecodeResult {
	res := &hgvsDecodeResult{names: &variant.HGVSNames{}}

	appendOther := func(text string) {
		for _, existing := range res.names.Others {
			if existing == text {
				return
			}
		}
		res.names.Others = append(res.names.Others, text)
	}

	for _, entry := range entries {
		nucleotideText := ""
		if entry.NucleotideExpression != nil {
			nucleotideText = entry.NucleotideExpression.Expression

			switch entry.Assembly {
			case variant.AssemblyGRCh37:
				res.names.GRCh37 = nucleotideText
			case variant.AssemblyGRCh38:
				res.names.GRCh38 = nucleotideText
			default:
				appendOther(nucleotideText)
			}

			if extended && entry.Type == "coding" {
				res.nucleotideChanges = append(res.nucleotideChanges, variant.NucleotideChange{
					HGVS:             nucleotideText,
					Change:           entry.NucleotideExpression.Change,
					AccessionVersion: entry.NucleotideExpression.SequenceAccessionVersion,
				})
			}
		}

		if entry.ProteinExpression != nil {
			appendOther(entry.ProteinExpression.Expression)

			if extended && entry.Type == "protein" {
				res.proteinChanges = append(res.proteinChanges, variant.NucleotideChange{
					HGVS:             entry.ProteinExpression.Expression,
					Change:           entry.ProteinExpression.Change,
					AccessionVersion: entry.ProteinExpression.SequenceAccessionVersion,
				})
			}
		}

		for _, mc := range entry.MolecularConsequence {
			soID := ""
			if mc.DB == "SO" {
				soID = mc.ID
			}
			res.molecularConsequences = append(res.molecularConsequences, variant.MolecularConsequence{
				HGVS:     nucleotideText,
				SOID:     soID,
				Function: mc.Type,
			})
		}
	}

	return res
}

func buildExtension(archive *variationArchive, allele *alleleNode, decoded *hgvsDecodeResult) *variant.ClinVarExtension {
	ext := &variant.ClinVarExtension{
		RefSeqTranscripts: &variant.RefSeqTranscripts{
			MolecularConsequenceList: decoded.molecularConsequences,
			NucleotideChangeList:     decoded.nucleotideChanges,
			ProteinChangeList:        decoded.proteinChanges,
		},
		ClinVarVariationType: archive.VariationType,
	}

	// ClinVar associates at most one gene worth keeping; further entries
	// are overlapping genes, not the curated one.
	if len(allele.GeneList) > 0 {
		g := allele.GeneList[0]
		ext.Gene = variant.Gene{
			ID:       g.GeneID,
			Symbol:   g.Symbol,
			FullName: g.FullName,
			HGNCID:   g.HGNCID,
		}
	}

	ext.Allele.ProteinChange = resolveProteinChange(allele.ProteinChange, decoded.proteinChanges)

	if allele.Location != nil {
		for _, loc := range allele.Location.SequenceLocations {
			ext.Allele.SequenceLocation = append(ext.Allele.SequenceLocation, variant.SequenceLocation{
				Assembly:                 loc.Assembly,
				AssemblyAccessionVersion: loc.AssemblyAccessionVersion,
				AssemblyStatus:           loc.AssemblyStatus,
				Chr:                      loc.Chr,
				Accession:                loc.Accession,
				Start:                    loc.Start,
				Stop:                     loc.Stop,
				ReferenceAllele:          loc.ReferenceAllele,
				AlternateAllele:          loc.AlternateAllele,
			})
		}
	}

	return ext
}

var digitsRe = regexp.MustCompile(`[0-9]+`)

// resolveProteinChange returns the allele's protein change in ClinVar's
// abbreviated form. When the document carries no ProteinChange element
// the value is derived from the first protein-change HGVS: "p.Ser126Gly"
// becomes "Ser126G" (reference residue, position, first letter of the
// alternate residue). An undeterminable effect "(?)" yields nothing.
func resolveProteinChange(elementValue string, proteinChanges []variant.NucleotideChange) string {
	if elementValue != "" {
		return elementValue
	}
	if len(proteinChanges) == 0 {
		return ""
	}

	change := proteinChanges[0].Change
	dot := strings.Index(change, ".")
	if dot < 0 {
		return ""
	}
	change = change[dot+1:] // e.g. "Ser126Gly"

	// Anchor on the last run of digits (the residue position).
	runs := digitsRe.FindAllStringIndex(change, -1)
	if len(runs) == 0 {
		return ""
	}
	last := runs[len(runs)-1]
	prefix, digits, suffix := change[:last[0]], change[last[0]:last[1]], change[last[1]:]

	abbreviated := prefix + digits
	if suffix != "" {
		abbreviated += suffix[:1]
	}
	if abbreviated == "(?)" {
		return ""
	}
	return abbreviated
}
