package title

import (
	"errors"
	"strings"

	"github.com/clingen-dx/vartitle/internal/refdata"
	"github.com/clingen-dx/vartitle/internal/variant"
	"github.com/clingen-dx/vartitle/internal/vep"
)

// ErrMissingRefSeqTranscripts reports a ClinVar extension without the
// RefSeqTranscripts group. The extended parse always produces one, so its
// absence means the caller handed over a broken extension.
var ErrMissingRefSeqTranscripts = errors.New("clinvar extension has no RefSeqTranscripts")

// Placeholder for primary transcript display fields with no resolvable
// value.
const unresolved = "--"

// PrimaryTranscript cross-references the ClinVar-reported nucleotide
// change against the RefSeq transcript consequences to recover the
// display annotations for the variant's primary transcript.
//
// The nucleotide change is the entry of the extension's
// NucleotideChangeList whose accession appears in the ClinVar variant
// title (list order is authoritative, first match wins). Its molecular
// consequence is rendered as "{term} {SO_id}" via the SO table, and the
// matching RefSeq transcript supplies exon and protein change. Fields
// stay "--" when unresolvable; only a structurally broken extension is an
// error.
func PrimaryTranscript(v *variant.Variant, ext *variant.ClinVarExtension, refseqTranscripts []*vep.TranscriptConsequence, soTerms refdata.SOTable) (*variant.PrimaryTranscript, error) {
	if ext == nil || ext.RefSeqTranscripts == nil {
		return nil, ErrMissingRefSeqTranscripts
	}

	primary := &variant.PrimaryTranscript{
		Exon:             unresolved,
		Protein:          unresolved,
		HGVSp:            unresolved,
		Molecular:        unresolved,
		ConsequenceTerms: unresolved,
	}

	for _, change := range ext.RefSeqTranscripts.NucleotideChangeList {
		if change.AccessionVersion == "" {
			continue
		}
		if strings.Contains(v.ClinVarVariantTitle, change.AccessionVersion) {
			primary.Nucleotide = change.HGVS
			break
		}
	}

	if primary.Nucleotide != "" {
		if term, ok := soTermFor(primary.Nucleotide, ext.RefSeqTranscripts.MolecularConsequenceList, soTerms); ok {
			primary.Molecular = term
		}
	}

	for _, t := range refseqTranscripts {
		if t.HGVSc != primary.Nucleotide {
			continue
		}
		if t.Exon != "" {
			primary.Exon = t.Exon
		}
		if t.HGVSp != "" {
			primary.Protein = t.HGVSp
		}
		break
	}

	primary.HGVSc = primary.Nucleotide
	primary.HGVSp = primary.Protein
	primary.ConsequenceTerms = primary.Molecular

	return primary, nil
}

// soTermFor resolves the display form of the molecular consequence
// recorded for the given nucleotide HGVS.
func soTermFor(nucleotideHGVS string, consequences []variant.MolecularConsequence, soTerms refdata.SOTable) (string, bool) {
	for _, consequence := range consequences {
		if consequence.HGVS != nucleotideHGVS {
			continue
		}
		if term, ok := soTerms.TermFor(consequence.SOID); ok {
			return term, true
		}
	}
	return "", false
}
