// Package vep provides the Ensembl VEP REST client and the transcript
// consequence records it returns.
package vep

import "strings"

// TranscriptConsequence is one entry of a VEP response's
// transcript_consequences list. Only the fields the title resolution
// pipeline consumes are decoded; everything else is dropped.
//
// HGVSc absence means the transcript does not overlap the queried
// nucleotide change. MANE is set only on MANE-select transcripts (and on
// transcripts patched as MANE-equivalent after classification); its value
// is the transcript accession VEP reports, e.g. "NM_015506.3".
type TranscriptConsequence struct {
	TranscriptID     string   `json:"transcript_id,omitempty"`
	GeneID           string   `json:"gene_id,omitempty"`
	GeneSymbol       string   `json:"gene_symbol,omitempty"`
	Source           string   `json:"source,omitempty"`
	Biotype          string   `json:"biotype,omitempty"`
	HGVSc            string   `json:"hgvsc,omitempty"`
	HGVSp            string   `json:"hgvsp,omitempty"`
	Exon             string   `json:"exon,omitempty"`
	MANE             string   `json:"mane,omitempty"`
	Canonical        int      `json:"canonical,omitempty"`
	ConsequenceTerms []string `json:"consequence_terms,omitempty"`
}

// Transcript annotation namespaces reported in the Source field.
const (
	SourceRefSeq  = "RefSeq"
	SourceEnsembl = "Ensembl"
)

// IsCanonical reports whether VEP flagged this transcript as the gene's
// canonical transcript (the wire value is the integer 1).
func (t *TranscriptConsequence) IsCanonical() bool {
	return t.Canonical != 0
}

// Overlaps reports whether the transcript overlaps the queried nucleotide
// change, i.e. whether VEP produced a coding-sequence HGVS for it.
func (t *TranscriptConsequence) Overlaps() bool {
	return t.HGVSc != ""
}

// Accession returns the portion of HGVSc before the first ":", which is
// the transcript accession the change is expressed against. The second
// return is false when HGVSc is empty or carries no accession.
func (t *TranscriptConsequence) Accession() (string, bool) {
	if t.HGVSc == "" {
		return "", false
	}
	acc := t.HGVSc
	if i := strings.Index(acc, ":"); i >= 0 {
		acc = acc[:i]
	}
	return acc, acc != ""
}
