package title

import (
	"fmt"

	"github.com/clingen-dx/vartitle/internal/vep"
)

// MalformedHGVScError reports a transcript consequence whose hgvsc value
// carries no accession before the ":" separator. VEP's contract is that
// every overlapping transcript has an accession-qualified hgvsc, so this
// is an upstream data fault and must not be silently dropped.
type MalformedHGVScError struct {
	TranscriptID string
	HGVSc        string
}

func (e *MalformedHGVScError) Error() string {
	return fmt.Sprintf("transcript %s has malformed hgvsc %q", e.TranscriptID, e.HGVSc)
}

// Classified groups a VEP transcript consequence list by what the title
// pipeline needs: the effective (overlapping) subset and its RefSeq and
// Ensembl partitions.
type Classified struct {
	Effective []*vep.TranscriptConsequence
	RefSeq    []*vep.TranscriptConsequence
	Ensembl   []*vep.TranscriptConsequence
}

// Classify filters transcripts to the effective set, propagates MANE
// equivalence across synonymous transcripts, and partitions by source.
//
// A transcript without hgvsc does not overlap the queried nucleotide
// change and is discarded. MANE propagation collects the distinct
// accessions flagged as MANE anywhere in the effective set and stamps the
// MANE field onto every effective transcript whose hgvsc accession is in
// that set, so transcripts equivalent to a MANE transcript count as MANE
// even when VEP did not flag them.
func Classify(transcripts []*vep.TranscriptConsequence) (*Classified, error) {
	c := &Classified{}
	for _, t := range transcripts {
		if t.Overlaps() {
			c.Effective = append(c.Effective, t)
		}
	}

	maneAccessions := make(map[string]bool)
	for _, t := range c.Effective {
		if t.MANE != "" {
			maneAccessions[t.MANE] = true
		}
	}

	for _, t := range c.Effective {
		accession, ok := t.Accession()
		if !ok {
			return nil, &MalformedHGVScError{TranscriptID: t.TranscriptID, HGVSc: t.HGVSc}
		}
		if maneAccessions[accession] {
			t.MANE = accession
		}
	}

	for _, t := range c.Effective {
		switch t.Source {
		case vep.SourceRefSeq:
			c.RefSeq = append(c.RefSeq, t)
		case vep.SourceEnsembl:
			c.Ensembl = append(c.Ensembl, t)
		}
	}

	return c, nil
}
