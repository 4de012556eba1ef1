package title

import (
	"strings"

	"github.com/clingen-dx/vartitle/internal/vep"
)

// SelectCanonical picks the single representative canonical transcript
// from a transcript consequence list, or nil when no unambiguous choice
// exists. A variant gets at most one canonical title, so multiple equally
// valid candidates mean "no canonical title" rather than an arbitrary
// pick.
//
// Candidates are transcripts with a non-empty hgvsc, the canonical flag
// set, and a non-empty hgvsp. Selection order:
//
//  1. exactly one candidate: use it
//  2. exactly one candidate whose hgvsc starts with "NM": use it;
//     more than one NM candidate: give up
//  3. no NM candidate and exactly one whose hgvsc starts with "NR": use it
//  4. otherwise (including multiple NR candidates): give up
//
// Curated mRNA (NM) outranks non-coding RNA (NR); predicted accessions
// (XM/XR) never win on their own.
func SelectCanonical(transcripts []*vep.TranscriptConsequence) *vep.TranscriptConsequence {
	var candidates []*vep.TranscriptConsequence
	for _, t := range transcripts {
		if t.HGVSc != "" && t.IsCanonical() && t.HGVSp != "" {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	nm := filterByAccessionPrefix(candidates, "NM")
	if len(nm) == 1 {
		return nm[0]
	}
	if len(nm) > 1 {
		return nil
	}

	nr := filterByAccessionPrefix(candidates, "NR")
	if len(nr) == 1 {
		return nr[0]
	}

	return nil
}

func filterByAccessionPrefix(transcripts []*vep.TranscriptConsequence, prefix string) []*vep.TranscriptConsequence {
	var out []*vep.TranscriptConsequence
	for _, t := range transcripts {
		if strings.HasPrefix(strings.TrimSpace(t.HGVSc), prefix) {
			out = append(out, t)
		}
	}
	return out
}
