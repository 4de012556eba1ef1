package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clingen-dx/vartitle/internal/vep"
)

func canonicalTranscript(hgvsc string) *vep.TranscriptConsequence {
	return &vep.TranscriptConsequence{
		HGVSc:     hgvsc,
		HGVSp:     "NP_0001.1:p.Arg100Trp",
		Canonical: 1,
	}
}

func TestSelectCanonical_SingleCandidate(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript("XM_1:c.1A>T"),
		{HGVSc: "NM_2:c.1A>T"}, // not canonical
	}

	selected := SelectCanonical(transcripts)
	require.NotNil(t, selected)
	assert.Equal(t, "XM_1:c.1A>T", selected.HGVSc)
}

func TestSelectCanonical_NMWinsOverOthers(t *testing.T) {
	// e.g. NM_1, NR_1, NR_2, XR_1, XM_1: use NM_1
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript("NR_1:n.1A>T"),
		canonicalTranscript("NM_1:c.1A>T"),
		canonicalTranscript("NR_2:n.1A>T"),
		canonicalTranscript("XR_1:n.1A>T"),
		canonicalTranscript("XM_1:c.1A>T"),
	}

	selected := SelectCanonical(transcripts)
	require.NotNil(t, selected)
	assert.Equal(t, "NM_1:c.1A>T", selected.HGVSc)
}

func TestSelectCanonical_MultipleNMIsAmbiguous(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript("NM_1:c.1A>T"),
		canonicalTranscript("NM_2:c.1A>T"),
	}

	assert.Nil(t, SelectCanonical(transcripts))
}

func TestSelectCanonical_SingleNRWhenNoNM(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript("NR_1:n.1A>T"),
		canonicalTranscript("XR_1:n.1A>T"),
		canonicalTranscript("XM_1:c.1A>T"),
	}

	selected := SelectCanonical(transcripts)
	require.NotNil(t, selected)
	assert.Equal(t, "NR_1:n.1A>T", selected.HGVSc)
}

func TestSelectCanonical_MultipleNRIsAmbiguous(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript("NR_1:n.1A>T"),
		canonicalTranscript("NR_2:n.1A>T"),
		canonicalTranscript("XR_1:n.1A>T"),
	}

	assert.Nil(t, SelectCanonical(transcripts))
}

func TestSelectCanonical_RequiresProteinChange(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		{HGVSc: "NM_1:c.1A>T", Canonical: 1}, // no hgvsp
	}

	assert.Nil(t, SelectCanonical(transcripts))
}

func TestSelectCanonical_NoCandidates(t *testing.T) {
	assert.Nil(t, SelectCanonical(nil))
	assert.Nil(t, SelectCanonical([]*vep.TranscriptConsequence{
		{HGVSc: "NM_1:c.1A>T", HGVSp: "NP_1:p.A1T"}, // not canonical
	}))
}

func TestSelectCanonical_TrimsWhitespaceBeforePrefixCheck(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		canonicalTranscript(" NM_1:c.1A>T"),
		canonicalTranscript("XM_1:c.1A>T"),
	}

	selected := SelectCanonical(transcripts)
	require.NotNil(t, selected)
	assert.Equal(t, " NM_1:c.1A>T", selected.HGVSc)
}
