package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clingen-dx/vartitle/internal/vep"
)

func TestClassify_EffectiveFiltering(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		{TranscriptID: "NM_1", HGVSc: "NM_000001.1:c.1A>T", Source: vep.SourceRefSeq},
		{TranscriptID: "ENST_1", HGVSc: "ENST00000001.1:c.1A>T", Source: vep.SourceEnsembl},
		{TranscriptID: "no-overlap"}, // no hgvsc: does not overlap the change
	}

	classified, err := Classify(transcripts)
	require.NoError(t, err)

	assert.Len(t, classified.Effective, 2)
	require.Len(t, classified.RefSeq, 1)
	assert.Equal(t, "NM_1", classified.RefSeq[0].TranscriptID)
	require.Len(t, classified.Ensembl, 1)
	assert.Equal(t, "ENST_1", classified.Ensembl[0].TranscriptID)
}

func TestClassify_MANEPatchPropagation(t *testing.T) {
	// Two equivalent transcripts, only one flagged MANE; classification
	// must stamp the other one too.
	transcripts := []*vep.TranscriptConsequence{
		{TranscriptID: "a", HGVSc: "NM_1:c.1A>T", MANE: "NM_1"},
		{TranscriptID: "b", HGVSc: "NM_1:c.1A>T"},
	}

	classified, err := Classify(transcripts)
	require.NoError(t, err)
	require.Len(t, classified.Effective, 2)
	assert.Equal(t, "NM_1", classified.Effective[0].MANE)
	assert.Equal(t, "NM_1", classified.Effective[1].MANE)
}

func TestClassify_MANEPatchLeavesOthersAlone(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		{TranscriptID: "a", HGVSc: "NM_1:c.1A>T", MANE: "NM_1"},
		{TranscriptID: "b", HGVSc: "NM_2:c.1A>T"},
	}

	classified, err := Classify(transcripts)
	require.NoError(t, err)
	assert.Equal(t, "", classified.Effective[1].MANE)
}

func TestClassify_MalformedHGVSc(t *testing.T) {
	transcripts := []*vep.TranscriptConsequence{
		{TranscriptID: "bad", HGVSc: ":c.1A>T"},
	}

	_, err := Classify(transcripts)
	require.Error(t, err)

	var malformed *MalformedHGVScError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad", malformed.TranscriptID)
	assert.Equal(t, ":c.1A>T", malformed.HGVSc)
}

func TestClassify_Empty(t *testing.T) {
	classified, err := Classify(nil)
	require.NoError(t, err)
	assert.Empty(t, classified.Effective)
	assert.Empty(t, classified.RefSeq)
	assert.Empty(t, classified.Ensembl)
}
