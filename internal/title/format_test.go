package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clingen-dx/vartitle/internal/car"
	"github.com/clingen-dx/vartitle/internal/vep"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name             string
		transcriptID     string
		nucleotideChange string
		geneName         string
		aminoAcidChange  string
		want             string
		wantOK           bool
	}{
		{
			name:         "no nucleotide change",
			transcriptID: "NM_002496.4",
		},
		{
			name:             "no transcript id",
			nucleotideChange: "c.64C>T",
		},
		{
			name:             "hgvs fallback without gene",
			transcriptID:     "NM_002496.4",
			nucleotideChange: "c.64C>T",
			want:             "NM_002496.4:c.64C>T",
			wantOK:           true,
		},
		{
			name:             "gene without protein change",
			transcriptID:     "NM_002496.4",
			nucleotideChange: "c.64C>T",
			geneName:         "NDUFS8",
			want:             "NM_002496.4(NDUFS8):c.64C>T",
			wantOK:           true,
		},
		{
			name:             "full title",
			transcriptID:     "NM_015506.3",
			nucleotideChange: "c.436_450del",
			geneName:         "MMACHC",
			aminoAcidChange:  "p.Ser146_Ile150del",
			want:             "NM_015506.3(MMACHC):c.436_450del (p.Ser146_Ile150del)",
			wantOK:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Format(tt.transcriptID, tt.nucleotideChange, tt.geneName, tt.aminoAcidChange)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromTranscript_TranscriptOnly(t *testing.T) {
	transcript := &vep.TranscriptConsequence{
		GeneSymbol: "MMACHC",
		HGVSc:      "NM_015506.3:c.436_450del",
		HGVSp:      "NP_056321.2:p.Ser146_Ile150del",
	}

	got, ok := FormatFromTranscript("NM_015506.3", transcript, "", nil)
	require.True(t, ok)
	assert.Equal(t, "NM_015506.3(MMACHC):c.436_450del (p.Ser146_Ile150del)", got)
}

func TestFormatFromTranscript_RegistryWins(t *testing.T) {
	transcript := &vep.TranscriptConsequence{
		GeneSymbol: "BRCA1",
		HGVSc:      "NM_007294.4:c.68_69del",
	}
	registry := &car.Allele{
		TranscriptAlleles: []car.TranscriptAllele{
			{
				// Different accession, must be skipped.
				HGVS:       []string{"NM_007300.4:c.68_69del"},
				GeneSymbol: "BRCA1",
			},
			{
				HGVS:          []string{"NM_007294.4:c.68_69del"},
				GeneSymbol:    "BRCA1",
				ProteinEffect: &car.ProteinEffect{HGVS: "NP_009225.1:p.Glu23fs"},
			},
		},
	}

	got, ok := FormatFromTranscript("NM_007294.4", transcript, "", registry)
	require.True(t, ok)
	assert.Equal(t, "NM_007294.4(BRCA1):c.68_69del (p.Glu23fs)", got)
}

func TestFormatFromTranscript_RegistryProteinEffectWithoutChange(t *testing.T) {
	// A registry protein effect without a change token must not satisfy
	// the search; the transcript's own hgvsp fills the gap.
	transcript := &vep.TranscriptConsequence{
		HGVSp: "NP_009225.1:p.Glu23fs",
	}
	registry := &car.Allele{
		TranscriptAlleles: []car.TranscriptAllele{
			{
				HGVS:          []string{"NM_007294.4:c.68_69del"},
				GeneSymbol:    "BRCA1",
				ProteinEffect: &car.ProteinEffect{HGVS: "NP_009225.1"},
			},
		},
	}

	got, ok := FormatFromTranscript("NM_007294.4", transcript, "", registry)
	require.True(t, ok)
	assert.Equal(t, "NM_007294.4(BRCA1):c.68_69del (p.Glu23fs)", got)
}

func TestFormatFromTranscript_ExplicitGeneWins(t *testing.T) {
	transcript := &vep.TranscriptConsequence{
		GeneSymbol: "WRONG",
		HGVSc:      "NM_002496.4:c.64C>T",
	}

	got, ok := FormatFromTranscript("NM_002496.4", transcript, "NDUFS8", nil)
	require.True(t, ok)
	assert.Equal(t, "NM_002496.4(NDUFS8):c.64C>T", got)
}

func TestFormatFromTranscript_NoNucleotideChange(t *testing.T) {
	transcript := &vep.TranscriptConsequence{GeneSymbol: "NDUFS8"}

	_, ok := FormatFromTranscript("NM_002496.4", transcript, "", nil)
	assert.False(t, ok)
}
