package vep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vepJSON = `[
  {
    "assembly_name": "GRCh38",
    "most_severe_consequence": "missense_variant",
    "transcript_consequences": [
      {
        "transcript_id": "NM_002496.4",
        "gene_id": "4728",
        "gene_symbol": "NDUFS8",
        "source": "RefSeq",
        "biotype": "protein_coding",
        "hgvsc": "NM_002496.4:c.64C>T",
        "hgvsp": "NP_002487.1:p.Arg22Trp",
        "exon": "2/7",
        "mane": "NM_002496.4",
        "canonical": 1,
        "consequence_terms": ["missense_variant"]
      },
      {
        "transcript_id": "ENST00000313468",
        "gene_id": "ENSG00000110717",
        "gene_symbol": "NDUFS8",
        "source": "Ensembl",
        "biotype": "protein_coding",
        "hgvsc": "ENST00000313468.10:c.64C>T",
        "hgvsp": "ENSP00000315774.5:p.Arg22Trp",
        "consequence_terms": ["missense_variant"]
      }
    ]
  }
]`

func TestClientFind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "11:g.68032291C>T")
		assert.Equal(t, "1", r.URL.Query().Get("mane"))
		assert.Equal(t, "1", r.URL.Query().Get("canonical"))
		w.Write([]byte(vepJSON))
	}))
	defer server.Close()

	transcripts, err := NewClient(server.URL + "/vep/human/hgvs/").Find(context.Background(), "11:g.68032291C>T")
	require.NoError(t, err)
	require.Len(t, transcripts, 2)

	refseq := transcripts[0]
	assert.Equal(t, "NM_002496.4", refseq.TranscriptID)
	assert.Equal(t, "NDUFS8", refseq.GeneSymbol)
	assert.Equal(t, SourceRefSeq, refseq.Source)
	assert.Equal(t, "NM_002496.4", refseq.MANE)
	assert.True(t, refseq.IsCanonical())
	assert.True(t, refseq.Overlaps())

	accession, ok := refseq.Accession()
	require.True(t, ok)
	assert.Equal(t, "NM_002496.4", accession)

	assert.Equal(t, SourceEnsembl, transcripts[1].Source)
	assert.False(t, transcripts[1].IsCanonical())
}

func TestClientFind_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	transcripts, err := NewClient(server.URL + "/").Find(context.Background(), "1:g.1A>T")
	require.NoError(t, err)
	assert.Empty(t, transcripts)
}

func TestClientFind_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unable to parse"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL + "/").Find(context.Background(), "1:g.1A>T")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse ensembl vep response")
}

func TestClientFindLenient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	transcripts := NewClient(server.URL + "/").FindLenient(context.Background(), "1:g.1A>T")
	assert.Nil(t, transcripts)
}
