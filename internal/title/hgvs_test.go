package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clingen-dx/vartitle/internal/refdata"
	"github.com/clingen-dx/vartitle/internal/variant"
)

func loadChromosomes(t *testing.T) refdata.ChromosomeTable {
	t.Helper()
	chroms, err := refdata.Chromosomes()
	require.NoError(t, err)
	return chroms
}

func TestNotation_GRCh38OmitPrefix(t *testing.T) {
	v := &variant.Variant{
		HGVSNames: &variant.HGVSNames{GRCh38: "NC_000017.11:g.42911391C>T"},
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh38, true)
	require.True(t, ok)
	assert.Equal(t, "17:g.42911391C>T", notation)
}

func TestNotation_KeepPrefix(t *testing.T) {
	v := &variant.Variant{
		HGVSNames: &variant.HGVSNames{GRCh37: "NC_000007.13:g.117188858delG"},
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh37, false)
	require.True(t, ok)
	assert.Equal(t, "chr7:g.117188858delG", notation)
}

func TestNotation_SexChromosome(t *testing.T) {
	// chrX must survive prefix stripping; an alpha filter would eat the X.
	v := &variant.Variant{
		HGVSNames: &variant.HGVSNames{GRCh38: "NC_000023.11:g.102654175T>C"},
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh38, true)
	require.True(t, ok)
	assert.Equal(t, "X:g.102654175T>C", notation)
}

func TestNotation_MissingAssembly(t *testing.T) {
	v := &variant.Variant{
		HGVSNames: &variant.HGVSNames{GRCh38: "NC_000017.11:g.42911391C>T"},
	}

	_, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh37, true)
	assert.False(t, ok)

	_, ok = Notation(&variant.Variant{}, loadChromosomes(t), variant.AssemblyGRCh38, true)
	assert.False(t, ok)
}

func TestNotation_UnmappedAccession(t *testing.T) {
	// Mitochondrial accessions are deliberately absent from the table.
	v := &variant.Variant{
		HGVSNames: &variant.HGVSNames{GRCh38: "NC_012920.1:m.15974A>G"},
	}

	_, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh38, true)
	assert.False(t, ok)
}

func TestNotation_DeletionTruncation(t *testing.T) {
	// myvariant.info rejects GRCh37 deletion identifiers past the del
	// marker.
	v := &variant.Variant{
		HGVSNames:     &variant.HGVSNames{GRCh37: "NC_000007.13:g.117188858delG"},
		VariationType: variant.VariationTypeDeletion,
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh37, false)
	require.True(t, ok)
	assert.Equal(t, "chr7:g.117188858del", notation)
}

func TestNotation_NoTruncationForIndel(t *testing.T) {
	v := &variant.Variant{
		HGVSNames:     &variant.HGVSNames{GRCh37: "NC_000007.13:g.117120152_117120270del119ins299"},
		VariationType: variant.VariationTypeIndel,
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh37, false)
	require.True(t, ok)
	assert.Equal(t, "chr7:g.117120152_117120270del119ins299", notation)
}

func TestNotation_NoTruncationOnGRCh38(t *testing.T) {
	v := &variant.Variant{
		HGVSNames:     &variant.HGVSNames{GRCh38: "NC_000007.14:g.117188858delG"},
		VariationType: variant.VariationTypeDeletion,
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh38, false)
	require.True(t, ok)
	assert.Equal(t, "chr7:g.117188858delG", notation)
}

func TestNotation_NoTruncationForInsertion(t *testing.T) {
	v := &variant.Variant{
		HGVSNames:     &variant.HGVSNames{GRCh37: "NC_000007.13:g.117175364_117175365insT"},
		VariationType: variant.VariationTypeInsertion,
	}

	notation, ok := Notation(v, loadChromosomes(t), variant.AssemblyGRCh37, false)
	require.True(t, ok)
	assert.Equal(t, "chr7:g.117175364_117175365insT", notation)
}
