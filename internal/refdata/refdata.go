// Package refdata provides the static reference tables bundled with the
// binary: the RefSeq genomic-accession to chromosome mapping per assembly,
// and the Sequence Ontology term table. Both are loaded once and are
// immutable afterwards, so they are safe to share across goroutines.
package refdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/nc_genomic_chr_format.json data/so_term.json
var dataFS embed.FS

// ChromosomeMapping maps a RefSeq genomic accession (e.g. "NC_000017.11")
// to its chromosome display form (e.g. "chr17").
type ChromosomeMapping struct {
	GenomicRefSeq string `json:"GenomicRefSeq"`
	ChrFormat     string `json:"ChrFormat"`
}

// ChromosomeTable holds the accession mappings for every supported assembly.
type ChromosomeTable map[string][]ChromosomeMapping

// Lookup returns the chromosome display form for the given assembly and
// genomic accession. The second return is false when either the assembly
// or the accession has no entry (mitochondrial and patch accessions are
// deliberately absent from the table).
func (t ChromosomeTable) Lookup(assembly, accession string) (string, bool) {
	for _, m := range t[assembly] {
		if m.GenomicRefSeq == accession {
			return m.ChrFormat, true
		}
	}
	return "", false
}

// SOTerm is one Sequence Ontology vocabulary entry.
type SOTerm struct {
	SOID   string `json:"SO_id"`
	SOTerm string `json:"SO_term"`
}

// SOTable holds the Sequence Ontology terms used to render molecular
// consequences for display.
type SOTable []SOTerm

// TermFor returns the display rendering "{term} {SO_id}" for the given
// ontology id, or false when the id is not in the table.
func (t SOTable) TermFor(soID string) (string, bool) {
	for _, term := range t {
		if term.SOID == soID {
			return term.SOTerm + " " + term.SOID, true
		}
	}
	return "", false
}

var (
	chromOnce  sync.Once
	chromTable ChromosomeTable
	chromErr   error

	soOnce  sync.Once
	soTable SOTable
	soErr   error
)

// Chromosomes returns the bundled accession-to-chromosome table, loading
// it on first use.
func Chromosomes() (ChromosomeTable, error) {
	chromOnce.Do(func() {
		chromTable, chromErr = loadChromosomes()
	})
	return chromTable, chromErr
}

// SOTerms returns the bundled Sequence Ontology table, loading it on
// first use.
func SOTerms() (SOTable, error) {
	soOnce.Do(func() {
		soTable, soErr = loadSOTerms()
	})
	return soTable, soErr
}

func loadChromosomes() (ChromosomeTable, error) {
	raw, err := dataFS.ReadFile("data/nc_genomic_chr_format.json")
	if err != nil {
		return nil, fmt.Errorf("read chromosome mapping: %w", err)
	}
	var table ChromosomeTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse chromosome mapping: %w", err)
	}
	return table, nil
}

func loadSOTerms() (SOTable, error) {
	raw, err := dataFS.ReadFile("data/so_term.json")
	if err != nil {
		return nil, fmt.Errorf("read SO terms: %w", err)
	}
	var table SOTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse SO terms: %w", err)
	}
	return table, nil
}
