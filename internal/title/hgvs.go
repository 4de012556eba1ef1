// Package title implements preferred-title resolution for curated
// variants: genomic HGVS notation lookup, transcript classification,
// canonical transcript selection, title formatting and the tiered
// preferred-title pipeline.
package title

import (
	"strings"

	"github.com/clingen-dx/vartitle/internal/refdata"
	"github.com/clingen-dx/vartitle/internal/variant"
)

// Notation returns the chromosome-form genomic HGVS notation for the
// variant on the given assembly, e.g. "chr17:g.42911391C>T", or
// "17:g.42911391C>T" when omitAccessionPrefix is set (the form the
// Ensembl VEP HGVS endpoint expects; the "chr" form is what
// myvariant.info expects).
//
// The second return is false when the variant has no HGVS name for the
// assembly or its genomic accession is not in the mapping table. Both are
// expected conditions, not errors.
func Notation(v *variant.Variant, chroms refdata.ChromosomeTable, assembly string, omitAccessionPrefix bool) (string, bool) {
	genomicHGVS, ok := v.HGVSNames.ForAssembly(assembly)
	if !ok {
		return "", false
	}

	accession := genomicHGVS
	change := ""
	if i := strings.Index(genomicHGVS, ":"); i >= 0 {
		accession = genomicHGVS[:i]
		change = genomicHGVS[i:]
	}

	chrFormat, ok := chroms.Lookup(assembly, accession)
	if !ok {
		return "", false
	}

	hgvs := chrFormat + change
	if omitAccessionPrefix {
		// Strip the leading "chr". Substring rather than trimming alpha
		// characters so chrX and chrY survive.
		hgvs = chrFormat[3:] + change
	}

	// myvariant.info accepts a GRCh37 deletion identifier only up to the
	// "del" marker ("chr7:g.117188858delG" must become
	// "chr7:g.117188858del"). Indel and Insertion identifiers must keep
	// their ins suffix, so only plain Deletions are truncated.
	if assembly == variant.AssemblyGRCh37 && v.VariationType == variant.VariationTypeDeletion {
		if i := strings.Index(hgvs, "del"); i > 0 {
			hgvs = hgvs[:i+3]
		}
	}

	return hgvs, true
}
