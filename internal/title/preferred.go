package title

import (
	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/car"
	"github.com/clingen-dx/vartitle/internal/variant"
	"github.com/clingen-dx/vartitle/internal/vep"
)

// FallbackTitle is returned when every tier fails. Callers can always
// store the result without null-checking.
const FallbackTitle = "A preferred title is not available"

// Tier names, in trust order. MANE is the most standardized clinical
// representation when computable, ClinVar's curated title comes next,
// the canonical transcript is an algorithmic fallback, genomic HGVS is
// always computable but least readable, and free text is a last resort.
const (
	tierMANE      = "mane"
	tierClinVar   = "clinvar"
	tierCanonical = "canonical"
	tierGRCh      = "GRCh"
	tierOther     = "other"
)

// Resolver computes preferred titles. The zero value is not usable; use
// NewResolver. Resolver holds no mutable state and is safe for
// concurrent use.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a Resolver that logs nothing.
func NewResolver() *Resolver {
	return &Resolver{logger: zap.NewNop()}
}

// SetLogger sets the logger for tier-failure and fallback warnings.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// PreferredTitle determines the preferred title for a variant. It never
// fails: when no tier produces a title it logs a warning and returns
// FallbackTitle.
//
// transcripts is the transcript consequence list fetched for the variant
// (nil or empty when VEP was unavailable or not consulted). ext is the
// extended ClinVar parse, registry the allele registry record; either or
// both may be nil. The MANE and canonical tiers are attempted only when
// exactly one gene is inferable and transcripts were supplied; with an
// ambiguous gene there is no way to know which transcript represents the
// curated variant.
func (r *Resolver) PreferredTitle(v *variant.Variant, transcripts []*vep.TranscriptConsequence, ext *variant.ClinVarExtension, registry *car.Allele) string {
	geneList := inferGenes(ext, registry)

	geneSymbol := ""
	if len(geneList) == 1 {
		geneSymbol = geneList[0]
	}

	criteria := []string{tierClinVar, tierGRCh, tierOther}
	if geneSymbol != "" && len(transcripts) > 0 {
		criteria = []string{tierMANE, tierClinVar, tierCanonical, tierGRCh, tierOther}
	}

	tiers := map[string]func() (string, bool){
		tierMANE:      func() (string, bool) { return r.maneTitle(transcripts, geneSymbol, registry) },
		tierClinVar:   func() (string, bool) { return clinvarTitle(v) },
		tierCanonical: func() (string, bool) { return canonicalTitle(transcripts) },
		tierGRCh:      func() (string, bool) { return genomicHGVSTitle(v) },
		tierOther:     func() (string, bool) { return v.OtherDescription, v.OtherDescription != "" },
	}

	for _, criterion := range criteria {
		if preferred, ok := tiers[criterion](); ok {
			return preferred
		}
	}

	// Every tier failed, which points at unexpected upstream data.
	r.logger.Warn("no preferred title computable, assigning placeholder",
		zap.Strings("criteria", criteria),
		zap.Strings("genes", geneList),
		zap.Any("variant", v))
	return FallbackTitle
}

// inferGenes returns the candidate gene symbols for a variant. The
// ClinVar extension is the more trustworthy source and wins when it names
// a gene; otherwise the distinct symbols across the registry's transcript
// alleles are used.
func inferGenes(ext *variant.ClinVarExtension, registry *car.Allele) []string {
	if ext != nil {
		if ext.Gene.Symbol == "" {
			return nil
		}
		return []string{ext.Gene.Symbol}
	}
	if registry != nil {
		return registry.GeneSymbols()
	}
	return nil
}

// maneTitle renders a title from the variant's MANE transcript. The
// transcript list is classified first so MANE equivalence has been
// propagated; a classification fault fails the tier rather than aborting
// resolution.
func (r *Resolver) maneTitle(transcripts []*vep.TranscriptConsequence, geneSymbol string, registry *car.Allele) (string, bool) {
	classified, err := Classify(transcripts)
	if err != nil {
		r.logger.Warn("skipping MANE tier", zap.Error(err))
		return "", false
	}

	var candidate *vep.TranscriptConsequence
	for _, t := range classified.Effective {
		if t.MANE != "" && t.GeneSymbol == geneSymbol {
			// MANE-equivalent transcripts are interchangeable, so the
			// first for the gene is as good as any.
			candidate = t
			break
		}
	}
	if candidate == nil {
		return "", false
	}

	// hgvsp is deliberately not required of the candidate: protein effect
	// is resolved from the registry where possible.
	return FormatFromTranscript(candidate.MANE, candidate, geneSymbol, registry)
}

func clinvarTitle(v *variant.Variant) (string, bool) {
	return v.ClinVarVariantTitle, v.ClinVarVariantTitle != ""
}

// canonicalTitle renders a title from the representative canonical
// transcript, addressed by its hgvsc accession.
func canonicalTitle(transcripts []*vep.TranscriptConsequence) (string, bool) {
	selected := SelectCanonical(transcripts)
	if selected == nil {
		return "", false
	}

	accession, ok := selected.Accession()
	if !ok {
		return "", false
	}

	return FormatFromTranscript(accession, selected, "", nil)
}

// genomicHGVSTitle falls back to the raw genomic HGVS name, newest
// assembly first.
func genomicHGVSTitle(v *variant.Variant) (string, bool) {
	if name, ok := v.HGVSNames.ForAssembly(variant.AssemblyGRCh38); ok {
		return name + " (GRCh38)", true
	}
	if name, ok := v.HGVSNames.ForAssembly(variant.AssemblyGRCh37); ok {
		return name + " (GRCh37)", true
	}
	return "", false
}
