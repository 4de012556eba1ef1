// Package resolve wires the external service clients to the title core:
// it fetches a variant from ClinVar or the allele registry, gathers
// transcript consequences from Ensembl VEP, and computes the preferred
// title.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/car"
	"github.com/clingen-dx/vartitle/internal/clients"
	"github.com/clingen-dx/vartitle/internal/clinvar"
	"github.com/clingen-dx/vartitle/internal/refdata"
	"github.com/clingen-dx/vartitle/internal/title"
	"github.com/clingen-dx/vartitle/internal/variant"
	"github.com/clingen-dx/vartitle/internal/vep"
)

// Resolver fetches variants and computes preferred titles.
type Resolver struct {
	clinvar *clinvar.Client
	car     *car.Client
	vep     *vep.Client
	titles  *title.Resolver
	chroms  refdata.ChromosomeTable
	logger  *zap.Logger
}

// New creates a Resolver against the given service endpoints.
func New(endpoints clients.Endpoints) (*Resolver, error) {
	chroms, err := refdata.Chromosomes()
	if err != nil {
		return nil, fmt.Errorf("load chromosome table: %w", err)
	}

	return &Resolver{
		clinvar: clinvar.NewClient(endpoints.ClinVarEfetch),
		car:     car.NewClient(endpoints.CARAllele),
		vep:     vep.NewClient(endpoints.EnsemblVEP),
		titles:  title.NewResolver(),
		chroms:  chroms,
		logger:  zap.NewNop(),
	}, nil
}

// SetLogger sets the logger on the resolver and all its clients.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
	r.clinvar.SetLogger(l)
	r.car.SetLogger(l)
	r.vep.SetLogger(l)
	r.titles.SetLogger(l)
}

// Resolve dispatches on the id form: registry ids start with "CA",
// everything else is treated as a ClinVar variation id. A nil variant
// with nil error means the source has no such record.
func (r *Resolver) Resolve(ctx context.Context, id string) (*variant.Variant, error) {
	if strings.HasPrefix(id, "CA") {
		return r.ResolveCAR(ctx, id)
	}
	return r.ResolveClinVar(ctx, id)
}

// ResolveClinVar fetches a ClinVar variation, computes its preferred
// title and returns the variant with PreferredTitle set.
func (r *Resolver) ResolveClinVar(ctx context.Context, variationID string) (*variant.Variant, error) {
	v, ext, err := r.clinvar.Find(ctx, variationID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	transcripts := r.fetchTranscripts(ctx, v)
	v.PreferredTitle = r.titles.PreferredTitle(v, transcripts, ext, nil)
	return v, nil
}

// ResolveCAR fetches an allele registry record, decodes it into a
// variant, computes its preferred title and returns the variant with
// PreferredTitle set.
func (r *Resolver) ResolveCAR(ctx context.Context, carID string) (*variant.Variant, error) {
	allele, err := r.car.Find(ctx, carID)
	if err != nil {
		return nil, err
	}
	if allele == nil {
		return nil, nil
	}

	v := car.DecodeVariant(allele)
	transcripts := r.fetchTranscripts(ctx, v)
	v.PreferredTitle = r.titles.PreferredTitle(v, transcripts, nil, allele)
	return v, nil
}

// fetchTranscripts gathers the variant's transcript consequences from
// VEP. A variant without a computable GRCh38 notation (mitochondrial
// accessions, no GRCh38 name) yields no transcripts, which makes the
// title pipeline skip the MANE and canonical tiers.
func (r *Resolver) fetchTranscripts(ctx context.Context, v *variant.Variant) []*vep.TranscriptConsequence {
	notation, ok := title.Notation(v, r.chroms, variant.AssemblyGRCh38, true)
	if !ok {
		r.logger.Debug("no GRCh38 hgvs notation computable, skipping vep",
			zap.String("clinvarId", v.ClinVarVariantID),
			zap.String("carId", v.CARID))
		return nil
	}
	return r.vep.FindLenient(ctx, notation)
}
