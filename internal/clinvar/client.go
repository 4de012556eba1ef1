package clinvar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/clients"
	"github.com/clingen-dx/vartitle/internal/variant"
)

// Client fetches VCV records from ClinVar's efetch endpoint.
type Client struct {
	endpoint string
	doer     *clients.Doer
	logger   *zap.Logger
}

// NewClient creates a ClinVar client. endpoint is the efetch VCV URL up
// to and including the id parameter; the variation id is appended as-is.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		doer:     clients.NewDoer(30*time.Second, 2*time.Minute),
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Fetch returns the raw VCV XML for a ClinVar variation id.
func (c *Client) Fetch(ctx context.Context, variationID string) ([]byte, error) {
	body, err := c.doer.Get(ctx, c.endpoint+variationID)
	if err != nil {
		return nil, fmt.Errorf("fetch clinvar variation %s: %w", variationID, err)
	}
	return body, nil
}

// Find fetches and parses the variant for a ClinVar variation id,
// including the extension. A nil variant with nil error means ClinVar has
// no usable record for the id.
func (c *Client) Find(ctx context.Context, variationID string) (*variant.Variant, *variant.ClinVarExtension, error) {
	raw, err := c.Fetch(ctx, variationID)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	v, ext, err := ParseExtended(raw)
	if errors.Is(err, ErrNoVariationArchive) || errors.Is(err, ErrNoRecord) {
		// The response lacks essential structure, which efetch produces
		// for unknown ids; treat as not found.
		c.logger.Info("clinvar response unusable, treating as not found",
			zap.String("variationId", variationID),
			zap.Error(err))
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse clinvar variation %s: %w", variationID, err)
	}

	return v, ext, nil
}
