package vep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/clients"
)

// Client queries the Ensembl VEP HGVS endpoint for transcript
// consequences.
type Client struct {
	endpoint string
	doer     *clients.Doer
	logger   *zap.Logger
}

// NewClient creates a VEP client. endpoint is the HGVS lookup base,
// e.g. "https://rest.ensembl.org/vep/human/hgvs/".
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		doer:     clients.NewDoer(60*time.Second, 3*time.Minute),
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// vepResponse is one element of the endpoint's JSON array response.
type vepResponse struct {
	TranscriptConsequences []*TranscriptConsequence `json:"transcript_consequences"`
}

// Find queries VEP for the given chromosome-form HGVS notation (e.g.
// "17:g.42911391C>T") and returns the transcript consequences. The raw
// list is returned unclassified; run title.Classify on it to filter to
// overlapping transcripts and propagate MANE equivalence.
func (c *Client) Find(ctx context.Context, hgvsNotation string) ([]*TranscriptConsequence, error) {
	query := url.Values{
		"content-type": {"application/json"},
		"hgvs":         {"1"},
		"protein":      {"1"},
		"xref_refseq":  {"1"},
		"ExAC":         {"1"},
		"GeneSplicer":  {"1"},
		"Conservation": {"1"},
		"numbers":      {"1"},
		"domains":      {"1"},
		"mane":         {"1"},
		"canonical":    {"1"},
		"merged":       {"1"},
	}

	requestURL := c.endpoint + url.PathEscape(hgvsNotation) + "?" + query.Encode()

	body, err := c.doer.Get(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("query ensembl vep for %q: %w", hgvsNotation, err)
	}

	var responses []vepResponse
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("parse ensembl vep response for %q: %w", hgvsNotation, err)
	}
	if len(responses) == 0 {
		return nil, nil
	}

	c.logger.Debug("fetched vep transcript consequences",
		zap.String("hgvsNotation", hgvsNotation),
		zap.Int("transcripts", len(responses[0].TranscriptConsequences)))

	return responses[0].TranscriptConsequences, nil
}

// FindLenient is Find with the degrade-to-empty policy the title
// pipeline wants: a VEP failure (service down, notation unknown) yields
// an empty transcript list so resolution can fall through to the ClinVar
// and genomic HGVS tiers, with the failure logged instead of surfaced.
func (c *Client) FindLenient(ctx context.Context, hgvsNotation string) []*TranscriptConsequence {
	transcripts, err := c.Find(ctx, hgvsNotation)
	if err != nil && !errors.Is(err, clients.ErrNotFound) {
		c.logger.Warn("ensembl vep unavailable, continuing without transcripts",
			zap.String("hgvsNotation", hgvsNotation),
			zap.Error(err))
	}
	if err != nil {
		return nil
	}
	return transcripts
}
