package car

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clingen-dx/vartitle/internal/clients"
)

// Client queries the ClinGen Allele Registry.
type Client struct {
	endpoint string
	doer     *clients.Doer
	logger   *zap.Logger
}

// NewClient creates a registry client for the given allele endpoint
// (e.g. "https://reg.genome.network/allele/").
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

// Find fetches the registry record for a CAR id ("CA..."). A nil Allele
// with a nil error means the registry has no such allele.
func (c *Client) Find(ctx context.Context, carID string) (*Allele, error) {
	body, err := c.doer.Get(ctx, c.endpoint+carID)
	if errors.Is(err, clients.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query allele registry for %s: %w", carID, err)
	}

	var allele Allele
	if err := json.Unmarshal(body, &allele); err != nil {
		return nil, fmt.Errorf("parse allele registry response for %s: %w", carID, err)
	}

	c.logger.Debug("fetched registry allele",
		zap.String("carId", carID),
		zap.Int("transcriptAlleles", len(allele.TranscriptAlleles)))

	return &allele, nil
}
