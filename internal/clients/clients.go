// Package clients holds configuration and HTTP plumbing shared by the
// ClinVar, CAR and Ensembl VEP clients.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kelseyhightower/envconfig"
)

// Endpoints holds the external service base URLs. Each is overridable
// from the environment, matching the deployment convention of the
// curation platform this tool serves.
type Endpoints struct {
	CARAllele     string `envconfig:"CAR_ALLELE_ENDPOINT" default:"https://reg.genome.network/allele/"`
	ClinVarEfetch string `envconfig:"CLIN_VAR_EUTILS_VCV_ENDPOINT" default:"https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi?db=clinvar&rettype=vcv&is_variationid&from_esearch=true&id="`
	EnsemblVEP    string `envconfig:"ENSEMBL_VEP_HGVS_ENDPOINT" default:"https://rest.ensembl.org/vep/human/hgvs/"`
}

// EndpointsFromEnv loads the endpoint configuration from the environment,
// falling back to the public service URLs.
func EndpointsFromEnv() (Endpoints, error) {
	var e Endpoints
	if err := envconfig.Process("", &e); err != nil {
		return Endpoints{}, fmt.Errorf("load endpoint config: %w", err)
	}
	return e, nil
}

// StatusError reports a non-retryable HTTP response from an external
// service.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
}

// ErrNotFound marks a 404 from an external service. Callers treat it as
// "no such record", not a failure.
var ErrNotFound = &StatusError{StatusCode: http.StatusNotFound}

// Doer issues GET requests with retry on transient failures.
type Doer struct {
	client  *http.Client
	maxWait time.Duration
}

// NewDoer creates a Doer with the given per-request timeout and total
// retry budget.
func NewDoer(timeout, maxWait time.Duration) *Doer {
	return &Doer{
		client:  &http.Client{Timeout: timeout},
		maxWait: maxWait,
	}
}

// Get fetches url and returns the response body. Network errors and 5xx
// responses are retried with exponential backoff until the retry budget
// runs out; 4xx responses are returned immediately, with 404 mapped to
// ErrNotFound.
func (d *Doer) Get(ctx context.Context, url string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = d.maxWait

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := d.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return &StatusError{URL: url, StatusCode: resp.StatusCode}
		case resp.StatusCode >= 300:
			return backoff.Permanent(&StatusError{URL: url, StatusCode: resp.StatusCode})
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}
