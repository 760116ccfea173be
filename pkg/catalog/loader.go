package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voxlabs/billingkit/pkg/tier"
)

// Config holds configuration for the pricing catalog loader.
type Config struct {
	PricingURL string        `env:"PRICING_CATALOG_URL,required"`
	Timeout    time.Duration `env:"PRICING_CATALOG_TIMEOUT" envDefault:"15s"`
}

// Loader fetches the live product catalog from the pricing endpoint.
type Loader struct {
	client *http.Client
	url    string
}

// LoaderOption configures a Loader instance.
type LoaderOption func(*Loader)

// WithHTTPClient sets a custom HTTP client, ignoring nil for safety.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// NewLoader creates a catalog loader. Panics if the pricing URL is empty to
// fail fast on misconfiguration.
func NewLoader(cfg Config, opts ...LoaderOption) *Loader {
	if cfg.PricingURL == "" {
		panic("catalog: pricing URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	l := &Loader{
		client: &http.Client{Timeout: timeout},
		url:    cfg.PricingURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// pricingResponse mirrors the pricing endpoint wire format.
type pricingResponse struct {
	Products []struct {
		ProductID string      `json:"product_id"`
		Tier      string      `json:"tier"`
		Name      string      `json:"name"`
		Price     json.Number `json:"price"`
		Credits   int         `json:"credits"`
	} `json:"products"`
}

// Fetch retrieves the live catalog, surfacing transport, status, and decode
// failures to the caller. Production callers normally use Load instead.
func (l *Loader) Fetch(ctx context.Context) (Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Catalog{}, errors.Join(ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Catalog{}, errors.Join(ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Catalog{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, 1<<20))
	dec.UseNumber()

	var body pricingResponse
	if err := dec.Decode(&body); err != nil {
		return Catalog{}, errors.Join(ErrMalformedBody, err)
	}
	if len(body.Products) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	products := make([]tier.Product, 0, len(body.Products))
	for _, p := range body.Products {
		t := tier.Tier(p.Tier)
		products = append(products, tier.Product{
			ProductID:   p.ProductID,
			Tier:        t,
			DisplayName: p.Name,
			Price:       p.Price.String(),
			CreditGrant: p.Credits,
			// The extra-credits pack is the only product without a tier.
			OneTime: !t.Valid(),
		})
	}

	return Catalog{Products: products}, nil
}

// Load returns the live catalog, or the static fallback on any failure.
// It never fails from the caller's perspective.
func (l *Loader) Load(ctx context.Context) Catalog {
	return OrFallback(l.Fetch, FallbackCatalog())(ctx)
}

// OrFallback composes a fallible catalog fetch with a substitute catalog,
// absorbing the error. Keeping the combinator separate from Fetch leaves
// the failure observable in tests while production callers get the
// never-fails contract.
func OrFallback(fetch func(context.Context) (Catalog, error), fallback Catalog) func(context.Context) Catalog {
	return func(ctx context.Context) Catalog {
		cat, err := fetch(ctx)
		if err != nil {
			fallback.Fallback = true
			return fallback
		}
		return cat
	}
}
