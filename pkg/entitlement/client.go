package entitlement

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the entitlement backend client.
type Config struct {
	BaseURL       string        `env:"ENTITLEMENT_API_URL,required"`
	SigningSecret string        `env:"ENTITLEMENT_SIGNING_SECRET,required"`
	Timeout       time.Duration `env:"ENTITLEMENT_API_TIMEOUT" envDefault:"30s"`
}

// Client calls the backend verify-purchase and subscription-status
// endpoints. It performs no retries; a failed verification is the purchase
// flow's signal to report the whole purchase as failed.
type Client struct {
	client  *http.Client
	baseURL string
	secret  string
}

// ClientOption configures a Client instance.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, ignoring nil for safety.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient creates an entitlement backend client. Panics on missing base
// URL or signing secret to fail fast during initialization.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		panic("entitlement: base URL is required")
	}
	if cfg.SigningSecret == "" {
		panic("entitlement: signing secret is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		secret:  cfg.SigningSecret,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verify submits purchase evidence to the backend. Any transport error or
// non-2xx response is a hard failure wrapping the status and body.
func (c *Client) Verify(ctx context.Context, evidence Evidence) error {
	if evidence.DeviceID == "" {
		return ErrMissingDeviceID
	}

	payload, err := json.Marshal(evidence)
	if err != nil {
		return errors.Join(ErrVerificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/billing/verify-purchase", bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrVerificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.deviceToken(evidence.DeviceID))

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Join(ErrVerificationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return errors.Join(ErrVerificationFailed, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	return nil
}

// Fetch retrieves the subscription snapshot for a device, surfacing
// failures to the caller. Most callers want Refresh instead.
func (c *Client) Fetch(ctx context.Context, deviceID string) (*Snapshot, error) {
	if deviceID == "" {
		return nil, ErrMissingDeviceID
	}

	endpoint := c.baseURL + "/billing/subscription-status?device_id=" + url.QueryEscape(deviceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.deviceToken(deviceID))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Join(ErrRefreshFailed, &StatusError{StatusCode: resp.StatusCode})
	}

	var body statusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	return body.snapshot(), nil
}

// Refresh returns the current snapshot, or nil on any failure. Callers
// treat nil as "keep the previously cached snapshot", never as zero
// credits.
func (c *Client) Refresh(ctx context.Context, deviceID string) *Snapshot {
	snap, err := c.Fetch(ctx, deviceID)
	if err != nil {
		return nil
	}
	return snap
}

// deviceToken mints the per-device auth token attached to backend calls:
// the device ID plus a truncated HMAC-SHA256 signature, both URL-safe
// base64.
func (c *Client) deviceToken(deviceID string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(deviceID))
	h := hmac.New(sha256.New, []byte(c.secret))
	h.Write([]byte(deviceID))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil)[:8])
	return payload + "." + sig
}
