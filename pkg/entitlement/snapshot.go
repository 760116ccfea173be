package entitlement

import (
	"time"

	"github.com/voxlabs/billingkit/pkg/tier"
)

// Snapshot is the backend's authoritative record of a device's tier and
// credit balance. The client holds only a read-mostly cached copy and never
// mutates it locally; refreshes replace the whole value.
type Snapshot struct {
	Tier                  tier.Tier  `json:"tier"`
	CreditsRemaining      int        `json:"credits_remaining"`
	CreditsTotal          int        `json:"credits_total"`
	TotalPurchasedCredits int        `json:"total_purchased_credits"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
	IsActive              bool       `json:"is_active"`
}

// statusResponse mirrors the subscription-status wire format. Pointer
// fields distinguish absent values from zero so defaults can be applied.
type statusResponse struct {
	Tier                  string     `json:"tier"`
	CreditsRemaining      *int       `json:"credits_remaining"`
	CreditsTotal          *int       `json:"credits_total"`
	TotalPurchasedCredits *int       `json:"total_purchased_credits"`
	ExpiresAt             *time.Time `json:"expires_at"`
	IsActive              *bool      `json:"is_active"`
}

// snapshot applies safe defaults for missing fields: free tier, zero
// counts, inactive. A partially filled response never fails the refresh.
func (r statusResponse) snapshot() *Snapshot {
	s := &Snapshot{
		Tier:      tier.Free,
		ExpiresAt: r.ExpiresAt,
	}
	if t := tier.Tier(r.Tier); t.Valid() {
		s.Tier = t
	}
	if r.CreditsRemaining != nil {
		s.CreditsRemaining = *r.CreditsRemaining
	}
	if r.CreditsTotal != nil {
		s.CreditsTotal = *r.CreditsTotal
	}
	if r.TotalPurchasedCredits != nil {
		s.TotalPurchasedCredits = *r.TotalPurchasedCredits
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	return s
}

// Evidence is the proof of purchase forwarded verbatim to the backend
// verify endpoint. Receipt and price fields are best-effort enrichments;
// their absence degrades verification confidence but never blocks it.
type Evidence struct {
	DeviceID      string  `json:"device_id"`
	TransactionID string  `json:"transaction_id"`
	ProductID     string  `json:"product_id"`
	Platform      string  `json:"platform"`
	ReceiptData   string  `json:"receipt_data,omitempty"`
	PricePaid     float64 `json:"price_paid,omitempty"`
	CurrencyCode  string  `json:"currency_code,omitempty"`
	PriceString   string  `json:"price_string,omitempty"`
}
