package billing

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxlabs/billingkit/pkg/catalog"
	"github.com/voxlabs/billingkit/pkg/contact"
	"github.com/voxlabs/billingkit/pkg/entitlement"
	"github.com/voxlabs/billingkit/pkg/purchase"
	"github.com/voxlabs/billingkit/pkg/tier"
)

// Purchaser drives purchase flows. *purchase.Session satisfies this.
type Purchaser interface {
	Purchase(ctx context.Context, t tier.Tier) (purchase.Confirmation, error)
	PurchaseExtraCredits(ctx context.Context) (purchase.Confirmation, error)
	Restore(ctx context.Context) error
}

// SnapshotSource exposes the cached entitlement snapshot.
// *entitlement.CachedRefresher satisfies this.
type SnapshotSource interface {
	Current() *entitlement.Snapshot
}

// Sender relays support messages. *contact.Relay satisfies this.
type Sender interface {
	Send(ctx context.Context, msg contact.Message) error
}

// RouterOptions configures which services to mount. Each service is
// optional and its routes are only registered when provided.
type RouterOptions struct {
	Catalog   *catalog.Catalog
	Purchaser Purchaser
	Snapshots SnapshotSource
	Contact   Sender
}

// Router creates the billing module router.
//
// Example:
//
//	session := purchase.NewSession(cfg, bridge, client, refresher, cat)
//
//	r := chi.NewRouter()
//	r.Mount("/billing", billing.Router(billing.RouterOptions{
//	    Catalog:   &cat,
//	    Purchaser: session,
//	    Snapshots: refresher,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Catalog != nil {
		r.Get("/catalog", handleCatalog(*opts.Catalog))
		if opts.Snapshots != nil {
			r.Get("/eligibility", handleEligibility(*opts.Catalog, opts.Snapshots))
		}
	}
	if opts.Snapshots != nil {
		r.Get("/status", handleStatus(opts.Snapshots))
	}
	if opts.Purchaser != nil {
		r.Post("/purchase", handlePurchase(opts.Purchaser))
		r.Post("/purchase/extra", handleExtraCredits(opts.Purchaser))
		r.Post("/restore", handleRestore(opts.Purchaser))
	}
	if opts.Contact != nil {
		r.Post("/contact", handleContact(opts.Contact))
	}

	return r
}

type catalogResponse struct {
	Products []tier.Product `json:"products"`
	Fallback bool           `json:"fallback"`
}

func handleCatalog(cat catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, catalogResponse{
			Products: cat.Products,
			Fallback: cat.Fallback,
		})
	}
}

type eligibilityResponse struct {
	HideFreeTier     bool           `json:"hide_free_tier"`
	AvailableTiers   []tier.Tier    `json:"available_tiers"`
	DefaultSelection tier.Selection `json:"default_selection"`
}

func handleEligibility(cat catalog.Catalog, snapshots SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var currentTier *tier.Tier
		var credits *int
		if snap := snapshots.Current(); snap != nil {
			currentTier = &snap.Tier
			credits = &snap.CreditsRemaining
		}

		e := tier.Evaluate(currentTier, credits, cat.Products)
		respond(w, http.StatusOK, eligibilityResponse{
			HideFreeTier:     e.HideFreeTier,
			AvailableTiers:   e.AvailableTiers,
			DefaultSelection: e.DefaultSelection,
		})
	}
}

func handleStatus(snapshots SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshots.Current()
		if snap == nil {
			respondError(w, errSnapshotUnavailable)
			return
		}
		respond(w, http.StatusOK, snap)
	}
}

type purchaseRequest struct {
	Tier tier.Tier `json:"tier"`
}

type purchaseResponse struct {
	TransactionID string `json:"transaction_id"`
	ProductID     string `json:"product_id"`
}

func handlePurchase(p Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, errMalformedRequest)
			return
		}

		conf, err := p.Purchase(r.Context(), req.Tier)
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, purchaseResponse{
			TransactionID: conf.TransactionID,
			ProductID:     conf.ProductID,
		})
	}
}

func handleExtraCredits(p Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conf, err := p.PurchaseExtraCredits(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, purchaseResponse{
			TransactionID: conf.TransactionID,
			ProductID:     conf.ProductID,
		})
	}
}

func handleRestore(p Purchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.Restore(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]bool{"restored": true})
	}
}

func handleContact(sender Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg contact.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			respondError(w, errMalformedRequest)
			return
		}

		if err := sender.Send(r.Context(), msg); err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusAccepted, map[string]bool{"sent": true})
	}
}
