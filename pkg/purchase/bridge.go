package purchase

import "context"

// ProductType mirrors the store's product classification.
type ProductType string

const (
	ProductTypeSubscription ProductType = "subs"
	ProductTypeInApp        ProductType = "inapp"
)

// Request describes one store purchase call.
type Request struct {
	ProductID string
	// PlanID is the base-plan identifier required alongside the product
	// identifier for subscriptions on stores that model plans separately.
	// Empty for one-time products.
	PlanID   string
	Type     ProductType
	Quantity int
}

// Receipt is the store's answer to a purchase call. TransactionID may be
// empty even on success; the orchestrator treats that as indeterminate.
type Receipt struct {
	TransactionID string
	ReceiptData   string
}

// StoreProduct carries store-reported pricing used to enrich verification
// evidence.
type StoreProduct struct {
	Identifier   string
	Price        float64
	CurrencyCode string
	PriceString  string
}

// Bridge abstracts the platform purchase SDK. Implementations report a
// user-dismissed purchase dialog by returning ErrUserCancelled from
// Purchase, never as a plain error.
//
// All methods must be safe to call from a single session; the session
// serializes purchase attempts itself.
type Bridge interface {
	// BillingSupported reports whether native billing is available on
	// this platform/build.
	BillingSupported(ctx context.Context) (bool, error)

	// Purchase runs the store purchase dialog to completion.
	Purchase(ctx context.Context, req Request) (Receipt, error)

	// RestorePurchases replays the platform restore mechanism.
	RestorePurchases(ctx context.Context) error

	// FetchReceipt retrieves the current receipt separately when the
	// purchase result carried none. Best effort; failures are non-fatal.
	FetchReceipt(ctx context.Context) (string, error)

	// Products queries store-reported pricing for the given identifiers.
	// Best effort; failures silently omit price enrichment.
	Products(ctx context.Context, identifiers []string, t ProductType) ([]StoreProduct, error)
}
