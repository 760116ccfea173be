package purchase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/voxlabs/billingkit/pkg/catalog"
	"github.com/voxlabs/billingkit/pkg/entitlement"
	"github.com/voxlabs/billingkit/pkg/reconcile"
	"github.com/voxlabs/billingkit/pkg/tier"
)

// Verifier submits purchase evidence to the backend entitlement service.
// entitlement.Client satisfies this.
type Verifier interface {
	Verify(ctx context.Context, evidence entitlement.Evidence) error
}

// Refresher re-fetches the authoritative snapshot after a successful
// purchase or restore. Returns nil on failure; the cached snapshot is
// kept. entitlement.Client and entitlement.CachedRefresher satisfy this.
type Refresher interface {
	Refresh(ctx context.Context, deviceID string) *entitlement.Snapshot
}

// Confirmation identifies a verified purchase.
type Confirmation struct {
	TransactionID string
	ProductID     string
}

// CompletionKind tells the hosting UI which flow finished so it can
// navigate using its separately persisted interaction mode.
type CompletionKind string

const (
	CompletionPurchase     CompletionKind = "purchase"
	CompletionExtraCredits CompletionKind = "extra_credits"
	CompletionRestore      CompletionKind = "restore"
)

// CompletionNotifier is called on every successful purchase, extra-credits
// purchase, or restore.
type CompletionNotifier func(ctx context.Context, kind CompletionKind, conf Confirmation)

// Config holds per-session configuration.
type Config struct {
	DeviceID string `env:"BILLING_DEVICE_ID,required"`
	Platform string `env:"BILLING_PLATFORM" envDefault:"ios"`
}

// Session drives purchase attempts for one device. All mutable state is
// owned by the session; independent sessions never interfere.
type Session struct {
	bridge    Bridge
	verifier  Verifier
	refresher Refresher
	journal   reconcile.Journal
	sink      EventSink
	notify    CompletionNotifier

	deviceID string
	platform string

	subscriptions map[tier.Tier]tier.Product
	extraCredits  tier.Product
	hasExtra      bool
	planIDs       map[string]string

	inFlight atomic.Bool
}

// SessionOption configures a Session instance.
type SessionOption func(*Session)

// WithEventSink sets the checkpoint event sink, ignoring nil.
func WithEventSink(sink EventSink) SessionOption {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithJournal sets the reconciliation journal for indeterminate and
// unverified purchases, ignoring nil.
func WithJournal(journal reconcile.Journal) SessionOption {
	return func(s *Session) {
		if journal != nil {
			s.journal = journal
		}
	}
}

// WithNotifier sets the completion callback toward the hosting UI.
func WithNotifier(notify CompletionNotifier) SessionOption {
	return func(s *Session) {
		s.notify = notify
	}
}

// WithPlanIDs overrides the derived base-plan identifiers, keyed by
// product identifier.
func WithPlanIDs(planIDs map[string]string) SessionOption {
	return func(s *Session) {
		if planIDs != nil {
			s.planIDs = planIDs
		}
	}
}

// NewSession creates a purchase session. Panics on missing required
// dependencies to fail fast during initialization.
func NewSession(cfg Config, bridge Bridge, verifier Verifier, refresher Refresher, cat catalog.Catalog, opts ...SessionOption) *Session {
	if cfg.DeviceID == "" {
		panic("purchase: device ID is required")
	}
	if bridge == nil {
		panic("purchase: Bridge is required")
	}
	if verifier == nil {
		panic("purchase: Verifier is required")
	}
	if refresher == nil {
		panic("purchase: Refresher is required")
	}

	platform := cfg.Platform
	if platform == "" {
		platform = "ios"
	}

	s := &Session{
		bridge:        bridge,
		verifier:      verifier,
		refresher:     refresher,
		journal:       reconcile.NewMemoryJournal(),
		sink:          NopSink(),
		deviceID:      cfg.DeviceID,
		platform:      platform,
		subscriptions: make(map[tier.Tier]tier.Product),
	}

	for _, p := range cat.Products {
		if p.OneTime {
			s.extraCredits = p
			s.hasExtra = true
			continue
		}
		if p.Tier.Paid() {
			s.subscriptions[p.Tier] = p
		}
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Purchase drives one subscription purchase attempt for the given tier.
// Guards run in order: in-flight, unsupported tier, unknown product.
func (s *Session) Purchase(ctx context.Context, t tier.Tier) (Confirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Confirmation{}, ErrAlreadyInFlight
	}
	defer s.inFlight.Store(false)

	if t == tier.Free || !t.Valid() {
		return Confirmation{}, ErrUnsupportedTier
	}

	product, ok := s.subscriptions[t]
	if !ok {
		return Confirmation{}, ErrUnknownProduct
	}

	return s.run(ctx, CompletionPurchase, Request{
		ProductID: product.ProductID,
		PlanID:    s.planID(product.ProductID),
		Type:      ProductTypeSubscription,
		Quantity:  1,
	})
}

// PurchaseExtraCredits buys the one-time extra-credits pack, the only
// offer available to the top tier.
func (s *Session) PurchaseExtraCredits(ctx context.Context) (Confirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Confirmation{}, ErrAlreadyInFlight
	}
	defer s.inFlight.Store(false)

	if !s.hasExtra {
		return Confirmation{}, ErrUnknownProduct
	}

	return s.run(ctx, CompletionExtraCredits, Request{
		ProductID: s.extraCredits.ProductID,
		Type:      ProductTypeInApp,
		Quantity:  1,
	})
}

// run executes the shared purchase procedure: store call, transaction
// extraction, receipt capture, price enrichment, verification, refresh.
func (s *Session) run(ctx context.Context, kind CompletionKind, req Request) (Confirmation, error) {
	s.emit(ctx, Event{Stage: StageStarted, ProductID: req.ProductID})

	receipt, err := s.bridge.Purchase(ctx, req)
	if err != nil {
		if errors.Is(err, ErrUserCancelled) {
			s.emit(ctx, Event{Stage: StageCancelled, ProductID: req.ProductID})
			return Confirmation{}, ErrUserCancelled
		}
		s.emit(ctx, Event{Stage: StageStoreCompleted, ProductID: req.ProductID, Err: err})
		return Confirmation{}, errors.Join(ErrStoreRejected, err)
	}

	if receipt.TransactionID == "" {
		// Indeterminate: the store reported success but nothing can be
		// verified. Journal it and surface the failure.
		s.emit(ctx, Event{Stage: StageNoTransactionID, ProductID: req.ProductID})
		s.journalEntry(ctx, reconcile.Entry{
			DeviceID:  s.deviceID,
			ProductID: req.ProductID,
			Reason:    reconcile.ReasonNoTransactionID,
		})
		return Confirmation{}, ErrNoTransactionID
	}
	s.emit(ctx, Event{Stage: StageStoreCompleted, ProductID: req.ProductID, TransactionID: receipt.TransactionID})

	receiptData := receipt.ReceiptData
	if receiptData == "" {
		// One extra attempt to obtain the receipt. Verification proceeds
		// without one when this fails too.
		if fetched, ferr := s.bridge.FetchReceipt(ctx); ferr == nil && fetched != "" {
			receiptData = fetched
			s.emit(ctx, Event{Stage: StageReceiptFetched, ProductID: req.ProductID, TransactionID: receipt.TransactionID})
		}
	}

	evidence := entitlement.Evidence{
		DeviceID:      s.deviceID,
		TransactionID: receipt.TransactionID,
		ProductID:     req.ProductID,
		Platform:      s.platform,
		ReceiptData:   receiptData,
	}
	s.enrichPrice(ctx, req, &evidence)

	if err := s.verifier.Verify(ctx, evidence); err != nil {
		// The store transaction went through but the backend refused it.
		// The purchase is reported as failed; the user is not entitled
		// until the evidence is re-submitted through reconciliation.
		s.emit(ctx, Event{Stage: StageVerificationFailed, ProductID: req.ProductID, TransactionID: receipt.TransactionID, Err: err})
		s.journalEntry(ctx, reconcile.Entry{
			DeviceID:      s.deviceID,
			ProductID:     req.ProductID,
			TransactionID: receipt.TransactionID,
			Reason:        reconcile.ReasonVerificationRejected,
			Detail:        err.Error(),
		})
		return Confirmation{}, err
	}
	s.emit(ctx, Event{Stage: StageVerified, ProductID: req.ProductID, TransactionID: receipt.TransactionID})

	// A failed refresh keeps the previous cached snapshot and never fails
	// the purchase.
	if snap := s.refresher.Refresh(ctx, s.deviceID); snap != nil {
		s.emit(ctx, Event{Stage: StageRefreshed, ProductID: req.ProductID, TransactionID: receipt.TransactionID})
	}

	conf := Confirmation{TransactionID: receipt.TransactionID, ProductID: req.ProductID}
	s.emit(ctx, Event{Stage: StageCompleted, ProductID: req.ProductID, TransactionID: receipt.TransactionID})
	if s.notify != nil {
		s.notify(ctx, kind, conf)
	}
	return conf, nil
}

// Restore replays the platform restore mechanism and refreshes
// entitlements. On platforms without native billing it succeeds as a
// no-op with no entitlement change.
func (s *Session) Restore(ctx context.Context) error {
	supported, err := s.bridge.BillingSupported(ctx)
	if err != nil || !supported {
		s.emit(ctx, Event{Stage: StageRestoreSkipped, Err: err})
		return nil
	}

	s.emit(ctx, Event{Stage: StageRestoreStarted})
	if err := s.bridge.RestorePurchases(ctx); err != nil {
		return errors.Join(ErrRestoreFailed, err)
	}

	// Refresh runs whether or not the restore found prior purchases.
	s.refresher.Refresh(ctx, s.deviceID)
	s.emit(ctx, Event{Stage: StageRestoreCompleted})
	if s.notify != nil {
		s.notify(ctx, CompletionRestore, Confirmation{})
	}
	return nil
}

// InFlight reports whether a purchase attempt is currently running.
func (s *Session) InFlight() bool {
	return s.inFlight.Load()
}

// planID resolves the base-plan identifier for a subscription product.
// Stores that model plans separately need it alongside the product ID.
func (s *Session) planID(productID string) string {
	if id, ok := s.planIDs[productID]; ok {
		return id
	}
	return productID + "-base"
}

// enrichPrice adds store-reported price fields to the evidence. Best
// effort: any failure silently omits the fields.
func (s *Session) enrichPrice(ctx context.Context, req Request, evidence *entitlement.Evidence) {
	products, err := s.bridge.Products(ctx, []string{req.ProductID}, req.Type)
	if err != nil {
		return
	}
	for _, p := range products {
		if p.Identifier != req.ProductID {
			continue
		}
		evidence.PricePaid = p.Price
		evidence.CurrencyCode = p.CurrencyCode
		evidence.PriceString = p.PriceString
		if evidence.PriceString == "" && p.CurrencyCode != "" {
			evidence.PriceString = formatPrice(p.Price, p.CurrencyCode)
		}
		return
	}
}

// journalEntry records a reconciliation entry. Journaling must never mask
// the primary purchase outcome, so errors are dropped.
func (s *Session) journalEntry(ctx context.Context, entry reconcile.Entry) {
	if s.journal == nil {
		return
	}
	_ = s.journal.Record(ctx, &entry)
}

func (s *Session) emit(ctx context.Context, event Event) {
	event.DeviceID = s.deviceID
	event.At = time.Now().UTC()
	s.sink.OnEvent(ctx, event)
}
