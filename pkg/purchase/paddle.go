package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle-backed web bridge.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY,required"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
	SuccessURL  string `env:"PADDLE_SUCCESS_URL"`
}

// PaddleBridge satisfies Bridge for web builds without native billing.
// Purchases run through a Paddle hosted checkout: the bridge creates the
// transaction and reports its ID as the store transaction identifier; the
// backend confirms completion against Paddle during verification. There
// are no client-side receipts on the web, and restore is a no-op because
// entitlements already live server-side.
type PaddleBridge struct {
	client   *paddle.SDK
	priceIDs map[string]string // product ID -> paddle price ID
	config   PaddleConfig
}

// NewPaddleBridge creates the web checkout bridge. priceIDs maps catalog
// product identifiers to Paddle price identifiers and must cover every
// purchasable product.
func NewPaddleBridge(cfg PaddleConfig, priceIDs map[string]string) (*PaddleBridge, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("purchase: paddle API key is required")
	}
	if len(priceIDs) == 0 {
		return nil, errors.New("purchase: paddle price ID mapping is required")
	}

	var client *paddle.SDK
	var err error
	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, fmt.Errorf("purchase: invalid paddle environment: %s", cfg.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("purchase: failed to create paddle client: %w", err)
	}

	return &PaddleBridge{
		client:   client,
		priceIDs: priceIDs,
		config:   cfg,
	}, nil
}

// BillingSupported always reports true; the hosted checkout needs no
// device capability.
func (b *PaddleBridge) BillingSupported(ctx context.Context) (bool, error) {
	return true, nil
}

// Purchase creates a Paddle transaction for the mapped price and returns
// its ID. The hosting page opens the checkout; a transaction the user
// abandons simply never verifies.
func (b *PaddleBridge) Purchase(ctx context.Context, req Request) (Receipt, error) {
	priceID, ok := b.priceIDs[req.ProductID]
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %s", ErrUnknownProduct, req.ProductID)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  priceID,
		Quantity: quantity,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"product_id": req.ProductID,
		},
	}
	if b.config.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(b.config.SuccessURL),
		}
	}

	transaction, err := b.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	return Receipt{TransactionID: transaction.ID}, nil
}

// RestorePurchases is a no-op: web entitlements are already server-side.
func (b *PaddleBridge) RestorePurchases(ctx context.Context) error {
	return nil
}

// FetchReceipt reports no receipt; Paddle transactions carry no
// client-side receipt data.
func (b *PaddleBridge) FetchReceipt(ctx context.Context) (string, error) {
	return "", nil
}

// Products reports nothing; the hosted checkout displays localized prices
// itself, so evidence enrichment is skipped on the web.
func (b *PaddleBridge) Products(ctx context.Context, identifiers []string, t ProductType) ([]StoreProduct, error) {
	return nil, nil
}
