package entitlement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlabs/billingkit/pkg/entitlement"
	"github.com/voxlabs/billingkit/pkg/tier"
)

func newClient(t *testing.T, handler http.HandlerFunc) *entitlement.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return entitlement.NewClient(entitlement.Config{
		BaseURL:       srv.URL,
		SigningSecret: "test-secret",
	})
}

func testEvidence() entitlement.Evidence {
	return entitlement.Evidence{
		DeviceID:      "device-123",
		TransactionID: "txn-456",
		ProductID:     "sub_basic_monthly",
		Platform:      "ios",
		ReceiptData:   "base64-receipt",
	}
}

func TestClient_Verify(t *testing.T) {
	t.Parallel()

	t.Run("posts evidence with device auth token", func(t *testing.T) {
		t.Parallel()
		var got entitlement.Evidence
		var auth string
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/billing/verify-purchase", r.URL.Path)
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		})

		err := client.Verify(context.Background(), testEvidence())
		require.NoError(t, err)
		assert.Equal(t, "device-123", got.DeviceID)
		assert.Equal(t, "txn-456", got.TransactionID)
		assert.Contains(t, auth, "Bearer ")
		assert.Contains(t, auth, ".")
	})

	t.Run("wraps status and body on rejection", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":"receipt already consumed"}`))
		})

		err := client.Verify(context.Background(), testEvidence())
		require.ErrorIs(t, err, entitlement.ErrVerificationFailed)

		var statusErr *entitlement.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusPaymentRequired, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "receipt already consumed")
	})

	t.Run("fails on transport error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := entitlement.NewClient(entitlement.Config{
			BaseURL:       srv.URL,
			SigningSecret: "test-secret",
		})

		err := client.Verify(context.Background(), testEvidence())
		assert.ErrorIs(t, err, entitlement.ErrVerificationFailed)
	})

	t.Run("requires device ID", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("backend must not be called without a device ID")
		})

		err := client.Verify(context.Background(), entitlement.Evidence{TransactionID: "txn"})
		assert.ErrorIs(t, err, entitlement.ErrMissingDeviceID)
	})
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("decodes full snapshot", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/billing/subscription-status", r.URL.Path)
			assert.Equal(t, "device-123", r.URL.Query().Get("device_id"))
			_, _ = w.Write([]byte(`{
				"tier": "standard",
				"credits_remaining": 42,
				"credits_total": 300,
				"total_purchased_credits": 800,
				"is_active": true
			}`))
		})

		snap, err := client.Fetch(context.Background(), "device-123")
		require.NoError(t, err)
		assert.Equal(t, tier.Standard, snap.Tier)
		assert.Equal(t, 42, snap.CreditsRemaining)
		assert.Equal(t, 300, snap.CreditsTotal)
		assert.Equal(t, 800, snap.TotalPurchasedCredits)
		assert.True(t, snap.IsActive)
		assert.Nil(t, snap.ExpiresAt)
	})

	t.Run("defaults missing fields instead of failing", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})

		snap, err := client.Fetch(context.Background(), "device-123")
		require.NoError(t, err)
		assert.Equal(t, tier.Free, snap.Tier)
		assert.Zero(t, snap.CreditsRemaining)
		assert.Zero(t, snap.CreditsTotal)
		assert.False(t, snap.IsActive)
	})

	t.Run("defaults unknown tier to free", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tier": "platinum", "credits_remaining": 9}`))
		})

		snap, err := client.Fetch(context.Background(), "device-123")
		require.NoError(t, err)
		assert.Equal(t, tier.Free, snap.Tier)
		assert.Equal(t, 9, snap.CreditsRemaining)
	})

	t.Run("fails on non-2xx", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Fetch(context.Background(), "device-123")
		assert.ErrorIs(t, err, entitlement.ErrRefreshFailed)
	})
}

func TestClient_Refresh_NilOnFailure(t *testing.T) {
	t.Parallel()

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		})

		assert.Nil(t, client.Refresh(context.Background(), "device-123"))
	})

	t.Run("error status", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		assert.Nil(t, client.Refresh(context.Background(), "device-123"))
	})

	t.Run("success returns snapshot", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tier":"basic","credits_remaining":12,"is_active":true}`))
		})

		snap := client.Refresh(context.Background(), "device-123")
		require.NotNil(t, snap)
		assert.Equal(t, tier.Basic, snap.Tier)
	})
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		entitlement.NewClient(entitlement.Config{SigningSecret: "s"})
	})
	assert.Panics(t, func() {
		entitlement.NewClient(entitlement.Config{BaseURL: "https://api.example.com"})
	})
}
