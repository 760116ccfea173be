package billing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voxlabs/billingkit/pkg/contact"
	"github.com/voxlabs/billingkit/pkg/entitlement"
	"github.com/voxlabs/billingkit/pkg/purchase"
)

// response is the standard JSON envelope.
type response struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, purchase.ErrAlreadyInFlight):
		status, code = http.StatusConflict, "purchase_in_flight"
	case errors.Is(err, purchase.ErrUnsupportedTier):
		status, code = http.StatusUnprocessableEntity, "unsupported_tier"
	case errors.Is(err, purchase.ErrUnknownProduct):
		status, code = http.StatusUnprocessableEntity, "unknown_product"
	case errors.Is(err, purchase.ErrUserCancelled):
		status, code = http.StatusOK, "user_cancelled"
	case errors.Is(err, purchase.ErrNoTransactionID):
		status, code = http.StatusBadGateway, "no_transaction_id"
	case errors.Is(err, purchase.ErrStoreRejected):
		status, code = http.StatusBadGateway, "store_rejected"
	case errors.Is(err, purchase.ErrRestoreFailed):
		status, code = http.StatusBadGateway, "restore_failed"
	case errors.Is(err, entitlement.ErrVerificationFailed):
		status, code = http.StatusPaymentRequired, "verification_failed"
	case errors.Is(err, contact.ErrInvalidMessage):
		status, code = http.StatusUnprocessableEntity, "invalid_message"
	case errors.Is(err, contact.ErrSendFailed):
		status, code = http.StatusBadGateway, "send_failed"
	case errors.Is(err, errMalformedRequest):
		status, code = http.StatusBadRequest, "malformed_request"
	case errors.Is(err, errSnapshotUnavailable):
		status, code = http.StatusNotFound, "snapshot_unavailable"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Error: &errorDetail{
		Code:    code,
		Message: err.Error(),
	}})
}
