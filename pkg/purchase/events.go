package purchase

import (
	"context"
	"log/slog"
	"time"
)

// Stage identifies a checkpoint in the purchase or restore flow.
type Stage string

const (
	StageStarted            Stage = "started"
	StageStoreCompleted     Stage = "store_completed"
	StageCancelled          Stage = "cancelled"
	StageNoTransactionID    Stage = "no_transaction_id"
	StageReceiptFetched     Stage = "receipt_fetched"
	StageVerified           Stage = "verified"
	StageVerificationFailed Stage = "verification_failed"
	StageRefreshed          Stage = "refreshed"
	StageCompleted          Stage = "completed"
	StageRestoreStarted     Stage = "restore_started"
	StageRestoreCompleted   Stage = "restore_completed"
	StageRestoreSkipped     Stage = "restore_skipped"
)

// Event is emitted at every defined checkpoint of the flow. It replaces
// ad-hoc console logging so the flow stays observable and testable.
type Event struct {
	Stage         Stage
	DeviceID      string
	ProductID     string
	TransactionID string
	Err           error
	At            time.Time
}

// EventSink receives flow checkpoint events. Implementations must not
// block; the session calls them inline.
type EventSink interface {
	OnEvent(ctx context.Context, event Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(ctx context.Context, event Event)

func (f EventSinkFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}

// NopSink discards all events. It is the session default.
func NopSink() EventSink {
	return EventSinkFunc(func(context.Context, Event) {})
}

// NewSlogSink writes checkpoint events to a structured logger. Failure
// stages log at warn level, everything else at info.
func NewSlogSink(log *slog.Logger) EventSink {
	return EventSinkFunc(func(ctx context.Context, e Event) {
		attrs := []any{
			slog.String("stage", string(e.Stage)),
			slog.String("device_id", e.DeviceID),
			slog.String("product_id", e.ProductID),
		}
		if e.TransactionID != "" {
			attrs = append(attrs, slog.String("transaction_id", e.TransactionID))
		}
		if e.Err != nil {
			attrs = append(attrs, slog.Any("error", e.Err))
			log.WarnContext(ctx, "billing checkpoint", attrs...)
			return
		}
		log.InfoContext(ctx, "billing checkpoint", attrs...)
	})
}

// MultiSink fans one event out to several sinks in order.
func MultiSink(sinks ...EventSink) EventSink {
	return EventSinkFunc(func(ctx context.Context, e Event) {
		for _, s := range sinks {
			if s != nil {
				s.OnEvent(ctx, e)
			}
		}
	})
}
