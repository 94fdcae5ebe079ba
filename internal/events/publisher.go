// Package events defines the interface for publishing payment events (e.g. to Kafka).
package events

import (
	"context"
	"time"
)

// PaymentEvent reports a payment intent reaching a terminal state.
type PaymentEvent struct {
	IntentID      string    `json:"intent_id"`
	RemoteID      string    `json:"remote_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	AmountInPence int64     `json:"amount_in_pence"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits payment events. Callers use it best-effort: log and ignore errors.
type Publisher interface {
	// Publish sends a single payment event. Implementations may block briefly.
	// Returns an error only on write failure; callers typically log and ignore.
	Publish(ctx context.Context, event *PaymentEvent) error
	// Close releases resources (e.g. Kafka writer). Safe to call if already closed.
	Close() error
}
