package domain

import "time"

// IntentStatus is the lifecycle state of a payment intent. An intent starts
// pending and moves to exactly one terminal state; terminal states never change.
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusSucceeded IntentStatus = "succeeded"
	IntentStatusFailed    IntentStatus = "failed"
	IntentStatusCanceled  IntentStatus = "canceled"
)

// IsTerminal reports whether the status is a terminal state.
func (s IntentStatus) IsTerminal() bool {
	switch s {
	case IntentStatusSucceeded, IntentStatusFailed, IntentStatusCanceled:
		return true
	}
	return false
}

// PaymentIntent tracks a requested payment and its external counterpart.
// RemoteID is the processor-assigned identifier; it is unique and immutable
// after creation.
type PaymentIntent struct {
	ID            string
	RemoteID      string
	UserID        string
	ProductID     string
	AmountInPence int64
	Currency      string
	Status        IntentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
