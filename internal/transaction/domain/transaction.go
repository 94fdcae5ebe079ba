package domain

import (
	"errors"
	"time"
)

// Transaction is a ledger entry. PaymentIntentID is empty for manual entries;
// when set, Status mirrors the linked intent once reconciled.
type Transaction struct {
	ID              string
	UserID          string
	PaymentIntentID string
	AmountInPence   int64
	Status          string
	Description     string
	CreatedAt       time.Time
}

// Validate validates the transaction for persistence. Returns an error describing the first validation failure.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return errors.New("user id is required")
	}
	if t.AmountInPence <= 0 {
		return errors.New("amount must be positive")
	}
	if t.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
