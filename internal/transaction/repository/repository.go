package repository

import (
	"context"

	"github.com/aluyapeter/fin-doc/internal/transaction/domain"
)

// Repository defines persistence for ledger transactions.
type Repository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	// ListByUser returns the user's transactions in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)
}
