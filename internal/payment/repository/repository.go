package repository

import (
	"context"
	"time"

	"github.com/aluyapeter/fin-doc/internal/payment/domain"
	txndomain "github.com/aluyapeter/fin-doc/internal/transaction/domain"
)

// Repository defines persistence for payment intents.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.PaymentIntent, error)
	// CreateWithTransaction inserts the intent and its ledger transaction in one
	// database transaction: either both rows exist afterwards or neither does.
	CreateWithTransaction(ctx context.Context, intent *domain.PaymentIntent, txn *txndomain.Transaction) error
	// TransitionIfPending advances the intent identified by remoteID to the given
	// terminal status only if it is currently pending, and mirrors the status onto
	// the linked transaction in the same database transaction. Returns true when
	// the transition was applied; false when the intent was already terminal.
	TransitionIfPending(ctx context.Context, remoteID string, to domain.IntentStatus, at time.Time) (bool, error)
}
