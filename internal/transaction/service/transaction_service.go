// Package service implements the ledger of user transactions.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/transaction/domain"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

// TransactionRepo is the minimal transaction repository needed by the service.
type TransactionRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// TransactionService records manual ledger entries and lists a user's history.
// Payment-backed entries are written by the payment flow, not here.
type TransactionService struct {
	txns   TransactionRepo
	logger *zap.Logger
}

func NewTransactionService(txns TransactionRepo, logger *zap.Logger) *TransactionService {
	return &TransactionService{txns: txns, logger: logger}
}

// Record writes a manual ledger entry for userID. Manual entries carry no
// payment intent and are recorded as succeeded immediately.
func (s *TransactionService) Record(ctx context.Context, userID string, amountInPence int64, description string) (*domain.Transaction, error) {
	if amountInPence <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}

	txn := &domain.Transaction{
		ID:            uuid.New().String(),
		UserID:        userID,
		AmountInPence: amountInPence,
		Status:        "succeeded",
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	if err := s.txns.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("manual transaction recorded",
		zap.String("transaction_id", txn.ID),
		zap.String("user_id", userID),
		zap.Int64("amount_in_pence", amountInPence))
	return txn, nil
}

// ListForUser returns the user's transactions in insertion order.
func (s *TransactionService) ListForUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return s.txns.ListByUser(ctx, userID)
}
