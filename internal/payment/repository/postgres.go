package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aluyapeter/fin-doc/internal/payment/domain"
	txndomain "github.com/aluyapeter/fin-doc/internal/transaction/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a payment intent repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectIntent = `
	SELECT id, remote_id, user_id, product_id, amount_in_pence, currency, status, created_at, updated_at
	FROM payment_intents
`

// GetByID returns the intent for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectIntent+`WHERE id = $1`, id))
}

// GetByRemoteID returns the intent with the given processor-assigned id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByRemoteID(ctx context.Context, remoteID string) (*domain.PaymentIntent, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectIntent+`WHERE remote_id = $1`, remoteID))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*domain.PaymentIntent, error) {
	pi := &domain.PaymentIntent{}
	err := row.Scan(&pi.ID, &pi.RemoteID, &pi.UserID, &pi.ProductID, &pi.AmountInPence,
		&pi.Currency, &pi.Status, &pi.CreatedAt, &pi.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pi, nil
}

// CreateWithTransaction inserts the intent and its ledger transaction atomically.
// Both must have IDs set; they are not assigned by this method.
func (r *PostgresRepository) CreateWithTransaction(ctx context.Context, intent *domain.PaymentIntent, txn *txndomain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertIntent = `
		INSERT INTO payment_intents (id, remote_id, user_id, product_id, amount_in_pence, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, insertIntent,
		intent.ID, intent.RemoteID, intent.UserID, intent.ProductID,
		intent.AmountInPence, intent.Currency, intent.Status, intent.CreatedAt, intent.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert payment intent: %w", err)
	}

	const insertTxn = `
		INSERT INTO transactions (id, user_id, payment_intent_id, amount_in_pence, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, insertTxn,
		txn.ID, txn.UserID, txn.PaymentIntentID, txn.AmountInPence, txn.Status, txn.Description, txn.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// TransitionIfPending performs the conditional status advance. The UPDATE is
// guarded by status = 'pending', so two concurrent deliveries for the same
// remote id produce exactly one effective transition; the loser sees no row
// updated and returns (false, nil).
func (r *PostgresRepository) TransitionIfPending(ctx context.Context, remoteID string, to domain.IntentStatus, at time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const updateIntent = `
		UPDATE payment_intents
		SET status = $2, updated_at = $3
		WHERE remote_id = $1 AND status = 'pending'
		RETURNING id
	`
	var intentID string
	err = tx.QueryRowContext(ctx, updateIntent, remoteID, to, at).Scan(&intentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("update payment intent: %w", err)
	}

	const updateTxn = `
		UPDATE transactions
		SET status = $2
		WHERE payment_intent_id = $1
	`
	if _, err := tx.ExecContext(ctx, updateTxn, intentID, to); err != nil {
		return false, fmt.Errorf("update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}
