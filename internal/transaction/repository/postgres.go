package repository

import (
	"context"
	"database/sql"

	"github.com/aluyapeter/fin-doc/internal/transaction/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a transaction repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the transaction to the database. The transaction must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Transaction) error {
	const query = `
		INSERT INTO transactions (id, user_id, payment_intent_id, amount_in_pence, status, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	intentID := sql.NullString{String: t.PaymentIntentID, Valid: t.PaymentIntentID != ""}
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, intentID, t.AmountInPence, t.Status, t.Description, t.CreatedAt)
	return err
}

// ListByUser returns the user's transactions ordered by insertion.
// Returns (nil, error) only on database errors; an unknown user yields an empty list.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	const query = `
		SELECT id, user_id, payment_intent_id, amount_in_pence, status, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		t := &domain.Transaction{}
		var intentID sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &intentID, &t.AmountInPence, &t.Status, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		if intentID.Valid {
			t.PaymentIntentID = intentID.String
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
