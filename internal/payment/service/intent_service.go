// Package service implements payment intent creation and webhook reconciliation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/gateway"
	"github.com/aluyapeter/fin-doc/internal/payment/domain"
	productdomain "github.com/aluyapeter/fin-doc/internal/product/domain"
	txndomain "github.com/aluyapeter/fin-doc/internal/transaction/domain"
	userdomain "github.com/aluyapeter/fin-doc/internal/user/domain"
)

// Sentinel errors for the intent service; handlers map them to HTTP status codes.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrAmountMismatch      = errors.New("amount does not match product price")
	ErrUpstreamUnavailable = errors.New("payment processor unavailable")
)

// UserRepo is the minimal user repository needed by the intent service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
}

// ProductRepo is the minimal product repository needed by the intent service.
type ProductRepo interface {
	GetByID(ctx context.Context, id string) (*productdomain.Product, error)
}

// IntentRepo is the minimal payment intent repository needed by the intent service.
type IntentRepo interface {
	CreateWithTransaction(ctx context.Context, intent *domain.PaymentIntent, txn *txndomain.Transaction) error
}

// InitiateResult holds the outcome of a successful Initiate call.
type InitiateResult struct {
	// ClientSecret is the client-side confirmation token from the processor.
	ClientSecret  string
	IntentID      string
	RemoteID      string
	TransactionID string
}

// IntentService creates payment intents: it validates the purchase, creates the
// remote intent, and records the local pending intent + transaction pair.
type IntentService struct {
	users               UserRepo
	products            ProductRepo
	intents             IntentRepo
	gw                  gateway.Gateway
	currency            string
	allowAmountOverride bool
	logger              *zap.Logger
}

// NewIntentService returns an IntentService with the given dependencies.
// currency is charged for every intent. When allowAmountOverride is false, a
// non-zero request amount must equal the product price.
func NewIntentService(
	users UserRepo,
	products ProductRepo,
	intents IntentRepo,
	gw gateway.Gateway,
	currency string,
	allowAmountOverride bool,
	logger *zap.Logger,
) *IntentService {
	return &IntentService{
		users:               users,
		products:            products,
		intents:             intents,
		gw:                  gw,
		currency:            currency,
		allowAmountOverride: allowAmountOverride,
		logger:              logger,
	}
}

// Initiate validates the purchase, creates the remote intent, and persists a
// pending PaymentIntent with a linked ledger Transaction.
//
// The remote call happens before the local insert, and the insert is atomic
// over both rows: on any failure the caller observes either a complete pending
// pair or nothing. amountInPence zero means "charge the product price".
func (s *IntentService) Initiate(ctx context.Context, userID, productID string, amountInPence int64) (*InitiateResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	amount := product.PriceInPence
	if amountInPence != 0 && amountInPence != product.PriceInPence {
		if !s.allowAmountOverride {
			return nil, fmt.Errorf("%w: got %d, product priced %d", ErrAmountMismatch, amountInPence, product.PriceInPence)
		}
		amount = amountInPence
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrAmountMismatch)
	}

	intentID := uuid.New().String()
	remote, err := s.gw.CreateIntent(ctx, gateway.IntentRequest{
		AmountInPence: amount,
		Currency:      s.currency,
		Metadata: map[string]string{
			"user_id":         user.ID,
			"product_id":      product.ID,
			"local_intent_id": intentID,
		},
	})
	if err != nil {
		s.logger.Warn("remote intent creation failed",
			zap.String("user_id", user.ID),
			zap.String("product_id", product.ID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	now := time.Now().UTC()
	intent := &domain.PaymentIntent{
		ID:            intentID,
		RemoteID:      remote.ID,
		UserID:        user.ID,
		ProductID:     product.ID,
		AmountInPence: amount,
		Currency:      s.currency,
		Status:        domain.IntentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	txn := &txndomain.Transaction{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		PaymentIntentID: intentID,
		AmountInPence:   amount,
		Status:          string(domain.IntentStatusPending),
		Description:     "purchase: " + product.Name,
		CreatedAt:       now,
	}
	if err := s.intents.CreateWithTransaction(ctx, intent, txn); err != nil {
		return nil, fmt.Errorf("persist payment intent: %w", err)
	}

	s.logger.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("remote_id", intent.RemoteID),
		zap.String("user_id", user.ID),
		zap.Int64("amount_in_pence", amount))

	return &InitiateResult{
		ClientSecret:  remote.ClientSecret,
		IntentID:      intent.ID,
		RemoteID:      remote.ID,
		TransactionID: txn.ID,
	}, nil
}
