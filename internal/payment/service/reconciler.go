package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/events"
	"github.com/aluyapeter/fin-doc/internal/gateway"
	"github.com/aluyapeter/fin-doc/internal/payment/domain"
)

// Sentinel errors for the reconciler; handlers map them to HTTP status codes.
// ErrUnknownIntent is retryable by the sender, the other two are terminal.
var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedPayload = errors.New("malformed webhook payload")
	ErrUnknownIntent    = errors.New("unknown payment intent")
)

// ReconcilerIntentRepo is the minimal payment intent repository needed by the
// reconciler.
type ReconcilerIntentRepo interface {
	GetByRemoteID(ctx context.Context, remoteID string) (*domain.PaymentIntent, error)
	TransitionIfPending(ctx context.Context, remoteID string, to domain.IntentStatus, at time.Time) (bool, error)
}

// Reconciler verifies processor webhook deliveries and applies the resulting
// status transitions. It is safe to call concurrently and idempotent across
// redeliveries of the same event.
type Reconciler struct {
	verifier  gateway.EventVerifier
	intents   ReconcilerIntentRepo
	publisher events.Publisher
	logger    *zap.Logger
}

// NewReconciler returns a Reconciler. publisher may be nil, in which case
// applied transitions are not announced downstream.
func NewReconciler(verifier gateway.EventVerifier, intents ReconcilerIntentRepo, publisher events.Publisher, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		verifier:  verifier,
		intents:   intents,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle processes one raw webhook delivery.
//
// The signature is checked before the payload is trusted. Event types that do
// not map to a status are acknowledged without effect, as are redeliveries for
// intents already in a terminal status. An event for a remote id we have no
// record of returns ErrUnknownIntent so the sender retries later.
func (r *Reconciler) Handle(ctx context.Context, payload []byte, signatureHeader string) error {
	ev, err := r.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		if errors.Is(err, gateway.ErrBadSignature) {
			r.logger.Warn("webhook rejected", zap.Error(err))
			return ErrInvalidSignature
		}
		r.logger.Warn("webhook payload rejected", zap.Error(err))
		return ErrMalformedPayload
	}

	if ev.Status == "" {
		r.logger.Debug("ignoring webhook event type", zap.String("type", ev.Type))
		return nil
	}

	intent, err := r.intents.GetByRemoteID(ctx, ev.RemoteID)
	if err != nil {
		return fmt.Errorf("lookup intent by remote id: %w", err)
	}
	if intent == nil {
		return fmt.Errorf("%w: %s", ErrUnknownIntent, ev.RemoteID)
	}

	applied, err := r.intents.TransitionIfPending(ctx, ev.RemoteID, ev.Status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("transition intent: %w", err)
	}
	if !applied {
		r.logger.Info("duplicate webhook delivery ignored",
			zap.String("remote_id", ev.RemoteID),
			zap.String("current_status", string(intent.Status)))
		return nil
	}

	r.logger.Info("payment intent reconciled",
		zap.String("intent_id", intent.ID),
		zap.String("remote_id", ev.RemoteID),
		zap.String("status", string(ev.Status)))

	if r.publisher != nil {
		pe := &events.PaymentEvent{
			IntentID:      intent.ID,
			RemoteID:      ev.RemoteID,
			UserID:        intent.UserID,
			Status:        string(ev.Status),
			AmountInPence: intent.AmountInPence,
			Currency:      intent.Currency,
			OccurredAt:    time.Now().UTC(),
		}
		if err := r.publisher.Publish(ctx, pe); err != nil {
			r.logger.Warn("payment event publish failed",
				zap.String("remote_id", ev.RemoteID),
				zap.Error(err))
		}
	}
	return nil
}
