// Package gateway defines the payment processor port and its Stripe implementation.
package gateway

import (
	"context"
	"errors"

	"github.com/aluyapeter/fin-doc/internal/payment/domain"
)

var (
	// ErrUnavailable is returned when the processor cannot be reached or rejects the call.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrBadSignature is returned when a webhook payload fails signature verification.
	ErrBadSignature = errors.New("webhook signature verification failed")
	// ErrBadPayload is returned when a webhook payload is missing required fields.
	ErrBadPayload = errors.New("webhook payload malformed")
)

// IntentRequest describes a remote payment intent to create.
type IntentRequest struct {
	AmountInPence int64
	Currency      string
	// Metadata is attached to the remote intent; used to link back to the local record.
	Metadata map[string]string
}

// RemoteIntent is the processor's view of a created intent. ClientSecret is
// the client-side confirmation token returned to the caller.
type RemoteIntent struct {
	ID           string
	ClientSecret string
}

// Event is a verified, normalized webhook notification. Status is empty for
// event types this service does not act on; such events are acknowledged and
// ignored.
type Event struct {
	Type     string
	RemoteID string
	Status   domain.IntentStatus
}

// Gateway creates remote payment intents.
type Gateway interface {
	// CreateIntent creates a remote intent. Returns ErrUnavailable (wrapped) when
	// the processor call fails or times out.
	CreateIntent(ctx context.Context, req IntentRequest) (*RemoteIntent, error)
}

// EventVerifier authenticates and decodes webhook payloads. Verification is
// pure computation over the shared webhook secret; no network call is made.
type EventVerifier interface {
	// VerifyEvent checks the signature header against the raw payload and decodes
	// the event. Returns ErrBadSignature or ErrBadPayload (wrapped) on failure.
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)
}
