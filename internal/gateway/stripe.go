package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/aluyapeter/fin-doc/internal/payment/domain"
)

// eventStatus maps the processor event types this service acts on to the
// terminal status they carry. Other event types are acknowledged and ignored.
var eventStatus = map[string]domain.IntentStatus{
	"payment_intent.succeeded":      domain.IntentStatusSucceeded,
	"payment_intent.payment_failed": domain.IntentStatusFailed,
	"payment_intent.canceled":       domain.IntentStatusCanceled,
}

// StripeGateway implements Gateway and EventVerifier against the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway returns a gateway using the given API key and webhook secret.
// timeout bounds each API call; webhook verification never touches the network.
func NewStripeGateway(secretKey, webhookSecret string, timeout time.Duration) *StripeGateway {
	backendConfig := &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	}
	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	})
	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

// CreateIntent creates a Stripe PaymentIntent. Any API failure, including a
// timeout, is reported as ErrUnavailable; the caller decides whether to retry.
func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (*RemoteIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountInPence),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &RemoteIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// VerifyEvent verifies the Stripe-Signature header against the raw payload and
// decodes the event. Signature comparison inside ConstructEvent is constant-time.
func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		if isSignatureError(err) {
			return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	eventType := string(event.Type)
	status, handled := eventStatus[eventType]
	if !handled {
		return &Event{Type: eventType}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("%w: event %s carries no payment intent id", ErrBadPayload, eventType)
	}
	return &Event{Type: eventType, RemoteID: pi.ID, Status: status}, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrTooOld)
}
