package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aluyapeter/fin-doc/internal/payment/domain"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header for payload using the
// t=timestamp,v1=hex(hmac-sha256(timestamp.payload)) scheme.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventJSON(eventType, intentID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_1","type":%q,"data":{"object":{"id":%q,"object":"payment_intent"}}}`,
		eventType, intentID))
}

func TestVerifyEvent_KnownTypes(t *testing.T) {
	g := NewStripeGateway("sk_test", testWebhookSecret, time.Second)

	testCases := []struct {
		eventType string
		want      domain.IntentStatus
	}{
		{"payment_intent.succeeded", domain.IntentStatusSucceeded},
		{"payment_intent.payment_failed", domain.IntentStatusFailed},
		{"payment_intent.canceled", domain.IntentStatusCanceled},
	}

	for _, tc := range testCases {
		t.Run(tc.eventType, func(t *testing.T) {
			payload := eventJSON(tc.eventType, "pi_123")
			header := signPayload(payload, testWebhookSecret, time.Now())

			ev, err := g.VerifyEvent(payload, header)
			if err != nil {
				t.Fatalf("VerifyEvent: %v", err)
			}
			if ev.RemoteID != "pi_123" {
				t.Errorf("RemoteID = %q, want %q", ev.RemoteID, "pi_123")
			}
			if ev.Status != tc.want {
				t.Errorf("Status = %q, want %q", ev.Status, tc.want)
			}
		})
	}
}

func TestVerifyEvent_UnhandledType(t *testing.T) {
	g := NewStripeGateway("sk_test", testWebhookSecret, time.Second)
	payload := eventJSON("charge.refunded", "ch_1")
	header := signPayload(payload, testWebhookSecret, time.Now())

	ev, err := g.VerifyEvent(payload, header)
	if err != nil {
		t.Fatalf("VerifyEvent: %v", err)
	}
	if ev.Status != "" {
		t.Errorf("Status = %q, want empty for unhandled type", ev.Status)
	}
	if ev.Type != "charge.refunded" {
		t.Errorf("Type = %q, want %q", ev.Type, "charge.refunded")
	}
}

func TestVerifyEvent_BadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test", testWebhookSecret, time.Second)
	payload := eventJSON("payment_intent.succeeded", "pi_123")

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage header", "not-a-signature"},
		{"wrong secret", signPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.VerifyEvent(payload, tc.header)
			if !errors.Is(err, ErrBadSignature) {
				t.Errorf("VerifyEvent: want ErrBadSignature, got %v", err)
			}
		})
	}
}

func TestVerifyEvent_MalformedPayload(t *testing.T) {
	g := NewStripeGateway("sk_test", testWebhookSecret, time.Second)

	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"object":"payment_intent"}}}`)
	header := signPayload(payload, testWebhookSecret, time.Now())
	if _, err := g.VerifyEvent(payload, header); !errors.Is(err, ErrBadPayload) {
		t.Errorf("VerifyEvent with missing intent id: want ErrBadPayload, got %v", err)
	}

	payload = []byte(`not json at all`)
	header = signPayload(payload, testWebhookSecret, time.Now())
	if _, err := g.VerifyEvent(payload, header); !errors.Is(err, ErrBadPayload) {
		t.Errorf("VerifyEvent with invalid json: want ErrBadPayload, got %v", err)
	}
}
