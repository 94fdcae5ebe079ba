// Package handler exposes payment initiation and the processor webhook over
// HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/payment/service"
	"github.com/aluyapeter/fin-doc/internal/server/middleware"
)

// maxWebhookBody caps how much of a webhook delivery is read before
// verification.
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	intents    *service.IntentService
	reconciler *service.Reconciler
	logger     *zap.Logger
}

func NewPaymentHandler(intents *service.IntentService, reconciler *service.Reconciler, l *zap.Logger) *PaymentHandler {
	return &PaymentHandler{intents: intents, reconciler: reconciler, logger: l}
}

// RegisterRoutes mounts the authenticated initiation endpoint on r.
func RegisterRoutes(r chi.Router, intents *service.IntentService, reconciler *service.Reconciler, l *zap.Logger) {
	handler := NewPaymentHandler(intents, reconciler, l.With(zap.String("component", "PaymentHTTPHandler")))

	r.Post("/payments/initiate", handler.InitiatePayment)
}

// RegisterWebhookRoutes mounts the processor callback on r. The webhook is
// authenticated by its signature, not by a bearer token, so it must be mounted
// outside the auth middleware.
func RegisterWebhookRoutes(r chi.Router, intents *service.IntentService, reconciler *service.Reconciler, l *zap.Logger) {
	handler := NewPaymentHandler(intents, reconciler, l.With(zap.String("component", "PaymentWebhookHandler")))

	r.Post("/webhooks/stripe", handler.StripeWebhook)
}

type initiateRequest struct {
	ProductID     string `json:"product_id"`
	AmountInPence int64  `json:"amount_in_pence"`
}

type initiateResponse struct {
	IntentID      string `json:"intent_id"`
	TransactionID string `json:"transaction_id"`
	ClientSecret  string `json:"client_secret"`
}

func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for InitiatePayment", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "Product ID is required", http.StatusBadRequest)
		return
	}

	res, err := h.intents.Initiate(r.Context(), userID, req.ProductID, req.AmountInPence)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, service.ErrAmountMismatch):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrUpstreamUnavailable):
			h.logger.Warn("payment processor unavailable", zap.Error(err))
			http.Error(w, "Payment processor unavailable", http.StatusBadGateway)
		default:
			h.logger.Error("error initiating payment", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(initiateResponse{
		IntentID:      res.IntentID,
		TransactionID: res.TransactionID,
		ClientSecret:  res.ClientSecret,
	})
}

// StripeWebhook ingests processor event deliveries. A 2xx acknowledges the
// event; 409 asks the processor to redeliver later; 400 marks the delivery
// unprocessable.
func (h *PaymentHandler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("error reading webhook body", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err = h.reconciler.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSignature), errors.Is(err, service.ErrMalformedPayload):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrUnknownIntent):
			// The intent row may not be committed yet; the processor
			// retries on non-2xx.
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.Error("error processing webhook", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
