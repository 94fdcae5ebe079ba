// Package handler exposes the transaction ledger over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/server/middleware"
	"github.com/aluyapeter/fin-doc/internal/transaction/service"
)

type TransactionHandler struct {
	service *service.TransactionService
	logger  *zap.Logger
}

func NewTransactionHandler(s *service.TransactionService, l *zap.Logger) *TransactionHandler {
	return &TransactionHandler{service: s, logger: l}
}

// RegisterRoutes mounts the ledger endpoints on r. The router must already
// enforce authentication for these routes.
func RegisterRoutes(r chi.Router, s *service.TransactionService, l *zap.Logger) {
	handler := NewTransactionHandler(s, l.With(zap.String("component", "TransactionHTTPHandler")))

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", handler.RecordTransaction)
		r.Get("/{userID}", handler.ListTransactions)
	})
}

type recordRequest struct {
	AmountInPence int64  `json:"amount_in_pence"`
	Description   string `json:"description"`
}

type transactionResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	AmountInPence   int64     `json:"amount_in_pence"`
	Status          string    `json:"status"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *TransactionHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for RecordTransaction", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	txn, err := h.service.Record(r.Context(), userID, req.AmountInPence, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransaction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("error recording transaction", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transactionResponse{
		ID:              txn.ID,
		UserID:          txn.UserID,
		PaymentIntentID: txn.PaymentIntentID,
		AmountInPence:   txn.AmountInPence,
		Status:          txn.Status,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt,
	})
}

// ListTransactions returns the ledger for the user in the path. Callers can
// only read their own ledger.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}
	if userID != callerID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	txns, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("error listing transactions", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		res = append(res, transactionResponse{
			ID:              txn.ID,
			UserID:          txn.UserID,
			PaymentIntentID: txn.PaymentIntentID,
			AmountInPence:   txn.AmountInPence,
			Status:          txn.Status,
			Description:     txn.Description,
			CreatedAt:       txn.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
