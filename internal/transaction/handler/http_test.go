package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/server/middleware"
	"github.com/aluyapeter/fin-doc/internal/transaction/domain"
	"github.com/aluyapeter/fin-doc/internal/transaction/service"
)

type stubTxnRepo struct {
	mu   sync.Mutex
	txns []*domain.Transaction
}

func (s *stubTxnRepo) Create(_ context.Context, txn *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *txn
	s.txns = append(s.txns, &cp)
	return nil
}

func (s *stubTxnRepo) ListByUser(_ context.Context, userID string) ([]*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Transaction
	for _, txn := range s.txns {
		if txn.UserID == userID {
			cp := *txn
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newLedgerRouter(repo *stubTxnRepo) chi.Router {
	r := chi.NewRouter()
	svc := service.NewTransactionService(repo, zap.NewNop())
	RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func asUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestRecordAndListTransactions(t *testing.T) {
	repo := &stubTxnRepo{}
	router := newLedgerRouter(repo)

	req := asUser(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{"amount_in_pence":500,"description":"top up"}`)), "u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	req = asUser(httptest.NewRequest(http.MethodGet, "/transactions/u1", nil), "u1")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var res []transactionResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("expected one transaction, got %d", len(res))
	}
	if res[0].AmountInPence != 500 || res[0].Status != "succeeded" || res[0].Description != "top up" {
		t.Errorf("unexpected transaction: %+v", res[0])
	}
}

func TestRecordTransactionRejectsNonPositiveAmount(t *testing.T) {
	router := newLedgerRouter(&stubTxnRepo{})

	for _, body := range []string{`{"amount_in_pence":0}`, `{"amount_in_pence":-100}`} {
		req := asUser(httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body)), "u1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %s, got %d", body, rr.Code)
		}
	}
}

func TestListTransactionsIsOwnerScoped(t *testing.T) {
	repo := &stubTxnRepo{}
	router := newLedgerRouter(repo)

	req := asUser(httptest.NewRequest(http.MethodGet, "/transactions/u2", nil), "u1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403 reading another user's ledger, got %d", rr.Code)
	}
}

func TestLedgerRequiresAuthSubject(t *testing.T) {
	router := newLedgerRouter(&stubTxnRepo{})

	req := httptest.NewRequest(http.MethodGet, "/transactions/u1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without an auth subject, got %d", rr.Code)
	}
}
