// Package server assembles the HTTP API from the feature handlers.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authhandler "github.com/aluyapeter/fin-doc/internal/auth/handler"
	authservice "github.com/aluyapeter/fin-doc/internal/auth/service"
	paymenthandler "github.com/aluyapeter/fin-doc/internal/payment/handler"
	paymentservice "github.com/aluyapeter/fin-doc/internal/payment/service"
	producthandler "github.com/aluyapeter/fin-doc/internal/product/handler"
	productservice "github.com/aluyapeter/fin-doc/internal/product/service"
	"github.com/aluyapeter/fin-doc/internal/server/middleware"
	txnhandler "github.com/aluyapeter/fin-doc/internal/transaction/handler"
	txnservice "github.com/aluyapeter/fin-doc/internal/transaction/service"
	userhandler "github.com/aluyapeter/fin-doc/internal/user/handler"
)

// Dependencies carries everything the router needs. All fields are required
// except where a handler documents otherwise.
type Dependencies struct {
	Auth         *authservice.AuthService
	Users        userhandler.UserGetter
	Products     *productservice.ProductService
	Intents      *paymentservice.IntentService
	Reconciler   *paymentservice.Reconciler
	Transactions *txnservice.TransactionService
	Tokens       middleware.TokenValidator
	Logger       *zap.Logger
}

// NewRouter builds the API router. Registration, login, health, and the
// processor webhook are public; everything else requires a bearer token.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	authhandler.RegisterRoutes(r, deps.Auth, deps.Logger)
	paymenthandler.RegisterWebhookRoutes(r, deps.Intents, deps.Reconciler, deps.Logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))

		userhandler.RegisterRoutes(r, deps.Users, deps.Logger)
		producthandler.RegisterRoutes(r, deps.Products, deps.Logger)
		paymenthandler.RegisterRoutes(r, deps.Intents, deps.Reconciler, deps.Logger)
		txnhandler.RegisterRoutes(r, deps.Transactions, deps.Logger)
	})

	return r
}
