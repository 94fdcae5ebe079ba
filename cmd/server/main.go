package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	authservice "github.com/aluyapeter/fin-doc/internal/auth/service"
	"github.com/aluyapeter/fin-doc/internal/config"
	"github.com/aluyapeter/fin-doc/internal/db"
	"github.com/aluyapeter/fin-doc/internal/db/migrate"
	"github.com/aluyapeter/fin-doc/internal/events"
	"github.com/aluyapeter/fin-doc/internal/gateway"
	paymentrepo "github.com/aluyapeter/fin-doc/internal/payment/repository"
	paymentservice "github.com/aluyapeter/fin-doc/internal/payment/service"
	productrepo "github.com/aluyapeter/fin-doc/internal/product/repository"
	productservice "github.com/aluyapeter/fin-doc/internal/product/service"
	"github.com/aluyapeter/fin-doc/internal/security"
	"github.com/aluyapeter/fin-doc/internal/server"
	"github.com/aluyapeter/fin-doc/internal/telemetry/otel"
	txnrepo "github.com/aluyapeter/fin-doc/internal/transaction/repository"
	txnservice "github.com/aluyapeter/fin-doc/internal/transaction/service"
	userrepo "github.com/aluyapeter/fin-doc/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "config: JWT_SECRET must be set")
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"
	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("wallet API starting")

	ctx := context.Background()
	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "wallet-api", cfg.OTLPInsecure)
	if err != nil {
		logger.Fatal("telemetry setup failed", zap.Error(err))
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", zap.Error(err))
		}
	}()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close()

	if err := migrate.Run(cfg.DatabaseURL, "up"); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("database ready")

	var publisher events.Publisher
	if brokers := cfg.KafkaBrokersList(); len(brokers) > 0 {
		kp, err := events.NewKafkaPublisher(brokers, cfg.PaymentEventsTopic)
		if err != nil {
			logger.Fatal("kafka publisher setup failed", zap.Error(err))
		}
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka publisher close failed", zap.Error(err))
			}
		}()
		publisher = kp
		logger.Info("payment events enabled", zap.String("topic", cfg.PaymentEventsTopic))
	}

	users := userrepo.NewPostgresRepository(database)
	products := productrepo.NewPostgresRepository(database)
	intents := paymentrepo.NewPostgresRepository(database)
	transactions := txnrepo.NewPostgresRepository(database)

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.AccessTTL())
	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.GatewayTimeout())

	router := server.NewRouter(server.Dependencies{
		Auth:         authservice.NewAuthService(users, hasher, tokens, logger),
		Users:        users,
		Products:     productservice.NewProductService(products, logger),
		Intents:      paymentservice.NewIntentService(users, products, intents, stripeGateway, cfg.PaymentsCurrency, cfg.PaymentsAllowAmountOverride, logger),
		Reconciler:   paymentservice.NewReconciler(stripeGateway, intents, publisher, logger),
		Transactions: txnservice.NewTransactionService(transactions, logger),
		Tokens:       tokens,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	logger.Info("wallet API listening", zap.String("address", cfg.HTTPAddr))

	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}
