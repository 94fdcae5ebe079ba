package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "wallet-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "wallet-auth")
	}
	if cfg.JWTAccessTTL != "30m" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "30m")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.PaymentsCurrency != "gbp" {
		t.Errorf("PaymentsCurrency = %q, want %q", cfg.PaymentsCurrency, "gbp")
	}
	if cfg.PaymentsAllowAmountOverride {
		t.Error("PaymentsAllowAmountOverride should default to false")
	}
	if cfg.PaymentEventsTopic != "wallet-payment-events" {
		t.Errorf("PaymentEventsTopic = %q, want default", cfg.PaymentEventsTopic)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("PAYMENTS_CURRENCY", "usd")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	if cfg.PaymentsCurrency != "usd" {
		t.Errorf("PaymentsCurrency = %q, want %q", cfg.PaymentsCurrency, "usd")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	testCases := []struct {
		name string
		cost string
	}{
		{"too low", "3"},
		{"too high", "32"},
		{"negative", "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("HTTP_ADDR", ":8080")
			os.Setenv("BCRYPT_COST", tc.cost)

			if _, err := Load(); err == nil {
				t.Errorf("Load with BCRYPT_COST=%s should return error", tc.cost)
			}
		})
	}
}

func TestAccessTTL(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "45m"}
	if got := cfg.AccessTTL(); got != 45*time.Minute {
		t.Errorf("AccessTTL = %v, want 45m", got)
	}

	cfg = &Config{JWTAccessTTL: "not-a-duration"}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL with invalid value = %v, want 30m fallback", got)
	}

	cfg = &Config{JWTAccessTTL: "-5m"}
	if got := cfg.AccessTTL(); got != 30*time.Minute {
		t.Errorf("AccessTTL with negative value = %v, want 30m fallback", got)
	}
}

func TestGatewayTimeout(t *testing.T) {
	cfg := &Config{StripeTimeout: "3s"}
	if got := cfg.GatewayTimeout(); got != 3*time.Second {
		t.Errorf("GatewayTimeout = %v, want 3s", got)
	}

	cfg = &Config{}
	if got := cfg.GatewayTimeout(); got != 10*time.Second {
		t.Errorf("GatewayTimeout unset = %v, want 10s fallback", got)
	}
}

func TestKafkaBrokersList(t *testing.T) {
	cfg := &Config{KafkaBrokers: "localhost:9092, broker2:9092 ,"}
	got := cfg.KafkaBrokersList()
	if len(got) != 2 {
		t.Fatalf("KafkaBrokersList len = %d, want 2", len(got))
	}
	if got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("KafkaBrokersList = %v", got)
	}

	cfg = &Config{}
	if got := cfg.KafkaBrokersList(); got != nil {
		t.Errorf("KafkaBrokersList empty = %v, want nil", got)
	}
}
