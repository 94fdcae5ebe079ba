// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/aluyapeter/fin-doc/internal/config"
	"github.com/aluyapeter/fin-doc/internal/db"
	productdomain "github.com/aluyapeter/fin-doc/internal/product/domain"
	productrepo "github.com/aluyapeter/fin-doc/internal/product/repository"
	"github.com/aluyapeter/fin-doc/internal/security"
	userdomain "github.com/aluyapeter/fin-doc/internal/user/domain"
	userrepo "github.com/aluyapeter/fin-doc/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
	devUserID    = "dev-user-001"
)

var devProducts = []productdomain.Product{
	{ID: "dev-product-001", Name: "Starter Plan", PriceInPence: 999},
	{ID: "dev-product-002", Name: "Gold Plan", PriceInPence: 2500},
	{ID: "dev-product-003", Name: "Annual Pass", PriceInPence: 24000},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	products := productrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("seed: lookup dev user: %v", err)
	}
	if existing != nil {
		log.Println("seed: dev user already exists, nothing to do")
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}

	now := time.Now().UTC()
	if err := users.Create(ctx, &userdomain.User{
		ID:           devUserID,
		Email:        devUserEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		log.Fatalf("seed: create dev user: %v", err)
	}

	for i := range devProducts {
		p := devProducts[i]
		p.CreatedAt = now
		if err := products.Create(ctx, &p); err != nil {
			log.Fatalf("seed: create product %s: %v", p.ID, err)
		}
	}

	log.Printf("seed: created %s and %d products", devUserEmail, len(devProducts))
}
