package domain

import (
	"errors"
	"time"
)

// Product is a catalog entry. Prices are integer pence to avoid float rounding.
type Product struct {
	ID           string
	Name         string
	PriceInPence int64
	CreatedAt    time.Time
}

// Validate validates the product for persistence. Returns an error describing the first validation failure.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.PriceInPence < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}
