// Package handler exposes the product catalog over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/product/service"
)

type ProductHandler struct {
	service *service.ProductService
	logger  *zap.Logger
}

func NewProductHandler(s *service.ProductService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{service: s, logger: l}
}

// RegisterRoutes mounts the catalog endpoints on r. The router must already
// enforce authentication for these routes.
func RegisterRoutes(r chi.Router, s *service.ProductService, l *zap.Logger) {
	handler := NewProductHandler(s, l.With(zap.String("component", "ProductHTTPHandler")))

	r.Route("/products", func(r chi.Router) {
		r.Post("/", handler.CreateProduct)
		r.Get("/", handler.ListProducts)
		r.Get("/{productID}", handler.GetProduct)
	})
}

type createProductRequest struct {
	Name         string `json:"name"`
	PriceInPence int64  `json:"price_in_pence"`
}

type productResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PriceInPence int64     `json:"price_in_pence"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body for CreateProduct", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.service.Create(r.Context(), req.Name, req.PriceInPence)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("error creating product", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(productResponse{
		ID:           product.ID,
		Name:         product.Name,
		PriceInPence: product.PriceInPence,
		CreatedAt:    product.CreatedAt,
	})
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("error listing products", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]productResponse, 0, len(products))
	for _, p := range products {
		res = append(res, productResponse{
			ID:           p.ID,
			Name:         p.Name,
			PriceInPence: p.PriceInPence,
			CreatedAt:    p.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		http.Error(w, "Product ID is required", http.StatusBadRequest)
		return
	}

	product, err := h.service.Get(r.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.Error("error getting product", zap.String("product_id", productID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(productResponse{
		ID:           product.ID,
		Name:         product.Name,
		PriceInPence: product.PriceInPence,
		CreatedAt:    product.CreatedAt,
	})
}
