// Package handler exposes the authenticated user profile over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/server/middleware"
	"github.com/aluyapeter/fin-doc/internal/user/domain"
)

// UserGetter is the minimal user lookup needed by the handler.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type UserHandler struct {
	users  UserGetter
	logger *zap.Logger
}

func NewUserHandler(users UserGetter, l *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: l}
}

// RegisterRoutes mounts the profile endpoint on r. The router must already
// enforce authentication for these routes.
func RegisterRoutes(r chi.Router, users UserGetter, l *zap.Logger) {
	handler := NewUserHandler(users, l.With(zap.String("component", "UserHTTPHandler")))

	r.Get("/users/me", handler.Me)
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("error loading profile", zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Token subject no longer exists, e.g. deleted after issuance.
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}
