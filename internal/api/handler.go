// Package api provides the HTTP handlers for the heart-risk REST API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"heartrisk/internal/auth"
	"heartrisk/internal/service"
)

// Handler holds the services behind the HTTP surface.
type Handler struct {
	accounts    *auth.AccountService
	predictions *service.PredictionService
	records     *service.RecordService
}

// NewHandler creates a Handler with its service dependencies.
func NewHandler(accounts *auth.AccountService, predictions *service.PredictionService, records *service.RecordService) *Handler {
	return &Handler{accounts: accounts, predictions: predictions, records: records}
}

// PublicRoutes mounts the unauthenticated endpoints.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/healthz", h.Healthz)
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
}

// ProtectedRoutes mounts the endpoints behind the auth gate.
func (h *Handler) ProtectedRoutes(r chi.Router) {
	r.Post("/api/predict", h.Predict)
	r.Get("/api/records", h.ListRecords)
	r.Get("/api/records/{recordID}", h.GetRecord)
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
