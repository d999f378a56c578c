package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"heartrisk/internal/domain"
)

type recordResponse struct {
	ID            string             `json:"id"`
	CombinedScore float64            `json:"combined_risk_score"`
	RiskLevel     string             `json:"risk_level"`
	ImageScore    *float64           `json:"image_score,omitempty"`
	TabularScore  *float64           `json:"tabular_score,omitempty"`
	Features      map[string]float64 `json:"features,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type recordListResponse struct {
	Records []recordResponse `json:"records"`
}

func recordToAPI(rec domain.HealthRecord) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		CombinedScore: rec.CombinedScore,
		RiskLevel:     string(rec.RiskLevel),
		ImageScore:    rec.ImageScore,
		TabularScore:  rec.TabularScore,
		Features:      rec.Features,
		CreatedAt:     rec.CreatedAt,
	}
}

// ListRecords returns the authenticated principal's prediction history.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized(domain.ReasonMissingCredential, "no principal"))
		return
	}

	records, err := h.records.List(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, recordToAPI(rec))
	}
	respondJSON(w, http.StatusOK, recordListResponse{Records: out})
}

// GetRecord returns one of the principal's records by ID.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	principal, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized(domain.ReasonMissingCredential, "no principal"))
		return
	}

	rec, err := h.records.Get(r.Context(), principal, chi.URLParam(r, "recordID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recordToAPI(*rec))
}
