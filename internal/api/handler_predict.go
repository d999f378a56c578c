package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"heartrisk/internal/domain"
)

// maxUploadBytes bounds the request body; eye-scan uploads are small.
const maxUploadBytes = 10 << 20

type predictJSONRequest struct {
	ImageBase64 string             `json:"image_base64"`
	Features    map[string]float64 `json:"features"`
}

type componentResponse struct {
	RiskScore  float64  `json:"risk_score"`
	RiskLevel  string   `json:"risk_level"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type predictResponse struct {
	RecordID      string                       `json:"record_id"`
	CombinedScore float64                      `json:"combined_risk_score"`
	RiskLevel     string                       `json:"risk_level"`
	Components    map[string]componentResponse `json:"components"`
}

// Predict runs the prediction pipeline for the authenticated principal.
// Inputs arrive either as multipart/form-data (an "image" file part and/or
// one form field per tabular feature) or as a JSON body with an optional
// base64 image and an optional feature map. Which sources run is decided
// purely by which inputs are present.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	principal, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized(domain.ReasonMissingCredential, "no principal"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	in, err := inputFromRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	verdict, rec, err := h.predictions.Predict(r.Context(), principal, in)
	if err != nil {
		respondError(w, err)
		return
	}

	components := make(map[string]componentResponse, len(verdict.Components))
	for kind, result := range verdict.Components {
		components[string(kind)] = componentResponse{
			RiskScore:  result.Score,
			RiskLevel:  string(result.Level),
			Confidence: result.Confidence,
		}
	}
	respondJSON(w, http.StatusOK, predictResponse{
		RecordID:      rec.ID,
		CombinedScore: verdict.CombinedScore,
		RiskLevel:     string(verdict.Level),
		Components:    components,
	})
}

// inputFromRequest builds the closed prediction input variant from the raw
// request, so the orchestrator never sees a half-formed modality.
func inputFromRequest(r *http.Request) (domain.PredictionInput, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return inputFromMultipart(r)
	}
	return inputFromJSON(r)
}

func inputFromMultipart(r *http.Request) (domain.PredictionInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.PredictionInput{}, domain.ErrValidation("invalid multipart form: %v", err)
	}

	var image []byte
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close() //nolint:errcheck
		data, err := io.ReadAll(file)
		if err != nil {
			return domain.PredictionInput{}, domain.ErrValidation("could not read image upload")
		}
		image = data
	}

	var features map[string]float64
	for _, name := range domain.TabularFeatureNames {
		raw := r.FormValue(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.PredictionInput{}, domain.ErrValidation("feature %s is not numeric", name)
		}
		if features == nil {
			features = make(map[string]float64, len(domain.TabularFeatureNames))
		}
		features[name] = v
	}

	return buildInput(image, features)
}

func inputFromJSON(r *http.Request) (domain.PredictionInput, error) {
	var req predictJSONRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.PredictionInput{}, domain.ErrValidation("invalid JSON body")
	}

	var image []byte
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return domain.PredictionInput{}, domain.ErrValidation("image_base64 is not valid base64")
		}
		image = data
	}

	return buildInput(image, req.Features)
}

func buildInput(image []byte, features map[string]float64) (domain.PredictionInput, error) {
	switch {
	case len(image) > 0 && features != nil:
		return domain.NewCombinedInput(image, features)
	case len(image) > 0:
		return domain.NewImageInput(image)
	case features != nil:
		return domain.NewTabularInput(features)
	default:
		return domain.PredictionInput{}, domain.ErrValidation("no valid prediction inputs provided")
	}
}
