package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"heartrisk/internal/domain"
)

// HTTPScorer calls a model-serving endpoint over HTTP. One instance serves
// one modality; the endpoint owns preprocessing and the model itself.
//
// Protocol: POST <baseURL>/score/image with raw image bytes, or
// POST <baseURL>/score/tabular with a JSON feature map. The endpoint
// responds 200 with {"score": <0..100>, "confidence": <0..100>|null},
// 400 for inputs the model rejects, anything else is treated as the model
// being unavailable.
type HTTPScorer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPScorer creates a scorer client for the given base URL. The caller
// keeps ownership of timeouts via the per-invocation context; client may be
// nil to use http.DefaultClient.
func NewHTTPScorer(baseURL string, client *http.Client) *HTTPScorer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPScorer{baseURL: baseURL, client: client}
}

type scoreResponse struct {
	Score      float64  `json:"score"`
	Confidence *float64 `json:"confidence"`
}

// ScoreImage implements domain.ImageScorer.
func (s *HTTPScorer) ScoreImage(ctx context.Context, image []byte) (domain.ModelScore, error) {
	return s.post(ctx, s.baseURL+"/score/image", "application/octet-stream", bytes.NewReader(image))
}

// ScoreTabular implements domain.TabularScorer.
func (s *HTTPScorer) ScoreTabular(ctx context.Context, features map[string]float64) (domain.ModelScore, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return domain.ModelScore{}, fmt.Errorf("%w: encode features: %v", domain.ErrBadInput, err)
	}
	return s.post(ctx, s.baseURL+"/score/tabular", "application/json", bytes.NewReader(body))
}

func (s *HTTPScorer) post(ctx context.Context, url, contentType string, body *bytes.Reader) (domain.ModelScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return domain.ModelScore{}, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.ModelScore{}, fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusOK:
		var out scoreResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return domain.ModelScore{}, fmt.Errorf("%w: decode response: %v", domain.ErrModelUnavailable, err)
		}
		if out.Score < 0 || out.Score > 100 {
			return domain.ModelScore{}, fmt.Errorf("%w: score %v out of range", domain.ErrModelUnavailable, out.Score)
		}
		return domain.ModelScore{Score: out.Score, Confidence: out.Confidence}, nil
	case resp.StatusCode == http.StatusBadRequest:
		return domain.ModelScore{}, fmt.Errorf("%w: endpoint rejected input", domain.ErrBadInput)
	default:
		return domain.ModelScore{}, fmt.Errorf("%w: endpoint returned %d", domain.ErrModelUnavailable, resp.StatusCode)
	}
}
