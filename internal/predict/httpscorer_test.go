package predict

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heartrisk/internal/domain"
)

func TestHTTPScorer_ScoreImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/score/image", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte{0xde, 0xad}, body)
		_ = json.NewEncoder(w).Encode(map[string]any{"score": 83.2, "confidence": 91.5})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, srv.Client())
	ms, err := scorer.ScoreImage(context.Background(), []byte{0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, 83.2, ms.Score)
	require.NotNil(t, ms.Confidence)
	assert.Equal(t, 91.5, *ms.Confidence)
}

func TestHTTPScorer_ScoreTabular(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/score/tabular", r.URL.Path)
		var features map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&features))
		assert.Equal(t, 54.0, features["age"])
		_ = json.NewEncoder(w).Encode(map[string]any{"score": 42.0, "confidence": nil})
	}))
	defer srv.Close()

	scorer := NewHTTPScorer(srv.URL, srv.Client())
	ms, err := scorer.ScoreTabular(context.Background(), map[string]float64{"age": 54})
	require.NoError(t, err)
	assert.Equal(t, 42.0, ms.Score)
	assert.Nil(t, ms.Confidence)
}

func TestHTTPScorer_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantErr  error
	}{
		{
			"400 maps to bad input",
			func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadRequest) },
			domain.ErrBadInput,
		},
		{
			"500 maps to unavailable",
			func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			domain.ErrModelUnavailable,
		},
		{
			"out-of-range score maps to unavailable",
			func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"score": 250.0})
			},
			domain.ErrModelUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			scorer := NewHTTPScorer(srv.URL, srv.Client())
			_, err := scorer.ScoreImage(context.Background(), []byte{1})
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestHTTPScorer_ConnectionRefused(t *testing.T) {
	t.Parallel()

	scorer := NewHTTPScorer("http://127.0.0.1:1", nil)
	_, err := scorer.ScoreImage(context.Background(), []byte{1})
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
}
