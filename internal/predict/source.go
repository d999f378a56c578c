// Package predict implements the prediction sources and the orchestrator
// that combines them into a single risk verdict.
package predict

import (
	"context"
	"errors"
	"time"

	"heartrisk/internal/domain"
)

// Source is one independent scoring modality.
type Source interface {
	Kind() domain.SourceKind
	// Score produces a SourceResult for its modality of the input. A failure
	// of the underlying model surfaces as *domain.UnavailableError.
	Score(ctx context.Context, in domain.PredictionInput) (domain.SourceResult, error)
}

// imageSource scores the image modality via an opaque image scorer.
type imageSource struct {
	scorer  domain.ImageScorer
	timeout time.Duration
}

// tabularSource scores the nine-feature modality via an opaque tabular scorer.
type tabularSource struct {
	scorer  domain.TabularScorer
	timeout time.Duration
}

func (s *imageSource) Kind() domain.SourceKind   { return domain.SourceImage }
func (s *tabularSource) Kind() domain.SourceKind { return domain.SourceTabular }

func (s *imageSource) Score(ctx context.Context, in domain.PredictionInput) (domain.SourceResult, error) {
	if s.scorer == nil {
		return domain.SourceResult{}, domain.ErrSourceUnavailable(domain.SourceImage, "image model not loaded")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ms, err := s.scorer.ScoreImage(ctx, in.Image)
	if err != nil {
		return domain.SourceResult{}, mapScorerError(domain.SourceImage, err)
	}
	return resultFromModelScore(ms), nil
}

func (s *tabularSource) Score(ctx context.Context, in domain.PredictionInput) (domain.SourceResult, error) {
	if s.scorer == nil {
		return domain.SourceResult{}, domain.ErrSourceUnavailable(domain.SourceTabular, "tabular model not loaded")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ms, err := s.scorer.ScoreTabular(ctx, in.Tabular)
	if err != nil {
		return domain.SourceResult{}, mapScorerError(domain.SourceTabular, err)
	}
	return resultFromModelScore(ms), nil
}

func resultFromModelScore(ms domain.ModelScore) domain.SourceResult {
	score := domain.Round2(ms.Score)
	return domain.SourceResult{
		Score:      score,
		Level:      domain.LevelForScore(score),
		Confidence: ms.Confidence,
	}
}

func mapScorerError(kind domain.SourceKind, err error) error {
	if errors.Is(err, domain.ErrBadInput) {
		return domain.ErrValidation("%s input rejected by model: %v", kind, err)
	}
	return domain.ErrSourceUnavailable(kind, "%s prediction failed: %v", kind, err)
}
