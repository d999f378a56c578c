// Package service provides the application services over the prediction
// orchestrator and the record store.
package service

import (
	"context"
	"log/slog"

	"heartrisk/internal/domain"
	"heartrisk/internal/predict"
)

// PredictionService evaluates inputs for a principal and persists the
// resulting verdict as a health record.
type PredictionService struct {
	orchestrator *predict.Orchestrator
	records      domain.HealthRecordRepository
	logger       *slog.Logger
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(orchestrator *predict.Orchestrator, records domain.HealthRecordRepository, logger *slog.Logger) *PredictionService {
	return &PredictionService{orchestrator: orchestrator, records: records, logger: logger}
}

// Predict evaluates the input and saves the verdict under the principal.
// The verdict is returned alongside the stored record.
func (s *PredictionService) Predict(ctx context.Context, principal domain.Principal, in domain.PredictionInput) (*domain.Verdict, *domain.HealthRecord, error) {
	verdict, err := s.orchestrator.Evaluate(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	rec := &domain.HealthRecord{
		UserID:        principal.ID,
		CombinedScore: verdict.CombinedScore,
		RiskLevel:     verdict.Level,
	}
	if result, ok := verdict.Components[domain.SourceImage]; ok {
		score := result.Score
		rec.ImageScore = &score
	}
	if result, ok := verdict.Components[domain.SourceTabular]; ok {
		score := result.Score
		rec.TabularScore = &score
		rec.Features = in.Tabular
	}

	saved, err := s.records.Save(ctx, rec)
	if err != nil {
		// The verdict was computed; losing the record is a server fault,
		// not a prediction fault.
		return nil, nil, err
	}

	s.logger.Info("prediction stored",
		"record_id", saved.ID,
		"user_id", principal.ID,
		"level", string(verdict.Level))
	return verdict, saved, nil
}
