package service

import (
	"context"

	"heartrisk/internal/domain"
)

// RecordService serves a principal's own prediction history.
type RecordService struct {
	records domain.HealthRecordRepository
}

// NewRecordService creates a RecordService.
func NewRecordService(records domain.HealthRecordRepository) *RecordService {
	return &RecordService{records: records}
}

// List returns the principal's records, newest first.
func (s *RecordService) List(ctx context.Context, principal domain.Principal) ([]domain.HealthRecord, error) {
	return s.records.ListByUser(ctx, principal.ID)
}

// Get returns one record owned by the principal. A record belonging to
// another user is reported as not found, not as forbidden, so record IDs
// cannot be probed.
func (s *RecordService) Get(ctx context.Context, principal domain.Principal, id string) (*domain.HealthRecord, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != principal.ID {
		return nil, domain.ErrNotFound("record %s not found", id)
	}
	return rec, nil
}
