package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"heartrisk/internal/domain"
)

// HealthRecordRepo implements domain.HealthRecordRepository over SQLite.
type HealthRecordRepo struct {
	db *sql.DB
}

// NewHealthRecordRepo creates a HealthRecordRepo.
func NewHealthRecordRepo(db *sql.DB) *HealthRecordRepo {
	return &HealthRecordRepo{db: db}
}

func (r *HealthRecordRepo) Save(ctx context.Context, rec *domain.HealthRecord) (*domain.HealthRecord, error) {
	saved := *rec
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.CreatedAt = time.Now().UTC()

	f := func(name string) *float64 {
		if saved.Features == nil {
			return nil
		}
		v, ok := saved.Features[name]
		if !ok {
			return nil
		}
		return &v
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (
			id, user_id, combined_score, risk_level, image_score, tabular_score,
			age, sex, cp, trestbps, chol, fbs, thalach, exang, oldpeak, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.CombinedScore, string(saved.RiskLevel),
		saved.ImageScore, saved.TabularScore,
		f("age"), f("sex"), f("cp"), f("trestbps"), f("chol"),
		f("fbs"), f("thalach"), f("exang"), f("oldpeak"), saved.CreatedAt)
	if err != nil {
		return nil, mapDBError(err)
	}
	return &saved, nil
}

func (r *HealthRecordRepo) GetByID(ctx context.Context, id string) (*domain.HealthRecord, error) {
	row := r.db.QueryRowContext(ctx, selectRecordSQL+` WHERE id = ?`, id)
	rec, err := scanRecord(row.Scan)
	if err != nil {
		return nil, mapDBError(err)
	}
	return rec, nil
}

func (r *HealthRecordRepo) ListByUser(ctx context.Context, userID string) ([]domain.HealthRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		selectRecordSQL+` WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, mapDBError(err)
	}
	defer rows.Close() //nolint:errcheck

	var records []domain.HealthRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

const selectRecordSQL = `
	SELECT id, user_id, combined_score, risk_level, image_score, tabular_score,
	       age, sex, cp, trestbps, chol, fbs, thalach, exang, oldpeak, created_at
	FROM health_records`

func scanRecord(scan func(dest ...any) error) (*domain.HealthRecord, error) {
	var rec domain.HealthRecord
	var level string
	featureCols := make([]*float64, len(domain.TabularFeatureNames))
	dest := []any{
		&rec.ID, &rec.UserID, &rec.CombinedScore, &level,
		&rec.ImageScore, &rec.TabularScore,
	}
	for i := range featureCols {
		dest = append(dest, &featureCols[i])
	}
	dest = append(dest, &rec.CreatedAt)

	if err := scan(dest...); err != nil {
		return nil, err
	}

	rec.RiskLevel = domain.RiskLevel(level)
	for i, name := range domain.TabularFeatureNames {
		if featureCols[i] != nil {
			if rec.Features == nil {
				rec.Features = make(map[string]float64, len(domain.TabularFeatureNames))
			}
			rec.Features[name] = *featureCols[i]
		}
	}
	return &rec, nil
}
