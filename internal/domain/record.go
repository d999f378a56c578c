package domain

import "time"

// HealthRecord is one persisted prediction outcome, owned by a user.
// Modality scores and features are nil when that modality was not supplied.
type HealthRecord struct {
	ID            string
	UserID        string
	CombinedScore float64
	RiskLevel     RiskLevel
	ImageScore    *float64
	TabularScore  *float64
	Features      map[string]float64 // nil for image-only predictions
	CreatedAt     time.Time
}
