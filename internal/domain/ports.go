package domain

import (
	"context"
	"errors"
)

// Failure modes reported by model-invocation collaborators. Sources map
// these to UnavailableError or ValidationError before they leave the
// prediction layer.
var (
	ErrModelUnavailable = errors.New("model unavailable")
	ErrBadInput         = errors.New("bad model input")
)

// UserRepository is the port for the external user store.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// HealthRecordRepository is the port for prediction-outcome persistence.
type HealthRecordRepository interface {
	Save(ctx context.Context, rec *HealthRecord) (*HealthRecord, error)
	GetByID(ctx context.Context, id string) (*HealthRecord, error)
	ListByUser(ctx context.Context, userID string) ([]HealthRecord, error)
}

// ImageScorer scores raw image bytes. Implementations are opaque; failures
// are ErrModelUnavailable or ErrBadInput (possibly wrapped).
type ImageScorer interface {
	ScoreImage(ctx context.Context, image []byte) (ModelScore, error)
}

// TabularScorer scores a complete nine-feature map.
type TabularScorer interface {
	ScoreTabular(ctx context.Context, features map[string]float64) (ModelScore, error)
}
