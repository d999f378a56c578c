package auth

import (
	"context"
	"errors"

	"heartrisk/internal/domain"
)

// Resolver maps a validated claim's subject to a live Principal. Resolution
// happens fresh on every request; credentials are not proactively invalidated
// when an account is deleted, so the lookup is the authoritative check.
type Resolver struct {
	users domain.UserRepository
}

// NewResolver creates a Resolver backed by the given user store.
func NewResolver(users domain.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// Resolve looks up the identity for subjectID. A missing account yields an
// UnauthorizedError with reason "principal_not_found"; store failures pass
// through untouched so the caller can distinguish an outage from a deleted
// account.
func (r *Resolver) Resolve(ctx context.Context, subjectID string) (domain.Principal, error) {
	u, err := r.users.GetByID(ctx, subjectID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Principal{}, domain.ErrUnauthorized(domain.ReasonPrincipalNotFound,
				"user associated with token not found")
		}
		return domain.Principal{}, err
	}
	return domain.PrincipalFromUser(u), nil
}
