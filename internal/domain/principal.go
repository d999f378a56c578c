package domain

import "time"

// User is a stored account: the persisted form of an identity, including
// the password hash. Only the user store and account service touch it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the resolved identity attached to an authorized request.
// It carries no secret material and lives only for the request.
type Principal struct {
	ID          string
	Email       string
	DisplayName string
}

// PrincipalFromUser strips a stored user down to its request-scoped identity.
func PrincipalFromUser(u *User) Principal {
	return Principal{ID: u.ID, Email: u.Email, DisplayName: u.Name}
}

// Claim is the decoded, time-bounded identity assertion inside a credential.
type Claim struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
