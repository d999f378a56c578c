// Package auth implements credential issuance and verification plus
// account registration and login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"heartrisk/internal/domain"
)

// Codec encodes and decodes signed, expiring identity claims as HS256 JWTs.
// The signing secret is process-wide; rotating it invalidates every
// outstanding credential.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec for the given shared secret.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Issue produces a signed credential for subjectID valid from now until
// now+ttl.
func (c *Codec) Issue(subjectID string, now time.Time, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", fmt.Errorf("subject ID is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode parses and verifies a credential against now. It fails with reason
// "malformed" when the token cannot be parsed or signature-verified, and
// "expired" when now >= the expiry claim. Signature validity does not rescue
// an expired claim.
func (c *Codec) Decode(credential string, now time.Time) (domain.Claim, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claim{}, domain.ErrUnauthorized(domain.ReasonExpired, "token has expired")
		}
		return domain.Claim{}, domain.ErrUnauthorized(domain.ReasonMalformed, "token is invalid or corrupted")
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return domain.Claim{}, domain.ErrUnauthorized(domain.ReasonMalformed, "token is missing required claims")
	}
	// jwt treats exp as valid until strictly after expiry; the contract here
	// is that a claim is invalid from the expiry instant onward.
	if !now.Before(claims.ExpiresAt.Time) {
		return domain.Claim{}, domain.ErrUnauthorized(domain.ReasonExpired, "token has expired")
	}

	claim := domain.Claim{
		SubjectID: claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	return claim, nil
}
