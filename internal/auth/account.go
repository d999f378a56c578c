package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"heartrisk/internal/domain"
)

const minPasswordLength = 8

// AccountService handles registration and login against the user store.
type AccountService struct {
	users domain.UserRepository
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

// NewAccountService creates an AccountService. Issued credentials are valid
// for ttl.
func NewAccountService(users domain.UserRepository, codec *Codec, ttl time.Duration) *AccountService {
	return &AccountService{users: users, codec: codec, ttl: ttl, now: time.Now}
}

// Register validates and creates a new account. The password is stored only
// as a bcrypt hash. A duplicate email surfaces as a ConflictError from the
// store.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.Principal, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return domain.Principal{}, domain.ErrValidation("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.Principal{}, domain.ErrValidation("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return domain.Principal{}, domain.ErrValidation("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Principal{}, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.PrincipalFromUser(created), nil
}

// Login verifies the email/password pair and issues a credential. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return "", domain.Principal{}, domain.ErrUnauthorized(domain.ReasonInvalidCredentials,
				"invalid email or password")
		}
		return "", domain.Principal{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.Principal{}, domain.ErrUnauthorized(domain.ReasonInvalidCredentials,
			"invalid email or password")
	}

	credential, err := s.codec.Issue(u.ID, s.now(), s.ttl)
	if err != nil {
		return "", domain.Principal{}, err
	}
	return credential, domain.PrincipalFromUser(u), nil
}
