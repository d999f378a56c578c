// Package middleware provides HTTP middleware: the bearer-token auth gate,
// request IDs, and per-client rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"heartrisk/internal/auth"
	"heartrisk/internal/domain"
)

// Authenticator is the request authentication gate. It decodes the bearer
// credential, resolves the principal fresh from the user store, and attaches
// it to the request context. It performs no business logic of its own; the
// first failed step short-circuits and nothing downstream runs.
type Authenticator struct {
	codec    *auth.Codec
	resolver *auth.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(codec *auth.Codec, resolver *auth.Resolver, logger *slog.Logger) *Authenticator {
	return &Authenticator{codec: codec, resolver: resolver, logger: logger, now: time.Now}
}

// Authenticate runs the gate sequence for one Authorization header value:
// missing/empty credential, then decode (malformed/expired), then principal
// resolution. On failure the returned error is an *domain.UnauthorizedError
// carrying the specific reason, or the raw store error on an outage.
func (a *Authenticator) Authenticate(ctx context.Context, authorization string) (domain.Principal, error) {
	credential := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	if credential == "" {
		return domain.Principal{}, domain.ErrUnauthorized(domain.ReasonMissingCredential,
			"authorization token is missing or improperly formatted")
	}

	claim, err := a.codec.Decode(credential, a.now())
	if err != nil {
		return domain.Principal{}, err
	}

	return a.resolver.Resolve(ctx, claim.SubjectID)
}

// Middleware wraps protected handlers. Every failure is reported outward as
// a generic 401; the distinguishing reason is only logged.
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				reason := domain.AuthReason("store_error")
				var unauthorized *domain.UnauthorizedError
				if errors.As(err, &unauthorized) {
					reason = unauthorized.Reason
				}
				a.logger.Info("request rejected",
					"reason", string(reason),
					"path", r.URL.Path,
					"request_id", RequestIDFromContext(r.Context()))
				writeUnauthorized(w)
				return
			}

			ctx := domain.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": "unauthorized",
	})
}
