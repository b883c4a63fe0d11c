package middleware

import (
	"context"
	"net/http"

	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.uber.org/zap"
)

// UserDirectory resolves users by their identity email. The store
// implements it directly; service.UserCache wraps it with Redis.
type UserDirectory interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// IsAdmin reports whether email belongs to an admin. Unknown users are not.
func IsAdmin(ctx context.Context, dir UserDirectory, email string) (bool, error) {
	u, err := dir.UserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

// IsPremium reports whether email holds a premium subscription.
func IsPremium(ctx context.Context, dir UserDirectory, email string) (bool, error) {
	u, err := dir.UserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u.IsPremium(), nil
}

// RequireAdmin must run after Auth.
func RequireAdmin(dir UserDirectory, log *zap.Logger) func(next http.Handler) http.Handler {
	return guard(dir, log, "admin", IsAdmin)
}

// RequirePremium must run after Auth.
func RequirePremium(dir UserDirectory, log *zap.Logger) func(next http.Handler) http.Handler {
	return guard(dir, log, "premium", IsPremium)
}

func guard(dir UserDirectory, log *zap.Logger, name string, check func(context.Context, UserDirectory, string) (bool, error)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := EmailFromContext(r.Context())
			if email == "" {
				apierror.Write(w, r, apierror.ErrUnauthorized)
				return
			}
			ok, err := check(r.Context(), dir, email)
			if err != nil {
				log.Error("guard lookup failed",
					zap.String("guard", name),
					zap.String("email", email),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				apierror.Write(w, r, apierror.Internal(err))
				return
			}
			if !ok {
				apierror.Write(w, r, apierror.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
