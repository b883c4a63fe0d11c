package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kevinaaaquil/dailypulse/backend/apierror"
)

type contextKey string

const EmailKey contextKey = "email"

// Auth requires a valid "Authorization: Bearer <token>" header and stores
// the token's email on the request context.
func Auth(issuer *Issuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				apierror.Write(w, r, apierror.ErrUnauthorized)
				return
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				apierror.Write(w, r, apierror.ErrUnauthorized)
				return
			}
			claims, err := issuer.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				apierror.Write(w, r, apierror.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), claims.Email)))
		})
	}
}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}
