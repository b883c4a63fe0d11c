package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Issuer *middleware.Issuer
	Log    *zap.Logger
}

// TokenRequest is the identity the client signed in with. Only the email
// ends up in the token.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// IssueToken handles POST /jwt.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	token, err := h.Issuer.Issue(normalizeEmail(req.Email))
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, TokenResponse{Token: token})
}

// Logout handles DELETE /jwt. Tokens are stateless; this only expires the
// cookie older clients kept the token in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	render.JSON(w, r, map[string]bool{"success": true})
}

func callerEmail(r *http.Request) string {
	return middleware.EmailFromContext(r.Context())
}
