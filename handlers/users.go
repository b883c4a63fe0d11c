package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type UsersHandler struct {
	DB UserStore
	// Directory answers the admin/premium flag lookups. It is the same
	// directory the route guards use, so a cache sits in front of both.
	Directory middleware.UserDirectory
	// Cache is nil when no user cache is configured.
	Cache UserForgetter
	Log   *zap.Logger
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	PhotoURL string `json:"photoURL"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// alreadyExists is returned instead of an error when a user signs in again.
func alreadyExists() models.InsertResult {
	return models.InsertResult{Message: "user already exists", InsertedID: nil}
}

// forget drops the cached snapshot; failures only cost staleness up to the
// cache TTL.
func (h *UsersHandler) forget(r *http.Request, email string) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Forget(r.Context(), email); err != nil {
		h.Log.Warn("user cache: forget", zap.String("email", email), zap.Error(err))
	}
}

// Create handles POST /users. It is idempotent by email.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	email := normalizeEmail(req.Email)
	existing, err := h.DB.UserByEmail(r.Context(), email)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	if existing != nil {
		render.JSON(w, r, alreadyExists())
		return
	}
	user := &models.User{
		Name:      req.Name,
		Email:     email,
		PhotoURL:  req.PhotoURL,
		Role:      models.RoleReader,
		CreatedAt: time.Now(),
	}
	id, err := h.DB.CreateUser(r.Context(), user)
	if mongo.IsDuplicateKeyError(err) {
		render.JSON(w, r, alreadyExists())
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	h.forget(r, email)
	writeInserted(w, r, id)
}

// List handles GET /users (admin only).
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.ListUsers(r.Context())
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, users)
}

// Get handles GET /users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "user")
	if !ok {
		return
	}
	user, err := h.DB.UserByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound("user not found"))
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, user)
}

// UpdateProfile handles PUT /users/update/{email}. Callers may only edit
// their own profile.
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email, ok := selfEmail(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	res, err := h.DB.UpdateProfile(r.Context(), email, req.Name, req.PhotoURL)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	h.forget(r, email)
	render.JSON(w, r, res)
}

// AdminFlag handles GET /users/admin/{email}.
func (h *UsersHandler) AdminFlag(w http.ResponseWriter, r *http.Request) {
	email, ok := selfEmail(w, r)
	if !ok {
		return
	}
	admin, err := middleware.IsAdmin(r.Context(), h.Directory, email)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, map[string]bool{"admin": admin})
}

// Promote handles PATCH /users/admin/{id} (admin only).
func (h *UsersHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "user")
	if !ok {
		return
	}
	before, err := h.DB.PromoteToAdmin(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound("user not found"))
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	h.forget(r, before.Email)
	res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if !before.IsAdmin() {
		res.ModifiedCount = 1
	}
	h.Log.Info("user promoted to admin", zap.String("email", before.Email), zap.String("by", callerEmail(r)))
	render.JSON(w, r, res)
}

// PremiumFlag handles GET /users/premium/{email}.
func (h *UsersHandler) PremiumFlag(w http.ResponseWriter, r *http.Request) {
	email, ok := selfEmail(w, r)
	if !ok {
		return
	}
	premium, err := middleware.IsPremium(r.Context(), h.Directory, email)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, map[string]bool{"premium": premium})
}

// TakePremium handles PATCH /users/premium/{email}. Recording a payment does
// not call this; the client does after checkout.
func (h *UsersHandler) TakePremium(w http.ResponseWriter, r *http.Request) {
	email, ok := selfEmail(w, r)
	if !ok {
		return
	}
	res, err := h.DB.TakePremium(r.Context(), email)
	if err == nil {
		h.forget(r, email)
	}
	writeUpdate(w, r, h.Log, res, err, "user")
}
