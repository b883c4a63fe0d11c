package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var validate = validator.New()

// errEmptyBody is returned by decode when the request has no body.
var errEmptyBody = errors.New("request body is empty")

// decode reads a JSON body into v and validates its struct tags.
func decode(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return errors.New("invalid json")
	}
	return validate.Struct(v)
}

// objectID parses the {id} URL parameter. A malformed id can never match a
// document, so it is reported as not found.
func objectID(w http.ResponseWriter, r *http.Request, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierror.Write(w, r, apierror.NotFound(what+" not found"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// selfEmail returns the {email} URL parameter when it names the caller and
// writes 403 otherwise.
func selfEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := normalizeEmail(chi.URLParam(r, "email"))
	if email == "" || email != normalizeEmail(callerEmail(r)) {
		apierror.Write(w, r, apierror.ErrForbidden)
		return "", false
	}
	return email, true
}

func serverError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	apierror.Write(w, r, apierror.Internal(err))
}

// writeUpdate renders an identifier-keyed update result.
func writeUpdate(w http.ResponseWriter, r *http.Request, log *zap.Logger, res *models.UpdateResult, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound(what+" not found"))
		return
	}
	if err != nil {
		serverError(w, r, log, err)
		return
	}
	render.JSON(w, r, res)
}

func writeDelete(w http.ResponseWriter, r *http.Request, log *zap.Logger, n int64, err error) {
	if err != nil {
		serverError(w, r, log, err)
		return
	}
	render.JSON(w, r, models.DeleteResult{Acknowledged: true, DeletedCount: n})
}

func writeInserted(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, models.Inserted(id.Hex()))
}
