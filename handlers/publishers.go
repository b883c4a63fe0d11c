package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.uber.org/zap"
)

type PublishersHandler struct {
	DB  PublisherStore
	Log *zap.Logger
}

type PublisherRequest struct {
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

func (h *PublishersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PublisherRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	id, err := h.DB.InsertPublisher(r.Context(), &models.Publisher{
		Name:      req.Name,
		Logo:      req.Logo,
		CreatedAt: time.Now(),
	})
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	writeInserted(w, r, id)
}

func (h *PublishersHandler) List(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.DB.AllPublishers(r.Context())
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, publishers)
}

func (h *PublishersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "publisher")
	if !ok {
		return
	}
	p, err := h.DB.PublisherByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound("publisher not found"))
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, p)
}

func (h *PublishersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "publisher")
	if !ok {
		return
	}
	n, err := h.DB.DeletePublisher(r.Context(), id)
	writeDelete(w, r, h.Log, n, err)
}
