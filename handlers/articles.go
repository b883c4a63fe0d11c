package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.uber.org/zap"
)

type ArticlesHandler struct {
	DB        ArticleStore
	Directory middleware.UserDirectory
	// Images is nil when no bucket is configured; uploaded images are then
	// left alone on delete.
	Images ImageStore
	Log    *zap.Logger
}

// imagePrefix is where UploadImage stores article images.
const imagePrefix = "articles/"

// dropImage removes an image this service uploaded. External links and
// other keys are never touched; failures only leave an orphan object.
func (h *ArticlesHandler) dropImage(r *http.Request, url string) {
	if h.Images == nil || url == "" {
		return
	}
	key, ok := h.Images.KeyFor(url)
	if !ok || !strings.HasPrefix(key, imagePrefix) {
		return
	}
	if err := h.Images.Delete(r.Context(), key); err != nil {
		h.Log.Warn("article image not deleted", zap.String("key", key), zap.Error(err))
	}
}

type ArticleRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Image       string                  `json:"image"`
	Publisher   models.ArticlePublisher `json:"publisher"`
	Tags        []string                `json:"tags"`
	Author      models.Author           `json:"author"`
}

type DeclineRequest struct {
	Feedback string `json:"feedback"`
}

type ViewsRequest struct {
	Views int64 `json:"views" validate:"gte=0"`
}

func (h *ArticlesHandler) list(w http.ResponseWriter, r *http.Request, articles []models.Article, err error) {
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, articles)
}

// Create handles POST /articles. New articles always start pending review,
// with no views and no premium flag, whatever the client sent.
func (h *ArticlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	caller := normalizeEmail(callerEmail(r))
	author := req.Author
	author.Email = normalizeEmail(author.Email)
	if author.Email == "" {
		author.Email = caller
	}
	if author.Email != caller {
		apierror.Write(w, r, apierror.ErrForbidden)
		return
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	article := &models.Article{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Publisher:   req.Publisher,
		Tags:        tags,
		Author:      author,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
	}
	id, err := h.DB.InsertArticle(r.Context(), article)
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	writeInserted(w, r, id)
}

// ListAll handles GET /articles (admin only).
func (h *ArticlesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	articles, err := h.DB.AllArticles(r.Context())
	h.list(w, r, articles, err)
}

// ListApproved handles GET /articles-approved.
func (h *ArticlesHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	articles, err := h.DB.ApprovedArticles(r.Context())
	h.list(w, r, articles, err)
}

// ListPremium handles GET /premium-articles (premium subscribers only).
func (h *ArticlesHandler) ListPremium(w http.ResponseWriter, r *http.Request) {
	articles, err := h.DB.PremiumArticles(r.Context())
	h.list(w, r, articles, err)
}

// ListByAuthor handles GET /articles/{email}.
func (h *ArticlesHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	articles, err := h.DB.ArticlesByAuthor(r.Context(), normalizeEmail(chi.URLParam(r, "email")))
	h.list(w, r, articles, err)
}

// ListByCategory handles GET /articles-by-category?publisher=&tags=a,b&search=.
func (h *ArticlesHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.CategoryFilter{
		Publisher: q.Get("publisher"),
		Search:    q.Get("search"),
	}
	for _, v := range q["tags"] {
		f.Tags = append(f.Tags, strings.Split(v, ",")...)
	}
	articles, err := h.DB.ArticlesByCategory(r.Context(), f)
	h.list(w, r, articles, err)
}

// Get handles GET /articles/details/{id}.
func (h *ArticlesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	article, err := h.DB.ArticleByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound("article not found"))
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	render.JSON(w, r, article)
}

// Update handles PUT /articles/{id}. Only the author or an admin may edit.
func (h *ArticlesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	var req ArticleRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	article, err := h.DB.ArticleByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		apierror.Write(w, r, apierror.NotFound("article not found"))
		return
	}
	if err != nil {
		serverError(w, r, h.Log, err)
		return
	}
	caller := normalizeEmail(callerEmail(r))
	if normalizeEmail(article.Author.Email) != caller {
		admin, err := middleware.IsAdmin(r.Context(), h.Directory, caller)
		if err != nil {
			serverError(w, r, h.Log, err)
			return
		}
		if !admin {
			apierror.Write(w, r, apierror.ErrForbidden)
			return
		}
	}
	res, err := h.DB.UpdateArticle(r.Context(), id, store.ArticleEdit{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Publisher:   req.Publisher,
		Tags:        req.Tags,
	})
	if err == nil && article.Image != req.Image {
		h.dropImage(r, article.Image)
	}
	writeUpdate(w, r, h.Log, res, err, "article")
}

// Approve handles PUT /articles/change-status-approve/{id} (admin only).
func (h *ArticlesHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	res, err := h.DB.ApproveArticle(r.Context(), id)
	writeUpdate(w, r, h.Log, res, err, "article")
}

// Decline handles PUT /articles/change-status-decline/{id} (admin only).
// Feedback is optional: without it the article is still declined.
func (h *ArticlesHandler) Decline(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	var req DeclineRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	res, err := h.DB.DeclineArticle(r.Context(), id, req.Feedback)
	writeUpdate(w, r, h.Log, res, err, "article")
}

// MakePremium handles PUT /articles/make-premium/{id} (admin only).
func (h *ArticlesHandler) MakePremium(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	res, err := h.DB.MakeArticlePremium(r.Context(), id)
	writeUpdate(w, r, h.Log, res, err, "article")
}

// UpdateViews handles PUT /articles/update-views/{id}. The client sends the
// new count; concurrent readers overwrite each other.
func (h *ArticlesHandler) UpdateViews(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	var req ViewsRequest
	if err := decode(r, &req); err != nil {
		apierror.Write(w, r, apierror.InvalidRequest(err))
		return
	}
	res, err := h.DB.SetArticleViews(r.Context(), id, req.Views)
	writeUpdate(w, r, h.Log, res, err, "article")
}

// Delete handles DELETE /articles/{id} (admin only). An image uploaded
// through this service goes with the article.
func (h *ArticlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := objectID(w, r, "article")
	if !ok {
		return
	}
	article, err := h.DB.ArticleByID(r.Context(), id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		serverError(w, r, h.Log, err)
		return
	}
	n, err := h.DB.DeleteArticle(r.Context(), id)
	if err == nil && n > 0 && article != nil {
		h.dropImage(r, article.Image)
	}
	writeDelete(w, r, h.Log, n, err)
}
