package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/kevinaaaquil/dailypulse/backend/apierror"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"go.uber.org/zap"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires the handlers into one chi router.
type Server struct {
	Auth       *AuthHandler
	Users      *UsersHandler
	Articles   *ArticlesHandler
	Uploads    *UploadHandler
	Publishers *PublishersHandler
	Payments   *PaymentsHandler
	Stats      *StatsHandler

	Issuer *middleware.Issuer
	// Directory backs the admin and premium guards.
	Directory middleware.UserDirectory
	Origins   []string
	DB        Pinger
	Log       *zap.Logger
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.CORS(s.Origins))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(s.Log))
	r.Use(chimw.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	authed := middleware.Auth(s.Issuer)
	admin := middleware.RequireAdmin(s.Directory, s.Log)
	premium := middleware.RequirePremium(s.Directory, s.Log)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"message": "The Daily Pulse server is running"})
	})
	r.Get("/health", s.health)

	r.Post("/jwt", s.Auth.IssueToken)
	r.Delete("/jwt", s.Auth.Logout)

	// articles
	r.Get("/articles-approved", s.Articles.ListApproved)
	r.Get("/articles-by-category", s.Articles.ListByCategory)
	r.Get("/articles/details/{id}", s.Articles.Get)
	r.With(authed, premium).Get("/premium-articles", s.Articles.ListPremium)
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Post("/articles", s.Articles.Create)
		r.Post("/articles/image", s.Uploads.UploadImage)
		r.Get("/articles/{email}", s.Articles.ListByAuthor)
		r.Put("/articles/{id}", s.Articles.Update)
		r.Put("/articles/update-views/{id}", s.Articles.UpdateViews)
	})
	r.Group(func(r chi.Router) {
		r.Use(authed, admin)
		r.Get("/articles", s.Articles.ListAll)
		r.Put("/articles/change-status-approve/{id}", s.Articles.Approve)
		r.Put("/articles/change-status-decline/{id}", s.Articles.Decline)
		r.Put("/articles/make-premium/{id}", s.Articles.MakePremium)
		r.Delete("/articles/{id}", s.Articles.Delete)
	})

	// users
	r.Post("/users", s.Users.Create)
	r.Group(func(r chi.Router) {
		r.Use(authed)
		r.Get("/users/{id}", s.Users.Get)
		r.Put("/users/update/{email}", s.Users.UpdateProfile)
		r.Get("/users/admin/{email}", s.Users.AdminFlag)
		r.Get("/users/premium/{email}", s.Users.PremiumFlag)
		r.Patch("/users/premium/{email}", s.Users.TakePremium)
	})
	r.Group(func(r chi.Router) {
		r.Use(authed, admin)
		r.Get("/users", s.Users.List)
		r.Patch("/users/admin/{id}", s.Users.Promote)
	})

	// publishers
	r.Get("/publishers", s.Publishers.List)
	r.Get("/publishers/{id}", s.Publishers.Get)
	r.With(authed, admin).Post("/publishers", s.Publishers.Create)
	r.With(authed, admin).Delete("/publishers/{id}", s.Publishers.Delete)

	// payments
	r.Post("/create-payment-intent", s.Payments.CreateIntent)
	r.Post("/payments", s.Payments.Record)
	r.With(authed).Get("/payments/{email}", s.Payments.History)

	r.With(authed, admin).Get("/admin-stats", s.Stats.Get)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierror.Write(w, r, apierror.NotFound("route not found"))
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			s.Log.Warn("health check failed", zap.Error(err))
			apierror.Write(w, r, apierror.ServiceUnavailable("database unreachable"))
			return
		}
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}
