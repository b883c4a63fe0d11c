package handlers

import (
	"context"
	"io"

	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"github.com/kevinaaaquil/dailypulse/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The interfaces below are the slices of *store.DB and the integration
// services each handler needs.

type ArticleStore interface {
	InsertArticle(ctx context.Context, article *models.Article) (primitive.ObjectID, error)
	AllArticles(ctx context.Context) ([]models.Article, error)
	ApprovedArticles(ctx context.Context) ([]models.Article, error)
	PremiumArticles(ctx context.Context) ([]models.Article, error)
	ArticlesByAuthor(ctx context.Context, email string) ([]models.Article, error)
	ArticlesByCategory(ctx context.Context, f store.CategoryFilter) ([]models.Article, error)
	ArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error)
	UpdateArticle(ctx context.Context, id primitive.ObjectID, edit store.ArticleEdit) (*models.UpdateResult, error)
	ApproveArticle(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error)
	DeclineArticle(ctx context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error)
	MakeArticlePremium(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error)
	SetArticleViews(ctx context.Context, id primitive.ObjectID, views int64) (*models.UpdateResult, error)
	DeleteArticle(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type UserStore interface {
	middleware.UserDirectory
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, email, name, photoURL string) (*models.UpdateResult, error)
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	TakePremium(ctx context.Context, email string) (*models.UpdateResult, error)
}

type PublisherStore interface {
	InsertPublisher(ctx context.Context, p *models.Publisher) (primitive.ObjectID, error)
	AllPublishers(ctx context.Context) ([]models.Publisher, error)
	PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error)
	DeletePublisher(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type PaymentStore interface {
	InsertPayment(ctx context.Context, p *models.Payment) (primitive.ObjectID, error)
	PaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type StatsStore interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// ImageStore is implemented by service.S3Service.
type ImageStore interface {
	Upload(ctx context.Context, prefix, originalFilename string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	KeyFor(url string) (string, bool)
}

// PaymentProcessor is implemented by service.StripePayments.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// ReceiptSender is implemented by service.Mailer.
type ReceiptSender interface {
	SendReceipt(p *models.Payment) error
}

// UserForgetter drops cached user snapshots; implemented by service.UserCache.
type UserForgetter interface {
	Forget(ctx context.Context, email string) error
}
