package store

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryFilter narrows the approved article list. Empty fields are ignored.
type CategoryFilter struct {
	Publisher string
	Tags      []string
	Search    string
}

// Query builds the Mongo filter. Tags match by set membership: an article
// matches when any of its tags is in the requested set.
func (f CategoryFilter) Query() bson.M {
	q := bson.M{"status": models.StatusApproved}
	if p := strings.TrimSpace(f.Publisher); p != "" {
		q["publisher.name"] = p
	}
	var tags []string
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 0 {
		q["tags"] = bson.M{"$in": tags}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	}
	return q
}

// PremiumQuery selects approved articles carrying the premium flag.
func PremiumQuery() bson.M {
	return bson.M{"status": models.StatusApproved, "isPremium": models.FlagYes}
}

// ArticleEdit holds the author-editable fields replaced by a full update.
type ArticleEdit struct {
	Title       string
	Description string
	Image       string
	Publisher   models.ArticlePublisher
	Tags        []string
}

func (e ArticleEdit) set() bson.M {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return bson.M{
		"title":       e.Title,
		"description": e.Description,
		"image":       e.Image,
		"publisher":   e.Publisher,
		"tags":        tags,
	}
}

func (db *DB) InsertArticle(ctx context.Context, article *models.Article) (primitive.ObjectID, error) {
	res, err := db.Articles().InsertOne(ctx, article, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) findArticles(ctx context.Context, filter bson.M) ([]models.Article, error) {
	cur, err := db.Articles().Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	articles := []models.Article{}
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (db *DB) AllArticles(ctx context.Context) ([]models.Article, error) {
	return db.findArticles(ctx, bson.M{})
}

func (db *DB) ApprovedArticles(ctx context.Context) ([]models.Article, error) {
	return db.findArticles(ctx, bson.M{"status": models.StatusApproved})
}

func (db *DB) PremiumArticles(ctx context.Context) ([]models.Article, error) {
	return db.findArticles(ctx, PremiumQuery())
}

func (db *DB) ArticlesByAuthor(ctx context.Context, email string) ([]models.Article, error) {
	return db.findArticles(ctx, bson.M{"author.email": email})
}

func (db *DB) ArticlesByCategory(ctx context.Context, f CategoryFilter) ([]models.Article, error) {
	return db.findArticles(ctx, f.Query())
}

func (db *DB) ArticleByID(ctx context.Context, id primitive.ObjectID) (*models.Article, error) {
	var article models.Article
	err := db.Articles().FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle replaces the editable fields of an article.
func (db *DB) UpdateArticle(ctx context.Context, id primitive.ObjectID, edit ArticleEdit) (*models.UpdateResult, error) {
	return updateByID(ctx, db.Articles(), id, edit.set())
}

// ApproveArticle moves an article to approved.
func (db *DB) ApproveArticle(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	return updateByID(ctx, db.Articles(), id, bson.M{"status": models.StatusApproved})
}

// DeclineArticle moves an article to declined and stores the reviewer's
// feedback as given, empty included.
func (db *DB) DeclineArticle(ctx context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error) {
	return updateByID(ctx, db.Articles(), id, bson.M{
		"status":   models.StatusDeclined,
		"feedback": feedback,
	})
}

func (db *DB) MakeArticlePremium(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	return updateByID(ctx, db.Articles(), id, bson.M{"isPremium": models.FlagYes})
}

// SetArticleViews stores the client-computed view count; last write wins.
func (db *DB) SetArticleViews(ctx context.Context, id primitive.ObjectID, views int64) (*models.UpdateResult, error) {
	return updateByID(ctx, db.Articles(), id, bson.M{"views": views})
}

func (db *DB) DeleteArticle(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := db.Articles().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
