package store

import (
	"context"
	"fmt"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

// Stats collects the admin dashboard counters.
func (db *DB) Stats(ctx context.Context) (*models.Stats, error) {
	var (
		s   models.Stats
		err error
	)
	counts := []struct {
		name string
		dst  *int64
		fn   func() (int64, error)
	}{
		{"articles", &s.Articles, func() (int64, error) { return db.Articles().CountDocuments(ctx, bson.M{}) }},
		{"approved articles", &s.ApprovedArticles, func() (int64, error) {
			return db.Articles().CountDocuments(ctx, bson.M{"status": models.StatusApproved})
		}},
		{"premium articles", &s.PremiumArticles, func() (int64, error) { return db.Articles().CountDocuments(ctx, PremiumQuery()) }},
		{"users", &s.Users, func() (int64, error) { return db.UsersCount(ctx) }},
		{"premium users", &s.PremiumUsers, func() (int64, error) { return db.PremiumUsersCount(ctx) }},
		{"publishers", &s.Publishers, func() (int64, error) { return db.Publishers().CountDocuments(ctx, bson.M{}) }},
		{"payments", &s.Payments, func() (int64, error) { return db.Payments().CountDocuments(ctx, bson.M{}) }},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	if s.Revenue, err = db.Revenue(ctx); err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	return &s, nil
}
