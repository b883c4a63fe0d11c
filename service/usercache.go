package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kevinaaaquil/dailypulse/backend/middleware"
	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.uber.org/zap"
)

const userCachePrefix = "user:"

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0, // use default DB
	})
}

// UserCache is a UserDirectory that keeps user snapshots in Redis for ttl.
// Misses are cached too ("null"), so any write that can change what the
// guards see must call Forget. Redis failures fall through to the wrapped
// directory.
type UserCache struct {
	next middleware.UserDirectory
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewUserCache(next middleware.UserDirectory, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *UserCache {
	return &UserCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func userCacheKey(email string) string {
	return userCachePrefix + strings.ToLower(strings.TrimSpace(email))
}

func (c *UserCache) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	key := userCacheKey(email)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var u *models.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return u, nil
		}
		c.log.Warn("user cache: corrupt entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("user cache: get", zap.Error(err))
	}

	u, err := c.next.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(u)
	if err != nil {
		return u, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("user cache: set", zap.Error(err))
	}
	return u, nil
}

// Forget drops the cached snapshot for email.
func (c *UserCache) Forget(ctx context.Context, email string) error {
	return c.rdb.Del(ctx, userCacheKey(email)).Err()
}

func (c *UserCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
