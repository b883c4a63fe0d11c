package store

import (
	"context"
	"errors"
	"time"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned when an identifier-keyed lookup or update matches
// no document.
var ErrNotFound = errors.New("not found")

// DB is the process-wide database handle. It is opened once in main and
// handed to every handler.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, dbName string, log *zap.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	log.Info("connected to mongodb", zap.String("db", dbName))
	return &DB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (db *DB) Users() *mongo.Collection {
	return db.Database.Collection("users")
}

func (db *DB) Articles() *mongo.Collection {
	return db.Database.Collection("articles")
}

func (db *DB) Publishers() *mongo.Collection {
	return db.Database.Collection("publishers")
}

func (db *DB) Payments() *mongo.Collection {
	return db.Database.Collection("payments")
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email
// index turns a concurrent duplicate first-login into a duplicate key error
// instead of a second user document.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	if _, err := db.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := db.Articles().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author.email", Value: 1}}},
	}); err != nil {
		return err
	}
	_, err := db.Payments().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	return err
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

func (db *DB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// newestFirst is the default sort for list endpoints.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// updateByID applies $set to the document with the given id. It never
// upserts: an unmatched id is reported as ErrNotFound.
func updateByID(ctx context.Context, coll *mongo.Collection, id interface{}, set bson.M) (*models.UpdateResult, error) {
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return outcome(res), nil
}
