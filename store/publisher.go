package store

import (
	"context"
	"errors"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *DB) InsertPublisher(ctx context.Context, p *models.Publisher) (primitive.ObjectID, error) {
	res, err := db.Publishers().InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) AllPublishers(ctx context.Context) ([]models.Publisher, error) {
	cur, err := db.Publishers().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	publishers := []models.Publisher{}
	if err := cur.All(ctx, &publishers); err != nil {
		return nil, err
	}
	return publishers, nil
}

func (db *DB) PublisherByID(ctx context.Context, id primitive.ObjectID) (*models.Publisher, error) {
	var p models.Publisher
	err := db.Publishers().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *DB) DeletePublisher(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := db.Publishers().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
