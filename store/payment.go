package store

import (
	"context"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertPayment appends a payment record.
func (db *DB) InsertPayment(ctx context.Context, p *models.Payment) (primitive.ObjectID, error) {
	res, err := db.Payments().InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) PaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cur, err := db.Payments().Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	payments := []models.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// RevenuePipeline sums the price of every recorded payment.
func RevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

func (db *DB) Revenue(ctx context.Context) (float64, error) {
	cur, err := db.Payments().Aggregate(ctx, RevenuePipeline())
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
