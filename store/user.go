package store

import (
	"context"
	"errors"
	"time"

	"github.com/kevinaaaquil/dailypulse/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCount returns the number of documents in the users collection.
func (db *DB) UsersCount(ctx context.Context) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{})
}

// PremiumUsersCount returns the number of users holding a premium subscription.
func (db *DB) PremiumUsersCount(ctx context.Context) (int64, error) {
	return db.Users().CountDocuments(ctx, bson.M{"premiumTaken": models.FlagYes})
}

// UserByEmail returns nil, nil when no user has the email.
func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user. A duplicate email surfaces as a driver
// duplicate key error; see mongo.IsDuplicateKeyError.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := db.Users().InsertOne(ctx, user, options.InsertOne())
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	cur, err := db.Users().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// profileUpdate sets the editable profile fields; a user created by the
// upsert also gets the reader role and its creation time.
func profileUpdate(name, photoURL string, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{"name": name, "photoURL": photoURL},
		"$setOnInsert": bson.M{
			"role":      models.RoleReader,
			"createdAt": now,
		},
	}
}

// UpdateProfile sets name and photoURL for the user with the email. The
// email is the identity key, so an unknown email creates the user.
func (db *DB) UpdateProfile(ctx context.Context, email, name, photoURL string) (*models.UpdateResult, error) {
	update := profileUpdate(name, photoURL, time.Now())
	res, err := db.Users().UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return outcome(res), nil
}

// PromoteToAdmin sets role=admin on the user with the id and returns the
// user as it was before the update.
func (db *DB) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var before models.User
	err := db.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &before, nil
}

// TakePremium flags the user with the email as a premium subscriber.
func (db *DB) TakePremium(ctx context.Context, email string) (*models.UpdateResult, error) {
	res, err := db.Users().UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"premiumTaken": models.FlagYes}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return outcome(res), nil
}
