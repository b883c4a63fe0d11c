package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article review states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// FlagYes is the stored value of a set boolean-like string field
// (isPremium, premiumTaken). Anything else means unset.
const FlagYes = "yes"

type ArticlePublisher struct {
	Name string `bson:"name" json:"name"`
	Logo string `bson:"logo,omitempty" json:"logo,omitempty"`
}

type Author struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email" json:"email"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
}

type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Publisher   ArticlePublisher   `bson:"publisher" json:"publisher"`
	Tags        []string           `bson:"tags" json:"tags"`
	Author      Author             `bson:"author" json:"author"`
	Status      string             `bson:"status" json:"status"`
	Feedback    string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	IsPremium   string             `bson:"isPremium,omitempty" json:"isPremium,omitempty"`
	Views       int64              `bson:"views" json:"views"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Premium reports whether the article carries the premium flag.
func (a *Article) Premium() bool {
	return a.IsPremium == FlagYes
}
