package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publisher is a publishing outlet articles can be attributed to.
type Publisher struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Logo      string             `bson:"logo,omitempty" json:"logo,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
