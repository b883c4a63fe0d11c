package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a confirmed subscription payment. Payments are append-only.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Date          time.Time          `bson:"date" json:"date"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Articles         int64   `json:"articles"`
	ApprovedArticles int64   `json:"approvedArticles"`
	PremiumArticles  int64   `json:"premiumArticles"`
	Users            int64   `json:"users"`
	PremiumUsers     int64   `json:"premiumUsers"`
	Publishers       int64   `json:"publishers"`
	Payments         int64   `json:"payments"`
	Revenue          float64 `json:"revenue"`
}
