package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin authenticates by username rather than email
type Admin struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Password  string             `json:"password,omitempty" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
