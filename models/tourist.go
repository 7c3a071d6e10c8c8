package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tourist is a customer account able to book experiences
type Tourist struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName  string             `json:"fullName" bson:"fullName"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Country   string             `json:"country" bson:"country"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// TouristSignupRequest is the body of the tourist signup and admin create endpoints
type TouristSignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// TouristUpdateRequest carries a partial tourist update; nil fields are left untouched
type TouristUpdateRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Country  *string `json:"country"`
}
