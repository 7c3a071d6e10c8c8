package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider is a local experience operator. Providers stay hidden and cannot
// log in until an admin approves them.
type Provider struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ServiceName    string             `json:"serviceName" bson:"serviceName"`
	FullName       string             `json:"fullName" bson:"fullName"`
	Email          string             `json:"email" bson:"email"`
	Contact        string             `json:"contact" bson:"contact"`
	Category       string             `json:"category" bson:"category"`
	Location       string             `json:"location" bson:"location"`
	Price          float64            `json:"price" bson:"price"` // per person
	Description    string             `json:"description" bson:"description"`
	Password       string             `json:"password,omitempty" bson:"password"`
	Approved       bool               `json:"approved" bson:"approved"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Photos         []string           `json:"photos,omitempty" bson:"photos,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProviderForm holds the text fields of a provider multipart form.
// Price is kept as the raw form value and parsed by the service.
type ProviderForm struct {
	ServiceName string
	FullName    string
	Email       string
	Contact     string
	Category    string
	Location    string
	Price       string
	Description string
	Password    string
	Approved    string
}

// ProviderUpdate is a partial provider update taken from a multipart form.
// Nil fields were absent from the request and are left untouched.
type ProviderUpdate struct {
	ServiceName *string
	FullName    *string
	Email       *string
	Contact     *string
	Category    *string
	Location    *string
	Price       *string
	Description *string
	Password    *string
	Approved    *string
}
