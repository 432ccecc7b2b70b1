package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	FullName     string        `bson:"fullName" json:"full_name"`
	PasswordHash string        `bson:"passwordHash" json:"-"` // never expose
	IsActive     bool          `bson:"isActive" json:"is_active"`
	IsSuperuser  bool          `bson:"isSuperuser" json:"is_superuser"`

	// Denormalized convenience index; Product.userId stays authoritative.
	ProductIDs []bson.ObjectID `bson:"products" json:"products"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
