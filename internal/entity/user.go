package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is owned by the identity service; this module only reads it and never loads the password.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Profile   string             `bson:"profile,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}
