package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserDTO is the public profile of a user; credentials are never part of it.
type UserDTO struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name,omitempty"`
	Email   string             `json:"email,omitempty"`
	Profile string             `json:"profile,omitempty"`
}
