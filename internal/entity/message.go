package entity

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Chat          primitive.ObjectID   `bson:"chat"`
	Sender        primitive.ObjectID   `bson:"sender"`
	Receiver      primitive.ObjectID   `bson:"receiver"`
	Content       string               `bson:"content,omitempty"`
	MessageType   string               `bson:"messageType"`
	MediaURL      string               `bson:"mediaUrl,omitempty"`
	MediaPublicID string               `bson:"mediaPublicId,omitempty"`
	MediaFormat   string               `bson:"mediaFormat,omitempty"`
	MediaSize     int64                `bson:"mediaSize,omitempty"`
	ReadBy        []primitive.ObjectID `bson:"readBy"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

func (m *Message) IsReadBy(userID primitive.ObjectID) bool {
	return slices.Contains(m.ReadBy, userID)
}
