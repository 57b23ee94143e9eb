package entity

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Chat struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	IsGroup       bool                 `bson:"isGroup"`
	AllUsers      []primitive.ObjectID `bson:"allUsers"`
	Admins        []primitive.ObjectID `bson:"admins"`
	GroupName     string               `bson:"groupName,omitempty"`
	GroupAvatar   string               `bson:"groupAvatar,omitempty"`
	LatestMessage *primitive.ObjectID  `bson:"latestMessage,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

func (c *Chat) HasMember(userID primitive.ObjectID) bool {
	return slices.Contains(c.AllUsers, userID)
}

func (c *Chat) IsAdmin(userID primitive.ObjectID) bool {
	return slices.Contains(c.Admins, userID)
}

// OtherMember returns the first member that is not userID.
func (c *Chat) OtherMember(userID primitive.ObjectID) (primitive.ObjectID, bool) {
	for _, id := range c.AllUsers {
		if id != userID {
			return id, true
		}
	}
	return primitive.NilObjectID, false
}
