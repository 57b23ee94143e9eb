package model

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrUsersNotArray = errors.New("users must be an array")

// IDList decodes only from a JSON array of strings.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrUsersNotArray
	}
	if raw == nil {
		raw = []string{}
	}
	*l = raw
	return nil
}

type AccessChatRequest struct {
	UserID string `json:"userId" validate:"required,objectid"`
}

type CreateGroupRequest struct {
	Name        string                `json:"name" validate:"required,max=100"`
	Users       IDList                `json:"users" validate:"dive,objectid"`
	GroupAvatar string                `json:"groupAvatar" validate:"omitempty,url"`
	AvatarFile  *multipart.FileHeader `json:"-"`
}

type RenameGroupRequest struct {
	ChatID      string                `json:"chatId" validate:"required,objectid"`
	Name        string                `json:"name" validate:"omitempty,max=100"`
	GroupAvatar string                `json:"groupAvatar" validate:"omitempty,url"`
	AvatarFile  *multipart.FileHeader `json:"-"`
}

type GroupMemberRequest struct {
	ChatID string `json:"chatId" validate:"required,objectid"`
	UserID string `json:"userId" validate:"required,objectid"`
}

type ListChatsRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ChatResponse struct {
	ID          primitive.ObjectID `json:"_id"`
	IsGroup     bool               `json:"isGroup"`
	AllUsers    []*UserDTO         `json:"allUsers"`
	Admins      []*UserDTO         `json:"admins"`
	GroupName   string             `json:"groupName,omitempty"`
	GroupAvatar string             `json:"groupAvatar,omitempty"`

	// Newest message still present in the chat, null when there is none.
	LatestMessage *MessageResponse `json:"latestMessage"`

	// Aliases kept for older clients.
	IsGroupChat bool       `json:"isGroupChat"`
	Users       []*UserDTO `json:"users"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatRefResponse is a chat with member references left as ids.
type ChatRefResponse struct {
	ID            primitive.ObjectID   `json:"_id"`
	IsGroup       bool                 `json:"isGroup"`
	AllUsers      []primitive.ObjectID `json:"allUsers"`
	Admins        []primitive.ObjectID `json:"admins"`
	GroupName     string               `json:"groupName,omitempty"`
	GroupAvatar   string               `json:"groupAvatar,omitempty"`
	LatestMessage *primitive.ObjectID  `json:"latestMessage,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type ChatDeletedResponse struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId,omitempty"`
}

type ChatDeletedEvent struct {
	ChatID string `json:"chatId"`
}

type RemovedFromGroupEvent struct {
	ChatID        string `json:"chatId"`
	RemovedUserID string `json:"removedUserId"`
}
