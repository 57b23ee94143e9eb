package model

import (
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListMessagesRequest struct {
	ChatID string `json:"chatId" validate:"required,objectid"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort" validate:"omitempty,oneof=asc desc"`
}

type SendMessageRequest struct {
	ChatID      string                `json:"chatId" validate:"required,objectid"`
	Content     string                `json:"content" validate:"max=4000"`
	Receiver    string                `json:"receiver" validate:"omitempty,objectid"`
	MessageType string                `json:"messageType" validate:"omitempty,message_type"`
	Media       *multipart.FileHeader `json:"-"`
}

type MarkReadRequest struct {
	ChatID    string `json:"chatId" validate:"omitempty,objectid"`
	MessageID string `json:"messageId" validate:"omitempty,objectid"`
}

type MessageResponse struct {
	ID            primitive.ObjectID   `json:"_id"`
	Chat          *ChatRefResponse     `json:"chat"`
	Sender        *UserDTO             `json:"sender"`
	Receiver      primitive.ObjectID   `json:"receiver"`
	Content       string               `json:"content,omitempty"`
	MessageType   string               `json:"messageType"`
	MediaURL      string               `json:"mediaUrl,omitempty"`
	MediaPublicID string               `json:"mediaPublicId,omitempty"`
	MediaFormat   string               `json:"mediaFormat,omitempty"`
	MediaSize     int64                `json:"mediaSize,omitempty"`
	ReadBy        []primitive.ObjectID `json:"readBy"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
