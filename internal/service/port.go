package service

import (
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/model"
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Chat, error)
	FindDirect(ctx context.Context, a, b primitive.ObjectID) (*entity.Chat, error)
	ListForUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]*entity.Chat, error)
	UpdateGroupInfo(ctx context.Context, id primitive.ObjectID, name, avatar string) (*entity.Chat, error)
	AddMember(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error)
	AddAdmin(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error)
	RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error)
	SetLatestMessage(ctx context.Context, id, messageID primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Message, error)
	ListByChat(ctx context.Context, chatID primitive.ObjectID, skip, limit int64, ascending bool) ([]*entity.Message, error)
	Latest(ctx context.Context, chatID primitive.ObjectID) (*entity.Message, error)
	MarkRead(ctx context.Context, messageID, userID primitive.ObjectID) error
	MarkChatRead(ctx context.Context, chatID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByChat(ctx context.Context, chatID primitive.ObjectID) (int64, error)
	DeleteByChats(ctx context.Context, chatIDs []primitive.ObjectID) (int64, error)
	ChatIDs(ctx context.Context) ([]primitive.ObjectID, error)
	MediaKeysByChats(ctx context.Context, chatIDs []primitive.ObjectID) ([]string, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.User, error)
}

// MediaStorage keeps uploaded files; a nil MediaStorage disables uploads.
type MediaStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*model.StoredMedia, error)
	Delete(ctx context.Context, key string) error
}
