package repository

import (
	"DonaTalkAPI/internal/adapter"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	Chat      *ChatRepository
	User      *UserRepository
	Message   *MessageRepository
	RateLimit *RateLimitRepository
}

// NewRepository wires the repositories; RateLimit is nil when redisAdapter is nil.
func NewRepository(db *mongo.Database, redisAdapter *adapter.RedisAdapter) *Repository {
	repo := &Repository{
		Chat:    NewChatRepository(db),
		User:    NewUserRepository(db),
		Message: NewMessageRepository(db),
	}

	if redisAdapter != nil {
		repo.RateLimit = NewRateLimitRepository(redisAdapter)
	}

	return repo
}
