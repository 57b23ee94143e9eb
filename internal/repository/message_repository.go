package repository

import (
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{
		coll: db.Collection(constant.CollectionMessages),
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	now := time.Now().UTC()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Message, error) {
	var msg entity.Message
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, mapNotFound(err)
	}
	return &msg, nil
}

func (r *MessageRepository) ListByChat(ctx context.Context, chatID primitive.ObjectID, skip, limit int64, ascending bool) ([]*entity.Message, error) {
	order := -1
	if ascending {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: order}, {Key: "_id", Value: order}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"chat": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cur.Close(ctx)

	out := []*entity.Message{}
	for cur.Next(ctx) {
		var msg entity.Message
		if err := cur.Decode(&msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		out = append(out, &msg)
	}
	return out, cur.Err()
}

// Latest returns the newest message of a chat, or ErrNotFound when it has none.
func (r *MessageRepository) Latest(ctx context.Context, chatID primitive.ObjectID) (*entity.Message, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	var msg entity.Message
	if err := r.coll.FindOne(ctx, bson.M{"chat": chatID}, opts).Decode(&msg); err != nil {
		return nil, mapNotFound(err)
	}
	return &msg, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, messageID primitive.ObjectID, userID primitive.ObjectID) error {
	return r.addReader(ctx, bson.M{"_id": messageID}, userID)
}

func (r *MessageRepository) MarkChatRead(ctx context.Context, chatID primitive.ObjectID, userID primitive.ObjectID) error {
	return r.addReader(ctx, bson.M{"chat": chatID}, userID)
}

func (r *MessageRepository) addReader(ctx context.Context, filter bson.M, userID primitive.ObjectID) error {
	if _, err := r.coll.UpdateMany(ctx, filter, bson.M{"$addToSet": bson.M{"readBy": userID}}); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (r *MessageRepository) DeleteByChat(ctx context.Context, chatID primitive.ObjectID) (int64, error) {
	return r.DeleteByChats(ctx, []primitive.ObjectID{chatID})
}

func (r *MessageRepository) DeleteByChats(ctx context.Context, chatIDs []primitive.ObjectID) (int64, error) {
	if len(chatIDs) == 0 {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.M{"chat": bson.M{"$in": chatIDs}})
	if err != nil {
		return 0, fmt.Errorf("delete chat messages: %w", err)
	}
	return res.DeletedCount, nil
}

// MediaKeysByChats returns the storage keys of media messages in the given chats.
func (r *MessageRepository) MediaKeysByChats(ctx context.Context, chatIDs []primitive.ObjectID) ([]string, error) {
	if len(chatIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"chat":          bson.M{"$in": chatIDs},
		"mediaPublicId": bson.M{"$exists": true, "$ne": ""},
	}
	values, err := r.coll.Distinct(ctx, "mediaPublicId", filter)
	if err != nil {
		return nil, fmt.Errorf("distinct media keys: %w", err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if key, ok := v.(string); ok && key != "" {
			out = append(out, key)
		}
	}
	return out, nil
}

// ChatIDs returns every distinct chat id referenced by a message.
func (r *MessageRepository) ChatIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	values, err := r.coll.Distinct(ctx, "chat", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct chat ids: %w", err)
	}

	out := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			out = append(out, id)
		}
	}
	return out, nil
}
