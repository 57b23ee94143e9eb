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

type ChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{
		coll: db.Collection(constant.CollectionChats),
	}
}

func (r *ChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	now := time.Now().UTC()
	if chat.ID.IsZero() {
		chat.ID = primitive.NewObjectID()
	}
	chat.CreatedAt = now
	chat.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, chat); err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

func (r *ChatRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Chat, error) {
	var chat entity.Chat
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&chat); err != nil {
		return nil, mapNotFound(err)
	}
	return &chat, nil
}

// FindDirect returns the non-group chat whose members are exactly a and b.
func (r *ChatRepository) FindDirect(ctx context.Context, a, b primitive.ObjectID) (*entity.Chat, error) {
	filter := bson.M{
		"isGroup":  false,
		"allUsers": bson.M{"$all": bson.A{a, b}, "$size": 2},
	}

	var chat entity.Chat
	if err := r.coll.FindOne(ctx, filter).Decode(&chat); err != nil {
		return nil, mapNotFound(err)
	}
	return &chat, nil
}

func (r *ChatRepository) ListForUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]*entity.Chat, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{"allUsers": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find chats: %w", err)
	}
	defer cur.Close(ctx)

	out := []*entity.Chat{}
	for cur.Next(ctx) {
		var chat entity.Chat
		if err := cur.Decode(&chat); err != nil {
			return nil, fmt.Errorf("decode chat: %w", err)
		}
		out = append(out, &chat)
	}
	return out, cur.Err()
}

// UpdateGroupInfo sets the non-empty fields and returns the updated chat.
func (r *ChatRepository) UpdateGroupInfo(ctx context.Context, id primitive.ObjectID, name, avatar string) (*entity.Chat, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if name != "" {
		set["groupName"] = name
	}
	if avatar != "" {
		set["groupAvatar"] = avatar
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *ChatRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	update := bson.M{
		"$addToSet": bson.M{"allUsers": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *ChatRepository) AddAdmin(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	update := bson.M{
		"$addToSet": bson.M{"admins": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *ChatRepository) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	update := bson.M{
		"$pull": bson.M{"allUsers": userID, "admins": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *ChatRepository) SetLatestMessage(ctx context.Context, id, messageID primitive.ObjectID, at time.Time) error {
	update := bson.M{"$set": bson.M{"latestMessage": messageID, "updatedAt": at}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("set latest message: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChatRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	return nil
}

// ExistingIDs returns the subset of ids that still have a chat document.
func (r *ChatRepository) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find chat ids: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode chat id: %w", err)
		}
		out[doc.ID] = true
	}
	return out, cur.Err()
}

func (r *ChatRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*entity.Chat, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var chat entity.Chat
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&chat); err != nil {
		return nil, mapNotFound(err)
	}
	return &chat, nil
}
