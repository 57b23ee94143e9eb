package repository

import (
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var publicUserProjection = bson.M{"password": 0}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: db.Collection(constant.CollectionUsers),
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	opts := options.FindOne().SetProjection(publicUserProjection)

	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user); err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// GetByIDs returns the users found for ids keyed by id; unknown ids are absent from the map.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.User, error) {
	out := make(map[primitive.ObjectID]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(publicUserProjection)
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var user entity.User
		if err := cur.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out[user.ID] = &user
	}
	return out, cur.Err()
}
