package service

import (
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// chatAssembler expands stored chats and messages into API responses,
// resolving member profiles and the newest message of each chat.
type chatAssembler struct {
	messages MessageRepository
	users    UserRepository
}

func (a *chatAssembler) latest(ctx context.Context, chatID primitive.ObjectID) (*entity.Message, error) {
	msg, err := a.messages.Latest(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest message: %w", err)
	}
	return msg, nil
}

func (a *chatAssembler) lookup(ctx context.Context, ids []primitive.ObjectID) (model.UserLookup, error) {
	users, err := a.users.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return users, nil
}

// chat builds the response for one chat; withLatest=false skips the latest message lookup.
func (a *chatAssembler) chat(ctx context.Context, chat *entity.Chat, withLatest bool) (*model.ChatResponse, error) {
	if !withLatest {
		users, err := a.lookup(ctx, memberIDs(chat))
		if err != nil {
			return nil, err
		}
		return model.ToChatResponse(chat, users, nil), nil
	}

	out, err := a.chats(ctx, []*entity.Chat{chat})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (a *chatAssembler) chats(ctx context.Context, chats []*entity.Chat) ([]*model.ChatResponse, error) {
	latest := make([]*entity.Message, len(chats))
	ids := make([]primitive.ObjectID, 0)

	for i, c := range chats {
		msg, err := a.latest(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		latest[i] = msg

		ids = append(ids, memberIDs(c)...)
		if msg != nil {
			ids = append(ids, msg.Sender)
		}
	}

	users, err := a.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*model.ChatResponse, 0, len(chats))
	for i, c := range chats {
		var latestResp *model.MessageResponse
		if latest[i] != nil {
			latestResp = model.ToMessageResponse(latest[i], c, users)
		}
		out = append(out, model.ToChatResponse(c, users, latestResp))
	}
	return out, nil
}

func (a *chatAssembler) messageList(ctx context.Context, msgs []*entity.Message, chat *entity.Chat) ([]*model.MessageResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.Sender)
	}

	users, err := a.lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]*model.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, model.ToMessageResponse(m, chat, users))
	}
	return out, nil
}

func memberIDs(chat *entity.Chat) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(chat.AllUsers)+len(chat.Admins))
	ids = append(ids, chat.AllUsers...)
	return append(ids, chat.Admins...)
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
