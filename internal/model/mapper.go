package model

import (
	"DonaTalkAPI/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserLookup map[primitive.ObjectID]*entity.User

func ToUserDTO(u *entity.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Profile: u.Profile,
	}
}

// Resolve returns the profile for id, or a bare reference when the user is unknown.
func (l UserLookup) Resolve(id primitive.ObjectID) *UserDTO {
	if u, ok := l[id]; ok {
		return ToUserDTO(u)
	}
	return &UserDTO{ID: id}
}

func (l UserLookup) ResolveAll(ids []primitive.ObjectID) []*UserDTO {
	out := make([]*UserDTO, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.Resolve(id))
	}
	return out
}

func ToChatRefResponse(c *entity.Chat) *ChatRefResponse {
	if c == nil {
		return nil
	}
	return &ChatRefResponse{
		ID:            c.ID,
		IsGroup:       c.IsGroup,
		AllUsers:      nonNilIDs(c.AllUsers),
		Admins:        nonNilIDs(c.Admins),
		GroupName:     c.GroupName,
		GroupAvatar:   c.GroupAvatar,
		LatestMessage: c.LatestMessage,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToChatResponse(c *entity.Chat, users UserLookup, latest *MessageResponse) *ChatResponse {
	members := users.ResolveAll(c.AllUsers)
	return &ChatResponse{
		ID:            c.ID,
		IsGroup:       c.IsGroup,
		AllUsers:      members,
		Admins:        users.ResolveAll(c.Admins),
		GroupName:     c.GroupName,
		GroupAvatar:   c.GroupAvatar,
		LatestMessage: latest,
		IsGroupChat:   c.IsGroup,
		Users:         members,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func ToMessageResponse(m *entity.Message, chat *entity.Chat, users UserLookup) *MessageResponse {
	return &MessageResponse{
		ID:            m.ID,
		Chat:          ToChatRefResponse(chat),
		Sender:        users.Resolve(m.Sender),
		Receiver:      m.Receiver,
		Content:       m.Content,
		MessageType:   m.MessageType,
		MediaURL:      m.MediaURL,
		MediaPublicID: m.MediaPublicID,
		MediaFormat:   m.MediaFormat,
		MediaSize:     m.MediaSize,
		ReadBy:        nonNilIDs(m.ReadBy),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func nonNilIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}
