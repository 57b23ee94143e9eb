// Package testutil provides in-memory stand-ins for the persistence, storage and
// notification ports used by the services.
package testutil

import (
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/repository"
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// clock hands out strictly increasing timestamps so ordering in tests is deterministic.
type clock struct {
	mu   sync.Mutex
	last time.Time
}

var storeClock clock

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	if !now.After(c.last) {
		now = c.last.Add(time.Microsecond)
	}
	c.last = now
	return now
}

// ChatStore keeps chats in memory with the same semantics as the MongoDB repository.
type ChatStore struct {
	mu    sync.Mutex
	chats map[primitive.ObjectID]*entity.Chat

	// SetLatestErr, when set, is returned by SetLatestMessage.
	SetLatestErr error

	getByIDErr   error
	getByIDAfter int
}

func NewChatStore() *ChatStore {
	return &ChatStore{chats: make(map[primitive.ObjectID]*entity.Chat)}
}

func cloneChat(c *entity.Chat) *entity.Chat {
	out := *c
	out.AllUsers = slices.Clone(c.AllUsers)
	out.Admins = slices.Clone(c.Admins)
	if c.LatestMessage != nil {
		id := *c.LatestMessage
		out.LatestMessage = &id
	}
	return &out
}

func (s *ChatStore) Create(_ context.Context, chat *entity.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := storeClock.now()
	if chat.ID.IsZero() {
		chat.ID = primitive.NewObjectID()
	}
	chat.CreatedAt = now
	chat.UpdatedAt = now
	s.chats[chat.ID] = cloneChat(chat)
	return nil
}

func (s *ChatStore) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getByIDErr != nil {
		if s.getByIDAfter == 0 {
			return nil, s.getByIDErr
		}
		s.getByIDAfter--
	}

	c, ok := s.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneChat(c), nil
}

// FailGetByIDAfter lets the next n GetByID calls succeed and fails every later one with err.
func (s *ChatStore) FailGetByIDAfter(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getByIDErr = err
	s.getByIDAfter = n
}

func (s *ChatStore) FindDirect(_ context.Context, a, b primitive.ObjectID) (*entity.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.chats {
		if c.IsGroup || len(c.AllUsers) != 2 {
			continue
		}
		if c.HasMember(a) && c.HasMember(b) {
			return cloneChat(c), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ChatStore) ListForUser(_ context.Context, userID primitive.ObjectID, skip, limit int64) ([]*entity.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*entity.Chat, 0)
	for _, c := range s.chats {
		if c.HasMember(userID) {
			matched = append(matched, cloneChat(c))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	return window(matched, skip, limit), nil
}

func (s *ChatStore) UpdateGroupInfo(_ context.Context, id primitive.ObjectID, name, avatar string) (*entity.Chat, error) {
	return s.update(id, func(c *entity.Chat) {
		if name != "" {
			c.GroupName = name
		}
		if avatar != "" {
			c.GroupAvatar = avatar
		}
	})
}

func (s *ChatStore) AddMember(_ context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	return s.update(id, func(c *entity.Chat) {
		if !c.HasMember(userID) {
			c.AllUsers = append(c.AllUsers, userID)
		}
	})
}

func (s *ChatStore) AddAdmin(_ context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	return s.update(id, func(c *entity.Chat) {
		if !c.IsAdmin(userID) {
			c.Admins = append(c.Admins, userID)
		}
	})
}

func (s *ChatStore) RemoveMember(_ context.Context, id, userID primitive.ObjectID) (*entity.Chat, error) {
	return s.update(id, func(c *entity.Chat) {
		c.AllUsers = slices.DeleteFunc(c.AllUsers, func(u primitive.ObjectID) bool { return u == userID })
		c.Admins = slices.DeleteFunc(c.Admins, func(u primitive.ObjectID) bool { return u == userID })
	})
}

func (s *ChatStore) SetLatestMessage(_ context.Context, id, messageID primitive.ObjectID, at time.Time) error {
	if s.SetLatestErr != nil {
		return s.SetLatestErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.LatestMessage = &messageID
	c.UpdatedAt = at
	return nil
}

func (s *ChatStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chats, id)
	return nil
}

func (s *ChatStore) ExistingIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.chats[id]; ok {
			out[id] = true
		}
	}
	return out, nil
}

// Count returns the number of stored chats.
func (s *ChatStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chats)
}

func (s *ChatStore) update(id primitive.ObjectID, fn func(c *entity.Chat)) (*entity.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	fn(c)
	c.UpdatedAt = storeClock.now()
	return cloneChat(c), nil
}

// MessageStore keeps messages in memory in insertion order.
type MessageStore struct {
	mu       sync.Mutex
	messages []*entity.Message

	// DeleteByChatErr, when set, is returned by DeleteByChat.
	DeleteByChatErr error
	// CreateErr, when set, is returned by Create.
	CreateErr error
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func cloneMessage(m *entity.Message) *entity.Message {
	out := *m
	out.ReadBy = slices.Clone(m.ReadBy)
	return &out
}

func (s *MessageStore) Create(_ context.Context, msg *entity.Message) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := storeClock.now()
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreatedAt = now
	msg.UpdatedAt = now
	s.messages = append(s.messages, cloneMessage(msg))
	return nil
}

// Insert stores msg as given, keeping its timestamps.
func (s *MessageStore) Insert(msg *entity.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	s.messages = append(s.messages, cloneMessage(msg))
}

func (s *MessageStore) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ID == id {
			return cloneMessage(m), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *MessageStore) ListByChat(_ context.Context, chatID primitive.ObjectID, skip, limit int64, ascending bool) ([]*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.byChat(chatID)
	sort.SliceStable(matched, func(i, j int) bool {
		if ascending {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return window(matched, skip, limit), nil
}

func (s *MessageStore) Latest(_ context.Context, chatID primitive.ObjectID) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *entity.Message
	for _, m := range s.messages {
		if m.Chat != chatID {
			continue
		}
		if latest == nil || !m.CreatedAt.Before(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return cloneMessage(latest), nil
}

func (s *MessageStore) MarkRead(_ context.Context, messageID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ID == messageID && !m.IsReadBy(userID) {
			m.ReadBy = append(m.ReadBy, userID)
		}
	}
	return nil
}

func (s *MessageStore) MarkChatRead(_ context.Context, chatID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.Chat == chatID && !m.IsReadBy(userID) {
			m.ReadBy = append(m.ReadBy, userID)
		}
	}
	return nil
}

func (s *MessageStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = slices.DeleteFunc(s.messages, func(m *entity.Message) bool { return m.ID == id })
	return nil
}

func (s *MessageStore) DeleteByChat(ctx context.Context, chatID primitive.ObjectID) (int64, error) {
	if s.DeleteByChatErr != nil {
		return 0, s.DeleteByChatErr
	}
	return s.DeleteByChats(ctx, []primitive.ObjectID{chatID})
}

func (s *MessageStore) DeleteByChats(_ context.Context, chatIDs []primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.messages)
	s.messages = slices.DeleteFunc(s.messages, func(m *entity.Message) bool {
		return slices.Contains(chatIDs, m.Chat)
	})
	return int64(before - len(s.messages)), nil
}

func (s *MessageStore) ChatIDs(_ context.Context) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[primitive.ObjectID]bool)
	out := make([]primitive.ObjectID, 0)
	for _, m := range s.messages {
		if !seen[m.Chat] {
			seen[m.Chat] = true
			out = append(out, m.Chat)
		}
	}
	return out, nil
}

func (s *MessageStore) MediaKeysByChats(_ context.Context, chatIDs []primitive.ObjectID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0)
	for _, m := range s.messages {
		if m.MediaPublicID != "" && slices.Contains(chatIDs, m.Chat) && !slices.Contains(out, m.MediaPublicID) {
			out = append(out, m.MediaPublicID)
		}
	}
	return out, nil
}

// CountByChat returns the number of stored messages of a chat.
func (s *MessageStore) CountByChat(chatID primitive.ObjectID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byChat(chatID))
}

func (s *MessageStore) byChat(chatID primitive.ObjectID) []*entity.Message {
	out := make([]*entity.Message, 0)
	for _, m := range s.messages {
		if m.Chat == chatID {
			out = append(out, cloneMessage(m))
		}
	}
	return out
}

// UserStore is a fixed set of users.
type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func NewUserStore(users ...*entity.User) *UserStore {
	s := &UserStore{users: make(map[primitive.ObjectID]*entity.User)}
	for _, u := range users {
		s.Add(u)
	}
	return s
}

func (s *UserStore) Add(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = u
}

// NewUser stores and returns a user with the given name.
func (s *UserStore) NewUser(name string) *entity.User {
	u := &entity.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com"}
	s.Add(u)
	return u
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[primitive.ObjectID]*entity.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			copied := *u
			out[id] = &copied
		}
	}
	return out, nil
}

func window[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}
