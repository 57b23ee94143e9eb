package service_test

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/service"
	"DonaTalkAPI/internal/testutil"
	"DonaTalkAPI/internal/websocket"
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func directChat(t *testing.T, f *fixture, a, b *entity.User) *model.ChatResponse {
	t.Helper()

	chat, _, err := f.chatService.AccessChat(context.Background(), a.ID, model.AccessChatRequest{UserID: b.ID.Hex()})
	require.NoError(t, err)
	return chat
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Updates Latest Message Before Returning", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hello"})
		require.NoError(t, err)

		stored, err := f.chats.GetByID(ctx, chat.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LatestMessage)
		assert.Equal(t, msg.ID, *stored.LatestMessage)

		require.NotNil(t, msg.Chat)
		require.NotNil(t, msg.Chat.LatestMessage)
		assert.Equal(t, msg.ID, *msg.Chat.LatestMessage)
	})

	t.Run("Direct Chat Receiver Defaults To Other Member", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hello"})
		require.NoError(t, err)

		assert.Equal(t, u2.ID, msg.Receiver)
		assert.Equal(t, u1.ID, msg.Sender.ID)
		assert.Equal(t, "u1", msg.Sender.Name)
		assert.Equal(t, constant.MessageTypeText, msg.MessageType)
		assert.Equal(t, []primitive.ObjectID{u1.ID}, msg.ReadBy)
	})

	t.Run("Group Receiver Defaults To Sender", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		u3 := f.users.NewUser("u3")
		group := createGroup(t, f, u1, "Team", u2, u3)

		msg, err := f.messageService.SendMessage(ctx, u2.ID, model.SendMessageRequest{ChatID: group.ID.Hex(), Content: "hey"})
		require.NoError(t, err)
		assert.Equal(t, u2.ID, msg.Receiver)
	})

	t.Run("Explicit Receiver", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		u3 := f.users.NewUser("u3")
		group := createGroup(t, f, u1, "Team", u2, u3)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID:   group.ID.Hex(),
			Content:  "for you",
			Receiver: u3.ID.Hex(),
		})
		require.NoError(t, err)
		assert.Equal(t, u3.ID, msg.Receiver)
	})

	t.Run("Notifies Members", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)
		f.notifier.Reset()

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hello"})
		require.NoError(t, err)

		newMessages := f.notifier.Of(websocket.EventNewMessage)
		require.Len(t, newMessages, 1)
		assert.ElementsMatch(t, []string{u1.ID.Hex(), u2.ID.Hex()}, newMessages[0].Targets)
		assert.Equal(t, msg, newMessages[0].Payload)

		updates := f.notifier.Of(websocket.EventChatUpdated)
		require.Len(t, updates, 1)
		updated, ok := updates[0].Payload.(*model.ChatResponse)
		require.True(t, ok)
		require.NotNil(t, updated.LatestMessage)
		assert.Equal(t, msg.ID, updated.LatestMessage.ID)
	})

	t.Run("Text Requires Content", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "   "})
		appErr := assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "content is required for text messages", appErr.Message)
	})

	t.Run("Missing Chat ID", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{Content: "hi"})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Content Too Long", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID:  chat.ID.Hex(),
			Content: strings.Repeat("a", 4001),
		})
		appErr := assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "content is too long", appErr.Message)
	})

	t.Run("Unknown Message Type", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID:      chat.ID.Hex(),
			Content:     "x",
			MessageType: "sticker",
		})
		appErr := assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "invalid messageType", appErr.Message)
	})

	t.Run("Media Type Without Media", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID:      chat.ID.Hex(),
			MessageType: constant.MessageTypeImage,
		})
		appErr := assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, "media is required for media messages", appErr.Message)
	})

	t.Run("Non Member Forbidden", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		u3 := f.users.NewUser("u3")
		chat := directChat(t, f, u1, u2)

		_, err := f.messageService.SendMessage(ctx, u3.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "intrude"})
		assertAppError(t, err, http.StatusForbidden)
		assert.Equal(t, 0, f.messages.CountByChat(chat.ID))
	})

	t.Run("Unknown Chat", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: primitive.NewObjectID().Hex(), Content: "hi"})
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("Media Upload", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID: chat.ID.Hex(),
			Media:  testutil.FileHeader("media", "photo.png", "image/png", []byte("fake png bytes")),
		})
		require.NoError(t, err)

		assert.Equal(t, constant.MessageTypeImage, msg.MessageType)
		assert.Equal(t, "png", msg.MediaFormat)
		assert.Equal(t, int64(len("fake png bytes")), msg.MediaSize)
		assert.NotEmpty(t, msg.MediaURL)
		assert.True(t, f.storage.Has(msg.MediaPublicID))
	})

	t.Run("Media Over Limit", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		media := testutil.FileHeader("media", "big.mp4", "video/mp4", []byte("tiny"))
		media.Size = 2 << 20

		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Media: media})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Uploads Disabled", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		noStorage := service.NewMessageService(f.chats, f.messages, f.users, nil, f.cfg, config.NewValidator(), f.notifier)
		_, err := noStorage.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID: chat.ID.Hex(),
			Media:  testutil.FileHeader("media", "photo.png", "image/png", []byte("png")),
		})
		appErr := assertAppError(t, err, http.StatusBadRequest)
		assert.Equal(t, service.MsgUploadsDisabled, appErr.Message)
	})

	t.Run("Failed Insert Discards Uploaded Media", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		f.messages.CreateErr = errors.New("write conflict")
		_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID: chat.ID.Hex(),
			Media:  testutil.FileHeader("media", "clip.mp3", "audio/mpeg", []byte("mp3")),
		})
		assertAppError(t, err, http.StatusInternalServerError)

		assert.Eventually(t, func() bool {
			return len(f.storage.Deleted()) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Latest Pointer Failure Is Not Fatal", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		f.chats.SetLatestErr = errors.New("timeout")
		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, 1, f.messages.CountByChat(chat.ID))
		assert.Equal(t, "hi", msg.Content)
	})

	t.Run("Unresolved Members Broadcast", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		f.chats.FailGetByIDAfter(1, errors.New("connection reset"))
		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hi", msg.Content)

		for _, event := range []websocket.EventType{websocket.EventNewMessage, websocket.EventChatUpdated} {
			sent := f.notifier.Of(event)
			require.Len(t, sent, 1, event)
			assert.True(t, sent[0].Broadcast, event)
			assert.Empty(t, sent[0].Targets, event)
		}
	})
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *entity.User, *entity.User, *model.ChatResponse) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		for _, content := range []string{"one", "two", "three"} {
			_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: content})
			require.NoError(t, err)
		}
		return f, u1, u2, chat
	}

	contents := func(msgs []*model.MessageResponse) []string {
		out := make([]string, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, m.Content)
		}
		return out
	}

	t.Run("Oldest First By Default", func(t *testing.T) {
		f, _, u2, chat := setup(t)

		msgs, err := f.messageService.ListMessages(ctx, u2.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex()})
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, contents(msgs))
		assert.Equal(t, "u1", msgs[0].Sender.Name)
	})

	t.Run("Descending", func(t *testing.T) {
		f, u1, _, chat := setup(t)

		msgs, err := f.messageService.ListMessages(ctx, u1.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex(), Sort: constant.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"three", "two", "one"}, contents(msgs))
	})

	t.Run("Pagination", func(t *testing.T) {
		f, u1, _, chat := setup(t)

		msgs, err := f.messageService.ListMessages(ctx, u1.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex(), Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"three"}, contents(msgs))
	})

	t.Run("Oversized Page Is Empty", func(t *testing.T) {
		f, u1, _, chat := setup(t)

		msgs, err := f.messageService.ListMessages(ctx, u1.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex(), Page: math.MaxInt, Limit: 1})
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("Invalid Sort", func(t *testing.T) {
		f, u1, _, chat := setup(t)

		_, err := f.messageService.ListMessages(ctx, u1.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex(), Sort: "random"})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Non Member Forbidden", func(t *testing.T) {
		f, _, _, chat := setup(t)
		outsider := f.users.NewUser("u3")

		_, err := f.messageService.ListMessages(ctx, outsider.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex()})
		assertAppError(t, err, http.StatusForbidden)
	})
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Single Message Idempotent", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hi"})
		require.NoError(t, err)

		req := model.MarkReadRequest{MessageID: msg.ID.Hex()}
		require.NoError(t, f.messageService.MarkRead(ctx, u2.ID, req))
		require.NoError(t, f.messageService.MarkRead(ctx, u2.ID, req))

		stored, err := f.messages.GetByID(ctx, msg.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []primitive.ObjectID{u1.ID, u2.ID}, stored.ReadBy)
	})

	t.Run("Whole Chat", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		for i := 0; i < 2; i++ {
			_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hi"})
			require.NoError(t, err)
		}

		require.NoError(t, f.messageService.MarkRead(ctx, u2.ID, model.MarkReadRequest{ChatID: chat.ID.Hex()}))

		msgs, err := f.messageService.ListMessages(ctx, u2.ID, model.ListMessagesRequest{ChatID: chat.ID.Hex()})
		require.NoError(t, err)
		for _, m := range msgs {
			assert.Contains(t, m.ReadBy, u2.ID)
		}
	})

	t.Run("Requires Target", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		err := f.messageService.MarkRead(ctx, u1.ID, model.MarkReadRequest{})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		err := f.messageService.MarkRead(ctx, u1.ID, model.MarkReadRequest{MessageID: "xyz"})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Non Member Forbidden", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		outsider := f.users.NewUser("u3")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "hi"})
		require.NoError(t, err)

		err = f.messageService.MarkRead(ctx, outsider.ID, model.MarkReadRequest{MessageID: msg.ID.Hex()})
		assertAppError(t, err, http.StatusForbidden)
		err = f.messageService.MarkRead(ctx, outsider.ID, model.MarkReadRequest{ChatID: chat.ID.Hex()})
		assertAppError(t, err, http.StatusForbidden)

		stored, err := f.messages.GetByID(ctx, msg.ID)
		require.NoError(t, err)
		assert.NotContains(t, stored.ReadBy, outsider.ID)
	})

	t.Run("Unknown Message", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		err := f.messageService.MarkRead(ctx, u1.ID, model.MarkReadRequest{MessageID: primitive.NewObjectID().Hex()})
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Sender Deletes And Latest Falls Back", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		first, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "first"})
		require.NoError(t, err)
		second, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "second"})
		require.NoError(t, err)

		require.NoError(t, f.messageService.DeleteMessage(ctx, u1.ID, second.ID.Hex()))

		stored, err := f.chats.GetByID(ctx, chat.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.LatestMessage)
		assert.Equal(t, second.ID, *stored.LatestMessage)

		chats, err := f.chatService.ListChats(ctx, u1.ID, model.ListChatsRequest{})
		require.NoError(t, err)
		require.Len(t, chats, 1)
		require.NotNil(t, chats[0].LatestMessage)
		assert.Equal(t, first.ID, chats[0].LatestMessage.ID)
	})

	t.Run("Other User Forbidden", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "mine"})
		require.NoError(t, err)

		err = f.messageService.DeleteMessage(ctx, u2.ID, msg.ID.Hex())
		assertAppError(t, err, http.StatusForbidden)
		assert.Equal(t, 1, f.messages.CountByChat(chat.ID))
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")

		err := f.messageService.DeleteMessage(ctx, u1.ID, primitive.NewObjectID().Hex())
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("Removes Media Object", func(t *testing.T) {
		f := newFixture(t)
		u1 := f.users.NewUser("u1")
		u2 := f.users.NewUser("u2")
		chat := directChat(t, f, u1, u2)

		msg, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{
			ChatID: chat.ID.Hex(),
			Media:  testutil.FileHeader("media", "doc.pdf", "application/pdf", []byte("%PDF")),
		})
		require.NoError(t, err)
		assert.Equal(t, constant.MessageTypeFile, msg.MessageType)

		require.NoError(t, f.messageService.DeleteMessage(ctx, u1.ID, msg.ID.Hex()))

		assert.Eventually(t, func() bool {
			return !f.storage.Has(msg.MediaPublicID)
		}, time.Second, 10*time.Millisecond)
	})
}

func TestDeleteChatMessages(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	u1 := f.users.NewUser("u1")
	u2 := f.users.NewUser("u2")
	u3 := f.users.NewUser("u3")
	chat := directChat(t, f, u1, u2)

	_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "a"})
	require.NoError(t, err)
	_, err = f.messageService.SendMessage(ctx, u2.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "b"})
	require.NoError(t, err)

	t.Run("Outsider Forbidden", func(t *testing.T) {
		err := f.messageService.DeleteChatMessages(ctx, u3.ID, chat.ID.Hex())
		assertAppError(t, err, http.StatusForbidden)
		assert.Equal(t, 2, f.messages.CountByChat(chat.ID))
	})

	t.Run("Member Empties Chat", func(t *testing.T) {
		require.NoError(t, f.messageService.DeleteChatMessages(ctx, u2.ID, chat.ID.Hex()))
		assert.Equal(t, 0, f.messages.CountByChat(chat.ID))
		assert.Equal(t, 1, f.chats.Count())
	})
}

func TestDeleteOrphanMessages(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	u1 := f.users.NewUser("u1")
	u2 := f.users.NewUser("u2")
	chat := directChat(t, f, u1, u2)

	_, err := f.messageService.SendMessage(ctx, u1.ID, model.SendMessageRequest{ChatID: chat.ID.Hex(), Content: "kept"})
	require.NoError(t, err)

	gone := primitive.NewObjectID()
	f.messages.Insert(&entity.Message{Chat: gone, Sender: u1.ID, Content: "orphan", MessageType: constant.MessageTypeText})
	f.messages.Insert(&entity.Message{Chat: gone, Sender: u1.ID, MessageType: constant.MessageTypeImage, MediaPublicID: "chat-media/orphan.png"})

	deleted, err := f.messageService.DeleteOrphanMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, 0, f.messages.CountByChat(gone))
	assert.Equal(t, 1, f.messages.CountByChat(chat.ID))
	assert.Equal(t, []string{"chat-media/orphan.png"}, f.storage.Deleted())

	again, err := f.messageService.DeleteOrphanMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, again)
}
