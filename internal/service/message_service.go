package service

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/repository"
	"DonaTalkAPI/internal/websocket"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgMarkedRead          = "Marked as read"
	MsgMessageDeleted      = "message deleted"
	MsgChatMessagesDeleted = "chat messages deleted"
)

type MessageService struct {
	chats     ChatRepository
	messages  MessageRepository
	users     UserRepository
	storage   MediaStorage
	cfg       *config.AppConfig
	validator *validator.Validate
	notifier  websocket.Notifier
	assembler *chatAssembler
}

func NewMessageService(chats ChatRepository, messages MessageRepository, users UserRepository, storage MediaStorage, cfg *config.AppConfig, validator *validator.Validate, notifier websocket.Notifier) *MessageService {
	return &MessageService{
		chats:     chats,
		messages:  messages,
		users:     users,
		storage:   storage,
		cfg:       cfg,
		validator: validator,
		notifier:  websocket.OrNoop(notifier),
		assembler: &chatAssembler{messages: messages, users: users},
	}
}

// ListMessages returns one page of a chat's messages, oldest first unless req.Sort is "desc".
func (s *MessageService) ListMessages(ctx context.Context, requesterID primitive.ObjectID, req model.ListMessagesRequest) ([]*model.MessageResponse, error) {
	if req.ChatID == "" {
		return nil, helper.NewBadRequestError("chatId required")
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, validationError(err)
	}

	chat, err := s.memberChat(ctx, requesterID, req.ChatID)
	if err != nil {
		return nil, err
	}

	page, limit := helper.NormalizePage(req.Page, req.Limit)
	ascending := req.Sort != constant.SortDesc

	msgs, err := s.messages.ListByChat(ctx, chat.ID, helper.Skip(page, limit), int64(limit), ascending)
	if err != nil {
		slog.Error("Failed to list messages", "error", err, "chatID", chat.ID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	resp, err := s.assembler.messageList(ctx, msgs, chat)
	if err != nil {
		slog.Error("Failed to build message list", "error", err, "chatID", chat.ID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	return resp, nil
}

// SendMessage stores a message, moves the chat's latest message pointer to it and
// notifies every member.
func (s *MessageService) SendMessage(ctx context.Context, senderID primitive.ObjectID, req model.SendMessageRequest) (*model.MessageResponse, error) {
	if req.ChatID == "" {
		return nil, helper.NewBadRequestError("chatId is required")
	}

	if req.MessageType == "" {
		req.MessageType = constant.MessageTypeText
		if req.Media != nil {
			req.MessageType = ""
		}
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", senderID.Hex())
		return nil, validationError(err)
	}

	if req.MessageType == constant.MessageTypeText && strings.TrimSpace(req.Content) == "" {
		return nil, helper.NewBadRequestError("content is required for text messages")
	}

	if req.MessageType != constant.MessageTypeText && req.Media == nil {
		return nil, helper.NewBadRequestError("media is required for media messages")
	}

	if req.Media != nil && req.Media.Size > int64(s.cfg.MediaMaxUploadMB)<<20 {
		return nil, helper.NewBadRequestError("media exceeds the upload limit")
	}

	chat, err := s.memberChat(ctx, senderID, req.ChatID)
	if err != nil {
		return nil, err
	}

	receiverID, err := s.resolveReceiver(chat, senderID, req.Receiver)
	if err != nil {
		return nil, err
	}

	msg := &entity.Message{
		Chat:        chat.ID,
		Sender:      senderID,
		Receiver:    receiverID,
		Content:     req.Content,
		MessageType: req.MessageType,
		ReadBy:      []primitive.ObjectID{senderID},
	}

	if req.Media != nil {
		if s.storage == nil {
			return nil, helper.NewBadRequestError(MsgUploadsDisabled)
		}

		stored, err := s.storage.Upload(ctx, req.Media, constant.StorageFolderMedia)
		if err != nil {
			slog.Error("Failed to upload message media", "error", err, "chatID", chat.ID.Hex())
			return nil, helper.NewInternalServerErrorFrom(err)
		}

		msg.MediaURL = stored.URL
		msg.MediaPublicID = stored.Key
		msg.MediaFormat = stored.Format
		msg.MediaSize = stored.Size
		if msg.MessageType == "" {
			msg.MessageType = helper.MediaKindFromContentType(stored.ContentType)
		}
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		slog.Error("Failed to create message", "error", err, "chatID", chat.ID.Hex())
		s.discardMedia(msg.MediaPublicID)
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	if err := s.chats.SetLatestMessage(ctx, chat.ID, msg.ID, msg.CreatedAt); err != nil {
		slog.Error("Failed to update latest message", "error", err, "chatID", chat.ID.Hex(), "messageID", msg.ID.Hex())
	}

	current, err := s.chats.GetByID(ctx, chat.ID)
	if err != nil {
		slog.Warn("Failed to reload chat after send", "error", err, "chatID", chat.ID.Hex())
		current = nil
	}

	refChat := chat
	if current != nil {
		refChat = current
	}

	msgs, err := s.assembler.messageList(ctx, []*entity.Message{msg}, refChat)
	if err != nil {
		slog.Error("Failed to build message response", "error", err, "messageID", msg.ID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}
	resp := msgs[0]

	s.publishMessage(ctx, resp, chat, current)

	return resp, nil
}

// publishMessage sends newMessage and chatUpdated to the members of the reloaded chat.
// When the chat could not be reloaded its members are unknown and both events go to
// every connection instead, built from the chat as loaded before the send.
func (s *MessageService) publishMessage(ctx context.Context, msg *model.MessageResponse, loaded, current *entity.Chat) {
	resolved := current != nil && len(current.AllUsers) > 0
	source := loaded
	if resolved {
		source = current
	}

	var chatResp *model.ChatResponse
	resp, err := s.assembler.chat(ctx, source, true)
	if err != nil {
		slog.Warn("Failed to build chat for notification", "error", err, "chatID", source.ID.Hex())
	} else {
		chatResp = resp
	}

	if !resolved {
		s.notifier.Broadcast(websocket.EventNewMessage, msg)
		if chatResp != nil {
			s.notifier.Broadcast(websocket.EventChatUpdated, chatResp)
		}
		return
	}

	targets := hexIDs(current.AllUsers)
	s.notifier.Emit(websocket.EventNewMessage, msg, targets...)
	if chatResp != nil {
		s.notifier.Emit(websocket.EventChatUpdated, chatResp, targets...)
	}
}

// resolveReceiver picks the explicit receiver, then the other member of a direct chat,
// then the sender.
func (s *MessageService) resolveReceiver(chat *entity.Chat, senderID primitive.ObjectID, explicit string) (primitive.ObjectID, error) {
	if explicit != "" {
		return parseObjectID(explicit, "receiver")
	}

	if !chat.IsGroup {
		if other, ok := chat.OtherMember(senderID); ok {
			return other, nil
		}
	}

	return senderID, nil
}

// MarkRead adds the user to readBy of one message, or of every message in a chat.
// Only members of the chat may mark its messages read.
func (s *MessageService) MarkRead(ctx context.Context, userID primitive.ObjectID, req model.MarkReadRequest) error {
	if req.ChatID == "" && req.MessageID == "" {
		return helper.NewBadRequestError("chatId or messageId is required")
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", userID.Hex())
		return validationError(err)
	}

	if req.MessageID != "" {
		messageID, err := parseObjectID(req.MessageID, "messageId")
		if err != nil {
			return err
		}

		msg, err := s.messages.GetByID(ctx, messageID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return helper.NewNotFoundError(msgMessageNotFound)
			}
			slog.Error("Failed to load message", "error", err, "messageID", req.MessageID)
			return helper.NewInternalServerErrorFrom(err)
		}
		if _, err := s.memberChat(ctx, userID, msg.Chat.Hex()); err != nil {
			return err
		}

		if err := s.messages.MarkRead(ctx, messageID, userID); err != nil {
			slog.Error("Failed to mark message read", "error", err, "messageID", req.MessageID)
			return helper.NewInternalServerErrorFrom(err)
		}
		return nil
	}

	chat, err := s.memberChat(ctx, userID, req.ChatID)
	if err != nil {
		return err
	}
	if err := s.messages.MarkChatRead(ctx, chat.ID, userID); err != nil {
		slog.Error("Failed to mark chat read", "error", err, "chatID", req.ChatID)
		return helper.NewInternalServerErrorFrom(err)
	}
	return nil
}

// DeleteMessage removes a message sent by the requester. The chat's latest message
// pointer is left untouched.
func (s *MessageService) DeleteMessage(ctx context.Context, requesterID primitive.ObjectID, rawID string) error {
	if rawID == "" {
		return helper.NewBadRequestError("messageId required")
	}

	messageID, err := parseObjectID(rawID, "messageId")
	if err != nil {
		return err
	}

	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return helper.NewNotFoundError(msgMessageNotFound)
		}
		slog.Error("Failed to load message", "error", err, "messageID", rawID)
		return helper.NewInternalServerErrorFrom(err)
	}

	if msg.Sender != requesterID {
		return helper.NewForbiddenError("not allowed to delete")
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		slog.Error("Failed to delete message", "error", err, "messageID", rawID)
		return helper.NewInternalServerErrorFrom(err)
	}

	s.discardMedia(msg.MediaPublicID)

	return nil
}

// DeleteChatMessages empties a chat the requester belongs to.
func (s *MessageService) DeleteChatMessages(ctx context.Context, requesterID primitive.ObjectID, rawID string) error {
	if rawID == "" {
		return helper.NewBadRequestError("chatId required")
	}

	chat, err := s.memberChat(ctx, requesterID, rawID)
	if err != nil {
		return err
	}

	if _, err := s.messages.DeleteByChat(ctx, chat.ID); err != nil {
		slog.Error("Failed to delete chat messages", "error", err, "chatID", rawID)
		return helper.NewInternalServerErrorFrom(err)
	}

	return nil
}

// DeleteOrphanMessages removes messages whose chat no longer exists.
func (s *MessageService) DeleteOrphanMessages(ctx context.Context) (int64, error) {
	chatIDs, err := s.messages.ChatIDs(ctx)
	if err != nil {
		return 0, err
	}

	existing, err := s.chats.ExistingIDs(ctx, chatIDs)
	if err != nil {
		return 0, err
	}

	orphans := make([]primitive.ObjectID, 0)
	for _, id := range chatIDs {
		if !existing[id] {
			orphans = append(orphans, id)
		}
	}

	if len(orphans) == 0 {
		return 0, nil
	}

	keys, err := s.messages.MediaKeysByChats(ctx, orphans)
	if err != nil {
		return 0, err
	}

	deleted, err := s.messages.DeleteByChats(ctx, orphans)
	if err != nil {
		return 0, err
	}

	if s.storage != nil {
		for _, key := range keys {
			if err := s.storage.Delete(ctx, key); err != nil {
				slog.Warn("Failed to delete orphan media object", "error", err, "key", key)
			}
		}
	}

	slog.Info("Deleted orphan messages", "chats", len(orphans), "messages", deleted, "media", len(keys))
	return deleted, nil
}

func (s *MessageService) memberChat(ctx context.Context, userID primitive.ObjectID, rawID string) (*entity.Chat, error) {
	chatID, err := parseObjectID(rawID, "chatId")
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, helper.NewNotFoundError(msgChatNotFound)
		}
		slog.Error("Failed to load chat", "error", err, "chatID", rawID)
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	if !chat.HasMember(userID) {
		return nil, helper.NewForbiddenError(msgNotChatMember)
	}

	return chat, nil
}

func (s *MessageService) discardMedia(key string) {
	if key == "" || s.storage == nil {
		return
	}

	go func() {
		if err := s.storage.Delete(context.Background(), key); err != nil {
			slog.Warn("Failed to delete media object", "error", err, "key", key)
		}
	}()
}
