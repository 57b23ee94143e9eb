package service

import (
	"DonaTalkAPI/internal/constant"
	"DonaTalkAPI/internal/entity"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/repository"
	"DonaTalkAPI/internal/websocket"
	"context"
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MsgChatDeleted       = "chat deleted"
	MsgGroupDissolved    = "group removed as too few members remained; chat deleted"
	MsgUploadsDisabled   = "media uploads are not enabled"
	msgChatNotFound      = "chat not found"
	msgNotChatMember     = "not a member of this chat"
	msgMessageNotFound   = "message not found"
	msgGroupOnly         = "operation allowed on group chats only"
	msgChatMemberMissing = "chatId and userId required"
)

type ChatService struct {
	chats     ChatRepository
	messages  MessageRepository
	users     UserRepository
	storage   MediaStorage
	validator *validator.Validate
	notifier  websocket.Notifier
	assembler *chatAssembler
}

func NewChatService(chats ChatRepository, messages MessageRepository, users UserRepository, storage MediaStorage, validator *validator.Validate, notifier websocket.Notifier) *ChatService {
	return &ChatService{
		chats:     chats,
		messages:  messages,
		users:     users,
		storage:   storage,
		validator: validator,
		notifier:  websocket.OrNoop(notifier),
		assembler: &chatAssembler{messages: messages, users: users},
	}
}

// AccessChat returns the direct chat between the requester and req.UserID, creating it
// when none exists. created reports whether a new chat was stored.
func (s *ChatService) AccessChat(ctx context.Context, requesterID primitive.ObjectID, req model.AccessChatRequest) (resp *model.ChatResponse, created bool, err error) {
	if req.UserID == "" {
		return nil, false, helper.NewBadRequestError("userId required")
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, false, validationError(err)
	}

	otherID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, false, err
	}

	if otherID == requesterID {
		return nil, false, helper.NewBadRequestError("cannot start a chat with yourself")
	}

	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, helper.NewNotFoundError("user not found")
		}
		slog.Error("Failed to load chat partner", "error", err, "userID", otherID.Hex())
		return nil, false, helper.NewInternalServerErrorFrom(err)
	}

	existing, err := s.chats.FindDirect(ctx, requesterID, otherID)
	if err == nil {
		resp, err := s.assembler.chat(ctx, existing, true)
		if err != nil {
			slog.Error("Failed to build chat response", "error", err, "chatID", existing.ID.Hex())
			return nil, false, helper.NewInternalServerErrorFrom(err)
		}
		return resp, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		slog.Error("Failed to look up direct chat", "error", err, "userID", requesterID.Hex(), "otherID", otherID.Hex())
		return nil, false, helper.NewInternalServerErrorFrom(err)
	}

	chat := &entity.Chat{
		IsGroup:  false,
		AllUsers: []primitive.ObjectID{requesterID, otherID},
		Admins:   []primitive.ObjectID{requesterID},
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		slog.Error("Failed to create direct chat", "error", err, "userID", requesterID.Hex(), "otherID", otherID.Hex())
		return nil, false, helper.NewInternalServerErrorFrom(err)
	}

	resp, err = s.assembler.chat(ctx, chat, false)
	if err != nil {
		slog.Error("Failed to build chat response", "error", err, "chatID", chat.ID.Hex())
		return nil, false, helper.NewInternalServerErrorFrom(err)
	}

	s.notifier.Emit(websocket.EventChatCreated, resp, hexIDs(chat.AllUsers)...)

	return resp, true, nil
}

// ListChats returns one page of the requester's chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context, requesterID primitive.ObjectID, req model.ListChatsRequest) ([]*model.ChatResponse, error) {
	page, limit := helper.NormalizePage(req.Page, req.Limit)

	chats, err := s.chats.ListForUser(ctx, requesterID, helper.Skip(page, limit), int64(limit))
	if err != nil {
		slog.Error("Failed to list chats", "error", err, "userID", requesterID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	resp, err := s.assembler.chats(ctx, chats)
	if err != nil {
		slog.Error("Failed to build chat list", "error", err, "userID", requesterID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	return resp, nil
}

func (s *ChatService) CreateGroup(ctx context.Context, requesterID primitive.ObjectID, req model.CreateGroupRequest) (*model.ChatResponse, error) {
	if req.Name == "" || req.Users == nil {
		return nil, helper.NewBadRequestError("name and users required")
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, validationError(err)
	}

	members := []primitive.ObjectID{requesterID}
	seen := map[primitive.ObjectID]bool{requesterID: true}
	for _, raw := range req.Users {
		id, err := parseObjectID(raw, "users")
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}

	if len(members) < 2 {
		return nil, helper.NewBadRequestError("a group needs at least one other member")
	}

	avatar, err := s.resolveAvatar(ctx, req.AvatarFile, req.GroupAvatar)
	if err != nil {
		return nil, err
	}

	chat := &entity.Chat{
		IsGroup:     true,
		GroupName:   req.Name,
		GroupAvatar: avatar,
		AllUsers:    members,
		Admins:      []primitive.ObjectID{requesterID},
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		slog.Error("Failed to create group chat", "error", err, "userID", requesterID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	resp, err := s.assembler.chat(ctx, chat, false)
	if err != nil {
		slog.Error("Failed to build chat response", "error", err, "chatID", chat.ID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	s.notifier.Emit(websocket.EventChatCreated, resp, hexIDs(chat.AllUsers)...)

	return resp, nil
}

func (s *ChatService) RenameGroup(ctx context.Context, requesterID primitive.ObjectID, req model.RenameGroupRequest) (*model.ChatResponse, error) {
	if req.ChatID == "" {
		return nil, helper.NewBadRequestError("chatId required")
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, validationError(err)
	}

	chat, err := s.loadGroup(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsAdmin(requesterID) {
		return nil, helper.NewForbiddenError("only group admins can rename group")
	}

	avatar, err := s.resolveAvatar(ctx, req.AvatarFile, req.GroupAvatar)
	if err != nil {
		return nil, err
	}

	updated, err := s.chats.UpdateGroupInfo(ctx, chat.ID, req.Name, avatar)
	if err != nil {
		return nil, s.mutationError("Failed to rename group", err, chat.ID)
	}

	return s.publishUpdate(ctx, updated)
}

func (s *ChatService) AddMember(ctx context.Context, requesterID primitive.ObjectID, req model.GroupMemberRequest) (*model.ChatResponse, error) {
	if req.ChatID == "" || req.UserID == "" {
		return nil, helper.NewBadRequestError(msgChatMemberMissing)
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, validationError(err)
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}

	chat, err := s.loadGroup(ctx, req.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsAdmin(requesterID) {
		return nil, helper.NewForbiddenError("only group admins can add members")
	}

	if chat.HasMember(userID) {
		return nil, helper.NewConflictError("user already in group")
	}

	updated, err := s.chats.AddMember(ctx, chat.ID, userID)
	if err != nil {
		return nil, s.mutationError("Failed to add group member", err, chat.ID)
	}

	resp, err := s.publishUpdate(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(websocket.EventAddedToGroup, resp, userID.Hex())

	return resp, nil
}

// RemoveMember removes req.UserID from a group. When one member or fewer would remain
// the chat and its messages are deleted instead and deleted is true.
func (s *ChatService) RemoveMember(ctx context.Context, requesterID primitive.ObjectID, req model.GroupMemberRequest) (resp *model.ChatResponse, deleted bool, err error) {
	if req.ChatID == "" || req.UserID == "" {
		return nil, false, helper.NewBadRequestError(msgChatMemberMissing)
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", requesterID.Hex())
		return nil, false, validationError(err)
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, false, err
	}

	chat, err := s.loadGroup(ctx, req.ChatID)
	if err != nil {
		return nil, false, err
	}

	if userID != requesterID && !chat.IsAdmin(requesterID) {
		return nil, false, helper.NewForbiddenError("only admins can remove other users")
	}

	if !chat.HasMember(userID) {
		return nil, false, helper.NewBadRequestError("user is not in group")
	}

	updated, err := s.chats.RemoveMember(ctx, chat.ID, userID)
	if err != nil {
		return nil, false, s.mutationError("Failed to remove group member", err, chat.ID)
	}

	if len(updated.AllUsers) <= 1 {
		previous := append(hexIDs(updated.AllUsers), userID.Hex())
		if err := s.deleteCascade(ctx, updated.ID); err != nil {
			return nil, false, err
		}

		s.notifier.Emit(websocket.EventChatDeleted, model.ChatDeletedEvent{ChatID: updated.ID.Hex()}, previous...)
		return nil, true, nil
	}

	if len(updated.Admins) == 0 {
		updated, err = s.chats.AddAdmin(ctx, updated.ID, updated.AllUsers[0])
		if err != nil {
			return nil, false, s.mutationError("Failed to promote group admin", err, chat.ID)
		}
	}

	resp, err = s.publishUpdate(ctx, updated)
	if err != nil {
		return nil, false, err
	}

	s.notifier.Emit(websocket.EventRemovedFromGroup, model.RemovedFromGroupEvent{
		ChatID:        updated.ID.Hex(),
		RemovedUserID: userID.Hex(),
	}, userID.Hex())

	return resp, false, nil
}

func (s *ChatService) DeleteChat(ctx context.Context, requesterID primitive.ObjectID, chatID string) (*model.ChatDeletedResponse, error) {
	if chatID == "" {
		return nil, helper.NewBadRequestError("chatId required")
	}

	chat, err := s.loadChat(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasMember(requesterID) {
		return nil, helper.NewForbiddenError("not allowed to delete this chat")
	}

	if err := s.deleteCascade(ctx, chat.ID); err != nil {
		return nil, err
	}

	s.notifier.Emit(websocket.EventChatDeleted, model.ChatDeletedEvent{ChatID: chat.ID.Hex()}, hexIDs(chat.AllUsers)...)

	return &model.ChatDeletedResponse{
		Message: MsgChatDeleted,
		ChatID:  chat.ID.Hex(),
	}, nil
}

func (s *ChatService) loadChat(ctx context.Context, rawID string) (*entity.Chat, error) {
	id, err := parseObjectID(rawID, "chatId")
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, helper.NewNotFoundError(msgChatNotFound)
		}
		slog.Error("Failed to load chat", "error", err, "chatID", rawID)
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	return chat, nil
}

func (s *ChatService) loadGroup(ctx context.Context, rawID string) (*entity.Chat, error) {
	chat, err := s.loadChat(ctx, rawID)
	if err != nil {
		return nil, err
	}

	if !chat.IsGroup {
		return nil, helper.NewBadRequestError(msgGroupOnly)
	}

	return chat, nil
}

// publishUpdate builds the chat response and sends chatUpdated to every member.
func (s *ChatService) publishUpdate(ctx context.Context, chat *entity.Chat) (*model.ChatResponse, error) {
	resp, err := s.assembler.chat(ctx, chat, true)
	if err != nil {
		slog.Error("Failed to build chat response", "error", err, "chatID", chat.ID.Hex())
		return nil, helper.NewInternalServerErrorFrom(err)
	}

	s.notifier.Emit(websocket.EventChatUpdated, resp, hexIDs(chat.AllUsers)...)

	return resp, nil
}

// deleteCascade removes a chat and every message it owns. Messages left behind by a
// failed second step are collected by the orphan cleanup job.
func (s *ChatService) deleteCascade(ctx context.Context, chatID primitive.ObjectID) error {
	if err := s.chats.Delete(ctx, chatID); err != nil {
		slog.Error("Failed to delete chat", "error", err, "chatID", chatID.Hex())
		return helper.NewInternalServerErrorFrom(err)
	}

	if _, err := s.messages.DeleteByChat(ctx, chatID); err != nil {
		slog.Error("Failed to delete chat messages", "error", err, "chatID", chatID.Hex())
	}

	return nil
}

// resolveAvatar prefers an uploaded file over a URL string.
func (s *ChatService) resolveAvatar(ctx context.Context, file *multipart.FileHeader, url string) (string, error) {
	if file == nil {
		return url, nil
	}

	if s.storage == nil {
		return "", helper.NewBadRequestError(MsgUploadsDisabled)
	}

	stored, err := s.storage.Upload(ctx, file, constant.StorageFolderAvatars)
	if err != nil {
		slog.Error("Failed to upload group avatar", "error", err, "fileName", file.Filename)
		return "", helper.NewInternalServerErrorFrom(err)
	}

	return stored.URL, nil
}

func (s *ChatService) mutationError(msg string, err error, chatID primitive.ObjectID) error {
	if errors.Is(err, repository.ErrNotFound) {
		return helper.NewNotFoundError(msgChatNotFound)
	}
	slog.Error(msg, "error", err, "chatID", chatID.Hex())
	return helper.NewInternalServerErrorFrom(err)
}
