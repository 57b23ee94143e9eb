package controller

import (
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/middleware"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ChatController struct {
	chatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// AccessChat godoc
// @Summary      Access Direct Chat
// @Description  Return the direct chat with another user, creating it when it does not exist yet.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body model.AccessChatRequest true "Access Chat Request"
// @Success      200  {object}  model.ChatResponse
// @Success      201  {object}  model.ChatResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/access [post]
func (c *ChatController) AccessChat(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.AccessChatRequest
	if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}
	if req.UserID == "" {
		req.UserID = r.URL.Query().Get("userId")
	}

	resp, created, err := c.chatService.AccessChat(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	if created {
		helper.WriteCreated(w, resp)
		return
	}
	helper.WriteSuccess(w, resp)
}

// FetchChats godoc
// @Summary      List Chats
// @Description  List the chats of the current user, most recently active first.
// @Tags         chat
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 50, max 100)"
// @Success      200  {object}  helper.ResponsePage{data=[]model.ChatResponse}
// @Failure      401  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat [get]
func (c *ChatController) FetchChats(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	page, limit := helper.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	resp, err := c.chatService.ListChats(r.Context(), userContext.ID, model.ListChatsRequest{Page: page, Limit: limit})
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccessWithPage(w, resp, page, limit)
}

// CreateGroupChat godoc
// @Summary      Create Group Chat
// @Description  Create a group chat. Accepts JSON or multipart form data with an optional groupAvatar file.
// @Tags         chat
// @Accept       json,mpfd
// @Produce      json
// @Param        request body model.CreateGroupRequest true "Create Group Request"
// @Success      201  {object}  model.ChatResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/group [post]
func (c *ChatController) CreateGroupChat(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.CreateGroupRequest
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			helper.WriteError(w, err)
			return
		}

		users, err := formIDList(r, "users")
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		file, err := optionalFile(r, "groupAvatar")
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		req = model.CreateGroupRequest{
			Name:        r.FormValue("name"),
			Users:       users,
			GroupAvatar: r.FormValue("groupAvatar"),
			AvatarFile:  file,
		}
	} else if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.chatService.CreateGroup(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

// RenameGroup godoc
// @Summary      Update Group Info
// @Description  Rename a group or change its avatar. Only group admins can perform this action.
// @Tags         chat
// @Accept       json,mpfd
// @Produce      json
// @Param        request body model.RenameGroupRequest true "Rename Group Request"
// @Success      200  {object}  model.ChatResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/rename [put]
func (c *ChatController) RenameGroup(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.RenameGroupRequest
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			helper.WriteError(w, err)
			return
		}

		file, err := optionalFile(r, "groupAvatar")
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		req = model.RenameGroupRequest{
			ChatID:      r.FormValue("chatId"),
			Name:        r.FormValue("name"),
			GroupAvatar: r.FormValue("groupAvatar"),
			AvatarFile:  file,
		}
	} else if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.chatService.RenameGroup(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// AddToGroup godoc
// @Summary      Add Group Member
// @Description  Add a user to a group. Only group admins can perform this action.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body model.GroupMemberRequest true "Group Member Request"
// @Success      200  {object}  model.ChatResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      409  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/add [put]
func (c *ChatController) AddToGroup(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.GroupMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.chatService.AddMember(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// RemoveFromGroup godoc
// @Summary      Remove Group Member
// @Description  Leave a group, or remove another member as an admin. The group is deleted when one member or fewer would remain.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body model.GroupMemberRequest true "Group Member Request"
// @Success      200  {object}  model.ChatResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/remove [put]
func (c *ChatController) RemoveFromGroup(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.GroupMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, deleted, err := c.chatService.RemoveMember(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	if deleted {
		helper.WriteMessage(w, service.MsgGroupDissolved)
		return
	}
	helper.WriteSuccess(w, resp)
}

// DeleteChat godoc
// @Summary      Delete Chat
// @Description  Delete a chat and all of its messages. Any member can perform this action.
// @Tags         chat
// @Produce      json
// @Param        chatId path string true "Chat ID"
// @Success      200  {object}  model.ChatDeletedResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/chat/{chatId} [delete]
func (c *ChatController) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.chatService.DeleteChat(r.Context(), userContext.ID, chi.URLParam(r, "chatId"))
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
