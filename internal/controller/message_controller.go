package controller

import (
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/middleware"
	"DonaTalkAPI/internal/model"
	"DonaTalkAPI/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type MessageController struct {
	messageService *service.MessageService
}

func NewMessageController(messageService *service.MessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
	}
}

// GetMessages godoc
// @Summary      List Messages
// @Description  List the messages of a chat, oldest first unless sort=desc.
// @Tags         message
// @Produce      json
// @Param        chatId path string true "Chat ID"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 50, max 100)"
// @Param        sort query string false "asc or desc (default asc)"
// @Success      200  {object}  helper.ResponsePage{data=[]model.MessageResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/message/{chatId} [get]
func (c *MessageController) GetMessages(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	query := r.URL.Query()
	page, limit := helper.ParsePagination(query.Get("page"), query.Get("limit"))

	req := model.ListMessagesRequest{
		ChatID: chi.URLParam(r, "chatId"),
		Page:   page,
		Limit:  limit,
		Sort:   query.Get("sort"),
	}

	resp, err := c.messageService.ListMessages(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccessWithPage(w, resp, page, limit)
}

// SendMessage godoc
// @Summary      Send Message
// @Description  Send a message to a chat. Media messages are sent as multipart form data with a media file.
// @Tags         message
// @Accept       json,mpfd
// @Produce      json
// @Param        request body model.SendMessageRequest true "Send Message Request"
// @Success      201  {object}  model.MessageResponse
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/message [post]
func (c *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.SendMessageRequest
	if isMultipart(r) {
		if err := parseMultipart(r); err != nil {
			helper.WriteError(w, err)
			return
		}

		media, err := optionalFile(r, "media")
		if err != nil {
			helper.WriteError(w, err)
			return
		}

		req = model.SendMessageRequest{
			ChatID:      r.FormValue("chatId"),
			Content:     r.FormValue("content"),
			Receiver:    r.FormValue("receiver"),
			MessageType: r.FormValue("messageType"),
			Media:       media,
		}
	} else if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.messageService.SendMessage(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteCreated(w, resp)
}

// MarkRead godoc
// @Summary      Mark Messages Read
// @Description  Mark one message, or every message of a chat, as read by the current user.
// @Tags         message
// @Accept       json
// @Produce      json
// @Param        request body model.MarkReadRequest true "Mark Read Request"
// @Success      200  {object}  helper.ResponseMessage
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/message/read [put]
func (c *MessageController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.MarkReadRequest
	if err := decodeJSON(r, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	if err := c.messageService.MarkRead(r.Context(), userContext.ID, req); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteMessage(w, service.MsgMarkedRead)
}

// DeleteMessage godoc
// @Summary      Delete Message
// @Description  Delete a message. Only its sender can perform this action.
// @Tags         message
// @Produce      json
// @Param        messageId path string true "Message ID"
// @Success      200  {object}  helper.ResponseMessage
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/message/{messageId} [delete]
func (c *MessageController) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	if err := c.messageService.DeleteMessage(r.Context(), userContext.ID, chi.URLParam(r, "messageId")); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteMessage(w, service.MsgMessageDeleted)
}

// DeleteChatMessages godoc
// @Summary      Delete Chat Messages
// @Description  Delete every message of a chat the current user belongs to.
// @Tags         message
// @Produce      json
// @Param        chatId path string true "Chat ID"
// @Success      200  {object}  helper.ResponseMessage
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Failure      500  {object}  helper.ResponseError
// @Security     BearerAuth
// @Router       /api/message/chat/{chatId} [delete]
func (c *MessageController) DeleteChatMessages(w http.ResponseWriter, r *http.Request) {
	userContext, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	if err := c.messageService.DeleteChatMessages(r.Context(), userContext.ID, chi.URLParam(r, "chatId")); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteMessage(w, service.MsgChatMessagesDeleted)
}
