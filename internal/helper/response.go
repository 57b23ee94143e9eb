package helper

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type ResponseMessage struct {
	Message string `json:"message"`
}

type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ResponsePage struct {
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}

func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteCreated(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusCreated, data)
}

func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, ResponseMessage{Message: message})
}

func WriteSuccessWithPage(w http.ResponseWriter, data interface{}, page, limit int) {
	WriteJSON(w, http.StatusOK, ResponsePage{
		Page:  page,
		Limit: limit,
		Data:  data,
	})
}

func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalServerErrorFrom(err)
	}

	resp := ResponseError{Message: appErr.Message}
	if appErr.Code >= http.StatusInternalServerError {
		resp.Error = appErr.Detail
	}

	WriteJSON(w, appErr.Code, resp)
}
