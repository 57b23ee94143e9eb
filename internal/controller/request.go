package controller

import (
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

const maxMultipartMemory = 32 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// decodeJSON reads a JSON body into dst; an empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	if errors.Is(err, model.ErrUsersNotArray) {
		return helper.NewBadRequestError(model.ErrUsersNotArray.Error())
	}
	return helper.NewBadRequestError("Invalid request body")
}

func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return helper.NewBadRequestError("Failed to parse form data")
	}
	return nil
}

// optionalFile returns the uploaded file for field, or nil when none was sent.
func optionalFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	_, header, err := r.FormFile(field)
	if err == nil {
		return header, nil
	}
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return nil, helper.NewBadRequestError("Failed to process " + field + " file")
}

// formIDList accepts repeated form values or a single JSON array value.
func formIDList(r *http.Request, field string) (model.IDList, error) {
	values, ok := r.MultipartForm.Value[field]
	if !ok {
		return nil, nil
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var list model.IDList
		if err := json.Unmarshal([]byte(values[0]), &list); err != nil {
			return nil, helper.NewBadRequestError(model.ErrUsersNotArray.Error())
		}
		return list, nil
	}

	return model.IDList(values), nil
}
