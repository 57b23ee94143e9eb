package service

import (
	"DonaTalkAPI/internal/helper"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// validationError turns the first failed rule into a client-facing message.
func validationError(err error) *helper.AppError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return helper.NewBadRequestError("")
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return helper.NewBadRequestError(fmt.Sprintf("%s is required", fe.Field()))
	case "max":
		return helper.NewBadRequestError(fmt.Sprintf("%s is too long", fe.Field()))
	default:
		return helper.NewBadRequestError(fmt.Sprintf("invalid %s", fe.Field()))
	}
}

func parseObjectID(value, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, helper.NewBadRequestError("invalid " + field)
	}
	return id, nil
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
