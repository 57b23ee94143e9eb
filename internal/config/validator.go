package config

import (
	"DonaTalkAPI/internal/constant"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("objectid", validateObjectID)
	_ = v.RegisterValidation("message_type", validateMessageType)
	return v
}

func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

func validateMessageType(fl validator.FieldLevel) bool {
	return slices.Contains(constant.MessageTypes, fl.Field().String())
}
