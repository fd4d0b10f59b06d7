package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "metrictracker/internal/errors"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes bounds the encoded length, where max counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validationError turns the first failed rule into a client-facing message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Validation("invalid request body")
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.Validation("%s required", fe.Field())
	case "max":
		return apperrors.Validation("%s must be at most %s characters", fe.Field(), fe.Param())
	case "maxbytes":
		return apperrors.Validation("%s must be at most %s bytes", fe.Field(), fe.Param())
	case "email":
		return apperrors.Validation("%s must be a valid email", fe.Field())
	default:
		return apperrors.Validation("%s is invalid", fe.Field())
	}
}

