package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var ErrValidation = NewError(fiber.StatusBadRequest, "VALIDATION_FAILED")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the `validate` tags on s and reports the first failing field.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		detail := fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			detail = fmt.Sprintf("%s failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param())
		}
		return ErrValidation.WithDetail(detail)
	}
	return ErrValidation.WithDetail(err.Error())
}
