package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation errors must carry the wire name of the field (json/form tag),
// not the Go struct field name.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(wireFieldName)
	}
}

func wireFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]

		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

// abortWithValidationError renders a binding failure as a 422 with per-field
// messages; the first message doubles as the top-level one.
func abortWithValidationError(ctx *gin.Context, err error) {
	fieldErrors := map[string][]string{}
	message := "The given data was invalid."

	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		for i, fieldError := range validationErrors {
			field := fieldError.Field()
			text := validationMessage(field, fieldError)

			if i == 0 {
				message = text
			}

			fieldErrors[field] = append(fieldErrors[field], text)
		}
	}

	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  fieldErrors,
	})
}

func abortWithFieldError(ctx *gin.Context, field string, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"errors":  gin.H{field: []string{message}},
	})
}

func validationMessage(field string, fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required", "required_with", "required_without":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s.", field, fieldError.Param())
	case "max":
		return fmt.Sprintf("The %s field may not be greater than %s.", field, fieldError.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", field, fieldError.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
