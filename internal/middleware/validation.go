package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/VanMinhNguyen21/api-web/internal/errs"
)

var validate = validator.New()

// ValidateRequest runs struct validation and flattens the result into the
// shared per-field error shape. Returns nil when the struct is valid.
func ValidateRequest(obj any) []errs.FieldError {
	var fieldErrors []errs.FieldError

	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	for _, err := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   err.Field(),
			Message: getErrorMsg(err),
			Type:    err.Tag(),
		})
	}

	return fieldErrors
}

// getErrorMsg preserves the user-facing wording the account-update API has
// always returned for its fields, with generic fallbacks for everything else.
func getErrorMsg(err validator.FieldError) string {
	switch err.Field() {
	case "Fullname":
		if err.Tag() == "required" {
			return "The name field is required."
		}
	case "Email":
		switch err.Tag() {
		case "required":
			return "The email field is required."
		case "email":
			return "Please enter a valid email address."
		}
	case "Role":
		if err.Tag() == "required" {
			return "The role field is required."
		}
	}

	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + err.Param()
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	default:
		return "Invalid value"
	}
}

// RespondWithValidationError renders the 422 per-field error list.
func RespondWithValidationError(c *gin.Context, fieldErrors []errs.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"status": http.StatusUnprocessableEntity,
		"errors": fieldErrors,
	})
}
