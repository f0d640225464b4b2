package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/minsu/dormisphere/internal/app/models/dto"
)

// HandleBindingError shapes a request binding or validation failure into the
// envelope. Field-level tags are reduced to one readable message.
func HandleBindingError(c *gin.Context, err error) {
	message := "Invalid request format"

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		message = formatValidationError(validationErrs[0])
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeBadRequest, message))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "ne":
		return e.Field() + " must not be " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
