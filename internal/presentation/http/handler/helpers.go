package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/application/service"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/sypoint-pos/internal/presentation/http/middleware"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetCashier builds the register identity of the signed-in user
func GetCashier(c *gin.Context) (service.Cashier, bool) {
	userID := GetUserID(c)
	if userID == nil {
		return service.Cashier{}, false
	}
	return service.Cashier{
		ID:       *userID,
		Username: c.GetString(middleware.ContextUsername),
		FullName: c.GetString(middleware.ContextFullName),
		Role:     enum.Role(c.GetString(middleware.ContextRole)),
	}, true
}

// bindError answers a request whose body failed binding. Validator errors
// are reported per field, anything else as a malformed body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   toSnake(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	response.ValidationError(c, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
