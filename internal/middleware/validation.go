package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/validation"
)

// BindJSON decodes the request body into obj and runs struct validation.
// Malformed bodies are bad requests; failed rules are validation errors.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.NewBadRequestError(fmt.Sprintf("Invalid request format: %v", err))
	}
	return validation.Struct(obj)
}
