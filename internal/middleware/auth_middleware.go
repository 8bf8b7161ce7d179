package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "timerdash/internal/errors"
	"timerdash/internal/service"
)

const SubjectContextKey = "subject"

// Auth requires a bearer token issued by tokens.
func Auth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			writeError(c, apperrors.Unauthorized("missing authorization header"))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			writeError(c, apperrors.Unauthorized("invalid authorization format"))
			return
		}

		subject, apiErr := tokens.Parse(token)
		if apiErr != nil {
			writeError(c, apiErr)
			return
		}

		c.Set(SubjectContextKey, subject)
		c.Next()
	}
}

func Subject(c *gin.Context) string {
	value, ok := c.Get(SubjectContextKey)
	if !ok {
		return ""
	}
	subject, _ := value.(string)
	return subject
}

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"details": apiErr.Details,
		},
	})
}
