package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/pkg/helpers"
	"github.com/oksasatya/heart-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth verifies the Bearer token and sets userID and userEmail in the Gin
// context. Missing and expired tokens are 401; any other failure is 403.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abort(c, http.StatusUnauthorized, domain.ErrMissingToken)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				abort(c, http.StatusUnauthorized, domain.ErrExpiredToken)
				return
			}
			abort(c, http.StatusForbidden, domain.ErrBadToken)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abort(c *gin.Context, status int, err *domain.Error) {
	response.Error[any](c, status, err.Message, nil)
	c.Abort()
}
