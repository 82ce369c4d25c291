package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ecohub/internal/auth"
	"ecohub/internal/logger"
	"ecohub/internal/models"
	"ecohub/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CheckUserKey = "user"
	ClaimsKey    = "claims"
)

// Authenticator 校验令牌并加载用户
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// AuthRequired ensures a valid bearer token is present
func AuthRequired(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		user, claims, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		c.Set(CheckUserKey, user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// abortAuth 令牌或用户无效返回 401，存储故障返回 500 且不暴露原因
func abortAuth(c *gin.Context, err error) {
	if errors.Is(err, auth.ErrInvalidToken) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
		return
	}
	if services.KindOf(err) == services.KindUnauthorized {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": services.PublicMessage(err)})
		return
	}
	logger.Error("Authentication failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(RequestIDKey)),
		zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// AdminRequired 必须放在 AuthRequired 之后
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

// CurrentUser 未登录时返回 nil
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
