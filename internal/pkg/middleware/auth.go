package middleware

import (
	"net/http"
	"strings"

	"social_feed/internal/domain/user/model"
	"social_feed/pkg/response"
	"social_feed/pkg/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware JWT认证中间件，无有效 token 直接拒绝
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromHeader(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or missing token")
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证中间件
// 有有效 token 则注入 principal，否则以匿名身份继续，由业务层决定是否拒绝
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := principalFromHeader(c); ok {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

// GetPrincipal 从上下文取出已认证主体，匿名请求返回 nil
func GetPrincipal(c *gin.Context) *model.Principal {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := val.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}

func principalFromHeader(c *gin.Context) (*model.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// 检查格式 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}

	return &model.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, true
}
