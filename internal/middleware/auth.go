package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/pkg/auth"
	"github.com/qrizan/cms-api/pkg/response"
)

// 上下文键
const (
	ContextUserID    = "userID"
	ContextUserName  = "userName"
	ContextUserEmail = "userEmail"
	ContextToken     = "token"
)

// JWTAuth JWT认证中间件，解析Bearer令牌并把用户身份写入上下文
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			response.Unauthorized(c, "Unauthenticated.", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "Unauthenticated.", err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// ExtractToken 从Authorization头提取Bearer令牌，不存在时返回空串
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUserID 获取当前登录用户ID，未认证时返回0
func CurrentUserID(c *gin.Context) uint {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

// CurrentToken 获取当前请求携带的原始令牌
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
