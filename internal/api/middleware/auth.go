package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskup/internal/pkg/jwt"
	"taskup/pkg/constants"
	"taskup/pkg/responses"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.ErrorWithCode(c, 401, "缺少Authorization Header")
			c.Abort()
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.ErrorWithCode(c, 401, "Authorization格式错误")
			c.Abort()
			return
		}

		// 提取Token
		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		// 验证Token
		claims, err := jwt.ValidateToken(token)
		if err != nil {
			responses.Error(c, err)
			c.Abort()
			return
		}

		// 检查Token类型(必须是AccessToken)
		if claims.Type != constants.JWTTypeAccess {
			responses.ErrorWithCode(c, 401, "无效的Token类型")
			c.Abort()
			return
		}

		// 将用户信息存入context
		c.Set(constants.JWTContextKey, claims)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}

// CurrentUser 从context取当前用户Claims, 仅在AuthMiddleware之后可用
func CurrentUser(c *gin.Context) *jwt.UserClaims {
	v, ok := c.Get(constants.JWTContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.UserClaims)
	return claims
}

// CurrentUserID 从context取当前用户ID
func CurrentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
