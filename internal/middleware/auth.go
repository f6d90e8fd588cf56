package middleware

import (
	"net/http"
	"strings"

	"teamshop/internal/auth"
	"teamshop/internal/constants"

	"github.com/gin-gonic/gin"
)

// extractToken 从Authorization头提取Token，兼容带Bearer前缀的写法
func extractToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	return strings.TrimPrefix(token, "Bearer ")
}

// AdminAuth 管理员认证中间件
func AdminAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
			c.Abort()
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		if claims.Role != auth.RoleAdmin {
			c.JSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrInsufficientPermission})
			c.Abort()
			return
		}

		c.Set("subject_id", claims.SubjectID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// DistributorAuth 分销商认证中间件
func DistributorAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
			c.Abort()
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
			c.Abort()
			return
		}

		if claims.Role != auth.RoleDistributor {
			c.JSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrInsufficientPermission})
			c.Abort()
			return
		}

		c.Set("subject_id", claims.SubjectID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// GetSubjectID 从上下文读取认证主体ID
func GetSubjectID(c *gin.Context) uint64 {
	if v, ok := c.Get("subject_id"); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}
