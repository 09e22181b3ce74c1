package middleware

import (
	"net/http"

	"kardio/database"
	"kardio/models"

	"github.com/gin-gonic/gin"
)

const ctxCurrentUserKey = "currentUser"

// RequireAdmin 管理员校验中间件，需在 JWTAuth 之后使用
// 每次请求都回查用户表，管理员被撤销或锁定后立即生效
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == "" {
			abortUnauthorized(c, "请先登录")
			return
		}

		var user models.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			abortUnauthorized(c, "用户不存在")
			return
		}
		if !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "账号已锁定"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "权限不足"})
			return
		}

		c.Set(ctxCurrentUserKey, &user)
		c.Next()
	}
}

// GetCurrentAdmin 获取 RequireAdmin 加载的管理员
func GetCurrentAdmin(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxCurrentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
