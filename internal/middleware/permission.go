package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/pkg/response"
	"gorm.io/gorm"
)

// Permission 权限中间件，要求当前用户持有指定权限中的任意一个
// 权限经由 用户->角色->权限 两级关联判定
func Permission(db *gorm.DB, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == 0 {
			response.Unauthorized(c, "Unauthenticated.", nil)
			c.Abort()
			return
		}

		var count int64
		err := db.Model(&model.Permission{}).
			Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
			Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
			Where("user_roles.user_id = ? AND permissions.name IN ?", userID, permissions).
			Count(&count).Error
		if err != nil {
			response.InternalServerError(c, "Failed", err)
			c.Abort()
			return
		}

		if count == 0 {
			response.Forbidden(c, "User does not have the right permissions.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
