package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/middleware"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthApi 认证控制器
type AuthApi struct {
	logger      *zap.SugaredLogger
	authService *service.AuthService
}

// NewAuthApi 创建认证控制器实例
func NewAuthApi(db *gorm.DB) *AuthApi {
	return &AuthApi{
		logger:      logger.GetSugaredLogger(),
		authService: service.NewAuthService(db),
	}
}

// Login 登录
// 成功响应的token、user、permissions均为顶层键，与既有前端契约一致
func (api *AuthApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	result, err := api.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, "Email or Password is incorrect", nil)
			return
		}
		api.logger.Errorf("登录失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "User successfully login",
		"token":       result.Token,
		"user":        result.User,
		"permissions": result.Permissions,
	})
}

// Logout 登出，将当前令牌拉黑
func (api *AuthApi) Logout(c *gin.Context) {
	token := middleware.CurrentToken(c)
	if err := api.authService.Logout(token); err != nil {
		api.logger.Errorf("登出失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User successfully signed out",
	})
}
