package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserApi 用户控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

// NewUserApi 创建用户控制器实例
func NewUserApi(db *gorm.DB) *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: service.NewUserService(db),
	}
}

// Index 用户分页列表
func (api *UserApi) Index(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.userService.List(&req)
	if err != nil {
		api.logger.Errorf("获取用户列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// Store 创建用户
func (api *UserApi) Store(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	user, errs, err := api.userService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建用户失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", user)
}

// Show 用户详情
func (api *UserApi) Show(c *gin.Context) {
	user, err := api.userService.GetByID(parseID(c))
	if err != nil {
		api.logger.Errorf("获取用户详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if user == nil {
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", user)
}

// Update 更新用户，密码留空表示不修改
func (api *UserApi) Update(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	user, errs, err := api.userService.Update(parseID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("更新用户失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", user)
}

// Destroy 删除用户
func (api *UserApi) Destroy(c *gin.Context) {
	if err := api.userService.Delete(parseID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("删除用户失败: %v", err)
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", nil)
}
