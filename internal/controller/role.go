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

// RoleApi 角色控制器
type RoleApi struct {
	logger      *zap.SugaredLogger
	roleService *service.RoleService
}

// NewRoleApi 创建角色控制器实例
func NewRoleApi(db *gorm.DB) *RoleApi {
	return &RoleApi{
		logger:      logger.GetSugaredLogger(),
		roleService: service.NewRoleService(db),
	}
}

// Index 角色分页列表
func (api *RoleApi) Index(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.roleService.List(&req)
	if err != nil {
		api.logger.Errorf("获取角色列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// All 全量角色列表，供用户表单的角色选项使用
func (api *RoleApi) All(c *gin.Context) {
	roles, err := api.roleService.All()
	if err != nil {
		api.logger.Errorf("获取全量角色失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", roles)
}

// Store 创建角色
func (api *RoleApi) Store(c *gin.Context) {
	var req dto.RoleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	role, errs, err := api.roleService.Create(&req)
	if err != nil {
		api.logger.Errorf("创建角色失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", role)
}

// Show 角色详情
func (api *RoleApi) Show(c *gin.Context) {
	role, err := api.roleService.GetByID(parseID(c))
	if err != nil {
		api.logger.Errorf("获取角色详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if role == nil {
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", role)
}

// Update 更新角色
func (api *RoleApi) Update(c *gin.Context) {
	var req dto.RoleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	role, errs, err := api.roleService.Update(parseID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("更新角色失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", role)
}

// Destroy 删除角色
func (api *RoleApi) Destroy(c *gin.Context) {
	if err := api.roleService.Delete(parseID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("删除角色失败: %v", err)
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", nil)
}
