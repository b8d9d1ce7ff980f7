package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PermissionApi 权限控制器，只读
type PermissionApi struct {
	logger            *zap.SugaredLogger
	permissionService *service.PermissionService
}

// NewPermissionApi 创建权限控制器实例
func NewPermissionApi(db *gorm.DB) *PermissionApi {
	return &PermissionApi{
		logger:            logger.GetSugaredLogger(),
		permissionService: service.NewPermissionService(db),
	}
}

// Index 权限分页列表
func (api *PermissionApi) Index(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.permissionService.List(&req)
	if err != nil {
		api.logger.Errorf("获取权限列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Successfully get permissions data", pagination)
}

// All 全量权限列表，供角色表单的权限选项使用
func (api *PermissionApi) All(c *gin.Context) {
	permissions, err := api.permissionService.All()
	if err != nil {
		api.logger.Errorf("获取全量权限失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Successfully get all permissions data", permissions)
}
