package service

import (
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/pkg/response"
	"gorm.io/gorm"
)

// PermissionService 权限服务，权限由种子数据固定，只读
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService 创建权限服务实例
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// List 权限分页列表，支持名称子串搜索
func (s *PermissionService) List(req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.Permission{})
	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var permissions []model.Permission
	if err := query.Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&permissions).Error; err != nil {
		return nil, err
	}

	list := make([]dto.PermissionResponse, 0, len(permissions))
	for i := range permissions {
		list = append(list, permissionResponse(&permissions[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// All 全量权限列表，不分页，供角色表单的权限选项使用
func (s *PermissionService) All() ([]dto.PermissionResponse, error) {
	var permissions []model.Permission
	if err := s.db.Order("created_at DESC").Find(&permissions).Error; err != nil {
		return nil, err
	}

	list := make([]dto.PermissionResponse, 0, len(permissions))
	for i := range permissions {
		list = append(list, permissionResponse(&permissions[i]))
	}
	return list, nil
}
