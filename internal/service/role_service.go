package service

import (
	"errors"

	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoleService 角色服务
type RoleService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewRoleService 创建角色服务实例
func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
}

// List 角色分页列表，支持名称子串搜索，带权限
func (s *RoleService) List(req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.Role{})
	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var roles []model.Role
	if err := query.Preload("Permissions").
		Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&roles).Error; err != nil {
		return nil, err
	}

	list := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		list = append(list, roleResponse(&roles[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// All 全量角色列表，不分页，供用户表单的角色选项使用
func (s *RoleService) All() ([]dto.RoleResponse, error) {
	var roles []model.Role
	if err := s.db.Order("created_at DESC").Find(&roles).Error; err != nil {
		return nil, err
	}

	list := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		list = append(list, roleResponse(&roles[i]))
	}
	return list, nil
}

// Create 创建角色并绑定权限
func (s *RoleService) Create(req *dto.RoleRequest) (*dto.RoleResponse, validation.Errors, error) {
	errs := validation.Errors{}

	var count int64
	if err := s.db.Model(&model.Role{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("name", validation.MsgTaken("name"))
	}

	permissions, err := s.findPermissions(errs, req.Permissions)
	if err != nil {
		return nil, nil, err
	}

	if errs.Any() {
		return nil, errs, nil
	}

	role := &model.Role{Name: req.Name}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return tx.Model(role).Association("Permissions").Replace(permissions)
	})
	if err != nil {
		return nil, nil, err
	}

	role.Permissions = permissions
	resp := roleResponse(role)
	return &resp, nil, nil
}

// GetByID 获取角色详情，带权限，不存在时返回nil
func (s *RoleService) GetByID(id uint) (*dto.RoleResponse, error) {
	var role model.Role
	err := s.db.Preload("Permissions").First(&role, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := roleResponse(&role)
	return &resp, nil
}

// Update 更新角色，权限按差集同步
func (s *RoleService) Update(id uint, req *dto.RoleRequest) (*dto.RoleResponse, validation.Errors, error) {
	var role model.Role
	if err := s.db.Preload("Permissions").First(&role, id).Error; err != nil {
		return nil, nil, err
	}

	errs := validation.Errors{}

	var count int64
	if err := s.db.Model(&model.Role{}).Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("name", validation.MsgTaken("name"))
	}

	permissions, err := s.findPermissions(errs, req.Permissions)
	if err != nil {
		return nil, nil, err
	}

	if errs.Any() {
		return nil, errs, nil
	}

	role.Name = req.Name
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		return syncPermissions(tx, &role, permissions)
	})
	if err != nil {
		return nil, nil, err
	}

	role.Permissions = permissions
	resp := roleResponse(&role)
	return &resp, nil, nil
}

// Delete 删除角色并清理权限和用户关联
func (s *RoleService) Delete(id uint) error {
	var role model.Role
	if err := s.db.First(&role, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&role).Association("Permissions").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&role).Association("Users").Clear(); err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
}

// findPermissions 按名称查找权限，缺失的名称记录为字段错误
func (s *RoleService) findPermissions(errs validation.Errors, names []string) ([]*model.Permission, error) {
	var permissions []*model.Permission
	if err := s.db.Where("name IN ?", names).Find(&permissions).Error; err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		found[p.Name] = true
	}

	for _, name := range names {
		if !found[name] {
			errs.Add("permissions", validation.MsgExists("permissions"))
			break
		}
	}
	return permissions, nil
}

// syncPermissions 按目标集合与现有集合的差集增删权限关联
func syncPermissions(tx *gorm.DB, role *model.Role, target []*model.Permission) error {
	current := make(map[uint]*model.Permission, len(role.Permissions))
	for _, p := range role.Permissions {
		current[p.ID] = p
	}
	wanted := make(map[uint]bool, len(target))
	for _, p := range target {
		wanted[p.ID] = true
	}

	var toAdd []*model.Permission
	for _, p := range target {
		if _, ok := current[p.ID]; !ok {
			toAdd = append(toAdd, p)
		}
	}
	var toRemove []*model.Permission
	for id, p := range current {
		if !wanted[id] {
			toRemove = append(toRemove, p)
		}
	}

	if len(toAdd) > 0 {
		if err := tx.Model(role).Association("Permissions").Append(toAdd); err != nil {
			return err
		}
	}
	if len(toRemove) > 0 {
		if err := tx.Model(role).Association("Permissions").Delete(toRemove); err != nil {
			return err
		}
	}
	return nil
}
