package service

import (
	"errors"
	"unicode"

	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 密码强度下限
const passwordMinLength = 8

// UserService 用户服务
type UserService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewUserService 创建用户服务实例
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
}

// List 用户分页列表，支持名称子串搜索，带角色
func (s *UserService) List(req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.User{})
	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []model.User
	if err := query.Preload("Roles").
		Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&users).Error; err != nil {
		return nil, err
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, userResponse(&users[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// Create 创建用户并绑定角色
func (s *UserService) Create(req *dto.UserRequest) (*dto.UserResponse, validation.Errors, error) {
	errs := validation.Errors{}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("email", validation.MsgTaken("email"))
	}

	validatePassword(errs, req.Password, req.PasswordConfirmation, true)

	roles, err := s.findRoles(errs, req.Roles)
	if err != nil {
		return nil, nil, err
	}

	if errs.Any() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Model(user).Association("Roles").Replace(roles)
	})
	if err != nil {
		return nil, nil, err
	}

	user.Roles = roles
	resp := userResponse(user)
	return &resp, nil, nil
}

// GetByID 获取用户详情，带角色，不存在时返回nil
func (s *UserService) GetByID(id uint) (*dto.UserResponse, error) {
	var user model.User
	err := s.db.Preload("Roles").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := userResponse(&user)
	return &resp, nil
}

// Update 更新用户，密码留空表示保持不变，角色按差集同步
func (s *UserService) Update(id uint, req *dto.UserRequest) (*dto.UserResponse, validation.Errors, error) {
	var user model.User
	if err := s.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, nil, err
	}

	errs := validation.Errors{}

	var count int64
	if err := s.db.Model(&model.User{}).Where("email = ? AND id != ?", req.Email, id).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("email", validation.MsgTaken("email"))
	}

	validatePassword(errs, req.Password, req.PasswordConfirmation, false)

	roles, err := s.findRoles(errs, req.Roles)
	if err != nil {
		return nil, nil, err
	}

	if errs.Any() {
		return nil, errs, nil
	}

	user.Name = req.Name
	user.Email = req.Email
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, nil, err
		}
		user.Password = string(hash)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return syncRoles(tx, &user, roles)
	})
	if err != nil {
		return nil, nil, err
	}

	user.Roles = roles
	resp := userResponse(&user)
	return &resp, nil, nil
}

// Delete 删除用户并清理角色关联
func (s *UserService) Delete(id uint) error {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Association("Roles").Clear(); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// findRoles 按名称查找角色，缺失的名称记录为字段错误
func (s *UserService) findRoles(errs validation.Errors, names []string) ([]*model.Role, error) {
	var roles []*model.Role
	if err := s.db.Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(roles))
	for _, r := range roles {
		found[r.Name] = true
	}

	for _, name := range names {
		if !found[name] {
			errs.Add("roles", validation.MsgExists("roles"))
			break
		}
	}
	return roles, nil
}

// syncRoles 按目标集合与现有集合的差集增删角色关联
func syncRoles(tx *gorm.DB, user *model.User, target []*model.Role) error {
	current := make(map[uint]*model.Role, len(user.Roles))
	for _, r := range user.Roles {
		current[r.ID] = r
	}
	wanted := make(map[uint]bool, len(target))
	for _, r := range target {
		wanted[r.ID] = true
	}

	var toAdd []*model.Role
	for _, r := range target {
		if _, ok := current[r.ID]; !ok {
			toAdd = append(toAdd, r)
		}
	}
	var toRemove []*model.Role
	for id, r := range current {
		if !wanted[id] {
			toRemove = append(toRemove, r)
		}
	}

	if len(toAdd) > 0 {
		if err := tx.Model(user).Association("Roles").Append(toAdd); err != nil {
			return err
		}
	}
	if len(toRemove) > 0 {
		if err := tx.Model(user).Association("Roles").Delete(toRemove); err != nil {
			return err
		}
	}
	return nil
}

// validatePassword 校验密码强度与确认字段
// required为false且密码为空时跳过全部规则
func validatePassword(errs validation.Errors, password, confirmation string, required bool) {
	if password == "" {
		if required {
			errs.Add("password", validation.MsgRequired("password"))
		}
		return
	}

	if password != confirmation {
		errs.Add("password", validation.MsgConfirmed("password"))
	}
	if len(password) < passwordMinLength {
		errs.Add("password", validation.MsgMinChars("password", passwordMinLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper || !hasLower {
		errs.Add("password", validation.MsgMixedCase("password"))
	}
	if !hasDigit {
		errs.Add("password", validation.MsgNumbers("password"))
	}
	if !hasSymbol {
		errs.Add("password", validation.MsgSymbols("password"))
	}
}
