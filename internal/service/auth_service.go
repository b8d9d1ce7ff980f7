package service

import (
	"errors"

	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/pkg/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 邮箱或密码错误
// 未注册邮箱和密码错误返回同一个错误，避免暴露账号是否存在
var ErrInvalidCredentials = errors.New("邮箱或密码错误")

// AuthService 认证服务
type AuthService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewAuthService 创建认证服务实例
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:     db,
		logger: logger.GetSugaredLogger(),
	}
}

// LoginResult 登录结果，字段在响应中均为顶层键
type LoginResult struct {
	Token       string
	User        dto.LoginUser
	Permissions []string
}

// Login 校验凭证并签发令牌，同时返回用户全部权限名
func (s *AuthService) Login(req *dto.LoginRequest) (*LoginResult, error) {
	var user model.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, err
	}

	permissions, err := s.Permissions(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("用户登录成功: %s", user.Email)

	return &LoginResult{
		Token:       token,
		User:        dto.LoginUser{Name: user.Name, Email: user.Email},
		Permissions: permissions,
	}, nil
}

// Logout 将令牌加入黑名单直至其自然过期
func (s *AuthService) Logout(token string) error {
	return auth.RevokeToken(token)
}

// Permissions 查询用户经由角色获得的全部权限名
func (s *AuthService) Permissions(userID uint) ([]string, error) {
	permissions := []string{}
	err := s.db.Model(&model.Permission{}).
		Distinct("permissions.name").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("permissions.name").
		Pluck("permissions.name", &permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}
