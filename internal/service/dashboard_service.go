package service

import (
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/model"
	"gorm.io/gorm"
)

// DashboardService 仪表盘服务
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 创建仪表盘服务实例
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Counts 统计分类、文章、用户总数
func (s *DashboardService) Counts() (*dto.DashboardResponse, error) {
	var resp dto.DashboardResponse

	if err := s.db.Model(&model.Category{}).Count(&resp.Categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.Post{}).Count(&resp.Posts).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&model.User{}).Count(&resp.Users).Error; err != nil {
		return nil, err
	}

	return &resp, nil
}
