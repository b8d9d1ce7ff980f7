package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardApi 仪表盘控制器
type DashboardApi struct {
	logger           *zap.SugaredLogger
	dashboardService *service.DashboardService
}

// NewDashboardApi 创建仪表盘控制器实例
func NewDashboardApi(db *gorm.DB) *DashboardApi {
	return &DashboardApi{
		logger:           logger.GetSugaredLogger(),
		dashboardService: service.NewDashboardService(db),
	}
}

// Index 统计数据
func (api *DashboardApi) Index(c *gin.Context) {
	counts, err := api.dashboardService.Counts()
	if err != nil {
		api.logger.Errorf("获取统计数据失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", counts)
}
