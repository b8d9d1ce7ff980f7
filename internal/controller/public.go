package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PublicApi 公开接口控制器，无需认证
type PublicApi struct {
	logger          *zap.SugaredLogger
	categoryService *service.CategoryService
	postService     *service.PostService
}

// NewPublicApi 创建公开接口控制器实例
func NewPublicApi(db *gorm.DB, store *storage.Local) *PublicApi {
	return &PublicApi{
		logger:          logger.GetSugaredLogger(),
		categoryService: service.NewCategoryService(db, store),
		postService:     service.NewPostService(db, store),
	}
}

// Categories 公开分类分页列表
func (api *PublicApi) Categories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}
	req.Normalize()

	pagination, err := api.categoryService.PublicList(req.Page)
	if err != nil {
		api.logger.Errorf("获取公开分类列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// CategoryBySlug 公开分类详情，带该分类下的文章
// 不存在时保持 success:false 配 Success 消息的既有返回
func (api *PublicApi) CategoryBySlug(c *gin.Context) {
	category, err := api.categoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		api.logger.Errorf("获取公开分类详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if category == nil {
		response.Failed(c, "Success")
		return
	}

	response.Success(c, "Success", category)
}

// Posts 公开文章分页列表，支持标题搜索
func (api *PublicApi) Posts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.postService.PublicList(&req)
	if err != nil {
		api.logger.Errorf("获取公开文章列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// PostBySlug 公开文章详情
// 不存在时保持 success:true 配 Failed 消息的既有返回
func (api *PublicApi) PostBySlug(c *gin.Context) {
	post, err := api.postService.GetBySlug(c.Param("slug"))
	if err != nil {
		api.logger.Errorf("获取公开文章详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if post == nil {
		response.Success(c, "Failed", nil)
		return
	}

	response.Success(c, "Success", post)
}
