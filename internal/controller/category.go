package controller

import (
	"errors"

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

// CategoryApi 分类控制器
type CategoryApi struct {
	logger          *zap.SugaredLogger
	categoryService *service.CategoryService
}

// NewCategoryApi 创建分类控制器实例
func NewCategoryApi(db *gorm.DB, store *storage.Local) *CategoryApi {
	return &CategoryApi{
		logger:          logger.GetSugaredLogger(),
		categoryService: service.NewCategoryService(db, store),
	}
}

// Index 分类分页列表
func (api *CategoryApi) Index(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.categoryService.List(&req)
	if err != nil {
		api.logger.Errorf("获取分类列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// All 全量分类列表，供文章表单的分类选项使用
func (api *CategoryApi) All(c *gin.Context) {
	categories, err := api.categoryService.All()
	if err != nil {
		api.logger.Errorf("获取全量分类失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", categories)
}

// Store 创建分类
func (api *CategoryApi) Store(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	file, _ := c.FormFile("image")

	category, errs, err := api.categoryService.Create(&req, file)
	if err != nil {
		api.logger.Errorf("创建分类失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", category)
}

// Show 分类详情
func (api *CategoryApi) Show(c *gin.Context) {
	category, err := api.categoryService.GetByID(parseID(c))
	if err != nil {
		api.logger.Errorf("获取分类详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if category == nil {
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", category)
}

// Update 更新分类
func (api *CategoryApi) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	file, _ := c.FormFile("image")

	category, errs, err := api.categoryService.Update(parseID(c), &req, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("更新分类失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", category)
}

// Destroy 删除分类
func (api *CategoryApi) Destroy(c *gin.Context) {
	if err := api.categoryService.Delete(parseID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("删除分类失败: %v", err)
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", nil)
}
