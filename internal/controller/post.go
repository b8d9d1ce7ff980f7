package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/middleware"
	"github.com/qrizan/cms-api/internal/service"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostApi 文章控制器，列表和详情只覆盖当前用户自己的文章
type PostApi struct {
	logger      *zap.SugaredLogger
	postService *service.PostService
}

// NewPostApi 创建文章控制器实例
func NewPostApi(db *gorm.DB, store *storage.Local) *PostApi {
	return &PostApi{
		logger:      logger.GetSugaredLogger(),
		postService: service.NewPostService(db, store),
	}
}

// Index 当前用户的文章分页列表
func (api *PostApi) Index(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	pagination, err := api.postService.List(middleware.CurrentUserID(c), &req)
	if err != nil {
		api.logger.Errorf("获取文章列表失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}

	response.Success(c, "Success", pagination)
}

// Store 创建文章，作者固定为当前用户
func (api *PostApi) Store(c *gin.Context) {
	var req dto.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	file, _ := c.FormFile("image")

	post, errs, err := api.postService.Create(middleware.CurrentUserID(c), &req, file)
	if err != nil {
		api.logger.Errorf("创建文章失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", post)
}

// Show 文章详情，只能查看自己的文章
func (api *PostApi) Show(c *gin.Context) {
	post, err := api.postService.GetByID(middleware.CurrentUserID(c), parseID(c))
	if err != nil {
		api.logger.Errorf("获取文章详情失败: %v", err)
		response.InternalServerError(c, "Failed", err)
		return
	}
	if post == nil {
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", post)
}

// Update 更新文章，非作者返回Unauthorized
func (api *PostApi) Update(c *gin.Context) {
	var req dto.PostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ValidationError(c, validation.Translate(err))
		return
	}

	file, _ := c.FormFile("image")

	post, errs, err := api.postService.Update(middleware.CurrentUserID(c), parseID(c), &req, file)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			response.Failed(c, "Unauthorized")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("更新文章失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	response.Success(c, "Success", post)
}

// Destroy 删除文章，非作者返回Unauthorized
func (api *PostApi) Destroy(c *gin.Context) {
	if err := api.postService.Delete(middleware.CurrentUserID(c), parseID(c)); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			response.Failed(c, "Unauthorized")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Failed(c, "Failed")
			return
		}
		api.logger.Errorf("删除文章失败: %v", err)
		response.Failed(c, "Failed")
		return
	}

	response.Success(c, "Success", nil)
}

// StoreImage 保存编辑器内容图片，返回裸url对象，不走统一信封
func (api *PostApi) StoreImage(c *gin.Context) {
	file, _ := c.FormFile("image")

	url, errs, err := api.postService.StoreImage(file)
	if err != nil {
		api.logger.Errorf("保存文章图片失败: %v", err)
		response.Failed(c, "Failed")
		return
	}
	if errs.Any() {
		response.ValidationError(c, errs)
		return
	}

	c.JSON(http.StatusOK, dto.PostImageResponse{URL: url})
}
