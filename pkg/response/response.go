package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success bool   `json:"success"` // 是否成功
	Message string `json:"message"` // 响应消息
	Data    any    `json:"data"`    // 响应数据
}

// Pagination 分页数据，字段与前端既有契约保持一致
type Pagination struct {
	CurrentPage int   `json:"current_page"` // 当前页码
	Data        any   `json:"data"`         // 当前页数据
	LastPage    int   `json:"last_page"`    // 最后一页页码
	PerPage     int   `json:"per_page"`     // 每页大小
	Total       int64 `json:"total"`        // 总记录数
}

// NewPagination 创建分页数据
func NewPagination(page, perPage int, total int64, data any) *Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &Pagination{
		CurrentPage: page,
		Data:        data,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}

// Success 返回成功响应
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Failed 返回失败响应，HTTP状态码仍为200
func Failed(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string, err error) {
	// 记录详细错误信息，但不向客户端暴露
	if err != nil {
		c.Error(err)
	}

	c.JSON(code, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// BadRequest 400错误响应
func BadRequest(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized 401错误响应
func Unauthorized(c *gin.Context, message string, err error) {
	Error(c, http.StatusUnauthorized, message, err)
}

// Forbidden 403错误响应
func Forbidden(c *gin.Context, message string, err error) {
	Error(c, http.StatusForbidden, message, err)
}

// InternalServerError 500错误响应
func InternalServerError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}

// ValidationError 422响应，直接输出 字段->错误消息列表 的映射
func ValidationError(c *gin.Context, errs any) {
	c.JSON(http.StatusUnprocessableEntity, errs)
}
