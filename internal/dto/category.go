package dto

// CategoryRequest 创建/更新分类请求（multipart表单，图片文件单独取）
type CategoryRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=3,max=255"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"` // 对外完整地址
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CategoryDetailResponse 公开分类详情，带文章列表
type CategoryDetailResponse struct {
	CategoryResponse
	Posts []PostResponse `json:"posts"`
}
