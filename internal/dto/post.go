package dto

// PostRequest 创建/更新文章请求（multipart表单，图片文件单独取）
type PostRequest struct {
	Title      string `json:"title" form:"title" binding:"required,min=3,max=255"`
	CategoryID uint   `json:"category_id" form:"category_id" binding:"required"`
	Content    string `json:"content" form:"content" binding:"required"`
}

// PostResponse 文章响应
type PostResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Image      string            `json:"image"`
	Content    string            `json:"content"`
	CategoryID uint              `json:"category_id"`
	UserID     uint              `json:"user_id"`
	Category   *CategoryResponse `json:"category,omitempty"`
	User       *UserBrief        `json:"user,omitempty"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}

// PostImageResponse 编辑器图片上传响应
type PostImageResponse struct {
	URL string `json:"url"`
}
