package dto

// DefaultPageSize 列表接口固定每页10条
const DefaultPageSize = 10

// ListRequest 列表查询参数
type ListRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Search string `form:"search" binding:"omitempty,max=255"`
}

// Normalize 页码兜底
func (r *ListRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
}
