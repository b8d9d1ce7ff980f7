package dto

// RoleRequest 创建/更新角色请求
type RoleRequest struct {
	Name        string   `json:"name" form:"name" binding:"required,min=3,max=255"`
	Permissions []string `json:"permissions" form:"permissions" binding:"required,min=1"`
}

// RoleResponse 角色响应
type RoleResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}
