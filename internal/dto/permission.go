package dto

// PermissionResponse 权限响应
type PermissionResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// DashboardResponse 仪表盘统计响应
type DashboardResponse struct {
	Categories int64 `json:"categories"`
	Posts      int64 `json:"posts"`
	Users      int64 `json:"users"`
}
