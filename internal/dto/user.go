package dto

// UserRequest 创建/更新用户请求
// 创建时密码必填且有强度要求，更新时留空表示不修改，规则在服务层校验
type UserRequest struct {
	Name                 string   `json:"name" form:"name" binding:"required,min=3,max=255"`
	Email                string   `json:"email" form:"email" binding:"required,email,min=3,max=255"`
	Password             string   `json:"password" form:"password"`
	PasswordConfirmation string   `json:"password_confirmation" form:"password_confirmation"`
	Roles                []string `json:"roles" form:"roles" binding:"required,min=1"`
}

// UserBrief 用户简要信息，嵌在文章响应里
type UserBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Roles     []RoleResponse `json:"roles,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}
