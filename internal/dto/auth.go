package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginUser 登录响应里的用户公开字段
type LoginUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
