package model

// Role 角色模型，一组可指派给用户的权限集合
type Role struct {
	Base
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`

	// 关联
	Permissions []*Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	Users       []*User       `gorm:"many2many:user_roles" json:"users,omitempty"`
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}
