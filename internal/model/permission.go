package model

// Permission 权限模型，形如 posts.delete 的原子能力
type Permission struct {
	Base
	Name string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`

	// 关联
	Roles []*Role `gorm:"many2many:role_permissions" json:"roles,omitempty"`
}

// TableName 指定表名
func (Permission) TableName() string {
	return "permissions"
}
