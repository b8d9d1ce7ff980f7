package model

// User 用户模型
type User struct {
	Base
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:varchar(100);not null" json:"-"`

	// 关联
	Roles []*Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Posts []*Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
