package model

// Category 分类模型
type Category struct {
	Base
	Name  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Slug  string `gorm:"type:varchar(255);not null;index" json:"slug"`
	Image string `gorm:"type:varchar(255)" json:"image"` // 存储的是文件名，对外地址由DTO拼接

	// 关联
	Posts []*Post `gorm:"foreignKey:CategoryID" json:"posts,omitempty"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
