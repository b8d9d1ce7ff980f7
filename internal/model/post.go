package model

// Post 文章模型
type Post struct {
	Base
	Title      string `gorm:"type:varchar(255);not null;uniqueIndex" json:"title"`
	Slug       string `gorm:"type:varchar(255);not null;index" json:"slug"`
	Image      string `gorm:"type:varchar(255)" json:"image"`
	Content    string `gorm:"type:longtext" json:"content"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
