package model

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 初始管理员账号
const (
	AdminName     = "Administrator"
	AdminEmail    = "admin@example.com"
	AdminPassword = "qgURQ3+<"
	AdminRole     = "admin"
)

// PermissionNames 系统内置的全部权限名
var PermissionNames = []string{
	"categories.index", "categories.create", "categories.edit", "categories.delete",
	"posts.index", "posts.create", "posts.edit", "posts.delete",
	"users.index", "users.create", "users.edit", "users.delete",
	"roles.index", "roles.create", "roles.edit", "roles.delete",
	"permissions.index",
}

// Seed 写入初始数据：权限表、admin角色和管理员账号，可重复执行
func Seed(db *gorm.DB) error {
	// 权限
	permissions := make([]*Permission, 0, len(PermissionNames))
	for _, name := range PermissionNames {
		var p Permission
		if err := db.Where("name = ?", name).FirstOrCreate(&p, Permission{Name: name}).Error; err != nil {
			return fmt.Errorf("写入权限 %s 失败: %v", name, err)
		}
		permissions = append(permissions, &p)
	}

	// admin角色持有全部权限
	var role Role
	if err := db.Where("name = ?", AdminRole).FirstOrCreate(&role, Role{Name: AdminRole}).Error; err != nil {
		return fmt.Errorf("写入admin角色失败: %v", err)
	}
	if err := db.Model(&role).Association("Permissions").Replace(permissions); err != nil {
		return fmt.Errorf("同步admin角色权限失败: %v", err)
	}

	// 管理员账号
	var user User
	err := db.Where("email = ?", AdminEmail).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		hashed, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = User{
			Name:     AdminName,
			Email:    AdminEmail,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("创建管理员账号失败: %v", err)
		}
	} else if err != nil {
		return err
	}

	if err := db.Model(&user).Association("Roles").Replace([]*Role{&role}); err != nil {
		return fmt.Errorf("指派管理员角色失败: %v", err)
	}

	return nil
}
