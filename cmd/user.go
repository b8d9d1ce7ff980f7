package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/qrizan/cms-api/internal/database"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
	"gorm.io/gorm"
)

// userCmd 用户管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "用户管理命令",
	Long:  `用户管理相关的命令，包括创建管理员、列出用户、重置密码等`,
}

// createAdminCmd 创建管理员用户命令
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "创建管理员用户",
	Long:  `交互式创建管理员用户并绑定admin角色`,
	Run: func(cmd *cobra.Command, args []string) {
		createAdminUser()
	},
}

// listUsersCmd 列出用户命令
var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "列出用户",
	Long:  `列出系统中的用户`,
	Run: func(cmd *cobra.Command, args []string) {
		listUsers()
	},
}

// resetPasswordCmd 重置用户密码命令
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [email]",
	Short: "重置用户密码",
	Long:  `重置指定邮箱用户的密码`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resetUserPassword(args[0])
	},
}

func init() {
	// 添加用户相关子命令
	userCmd.AddCommand(createAdminCmd)
	userCmd.AddCommand(listUsersCmd)
	userCmd.AddCommand(resetPasswordCmd)

	// 将用户命令添加到根命令
	rootCmd.AddCommand(userCmd)
}

// createAdminUser 创建管理员用户
func createAdminUser() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("请输入管理员名称: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("请输入管理员邮箱: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("请输入管理员密码: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Printf("读取密码失败: %v\n", err)
		return
	}
	password := string(passwordBytes)
	fmt.Println() // 换行

	fmt.Print("请确认管理员密码: ")
	confirmPasswordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Printf("读取确认密码失败: %v\n", err)
		return
	}
	confirmPassword := string(confirmPasswordBytes)
	fmt.Println() // 换行

	if password != confirmPassword {
		fmt.Println("两次输入的密码不一致")
		return
	}

	// 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("密码加密失败: %v\n", err)
		return
	}

	db := database.GetDB()

	// 检查邮箱是否已存在
	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		fmt.Printf("查询用户失败: %v\n", err)
		return
	}
	if count > 0 {
		fmt.Println("邮箱已存在")
		return
	}

	// admin角色必须已由种子数据创建
	var role model.Role
	if err := db.Where("name = ?", model.AdminRole).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Println("admin角色不存在，请先执行 db seed")
			return
		}
		fmt.Printf("查询角色失败: %v\n", err)
		return
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Model(user).Association("Roles").Append(&role)
	})
	if err != nil {
		fmt.Printf("创建管理员用户失败: %v\n", err)
		return
	}

	fmt.Printf("管理员用户创建成功！\n")
	fmt.Printf("名称: %s\n", name)
	fmt.Printf("邮箱: %s\n", email)
}

// listUsers 列出用户
func listUsers() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	db := database.GetDB()
	var users []model.User

	if err := db.Preload("Roles").
		Order("created_at DESC").
		Limit(50).
		Find(&users).Error; err != nil {
		fmt.Printf("查询用户列表失败: %v\n", err)
		return
	}

	fmt.Printf("%-5s %-20s %-30s %-20s %-20s\n",
		"ID", "名称", "邮箱", "角色", "创建时间")
	fmt.Println(strings.Repeat("-", 95))

	for _, user := range users {
		roles := make([]string, 0, len(user.Roles))
		for _, r := range user.Roles {
			roles = append(roles, r.Name)
		}

		fmt.Printf("%-5d %-20s %-30s %-20s %-20s\n",
			user.ID, user.Name, user.Email,
			strings.Join(roles, ","), user.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// resetUserPassword 重置用户密码
func resetUserPassword(email string) {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	db := database.GetDB()

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Println("用户不存在")
			return
		}
		fmt.Printf("查询用户失败: %v\n", err)
		return
	}

	fmt.Print("请输入新密码: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Printf("读取密码失败: %v\n", err)
		return
	}
	fmt.Println() // 换行

	hashedPassword, err := bcrypt.GenerateFromPassword(passwordBytes, bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("密码加密失败: %v\n", err)
		return
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		fmt.Printf("重置密码失败: %v\n", err)
		return
	}

	fmt.Printf("用户 %s 密码重置成功\n", email)
}
