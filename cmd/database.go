package cmd

import (
	"fmt"
	"os"

	"github.com/qrizan/cms-api/internal/database"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/spf13/cobra"
)

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表和初始化种子数据`,
}

// migrateCmd 初始化数据库表命令
// 示例：./cms-api db migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "初始化数据库表",
	Long:  `按模型定义创建或更新数据库表结构`,
	Run: func(cmd *cobra.Command, args []string) {
		migrateTables()
	},
}

// seedCmd 初始化种子数据命令
// 示例：./cms-api db seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "初始化种子数据",
	Long:  `写入权限、admin角色和管理员账号等种子数据，可重复执行`,
	Run: func(cmd *cobra.Command, args []string) {
		seedData()
	},
}

func init() {
	databaseCmd.AddCommand(migrateCmd)
	databaseCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(databaseCmd)
}

// migrateTables 初始化数据库表
func migrateTables() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	if err := model.InitTables(database.GetDB()); err != nil {
		fmt.Printf("初始化数据库表失败: %v\n", err)
		return
	}

	fmt.Println("数据库表初始化成功")
}

// seedData 初始化种子数据
func seedData() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}

	if err := model.Seed(database.GetDB()); err != nil {
		fmt.Printf("初始化种子数据失败: %v\n", err)
		return
	}

	fmt.Printf("种子数据初始化成功，管理员账号: %s\n", model.AdminEmail)
}
