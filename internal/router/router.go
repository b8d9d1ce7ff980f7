package router

import (
	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/config"
	"github.com/qrizan/cms-api/internal/controller"
	"github.com/qrizan/cms-api/internal/middleware"
	"github.com/qrizan/cms-api/internal/storage"
	"gorm.io/gorm"
)

// Setup 设置API路由
func Setup(r *gin.Engine, db *gorm.DB, store *storage.Local) {
	cfg := config.GetConfig()

	// 静态文件服务，让前端可以访问本地上传的图片
	r.Static("/storage", cfg.Storage.Path)

	api := r.Group("/api")

	// 认证相关路由
	setupAuthRoutes(api, db)

	// 管理端路由
	setupAdminRoutes(api, db, store)

	// 公开路由
	setupPublicRoutes(api, db, store)
}

// setupAuthRoutes 设置认证相关路由
func setupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authApi := controller.NewAuthApi(db)

	api.POST("/login", authApi.Login)
	api.POST("/logout", middleware.JWTAuth(), authApi.Logout)
}

// setupAdminRoutes 设置管理端路由
// 每条路由声明自己需要的权限，映射规则与前端菜单保持一致：
// index/all->X.index  store->X.create  show/update->X.edit  destroy->X.delete
func setupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, store *storage.Local) {
	categoryApi := controller.NewCategoryApi(db, store)
	postApi := controller.NewPostApi(db, store)
	userApi := controller.NewUserApi(db)
	roleApi := controller.NewRoleApi(db)
	permissionApi := controller.NewPermissionApi(db)
	dashboardApi := controller.NewDashboardApi(db)

	admin := api.Group("/admin", middleware.JWTAuth())
	{
		// 仪表盘只要求登录
		admin.GET("/dashboard", dashboardApi.Index)

		admin.GET("/categories", middleware.Permission(db, "categories.index"), categoryApi.Index)
		admin.GET("/categories/all", middleware.Permission(db, "categories.index"), categoryApi.All)
		admin.POST("/categories", middleware.Permission(db, "categories.create"), categoryApi.Store)
		admin.GET("/categories/:id", middleware.Permission(db, "categories.edit"), categoryApi.Show)
		admin.PUT("/categories/:id", middleware.Permission(db, "categories.edit"), categoryApi.Update)
		admin.DELETE("/categories/:id", middleware.Permission(db, "categories.delete"), categoryApi.Destroy)

		admin.GET("/posts", middleware.Permission(db, "posts.index"), postApi.Index)
		admin.POST("/posts", middleware.Permission(db, "posts.create"), postApi.Store)
		admin.POST("/posts/storeImagePost", middleware.Permission(db, "posts.create"), postApi.StoreImage)
		admin.GET("/posts/:id", middleware.Permission(db, "posts.edit"), postApi.Show)
		admin.PUT("/posts/:id", middleware.Permission(db, "posts.edit"), postApi.Update)
		admin.DELETE("/posts/:id", middleware.Permission(db, "posts.delete"), postApi.Destroy)

		admin.GET("/users", middleware.Permission(db, "users.index"), userApi.Index)
		admin.POST("/users", middleware.Permission(db, "users.create"), userApi.Store)
		admin.GET("/users/:id", middleware.Permission(db, "users.edit"), userApi.Show)
		admin.PUT("/users/:id", middleware.Permission(db, "users.edit"), userApi.Update)
		admin.DELETE("/users/:id", middleware.Permission(db, "users.delete"), userApi.Destroy)

		admin.GET("/roles", middleware.Permission(db, "roles.index"), roleApi.Index)
		admin.GET("/roles/all", middleware.Permission(db, "roles.index"), roleApi.All)
		admin.POST("/roles", middleware.Permission(db, "roles.create"), roleApi.Store)
		admin.GET("/roles/:id", middleware.Permission(db, "roles.edit"), roleApi.Show)
		admin.PUT("/roles/:id", middleware.Permission(db, "roles.edit"), roleApi.Update)
		admin.DELETE("/roles/:id", middleware.Permission(db, "roles.delete"), roleApi.Destroy)

		admin.GET("/permissions", middleware.Permission(db, "permissions.index"), permissionApi.Index)
		admin.GET("/permissions/all", middleware.Permission(db, "permissions.index"), permissionApi.All)
	}
}

// setupPublicRoutes 设置公开路由，无需认证
func setupPublicRoutes(api *gin.RouterGroup, db *gorm.DB, store *storage.Local) {
	publicApi := controller.NewPublicApi(db, store)

	public := api.Group("/public")
	{
		public.GET("/categories", publicApi.Categories)
		public.GET("/categories/:slug", publicApi.CategoryBySlug)
		public.GET("/posts", publicApi.Posts)
		public.GET("/posts/:slug", publicApi.PostBySlug)
	}
}
