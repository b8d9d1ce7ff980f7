package service

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"testing"

	"github.com/qrizan/cms-api/internal/config"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testEnvOnce sync.Once

// setupEnv 准备测试环境：全局配置、日志、内存数据库和本地存储
func setupEnv(t *testing.T) (*gorm.DB, *storage.Local) {
	t.Helper()

	testEnvOnce.Do(func() {
		logger.InitLogger(&config.LogConfig{Level: "error"})
	})

	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:     "test-secret",
			ExpireSeconds: 3600,
			Issuer:        "cms-api-test",
			Blacklist:     "memory",
		},
		Storage: config.StorageConfig{
			Path:       t.TempDir(),
			URLPrefix:  "http://localhost:8080",
			MaxSize:    2000,
			AllowTypes: []string{"jpeg", "jpg", "png"},
		},
	}

	// 每个测试使用独立的内存数据库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.InitTables(db))

	return db, storage.NewLocal(&config.GlobalConfig.Storage)
}

// fileHeader 构造上传文件
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

// createUser 创建测试用户
func createUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Email: email, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createCategory 创建测试分类
func createCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name, Slug: strings.ToLower(name), Image: ""}
	require.NoError(t, db.Create(category).Error)
	return category
}
