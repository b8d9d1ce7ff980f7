package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qrizan/cms-api/internal/config"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/router"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/qrizan/cms-api/pkg/auth"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testLoggerOnce sync.Once

func init() {
	gin.SetMode(gin.TestMode)
}

// setupServer 构建带完整路由的测试服务
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	testLoggerOnce.Do(func() {
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
	auth.SetBlacklist(auth.NewMemoryBlacklist())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.InitTables(db))

	r := gin.New()
	router.Setup(r, db, storage.NewLocal(&config.GlobalConfig.Storage))
	return r, db
}

// doJSON 发送JSON请求
func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doMultipart 发送带文件的表单请求
func doMultipart(t *testing.T, r *gin.Engine, method, path, token string, fields map[string]string, imageName, imageContent string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte(imageContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode 解析JSON响应体
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// loginAdmin 写入种子数据并以管理员身份登录
func loginAdmin(t *testing.T, r *gin.Engine, db *gorm.DB) string {
	t.Helper()

	require.NoError(t, model.Seed(db))

	w := doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email":    model.AdminEmail,
		"password": model.AdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}
