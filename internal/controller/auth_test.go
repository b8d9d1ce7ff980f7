package controller_test

import (
	"net/http"
	"testing"

	"github.com/qrizan/cms-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccessShape(t *testing.T) {
	r, db := setupServer(t)
	require.NoError(t, model.Seed(db))

	w := doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email":    model.AdminEmail,
		"password": model.AdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User successfully login", body["message"])
	assert.NotEmpty(t, body["token"])

	// token、user、permissions均为顶层键
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, model.AdminName, user["name"])
	assert.Equal(t, model.AdminEmail, user["email"])

	permissions, ok := body["permissions"].([]any)
	require.True(t, ok)
	assert.Len(t, permissions, len(model.PermissionNames))
}

func TestLoginWrongCredentials(t *testing.T) {
	r, db := setupServer(t)
	require.NoError(t, model.Seed(db))

	w := doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email":    model.AdminEmail,
		"password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email or Password is incorrect", body["message"])
}

func TestLoginValidation(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/login", "", map[string]string{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// 422响应是裸的 字段->错误列表 映射
	body := decode(t, w)
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "password")
	assert.NotContains(t, body, "success")
}

func TestLogout(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	w := doJSON(r, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User successfully signed out", body["message"])

	// 拉黑后的令牌不能再访问受保护接口
	w = doJSON(r, http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(r, http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
