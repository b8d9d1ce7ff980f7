package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// loginAs 创建带指定权限的用户并签发令牌
func loginAs(t *testing.T, db *gorm.DB, email string, permissions ...string) string {
	t.Helper()

	user := &model.User{Name: "Tester", Email: email, Password: "x"}
	require.NoError(t, db.Create(user).Error)

	if len(permissions) > 0 {
		role := &model.Role{Name: email + "-role"}
		require.NoError(t, db.Create(role).Error)
		for _, name := range permissions {
			var p model.Permission
			require.NoError(t, db.Where("name = ?", name).FirstOrCreate(&p, model.Permission{Name: name}).Error)
			require.NoError(t, db.Model(role).Association("Permissions").Append(&p))
		}
		require.NoError(t, db.Model(user).Association("Roles").Append(role))
	}

	token, err := auth.GenerateToken(user.ID, user.Name, user.Email)
	require.NoError(t, err)
	return token
}

func TestCategoryCrudFlow(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	// 创建
	w := doMultipart(t, r, http.MethodPost, "/api/admin/categories", token,
		map[string]string{"name": "Tech News"}, "cover.png", "png-bytes")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Tech News", data["name"])
	assert.Equal(t, "tech-news", data["slug"])
	assert.Contains(t, data["image"], "/storage/categories/")
	id := uint(data["id"].(float64))

	// 重名创建返回422
	w = doMultipart(t, r, http.MethodPost, "/api/admin/categories", token,
		map[string]string{"name": "Tech News"}, "cover2.png", "other-bytes")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w), "name")

	// 搜索列表
	w = doJSON(r, http.MethodGet, "/api/admin/categories?search=tech", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	page := body["data"].(map[string]any)
	assert.EqualValues(t, 1, page["total"])
	assert.EqualValues(t, 10, page["per_page"])

	// 详情
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/admin/categories/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])

	// 删除后详情返回失败信封
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/admin/categories/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed", body["message"])
}

func TestCategoryStoreWithoutImage(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	w := doMultipart(t, r, http.MethodPost, "/api/admin/categories", token,
		map[string]string{"name": "Tech News"}, "", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w), "image")
}

func TestPermissionDenied(t *testing.T) {
	r, db := setupServer(t)
	token := loginAs(t, db, "limited@example.com", "posts.index")

	w := doJSON(r, http.MethodGet, "/api/admin/categories", token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User does not have the right permissions")
}

func TestPostOwnership(t *testing.T) {
	r, db := setupServer(t)

	aliceToken := loginAs(t, db, "alice@example.com",
		"posts.index", "posts.create", "posts.edit", "posts.delete")
	bobToken := loginAs(t, db, "bob@example.com",
		"posts.index", "posts.create", "posts.edit", "posts.delete")

	category := &model.Category{Name: "News", Slug: "news"}
	require.NoError(t, db.Create(category).Error)

	// Alice创建文章
	w := doMultipart(t, r, http.MethodPost, "/api/admin/posts", aliceToken,
		map[string]string{
			"title":       "Alice Post",
			"category_id": fmt.Sprintf("%d", category.ID),
			"content":     "<p>body</p>",
		}, "p.png", "img")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, true, body["success"])
	id := uint(body["data"].(map[string]any)["id"].(float64))

	// Bob持有posts.delete但不是作者，删除返回200的Unauthorized信封
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", id), bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["message"])

	// Bob的列表里看不到Alice的文章
	w = doJSON(r, http.MethodGet, "/api/admin/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 0, page["total"])

	// 作者本人删除成功
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", id), aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}

func TestPostStoreImageRawResponse(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	w := doMultipart(t, r, http.MethodPost, "/api/admin/posts/storeImagePost", token,
		nil, "editor.png", "img-bytes")
	require.Equal(t, http.StatusOK, w.Code)

	// 裸url对象，没有统一信封
	body := decode(t, w)
	assert.Contains(t, body["url"], "/storage/post_images/")
	assert.NotContains(t, body, "success")
}

func TestDashboard(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	require.NoError(t, db.Create(&model.Category{Name: "News", Slug: "news"}).Error)

	w := doJSON(r, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["categories"])
	assert.EqualValues(t, 1, data["users"]) // 种子管理员
	assert.EqualValues(t, 0, data["posts"])
}

func TestPermissionsEndpointMessages(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	w := doJSON(r, http.MethodGet, "/api/admin/permissions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully get permissions data", decode(t, w)["message"])

	w = doJSON(r, http.MethodGet, "/api/admin/permissions/all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully get all permissions data", decode(t, w)["message"])
}

func TestUserStoreValidation(t *testing.T) {
	r, db := setupServer(t)
	token := loginAdmin(t, r, db)

	w := doJSON(r, http.MethodPost, "/api/admin/users", token, map[string]any{
		"name":                  "Weak",
		"email":                 "weak@example.com",
		"password":              "short",
		"password_confirmation": "short",
		"roles":                 []string{"admin"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w), "password")
}
