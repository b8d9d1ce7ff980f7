package service

import (
	"testing"

	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createRole(t *testing.T, db *gorm.DB, name string) *model.Role {
	t.Helper()

	role := &model.Role{Name: name}
	require.NoError(t, db.Create(role).Error)
	return role
}

func TestUserCreate(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")

	resp, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"editor"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	require.Len(t, resp.Roles, 1)
	assert.Equal(t, "editor", resp.Roles[0].Name)

	// 密码以bcrypt存储
	var user model.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Str0ng!Pass")))
}

func TestUserCreatePasswordRules(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")

	tests := []struct {
		name     string
		password string
		confirm  string
		message  string
	}{
		{"missing", "", "", "The password field is required."},
		{"mismatch", "Str0ng!Pass", "Other!Pass1", "The password confirmation does not match."},
		{"short", "S0!a", "S0!a", "The password must be at least 8 characters."},
		{"no mixed case", "str0ng!pass", "str0ng!pass", "The password must contain at least one uppercase and one lowercase letter."},
		{"no numbers", "Strong!Pass", "Strong!Pass", "The password must contain at least one number."},
		{"no symbols", "Str0ngPass", "Str0ngPass", "The password must contain at least one symbol."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs, err := svc.Create(&dto.UserRequest{
				Name:                 "Alice",
				Email:                "alice@example.com",
				Password:             tt.password,
				PasswordConfirmation: tt.confirm,
				Roles:                []string{"editor"},
			})
			require.NoError(t, err)
			require.Contains(t, errs, "password")
			assert.Contains(t, errs["password"], tt.message)
		})
	}
}

func TestUserCreateUnknownRole(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)

	_, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"ghost"},
	})
	require.NoError(t, err)
	require.Contains(t, errs, "roles")
	assert.Equal(t, "The selected roles is invalid.", errs["roles"][0])
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")
	createUser(t, db, "Existing", "alice@example.com")

	_, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"editor"},
	})
	require.NoError(t, err)
	require.Contains(t, errs, "email")
	assert.Equal(t, "The email has already been taken.", errs["email"][0])
}

func TestUserUpdateKeepsPasswordWhenBlank(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")

	created, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"editor"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	_, errs, err = svc.Update(created.ID, &dto.UserRequest{
		Name:  "Alice Renamed",
		Email: "alice@example.com",
		Roles: []string{"editor"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	var user model.User
	require.NoError(t, db.First(&user, created.ID).Error)
	assert.Equal(t, "Alice Renamed", user.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Str0ng!Pass")))
}

func TestUserUpdateSyncsRoles(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")
	createRole(t, db, "reviewer")

	created, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"editor"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	updated, errs, err := svc.Update(created.ID, &dto.UserRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Roles: []string{"reviewer"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	require.Len(t, updated.Roles, 1)
	assert.Equal(t, "reviewer", updated.Roles[0].Name)

	// 关联表里旧角色已被移除
	var user model.User
	require.NoError(t, db.Preload("Roles").First(&user, created.ID).Error)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, "reviewer", user.Roles[0].Name)
}

func TestUserDeleteClearsRoles(t *testing.T) {
	db, _ := setupEnv(t)
	svc := NewUserService(db)
	createRole(t, db, "editor")

	created, errs, err := svc.Create(&dto.UserRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "Str0ng!Pass",
		PasswordConfirmation: "Str0ng!Pass",
		Roles:                []string{"editor"},
	})
	require.NoError(t, err)
	require.False(t, errs.Any())

	require.NoError(t, svc.Delete(created.ID))

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var count int64
	require.NoError(t, db.Table("user_roles").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
