package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"Email", "email"},
		{"CategoryID", "category_id"},
		{"PasswordConfirmation", "password_confirmation"},
		{"ID", "id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SnakeCase(tt.in), tt.in)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "category id", DisplayName("category_id"))
	assert.Equal(t, "name", DisplayName("name"))
}

func TestTranslate(t *testing.T) {
	type form struct {
		Name  string `validate:"required,min=3"`
		Email string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(form{Name: "ab", Email: "nope"})
	require.Error(t, err)

	errs := Translate(err)
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "email")
	assert.Equal(t, "The name must be at least 3 characters.", errs["name"][0])
	assert.Equal(t, "The email must be a valid email address.", errs["email"][0])
}

func TestTranslateNonFieldError(t *testing.T) {
	errs := Translate(assert.AnError)
	require.Contains(t, errs, "message")
}

func TestErrorsAddAny(t *testing.T) {
	errs := Errors{}
	assert.False(t, errs.Any())

	errs.Add("name", MsgTaken("name"))
	errs.Add("name", MsgRequired("name"))
	assert.True(t, errs.Any())
	assert.Len(t, errs["name"], 2)
}

func TestMessageBuilders(t *testing.T) {
	assert.Equal(t, "The name has already been taken.", MsgTaken("name"))
	assert.Equal(t, "The selected category id is invalid.", MsgExists("category_id"))
	assert.Equal(t, "The image must be a file of type: jpeg, jpg, png.", MsgMimes("image", []string{"jpeg", "jpg", "png"}))
	assert.Equal(t, "The image must not be greater than 2000 kilobytes.", MsgMaxKilobytes("image", 2000))
	assert.Equal(t, "The password confirmation does not match.", MsgConfirmed("password"))
	assert.Equal(t, "The password must be at least 8 characters.", MsgMinChars("password", 8))
}
