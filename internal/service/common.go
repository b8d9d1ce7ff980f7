package service

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/qrizan/cms-api/internal/config"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/qrizan/cms-api/internal/validation"
)

// 时间格式与既有接口契约保持一致
const timeFormat = "2006-01-02 15:04:05"

// ErrNotOwner 资源不属于当前用户
var ErrNotOwner = errors.New("资源不属于当前用户")

// validateImage 校验上传图片的扩展名和大小，限制来自存储配置
func validateImage(errs validation.Errors, file *multipart.FileHeader, required bool) {
	cfg := config.GlobalConfig.Storage

	if file == nil {
		if required {
			errs.Add("image", validation.MsgRequired("image"))
		}
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	allowed := false
	for _, t := range cfg.AllowTypes {
		if ext == t {
			allowed = true
			break
		}
	}
	if !allowed {
		errs.Add("image", validation.MsgMimes("image", cfg.AllowTypes))
	}

	if file.Size > cfg.MaxSize*1024 {
		errs.Add("image", validation.MsgMaxKilobytes("image", cfg.MaxSize))
	}
}

// likePattern 大小写不敏感的子串匹配模式
func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

func categoryResponse(store *storage.Local, c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Image:     store.URL(storage.DirCategories, c.Image),
		CreatedAt: c.CreatedAt.Format(timeFormat),
		UpdatedAt: c.UpdatedAt.Format(timeFormat),
	}
}

func postResponse(store *storage.Local, p *model.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Image:      store.URL(storage.DirPosts, p.Image),
		Content:    p.Content,
		CategoryID: p.CategoryID,
		UserID:     p.UserID,
		CreatedAt:  p.CreatedAt.Format(timeFormat),
		UpdatedAt:  p.UpdatedAt.Format(timeFormat),
	}
	if p.Category != nil {
		category := categoryResponse(store, p.Category)
		resp.Category = &category
	}
	if p.User != nil {
		resp.User = &dto.UserBrief{
			ID:    p.User.ID,
			Name:  p.User.Name,
			Email: p.User.Email,
		}
	}
	return resp
}

func permissionResponse(p *model.Permission) dto.PermissionResponse {
	return dto.PermissionResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(timeFormat),
		UpdatedAt: p.UpdatedAt.Format(timeFormat),
	}
}

func roleResponse(r *model.Role) dto.RoleResponse {
	resp := dto.RoleResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt.Format(timeFormat),
		UpdatedAt: r.UpdatedAt.Format(timeFormat),
	}
	for _, p := range r.Permissions {
		resp.Permissions = append(resp.Permissions, permissionResponse(p))
	}
	return resp
}

func userResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(timeFormat),
		UpdatedAt: u.UpdatedAt.Format(timeFormat),
	}
	for _, r := range u.Roles {
		resp.Roles = append(resp.Roles, roleResponse(r))
	}
	return resp
}
