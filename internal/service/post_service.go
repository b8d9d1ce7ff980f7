package service

import (
	"errors"
	"mime/multipart"

	"github.com/gosimple/slug"
	"github.com/qrizan/cms-api/internal/dto"
	"github.com/qrizan/cms-api/internal/logger"
	"github.com/qrizan/cms-api/internal/model"
	"github.com/qrizan/cms-api/internal/storage"
	"github.com/qrizan/cms-api/internal/validation"
	"github.com/qrizan/cms-api/pkg/response"
	"github.com/qrizan/cms-api/pkg/sanitize"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostService 文章服务
type PostService struct {
	db     *gorm.DB
	store  *storage.Local
	logger *zap.SugaredLogger
}

// NewPostService 创建文章服务实例
func NewPostService(db *gorm.DB, store *storage.Local) *PostService {
	return &PostService{
		db:     db,
		store:  store,
		logger: logger.GetSugaredLogger(),
	}
}

// List 获取当前用户的文章分页列表，支持标题子串搜索
// 管理端列表只展示调用者自己的文章
func (s *PostService) List(userID uint, req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.Post{}).Where("user_id = ?", userID)
	if req.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []model.Post
	if err := query.Preload("User").Preload("Category").
		Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	list := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, postResponse(s.store, &posts[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// Create 创建文章，作者固定为当前用户
func (s *PostService) Create(userID uint, req *dto.PostRequest, file *multipart.FileHeader) (*dto.PostResponse, validation.Errors, error) {
	errs := validation.Errors{}
	validateImage(errs, file, true)

	// 标题唯一性
	var count int64
	if err := s.db.Model(&model.Post{}).Where("title = ?", req.Title).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("title", validation.MsgTaken("title"))
	}

	// 分类必须存在
	if err := s.db.Model(&model.Category{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count == 0 {
		errs.Add("category_id", validation.MsgExists("category_id"))
	}

	if errs.Any() {
		return nil, errs, nil
	}

	filename, err := s.store.Save(storage.DirPosts, file)
	if err != nil {
		return nil, nil, err
	}

	title := sanitize.StripTags(req.Title)
	post := &model.Post{
		Title:      title,
		Slug:       slug.Make(title),
		Image:      filename,
		Content:    sanitize.CleanHTML(req.Content),
		CategoryID: req.CategoryID,
		UserID:     userID,
	}

	if err := s.db.Create(post).Error; err != nil {
		if derr := s.store.Delete(storage.DirPosts, filename); derr != nil {
			s.logger.Warnf("回收文章图片失败: %v", derr)
		}
		return nil, nil, err
	}

	resp := postResponse(s.store, post)
	return &resp, nil, nil
}

// GetByID 获取当前用户的文章详情，带分类，不存在或非本人文章时返回nil
func (s *PostService) GetByID(userID, id uint) (*dto.PostResponse, error) {
	var post model.Post
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := postResponse(s.store, &post)
	return &resp, nil
}

// Update 更新文章，唯一性检查排除自身，非作者返回ErrNotOwner
func (s *PostService) Update(userID, id uint, req *dto.PostRequest, file *multipart.FileHeader) (*dto.PostResponse, validation.Errors, error) {
	var post model.Post
	if err := s.db.First(&post, id).Error; err != nil {
		return nil, nil, err
	}

	errs := validation.Errors{}
	validateImage(errs, file, false)

	var count int64
	if err := s.db.Model(&model.Post{}).Where("title = ? AND id != ?", req.Title, id).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("title", validation.MsgTaken("title"))
	}

	if err := s.db.Model(&model.Category{}).Where("id = ?", req.CategoryID).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count == 0 {
		errs.Add("category_id", validation.MsgExists("category_id"))
	}

	if errs.Any() {
		return nil, errs, nil
	}

	// 行级归属检查，叠加在粗粒度权限之上
	if post.UserID != userID {
		return nil, nil, ErrNotOwner
	}

	if file != nil {
		if err := s.store.Delete(storage.DirPosts, post.Image); err != nil {
			s.logger.Warnf("删除旧文章图片失败: %v", err)
		}
		filename, err := s.store.Save(storage.DirPosts, file)
		if err != nil {
			return nil, nil, err
		}
		post.Image = filename
	}

	title := sanitize.StripTags(req.Title)
	post.Title = title
	post.Slug = slug.Make(title)
	post.Content = sanitize.CleanHTML(req.Content)
	post.CategoryID = req.CategoryID
	post.UserID = userID

	if err := s.db.Save(&post).Error; err != nil {
		return nil, nil, err
	}

	resp := postResponse(s.store, &post)
	return &resp, nil, nil
}

// Delete 删除文章，先删除存储文件再删除记录，非作者返回ErrNotOwner
func (s *PostService) Delete(userID, id uint) error {
	var post model.Post
	if err := s.db.First(&post, id).Error; err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotOwner
	}

	if err := s.store.Delete(storage.DirPosts, post.Image); err != nil {
		return err
	}

	return s.db.Delete(&post).Error
}

// StoreImage 保存编辑器内容图片，只存文件不落库，返回对外地址
func (s *PostService) StoreImage(file *multipart.FileHeader) (string, validation.Errors, error) {
	errs := validation.Errors{}
	validateImage(errs, file, true)
	if errs.Any() {
		return "", errs, nil
	}

	filename, err := s.store.Save(storage.DirPostImages, file)
	if err != nil {
		return "", nil, err
	}
	return s.store.URL(storage.DirPostImages, filename), nil, nil
}

// PublicList 公开文章分页列表，支持标题子串搜索
func (s *PostService) PublicList(req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.Post{})
	if req.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []model.Post
	if err := query.Preload("User").Preload("Category").
		Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	list := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, postResponse(s.store, &posts[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// GetBySlug 根据slug获取公开文章详情，带作者和分类
// slug不保证唯一，取最先匹配的一条
func (s *PostService) GetBySlug(postSlug string) (*dto.PostResponse, error) {
	var post model.Post
	err := s.db.Preload("User").Preload("Category").
		Where("slug = ?", postSlug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := postResponse(s.store, &post)
	return &resp, nil
}
