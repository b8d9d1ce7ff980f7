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

// CategoryService 分类服务
type CategoryService struct {
	db     *gorm.DB
	store  *storage.Local
	logger *zap.SugaredLogger
}

// NewCategoryService 创建分类服务实例
func NewCategoryService(db *gorm.DB, store *storage.Local) *CategoryService {
	return &CategoryService{
		db:     db,
		store:  store,
		logger: logger.GetSugaredLogger(),
	}
}

// List 获取分类分页列表，支持名称子串搜索，按创建时间倒序
func (s *CategoryService) List(req *dto.ListRequest) (*response.Pagination, error) {
	req.Normalize()

	query := s.db.Model(&model.Category{})
	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(req.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := query.Order("created_at DESC").
		Offset((req.Page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&categories).Error; err != nil {
		return nil, err
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, categoryResponse(s.store, &categories[i]))
	}

	return response.NewPagination(req.Page, dto.DefaultPageSize, total, list), nil
}

// All 获取全部分类，按创建时间倒序，用于下拉选项
func (s *CategoryService) All() ([]dto.CategoryResponse, error) {
	var categories []model.Category
	if err := s.db.Order("created_at DESC").Find(&categories).Error; err != nil {
		return nil, err
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, categoryResponse(s.store, &categories[i]))
	}
	return list, nil
}

// Create 创建分类并保存上传图片
func (s *CategoryService) Create(req *dto.CategoryRequest, file *multipart.FileHeader) (*dto.CategoryResponse, validation.Errors, error) {
	errs := validation.Errors{}
	validateImage(errs, file, true)

	// 名称唯一性，区分大小写
	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("name", validation.MsgTaken("name"))
	}

	if errs.Any() {
		return nil, errs, nil
	}

	filename, err := s.store.Save(storage.DirCategories, file)
	if err != nil {
		return nil, nil, err
	}

	name := sanitize.StripTags(req.Name)
	category := &model.Category{
		Name:  name,
		Slug:  slug.Make(name),
		Image: filename,
	}

	if err := s.db.Create(category).Error; err != nil {
		// 记录落库失败时回收刚写入的文件
		if derr := s.store.Delete(storage.DirCategories, filename); derr != nil {
			s.logger.Warnf("回收分类图片失败: %v", derr)
		}
		return nil, nil, err
	}

	resp := categoryResponse(s.store, category)
	return &resp, nil, nil
}

// GetByID 根据ID获取分类，不存在时返回nil
func (s *CategoryService) GetByID(id uint) (*dto.CategoryResponse, error) {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := categoryResponse(s.store, &category)
	return &resp, nil
}

// Update 更新分类，图片可选，替换时先删除旧文件
func (s *CategoryService) Update(id uint, req *dto.CategoryRequest, file *multipart.FileHeader) (*dto.CategoryResponse, validation.Errors, error) {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, nil, err
	}

	errs := validation.Errors{}
	validateImage(errs, file, false)

	// 唯一性检查排除自身
	var count int64
	if err := s.db.Model(&model.Category{}).Where("name = ? AND id != ?", req.Name, id).Count(&count).Error; err != nil {
		return nil, nil, err
	}
	if count > 0 {
		errs.Add("name", validation.MsgTaken("name"))
	}

	if errs.Any() {
		return nil, errs, nil
	}

	if file != nil {
		// 先删旧文件再写新文件
		if err := s.store.Delete(storage.DirCategories, category.Image); err != nil {
			s.logger.Warnf("删除旧分类图片失败: %v", err)
		}
		filename, err := s.store.Save(storage.DirCategories, file)
		if err != nil {
			return nil, nil, err
		}
		category.Image = filename
	}

	name := sanitize.StripTags(req.Name)
	category.Name = name
	category.Slug = slug.Make(name)

	if err := s.db.Save(&category).Error; err != nil {
		return nil, nil, err
	}

	resp := categoryResponse(s.store, &category)
	return &resp, nil, nil
}

// Delete 删除分类，先删除存储文件再删除记录
func (s *CategoryService) Delete(id uint) error {
	var category model.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return err
	}

	if err := s.store.Delete(storage.DirCategories, category.Image); err != nil {
		return err
	}

	return s.db.Delete(&category).Error
}

// PublicList 公开分类分页列表
func (s *CategoryService) PublicList(page int) (*response.Pagination, error) {
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := s.db.Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var categories []model.Category
	if err := s.db.Order("created_at DESC").
		Offset((page - 1) * dto.DefaultPageSize).
		Limit(dto.DefaultPageSize).
		Find(&categories).Error; err != nil {
		return nil, err
	}

	list := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		list = append(list, categoryResponse(s.store, &categories[i]))
	}

	return response.NewPagination(page, dto.DefaultPageSize, total, list), nil
}

// GetBySlug 根据slug获取公开分类详情，带文章及其作者、分类
// slug不保证唯一，取最先匹配的一条
func (s *CategoryService) GetBySlug(categorySlug string) (*dto.CategoryDetailResponse, error) {
	var category model.Category
	err := s.db.Preload("Posts.Category").Preload("Posts.User").
		Where("slug = ?", categorySlug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	detail := &dto.CategoryDetailResponse{
		CategoryResponse: categoryResponse(s.store, &category),
		Posts:            make([]dto.PostResponse, 0, len(category.Posts)),
	}
	for _, p := range category.Posts {
		detail.Posts = append(detail.Posts, postResponse(s.store, p))
	}
	return detail, nil
}
