package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/qrizan/cms-api/internal/config"
)

// 存储子目录
const (
	DirCategories = "categories"
	DirPosts      = "posts"
	DirPostImages = "post_images"
)

// Local 本地磁盘存储
type Local struct {
	root      string
	urlPrefix string
}

// NewLocal 创建本地存储
func NewLocal(cfg *config.StorageConfig) *Local {
	return &Local{
		root:      cfg.Path,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
	}
}

// Root 存储根目录
func (s *Local) Root() string {
	return s.root
}

// Save 保存上传文件，文件名取内容的sha256摘要加原扩展名，返回存储文件名
func (s *Local) Save(dir string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %v", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("读取上传文件失败: %v", err)
	}

	sum := sha256.Sum256(data)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := hex.EncodeToString(sum[:]) + ext

	target := filepath.Join(s.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("创建存储目录失败: %v", err)
	}

	if err := os.WriteFile(filepath.Join(target, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %v", err)
	}

	return filename, nil
}

// Delete 删除存储文件，文件不存在视为成功
func (s *Local) Delete(dir, filename string) error {
	if filename == "" {
		return nil
	}
	// 防止路径穿越，只取文件名部分
	path := filepath.Join(s.root, dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL 拼接对外访问地址
func (s *Local) URL(dir, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("%s/storage/%s/%s", s.urlPrefix, dir, filename)
}
