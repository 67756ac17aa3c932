package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resumeforge/internal/database"
)

// ErrNotFound 表示文档不存在——或存在但属于其他用户。
// 两种情况刻意不可区分，避免通过 ID 探测他人文档。
var ErrNotFound = errors.New("document not found")

// ErrValidation 表示必填字段缺失（名称或内容为空）。
var ErrValidation = errors.New("invalid document")

// Summary 是列表视图的轻量条目，不携带内容。
type Summary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store 提供按所有者隔离的文档读写。
type Store struct {
	db *gorm.DB
}

// NewStore 构造 Store。
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create 保存一份新文档并返回完整记录。
func (s *Store) Create(ctx context.Context, userID uint, name, content string) (database.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return database.Document{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if content == "" {
		return database.Document{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	doc := database.Document{
		UserID:  userID,
		Name:    name,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return database.Document{}, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// ListForOwner 返回用户全部文档的摘要，按最近更新排序。
func (s *Store) ListForOwner(ctx context.Context, userID uint) ([]Summary, error) {
	summaries := make([]Summary, 0)
	if err := s.db.WithContext(ctx).
		Model(&database.Document{}).
		Select("id", "name", "updated_at").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return summaries, nil
}

// GetByID 返回指定文档；不存在或属他人时一律返回 ErrNotFound。
func (s *Store) GetByID(ctx context.Context, id, userID uint) (database.Document, error) {
	var doc database.Document
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return database.Document{}, ErrNotFound
		}
		return database.Document{}, fmt.Errorf("query document: %w", err)
	}
	return doc, nil
}

// Update 覆盖文档的名称与内容并刷新 updated_at。
// 所有权校验与更新在同一条语句中完成。
func (s *Store) Update(ctx context.Context, id, userID uint, name, content string) (database.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return database.Document{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if content == "" {
		return database.Document{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	result := s.db.WithContext(ctx).
		Model(&database.Document{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"name":    name,
			"content": content,
		})
	if result.Error != nil {
		return database.Document{}, fmt.Errorf("update document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.Document{}, ErrNotFound
	}

	return s.GetByID(ctx, id, userID)
}

// Delete 删除文档（硬删除）。所有权校验与删除在同一条语句中完成。
func (s *Store) Delete(ctx context.Context, id, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&database.Document{})
	if result.Error != nil {
		return fmt.Errorf("delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetExported 记录异步导出的 PDF 对象键与状态。
func (s *Store) SetExported(ctx context.Context, id uint, objectKey string) error {
	result := s.db.WithContext(ctx).
		Model(&database.Document{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"pdf_url": objectKey,
			"status":  "completed",
		})
	if result.Error != nil {
		return fmt.Errorf("mark document exported: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
