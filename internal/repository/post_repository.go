package repository

import (
	"github.com/runcloud/runcloud_backend/internal/models"

	"gorm.io/gorm"
)

// PostRepository 投稿に関するデータベース操作を行うインターフェース
type PostRepository interface {
	Create(post *models.Post) error
	FindByID(id uint) (*models.Post, error)
	FindVisibleByID(id uint) (*models.Post, error)
	ListByCategory(category string, page, limit int) ([]models.Post, int64, error)
	IncrementViews(id uint) error
	Update(post *models.Post) error
	SoftDelete(id uint) error
}

// postRepository PostRepositoryの実装
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository PostRepositoryを作成
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 新しい投稿を作成
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// FindByID IDで投稿を検索（論理削除済みの行も含む。編集・削除パス用）
func (r *postRepository) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindVisibleByID IDで投稿を検索（論理削除済みの行は除外。詳細表示パス用）
func (r *postRepository) FindVisibleByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("User").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByCategory カテゴリの投稿一覧を新しい順に取得
// 論理削除済みの行は件数にも含まれない
func (r *postRepository) ListByCategory(category string, page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	offset := (page - 1) * limit

	query := r.db.Model(&models.Post{}).
		Where("category = ? AND is_deleted = ?", category, false)

	// 合計数を取得
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// データを取得
	if err := query.
		Preload("User").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// IncrementViews 閲覧数を増加
func (r *postRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Update 投稿を更新
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// SoftDelete 投稿を論理削除（行は残す）
func (r *postRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		Update("is_deleted", true).Error
}
