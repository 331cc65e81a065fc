package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/runcloud/runcloud_backend/internal/config"
	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/repository"

	"gorm.io/gorm"
)

// PostDetail 投稿詳細のレスポンス
// IsOwner は呼び出し元が投稿者本人かどうかのヒント（認可の強制はサービス側で行う）
type PostDetail struct {
	Post     models.Post      `json:"post"`
	IsOwner  bool             `json:"is_owner"`
	Comments []models.Comment `json:"comments"`
}

// CommunityService 掲示板に関するサービスインターフェース
type CommunityService interface {
	CreatePost(userID uint, category, title, content string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Post, error)
	ListPosts(category string, page, limit int) ([]models.Post, int64, int, error)
	GetPostDetail(id uint, callerID *uint) (*PostDetail, error)
	EditPost(id, userID uint, title, content string) (*models.Post, error)
	DeletePost(id, userID uint) error
	AddComment(postID, userID uint, content string) (*models.Comment, error)
}

// communityService CommunityServiceの実装
type communityService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	storage     ImageStorage
	config      *config.Config
}

// NewCommunityService CommunityServiceを作成
func NewCommunityService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	storage ImageStorage,
	cfg *config.Config) CommunityService {

	return &communityService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
		config:      cfg,
	}
}

// CreatePost 新しい投稿を作成
// カテゴリ未指定時はデフォルトカテゴリ。画像があればストレージにアップロードする
func (s *communityService) CreatePost(userID uint, category, title, content string, image multipart.File, imageHeader *multipart.FileHeader) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	if category == "" {
		category = s.config.Community.DefaultCategory
	}

	// 画像がアップロードされた場合はストレージに保存
	var imageURL string
	if image != nil && imageHeader != nil {
		ext := strings.ToLower(filepath.Ext(imageHeader.Filename))
		if !s.isAllowedExtension(ext) {
			return nil, fmt.Errorf("拡張子 %s は許可されていません", ext)
		}

		if imageHeader.Size > s.config.Storage.MaxUploadSize {
			return nil, fmt.Errorf("ファイルサイズが大きすぎます (最大 %d MB)", s.config.Storage.MaxUploadSize/1024/1024)
		}

		url, err := s.storage.Upload(image, imageHeader.Filename)
		if err != nil {
			// アップロード失敗は投稿の作成ごと失敗とする
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		imageURL = url
	}

	post := &models.Post{
		UserID:   userID,
		Category: category,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts カテゴリの投稿一覧を取得
// 論理削除済みの投稿は一覧にも件数にも含まれない
func (s *communityService) ListPosts(category string, page, limit int) ([]models.Post, int64, int, error) {
	if category == "" {
		category = s.config.Community.DefaultCategory
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.config.Community.PageSize
	}

	posts, total, err := s.postRepo.ListByCategory(category, page, limit)
	if err != nil {
		return nil, 0, 0, err
	}

	// 総ページ数を計算
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}

	return posts, total, pages, nil
}

// GetPostDetail 投稿詳細とコメント一覧を取得
// 論理削除済みの投稿は存在しない扱い。取得のたびに閲覧数が増える
func (s *communityService) GetPostDetail(id uint, callerID *uint) (*PostDetail, error) {
	post, err := s.postRepo.FindVisibleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 閲覧数を増加（本人・再取得も区別せず毎回カウント、失敗しても続行）
	if err := s.postRepo.IncrementViews(post.ID); err == nil {
		post.Views++
	}

	comments, err := s.commentRepo.ListByPost(post.ID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:     *post,
		IsOwner:  callerID != nil && *callerID == post.UserID,
		Comments: comments,
	}, nil
}

// EditPost 投稿のタイトルと本文を更新
// 投稿者本人のみ可。論理削除済みの投稿も本人なら編集できる
func (s *communityService) EditPost(id, userID uint, title, content string) (*models.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// 権限チェック
	if post.UserID != userID {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	post.Title = title
	post.Content = content

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost 投稿を論理削除
// 投稿者本人のみ可。行とコメントはそのまま残る
func (s *communityService) DeletePost(id, userID uint) error {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	// 権限チェック
	if post.UserID != userID {
		return ErrForbidden
	}

	return s.postRepo.SoftDelete(id)
}

// AddComment 投稿にコメントを追加
// 親投稿の存在チェックは設定で切り替える（旧実装はチェックなし）
func (s *communityService) AddComment(postID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	if s.config.Community.ValidateCommentParent {
		if _, err := s.postRepo.FindVisibleByID(postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// isAllowedExtension 許可された拡張子かチェック
func (s *communityService) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.Storage.AllowedTypes {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
