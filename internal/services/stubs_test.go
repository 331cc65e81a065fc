package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"sort"
	"time"

	"github.com/runcloud/runcloud_backend/internal/config"
	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/repository"

	"gorm.io/gorm"
)

// テスト用の設定
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			TokenExpiry: time.Hour,
		},
		Storage: config.StorageConfig{
			MaxUploadSize: 10 * 1024 * 1024,
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
		Community: config.CommunityConfig{
			DefaultCategory:       "free",
			PageSize:              10,
			ValidateCommentParent: false,
		},
	}
}

// stubUserRepo UserRepositoryのインメモリ実装
type stubUserRepo struct {
	users  []*models.User
	nextID uint
}

func (r *stubUserRepo) Create(user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.users = append(r.users, user)
	return nil
}

func (r *stubUserRepo) FindByID(id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// stubRunRepo RunRepositoryのインメモリ実装
// 集計はSQLと同じ規則（合計の降順、同値はユーザーID昇順）で行う
type stubRunRepo struct {
	users  []models.User
	runs   []models.Run
	nextID uint
}

func (r *stubRunRepo) Create(run *models.Run) error {
	r.nextID++
	run.ID = r.nextID
	r.runs = append(r.runs, *run)
	return nil
}

func (r *stubRunRepo) ListByUser(userID uint) ([]models.Run, error) {
	var runs []models.Run
	for i := len(r.runs) - 1; i >= 0; i-- {
		if r.runs[i].UserID == userID {
			runs = append(runs, r.runs[i])
		}
	}
	return runs, nil
}

func (r *stubRunRepo) SumDistanceByUser(userID uint) (float64, error) {
	var total float64
	for _, run := range r.runs {
		if run.UserID == userID {
			total += run.Distance
		}
	}
	return total, nil
}

func (r *stubRunRepo) totals(includeZero bool) []repository.UserTotal {
	var totals []repository.UserTotal
	for _, u := range r.users {
		sum, _ := r.SumDistanceByUser(u.ID)
		hasRuns := false
		for _, run := range r.runs {
			if run.UserID == u.ID {
				hasRuns = true
				break
			}
		}
		if !hasRuns && !includeZero {
			continue
		}
		totals = append(totals, repository.UserTotal{
			UserID:        u.ID,
			Username:      u.Username,
			TotalDistance: sum,
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalDistance != totals[j].TotalDistance {
			return totals[i].TotalDistance > totals[j].TotalDistance
		}
		return totals[i].UserID < totals[j].UserID
	})
	return totals
}

func (r *stubRunRepo) TopTotals(limit int) ([]repository.UserTotal, error) {
	totals := r.totals(false)
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

func (r *stubRunRepo) TotalsRanking() ([]repository.UserTotal, error) {
	return r.totals(true), nil
}

// stubPostRepo PostRepositoryのインメモリ実装
type stubPostRepo struct {
	posts  []*models.Post
	nextID uint
}

func (r *stubPostRepo) Create(post *models.Post) error {
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now().UTC()
	cp := *post
	r.posts = append(r.posts, &cp)
	return nil
}

func (r *stubPostRepo) find(id uint) *models.Post {
	for _, p := range r.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *stubPostRepo) FindByID(id uint) (*models.Post, error) {
	if p := r.find(id); p != nil {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPostRepo) FindVisibleByID(id uint) (*models.Post, error) {
	if p := r.find(id); p != nil && !p.IsDeleted {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPostRepo) ListByCategory(category string, page, limit int) ([]models.Post, int64, error) {
	var matched []models.Post
	// IDの降順（新しい順）
	for i := len(r.posts) - 1; i >= 0; i-- {
		p := r.posts[i]
		if p.Category == category && !p.IsDeleted {
			matched = append(matched, *p)
		}
	}

	total := int64(len(matched))
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *stubPostRepo) IncrementViews(id uint) error {
	if p := r.find(id); p != nil {
		p.Views++
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPostRepo) Update(post *models.Post) error {
	if p := r.find(post.ID); p != nil {
		*p = *post
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPostRepo) SoftDelete(id uint) error {
	if p := r.find(id); p != nil {
		p.IsDeleted = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

// stubCommentRepo CommentRepositoryのインメモリ実装
type stubCommentRepo struct {
	comments []models.Comment
	nextID   uint
}

func (r *stubCommentRepo) Create(comment *models.Comment) error {
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now().UTC()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *stubCommentRepo) FindByID(id uint) (*models.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCommentRepo) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// fakeStorage ImageStorageのフェイク実装
type fakeStorage struct {
	url      string
	fail     bool
	uploaded []string
}

func (s *fakeStorage) Upload(file multipart.File, fileName string) (string, error) {
	if s.fail {
		return "", errors.New("ストレージに接続できません")
	}
	s.uploaded = append(s.uploaded, fileName)
	return s.url, nil
}

// fakeFile multipart.Fileを満たすインメモリファイル
type fakeFile struct {
	*bytes.Reader
}

func (f *fakeFile) Close() error { return nil }

func newFakeFile(data []byte) *fakeFile {
	return &fakeFile{Reader: bytes.NewReader(data)}
}
