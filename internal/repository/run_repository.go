package repository

import (
	"github.com/runcloud/runcloud_backend/internal/models"

	"gorm.io/gorm"
)

// UserTotal ユーザーごとの累計距離
type UserTotal struct {
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	TotalDistance float64 `json:"total_distance"`
}

// RunRepository ランニング記録に関するデータベース操作を行うインターフェース
// 記録は追記専用のため Update / Delete は存在しない
type RunRepository interface {
	Create(run *models.Run) error
	ListByUser(userID uint) ([]models.Run, error)
	SumDistanceByUser(userID uint) (float64, error)
	TopTotals(limit int) ([]UserTotal, error)
	TotalsRanking() ([]UserTotal, error)
}

// runRepository RunRepositoryの実装
type runRepository struct {
	db *gorm.DB
}

// NewRunRepository RunRepositoryを作成
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

// Create 新しい記録を追加
func (r *runRepository) Create(run *models.Run) error {
	return r.db.Create(run).Error
}

// ListByUser ユーザーの記録一覧を新しい順に取得
func (r *runRepository) ListByUser(userID uint) ([]models.Run, error) {
	var runs []models.Run
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// SumDistanceByUser ユーザーの累計距離を取得
func (r *runRepository) SumDistanceByUser(userID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Run{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(distance), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TopTotals 累計距離の上位ユーザーを取得
// 記録のないユーザーは含まれない（ランキング表示用）
func (r *runRepository) TopTotals(limit int) ([]UserTotal, error) {
	var totals []UserTotal
	err := r.db.Table("runs").
		Select("users.id AS user_id, users.username AS username, SUM(runs.distance) AS total_distance").
		Joins("JOIN users ON users.id = runs.user_id").
		Group("users.id").
		Order("total_distance DESC, users.id ASC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// TotalsRanking 全ユーザーの累計距離を降順で取得
// 記録のないユーザーも累計0として含まれる（自分の順位の計算用）
func (r *runRepository) TotalsRanking() ([]UserTotal, error) {
	var totals []UserTotal
	err := r.db.Table("users").
		Select("users.id AS user_id, users.username AS username, COALESCE(SUM(runs.distance), 0) AS total_distance").
		Joins("LEFT JOIN runs ON runs.user_id = users.id").
		Group("users.id").
		Order("total_distance DESC, users.id ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
