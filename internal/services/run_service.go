package services

import (
	"strconv"
	"time"

	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/repository"
)

// RunService ランニング記録に関するサービスインターフェース
type RunService interface {
	Record(userID uint, distance, duration string) (*models.Run, error)
	ListByUser(userID uint) ([]models.Run, error)
}

// runService RunServiceの実装
type runService struct {
	runRepo repository.RunRepository
}

// NewRunService RunServiceを作成
func NewRunService(runRepo repository.RunRepository) RunService {
	return &runService{runRepo: runRepo}
}

// Record 新しい記録を追加
// 距離・時間は0以上の数値として解釈できなければエラー
// タイムスタンプはサーバー側でUTCの現在時刻を割り当てる
func (s *runService) Record(userID uint, distance, duration string) (*models.Run, error) {
	dist, err := strconv.ParseFloat(distance, 64)
	if err != nil || dist < 0 {
		return nil, ErrInvalidNumber
	}

	dur, err := strconv.Atoi(duration)
	if err != nil || dur < 0 {
		return nil, ErrInvalidNumber
	}

	run := &models.Run{
		UserID:    userID,
		Distance:  dist,
		Duration:  dur,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}

	return run, nil
}

// ListByUser ユーザーの記録一覧を新しい順に取得
func (s *runService) ListByUser(userID uint) ([]models.Run, error) {
	return s.runRepo.ListByUser(userID)
}
