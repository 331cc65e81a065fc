package services

import (
	"sort"

	"github.com/runcloud/runcloud_backend/internal/repository"
)

// RankingService ランキングと月別集計に関するサービスインターフェース
// 順位・月別集計は毎回Run台帳から再計算され、キャッシュされない
type RankingService interface {
	TopN(n int) ([]repository.UserTotal, error)
	RankOf(userID uint) (int, float64, error)
	MonthlySeries(userID uint) ([]string, []float64, error)
}

// rankingService RankingServiceの実装
type rankingService struct {
	runRepo repository.RunRepository
}

// NewRankingService RankingServiceを作成
func NewRankingService(runRepo repository.RunRepository) RankingService {
	return &rankingService{runRepo: runRepo}
}

// TopN 累計距離の上位n件を取得
// 記録のないユーザーはランキング表示に含まれない
func (s *rankingService) TopN(n int) ([]repository.UserTotal, error) {
	if n <= 0 {
		n = 10
	}
	totals, err := s.runRepo.TopTotals(n)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []repository.UserTotal{}
	}
	return totals, nil
}

// RankOf ユーザーの順位（1始まり）と累計距離を取得
// 記録のないユーザーも累計0として順位が付く
func (s *rankingService) RankOf(userID uint) (int, float64, error) {
	totals, err := s.runRepo.TotalsRanking()
	if err != nil {
		return 0, 0, err
	}

	for i, t := range totals {
		if t.UserID == userID {
			return i + 1, t.TotalDistance, nil
		}
	}

	return 0, 0, ErrNotRanked
}

// MonthlySeries ユーザーの記録を年月ごとに集計した時系列を取得
// ラベルは "YYYY-MM" 形式で昇順（辞書順＝時系列順）。記録がなければ両方とも空
func (s *rankingService) MonthlySeries(userID uint) ([]string, []float64, error) {
	runs, err := s.runRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, err
	}

	buckets := make(map[string]float64)
	for _, run := range runs {
		label := run.CreatedAt.Format("2006-01")
		buckets[label] += run.Distance
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	totals := make([]float64, 0, len(labels))
	for _, label := range labels {
		totals = append(totals, buckets[label])
	}

	return labels, totals, nil
}
