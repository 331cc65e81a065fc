package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ParsesValues(t *testing.T) {
	repo := &stubRunRepo{}
	svc := NewRunService(repo)

	run, err := svc.Record(1, "5.2", "31")
	require.NoError(t, err)
	assert.Equal(t, 5.2, run.Distance)
	assert.Equal(t, 31, run.Duration)

	// タイムスタンプはサーバー側で割り当てたUTCの現在時刻
	assert.Equal(t, time.UTC, run.CreatedAt.Location())
	assert.WithinDuration(t, time.Now().UTC(), run.CreatedAt, 5*time.Second)
}

func TestRecord_InvalidInput(t *testing.T) {
	repo := &stubRunRepo{}
	svc := NewRunService(repo)

	tests := []struct {
		name     string
		distance string
		duration string
	}{
		{"数値でない距離", "abc", "30"},
		{"数値でない時間", "5.0", "thirty"},
		{"負の距離", "-1", "30"},
		{"負の時間", "5.0", "-30"},
		{"空の距離", "", "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(1, tt.distance, tt.duration)
			assert.ErrorIs(t, err, ErrInvalidNumber)
		})
	}
}

func TestListByUser_NewestFirst(t *testing.T) {
	repo := &stubRunRepo{}
	svc := NewRunService(repo)

	first, err := svc.Record(1, "1.0", "10")
	require.NoError(t, err)
	second, err := svc.Record(1, "2.0", "20")
	require.NoError(t, err)
	third, err := svc.Record(1, "3.0", "30")
	require.NoError(t, err)

	// 別のユーザーの記録は含まれない
	_, err = svc.Record(2, "99.0", "90")
	require.NoError(t, err)

	runs, err := svc.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, third.ID, runs[0].ID)
	assert.Equal(t, second.ID, runs[1].ID)
	assert.Equal(t, first.ID, runs[2].ID)
}

func TestRecord_SumMatchesLedger(t *testing.T) {
	repo := &stubRunRepo{}
	svc := NewRunService(repo)

	distances := []string{"5.0", "3.5", "10.2"}
	for _, d := range distances {
		_, err := svc.Record(1, d, "30")
		require.NoError(t, err)
	}

	runs, err := svc.ListByUser(1)
	require.NoError(t, err)

	var sum float64
	for _, run := range runs {
		sum += run.Distance
	}

	total, err := repo.SumDistanceByUser(1)
	require.NoError(t, err)
	assert.InDelta(t, sum, total, 1e-9)
	assert.InDelta(t, 18.7, total, 1e-9)
}
