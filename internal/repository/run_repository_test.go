package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepository_ListByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRunRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "distance", "duration"}).
		AddRow(3, 1, 10.5, 60).
		AddRow(2, 1, 5.0, 30)
	mock.ExpectQuery("SELECT (.+) FROM `runs` WHERE user_id = \\?").
		WillReturnRows(rows)

	runs, err := repo.ListByUser(1)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, uint(3), runs[0].ID)
	assert.InDelta(t, 10.5, runs[0].Distance, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_TopTotals(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRunRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "username", "total_distance"}).
		AddRow(2, "bob", 30.0).
		AddRow(1, "alice", 15.0)
	mock.ExpectQuery("SELECT (.+) FROM `runs` JOIN users ON users.id = runs.user_id").
		WillReturnRows(rows)

	totals, err := repo.TopTotals(10)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "bob", totals[0].Username)
	assert.InDelta(t, 30.0, totals[0].TotalDistance, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_TotalsRanking(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRunRepository(db)

	// 記録のないユーザーも累計0で含まれる
	rows := sqlmock.NewRows([]string{"user_id", "username", "total_distance"}).
		AddRow(2, "bob", 30.0).
		AddRow(1, "alice", 15.0).
		AddRow(3, "carol", 0.0)
	mock.ExpectQuery("SELECT (.+) FROM `users` LEFT JOIN runs ON runs.user_id = users.id").
		WillReturnRows(rows)

	totals, err := repo.TotalsRanking()
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, "carol", totals[2].Username)
	assert.Zero(t, totals[2].TotalDistance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
