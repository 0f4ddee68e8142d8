package queries_test

import (
	"errors"
	"testing"

	"relay/internal/core/application/usecases/queries"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newStatsHandler(t *testing.T) (queries.GetStatsQueryHandler, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return queries.NewGetStatsQueryHandler(db), sqlMock
}

func TestGetStatsQueryHandler_Handle(t *testing.T) {
	testCases := []struct {
		name       string
		stayCounts []int64
		expected   queries.StayStats
	}{
		{name: "even number of users", stayCounts: []int64{0, 1, 3, 4}, expected: queries.StayStats{Min: 0, Max: 4, Median: 2}},
		{name: "odd number of users", stayCounts: []int64{1, 2, 7}, expected: queries.StayStats{Min: 1, Max: 7, Median: 2}},
		{name: "no users", stayCounts: nil, expected: queries.StayStats{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler, sqlMock := newStatsHandler(t)

			sqlMock.ExpectQuery(`SELECT count\(\*\) FROM users`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(len(tc.stayCounts)))

			stayRows := sqlmock.NewRows([]string{"count"})
			for _, n := range tc.stayCounts {
				stayRows.AddRow(n)
			}
			sqlMock.ExpectQuery(`SELECT count\(s\.id\)\s+FROM users u\s+LEFT JOIN stays s`).WillReturnRows(stayRows)

			sqlMock.ExpectQuery(`FROM packets p\s+WHERE p\.cancelled = false`).
				WillReturnRows(sqlmock.NewRows([]string{"waiting", "in_transit", "delivered"}).AddRow(2, 5, 1))

			response, err := handler.Handle(t.Context(), queries.NewGetStatsQuery())
			require.NoError(t, err)

			assert.Equal(t, int64(len(tc.stayCounts)), response.Accounts.TotalNumber)
			assert.Equal(t, tc.expected, response.Stays)
			assert.Equal(t, queries.PacketStats{Waiting: 2, InTransit: 5, Delivered: 1}, response.Packets)
			require.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestGetStatsQueryHandler_QueryError(t *testing.T) {
	handler, sqlMock := newStatsHandler(t)
	sqlMock.ExpectQuery(`SELECT count\(\*\) FROM users`).WillReturnError(errors.New("database is down"))

	_, err := handler.Handle(t.Context(), queries.NewGetStatsQuery())
	require.EqualError(t, err, "database is down")
}

func TestGetStatsQuery_NotConstructedViaConstructor(t *testing.T) {
	handler, _ := newStatsHandler(t)
	_, err := handler.Handle(t.Context(), queries.GetStatsQuery{})
	require.ErrorIs(t, err, queries.ErrGetStatsQueryIsNotConstructed)
}
