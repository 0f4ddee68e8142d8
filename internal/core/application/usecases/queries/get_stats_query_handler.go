package queries

import (
	"context"

	"relay/internal/core/domain/model/route"

	"gorm.io/gorm"
)

// GetStatsQueryHandler computes network statistics with plain SQL.
type GetStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetStatsQueryHandler(db *gorm.DB) GetStatsQueryHandler {
	return GetStatsQueryHandler{db: db}
}

func (h GetStatsQueryHandler) Handle(ctx context.Context, query GetStatsQuery) (GetStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatsQueryResponse{}, err
	}

	var (
		response GetStatsQueryResponse
		err      error
	)
	db := h.db.WithContext(ctx)

	if err = db.Raw(`SELECT count(*) FROM users`).Row().Scan(&response.Accounts.TotalNumber); err != nil {
		return GetStatsQueryResponse{}, err
	}

	if response.Stays, err = h.stayStats(db); err != nil {
		return GetStatsQueryResponse{}, err
	}

	err = db.Raw(`
		SELECT
			count(*) FILTER (WHERE NOT (delivered OR healthy)),
			count(*) FILTER (WHERE healthy AND NOT delivered),
			count(*) FILTER (WHERE delivered)
		FROM (
			SELECT
				EXISTS (
					SELECT 1
					FROM routes r
					JOIN route_steps last ON last.route_id = r.id
					WHERE r.packet_id = p.id
					  AND r.status = ?
					  AND last.status = ?
					  AND last.position = (SELECT max(position) FROM route_steps WHERE route_id = r.id)
				) AS delivered,
				EXISTS (
					SELECT 1
					FROM routes r
					WHERE r.packet_id = p.id
					  AND r.status = ?
					  AND NOT EXISTS (
						SELECT 1 FROM route_steps s
						WHERE s.route_id = r.id AND s.status IN ?
					  )
				) AS healthy
			FROM packets p
			WHERE p.cancelled = false
		) classified
	`,
		int(route.Current), int(route.Completed),
		int(route.Current), []int{int(route.Rejected), int(route.Cancelled)},
	).Row().Scan(&response.Packets.Waiting, &response.Packets.InTransit, &response.Packets.Delivered)
	if err != nil {
		return GetStatsQueryResponse{}, err
	}

	return response, nil
}

// stayStats reads the per user stay counts in ascending order. Users without
// stays count as zero. An empty network reports all zeros.
func (h GetStatsQueryHandler) stayStats(db *gorm.DB) (StayStats, error) {
	rows, err := db.Raw(`
		SELECT count(s.id)
		FROM users u
		LEFT JOIN stays s ON s.user_id = u.id AND s.deleted = false
		GROUP BY u.id
		ORDER BY 1
	`).Rows()
	if err != nil {
		return StayStats{}, err
	}
	defer rows.Close()

	counts := make([]int64, 0)
	for rows.Next() {
		var n int64
		if err = rows.Scan(&n); err != nil {
			return StayStats{}, err
		}
		counts = append(counts, n)
	}
	if err = rows.Err(); err != nil {
		return StayStats{}, err
	}

	if len(counts) == 0 {
		return StayStats{}, nil
	}

	mid := len(counts) / 2
	median := float64(counts[mid])
	if len(counts)%2 == 0 {
		median = float64(counts[mid-1]+counts[mid]) / 2
	}
	return StayStats{Min: counts[0], Max: counts[len(counts)-1], Median: median}, nil
}
