package queries

import (
	"errors"

	"relay/internal/pkg/guard"
)

var (
	ErrGetStatsQueryIsNotConstructed = errors.New(
		"GetStatsQuery must be created via NewGetStatsQuery constructor",
	)
)

// GetStatsQuery asks for the usage statistics of the whole network.
type GetStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStatsQuery() GetStatsQuery {
	return GetStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatsQueryIsNotConstructed)
}

type AccountStats struct {
	TotalNumber int64 `json:"total_number"`
}

// StayStats describes the number of non-deleted stays per user.
type StayStats struct {
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Median float64 `json:"median"`
}

// PacketStats splits the packets that are not cancelled: waiting packets
// have no valid route, delivered ones reached the recipient and the rest
// are in transit.
type PacketStats struct {
	Waiting   int64 `json:"waiting"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
}

type GetStatsQueryResponse struct {
	Accounts AccountStats `json:"accounts"`
	Packets  PacketStats  `json:"packets"`
	Stays    StayStats    `json:"stays"`
}
