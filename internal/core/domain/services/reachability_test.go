package services_test

import (
	"testing"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachabilityRule_IsReachable(t *testing.T) {
	w := newWorld(t)
	sender := fixedID(1)
	other := fixedID(2)
	day := kernel.MustParseDate("2024-01-01")

	origin := w.stay(sender, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-02-01"), end: date("2024-02-10")})

	timeUnknown := w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Daily})
	timeOverlaps := w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-01-01"), end: date("2024-02-20")})
	sameUser := w.stay(sender, "Munich", munich, stayOpts{frequency: stay.Once, start: date("2024-03-01"), end: date("2024-03-02")})
	w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-01-01"), end: date("2024-01-10")})
	w.stay(other, "Berlin", berlin, stayOpts{frequency: stay.Daily})
	w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Daily, inactiveUntil: date("2024-02-11")})
	w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-01-01"), end: date("2024-02-20"), inactiveUntil: date("2024-02-11")})

	t.Run("should return near, time compatible and own stays", func(t *testing.T) {
		reachable, err := w.FindReachable(t.Context(), origin, nil, day)

		require.NoError(t, err)
		assert.ElementsMatch(t, []kernel.UUID{timeUnknown.ID(), timeOverlaps.ID(), sameUser.ID()}, stayIDs(reachable))
	})

	t.Run("should exclude visited stays", func(t *testing.T) {
		reachable, err := w.FindReachable(t.Context(), origin, []kernel.UUID{timeOverlaps.ID()}, day)

		require.NoError(t, err)
		assert.NotContains(t, stayIDs(reachable), timeOverlaps.ID())
	})

	t.Run("snooze ends on its last day", func(t *testing.T) {
		snoozed := w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Daily, inactiveUntil: date("2024-01-05")})

		assert.False(t, w.rule.IsReachable(origin, snoozed, kernel.MustParseDate("2024-01-04")))
		assert.True(t, w.rule.IsReachable(origin, snoozed, kernel.MustParseDate("2024-01-05")))
	})

	t.Run("should never reach itself", func(t *testing.T) {
		assert.False(t, w.rule.IsReachable(origin, origin, day))
	})

	t.Run("should skip stays on deleted locations", func(t *testing.T) {
		place, err := stay.NewPlace(fixedID(9000), "Hamburg", hamburg, true)
		require.NoError(t, err)
		onDeleted, err := stay.NewStay(fixedID(9001), other, place, stay.Daily, nil, nil)
		require.NoError(t, err)

		assert.False(t, w.rule.IsReachable(origin, onDeleted, day))
	})

	t.Run("should skip one-time stays without both dates", func(t *testing.T) {
		startOnly := w.stay(other, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-02-05")})
		ownStartOnly := w.stay(sender, "Hamburg", hamburg, stayOpts{frequency: stay.Once, start: date("2024-02-05")})

		assert.False(t, w.rule.IsReachable(origin, startOnly, day))
		assert.False(t, w.rule.IsReachable(origin, ownStartOnly, day))
	})
}

func TestIsStartCandidate(t *testing.T) {
	w := newWorld(t)
	sender := fixedID(1)
	day := kernel.MustParseDate("2024-01-01")

	tests := []struct {
		name string
		opts stayOpts
		want bool
	}{
		{"recurring", stayOpts{frequency: stay.Weekly}, true},
		{"one-time with both dates", stayOpts{frequency: stay.Once, start: date("2024-01-05"), end: date("2024-01-06")}, true},
		{"one-time ended", stayOpts{frequency: stay.Once, start: date("2023-12-01"), end: date("2023-12-02")}, false},
		{"one-time start only", stayOpts{frequency: stay.Once, start: date("2024-01-05")}, false},
		{"one-time without dates", stayOpts{frequency: stay.Once}, false},
		{"snoozed", stayOpts{frequency: stay.Daily, inactiveUntil: date("2024-01-02")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := w.stay(sender, "Hamburg", hamburg, tt.opts)

			assert.Equal(t, tt.want, services.IsStartCandidate(s, day))
		})
	}
}
