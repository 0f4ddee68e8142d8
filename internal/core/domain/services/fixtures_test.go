package services_test

import (
	"context"
	"fmt"
	"testing"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var (
	hamburg = kernel.MustNewGeoPoint(9.58292, 53.33145)
	berlin  = kernel.MustNewGeoPoint(13.431700, 52.592879)
	munich  = kernel.MustNewGeoPoint(11.33371, 48.08565)
	bremen  = kernel.MustNewGeoPoint(8.80777, 53.07516)
)

func fixedID(n int) kernel.UUID {
	return kernel.MustUUIDFromString(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func date(s string) *kernel.Date {
	d := kernel.MustParseDate(s)
	return &d
}

// world is an in-memory stay graph. Stay ids are handed out in creation order.
type world struct {
	t     *testing.T
	rule  services.ReachabilityRule
	stays []*stay.Stay
	next  int
}

func newWorld(t *testing.T) *world {
	return &world{t: t, rule: services.NewReachabilityRule(services.DefaultPolicy()), next: 100}
}

type stayOpts struct {
	frequency     stay.Frequency
	start, end    *kernel.Date
	inactiveUntil *kernel.Date
}

func (w *world) stay(userID kernel.UUID, name string, point kernel.GeoPoint, opts stayOpts) *stay.Stay {
	w.t.Helper()
	w.next++
	if opts.frequency == stay.UnknownFrequency {
		opts.frequency = stay.Weekly
	}
	place, err := stay.NewPlace(fixedID(w.next+1000), name, point, false)
	require.NoError(w.t, err)
	s, err := stay.RestoreStay(fixedID(w.next), userID, place, opts.frequency, opts.start, opts.end, opts.inactiveUntil, false)
	require.NoError(w.t, err)
	w.stays = append(w.stays, s)
	return s
}

func (w *world) FindReachable(_ context.Context, origin *stay.Stay, exclude []kernel.UUID, day kernel.Date) ([]*stay.Stay, error) {
	excluded := make(map[kernel.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	var result []*stay.Stay
	for _, candidate := range w.stays {
		if _, skip := excluded[candidate.ID()]; skip {
			continue
		}
		if w.rule.IsReachable(origin, candidate, day) {
			result = append(result, candidate)
		}
	}
	return result, nil
}

func (w *world) FindStartCandidates(_ context.Context, userID kernel.UUID, day kernel.Date) ([]*stay.Stay, error) {
	var result []*stay.Stay
	for _, s := range w.stays {
		if s.UserID().IsEqual(userID) && s.IsActiveOn(day) {
			result = append(result, s)
		}
	}
	return result, nil
}

func stayIDs(stays []*stay.Stay) []kernel.UUID {
	ids := make([]kernel.UUID, len(stays))
	for i, s := range stays {
		ids[i] = s.ID()
	}
	return ids
}
