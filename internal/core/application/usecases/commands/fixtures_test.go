package commands_test

import (
	"testing"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/domain/model/stay"

	"github.com/stretchr/testify/require"
)

var (
	now             = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	today           = kernel.DateOf(now)
	berlin          = kernel.MustNewGeoPoint(13.4317, 52.592879)
	packetCreatedAt = time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC)
)

func newTestPacket(t *testing.T, senderID, recipientID kernel.UUID) *packet.Packet {
	t.Helper()
	p, err := packet.NewPacket(kernel.NewUUID(), senderID, recipientID, "brave-turtle-1", packetCreatedAt)
	require.NoError(t, err)
	return p
}

func newTestStay(t *testing.T, userID kernel.UUID, frequency stay.Frequency) *stay.Stay {
	t.Helper()
	place, err := stay.NewPlace(kernel.NewUUID(), "Berlin", berlin, false)
	require.NoError(t, err)
	s, err := stay.NewStay(kernel.NewUUID(), userID, place, frequency, nil, nil)
	require.NoError(t, err)
	return s
}

type stepFixture struct {
	holderID kernel.UUID
	stayID   kernel.UUID
	status   route.StepStatus
}

func newTestRoute(t *testing.T, packetID kernel.UUID, fixtures ...stepFixture) *route.Route {
	t.Helper()
	steps := make([]*route.Step, len(fixtures))
	for i, f := range fixtures {
		stayID := f.stayID
		if stayID == (kernel.UUID{}) {
			stayID = kernel.NewUUID()
		}
		start := today.AddDays(i * 7)
		period := kernel.MustNewDateRange(start, start.AddDays(10))
		var err error
		steps[i], err = route.RestoreStep(kernel.NewUUID(), stayID, f.holderID, "Berlin", period, f.status)
		require.NoError(t, err)
	}
	r, err := route.RestoreRoute(kernel.NewUUID(), packetID, route.Current, packetCreatedAt, steps)
	require.NoError(t, err)
	return r
}
