package queries_test

import (
	"context"
	"time"

	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockPacketRepository struct{ mock.Mock }

func (m *MockPacketRepository) Add(ctx context.Context, p *packet.Packet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPacketRepository) Update(ctx context.Context, p *packet.Packet) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPacketRepository) Get(ctx context.Context, id kernel.UUID) (*packet.Packet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packet.Packet), args.Error(1)
}

func (m *MockPacketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*packet.Packet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packet.Packet), args.Error(1)
}

func (m *MockPacketRepository) ListWithoutValidRoute(ctx context.Context, limit int, retryAfter time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit, retryAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, r *route.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByStep(ctx context.Context, stepID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) GetCurrentForPacket(ctx context.Context, packetID kernel.UUID) (*route.Route, error) {
	args := m.Called(ctx, packetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

func (m *MockRouteRepository) ListCurrentByStay(ctx context.Context, stayID kernel.UUID) ([]*route.Route, error) {
	args := m.Called(ctx, stayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*route.Route), args.Error(1)
}

func (m *MockRouteRepository) LastCreatedAt(ctx context.Context, packetID kernel.UUID) (*time.Time, error) {
	args := m.Called(ctx, packetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

type mockReadUoW struct {
	packets *MockPacketRepository
	routes  *MockRouteRepository
}

func (m *mockReadUoW) PacketRepository() ports.PacketRepository {
	return m.packets
}

func (m *mockReadUoW) RouteRepository() ports.RouteRepository {
	return m.routes
}

type mockReadUoWFactory struct {
	uow *mockReadUoW
}

func (f mockReadUoWFactory) Create() queries.PacketReadUoW {
	return f.uow
}
