package commands_test

import (
	"context"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/chat"
	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/location"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/domain/model/stay"
	"relay/internal/core/domain/model/user"
	"relay/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, l *location.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, l *location.Location) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

type MockStayRepository struct{ mock.Mock }

func (m *MockStayRepository) Add(ctx context.Context, s *stay.Stay) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStayRepository) Update(ctx context.Context, s *stay.Stay) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStayRepository) Get(ctx context.Context, id kernel.UUID) (*stay.Stay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stay.Stay), args.Error(1)
}

func (m *MockStayRepository) ListByLocation(ctx context.Context, locationID kernel.UUID) ([]*stay.Stay, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stay.Stay), args.Error(1)
}

func (m *MockStayRepository) FindReachable(
	ctx context.Context,
	origin *stay.Stay,
	exclude []kernel.UUID,
	day kernel.Date,
) ([]*stay.Stay, error) {
	args := m.Called(ctx, origin, exclude, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stay.Stay), args.Error(1)
}

func (m *MockStayRepository) FindStartCandidates(
	ctx context.Context,
	userID kernel.UUID,
	day kernel.Date,
) ([]*stay.Stay, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stay.Stay), args.Error(1)
}

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

type MockDeliveryLogRepository struct{ mock.Mock }

func (m *MockDeliveryLogRepository) Add(ctx context.Context, entries ...*deliverylog.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockDeliveryLogRepository) ListByPacket(ctx context.Context, packetID kernel.UUID) ([]*deliverylog.Entry, error) {
	args := m.Called(ctx, packetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*deliverylog.Entry), args.Error(1)
}

// repos bundles the repository mocks handed out by MockUoW.
type repos struct {
	users     *MockUserRepository
	locations *MockLocationRepository
	stays     *MockStayRepository
	packets   *MockPacketRepository
	routes    *MockRouteRepository
	logs      *MockDeliveryLogRepository
}

func newRepos() repos {
	return repos{
		users:     new(MockUserRepository),
		locations: new(MockLocationRepository),
		stays:     new(MockStayRepository),
		packets:   new(MockPacketRepository),
		routes:    new(MockRouteRepository),
		logs:      new(MockDeliveryLogRepository),
	}
}

type MockUoW struct {
	mock.Mock
	repos repos
}

func newMockUoW(r repos) *MockUoW {
	return &MockUoW{repos: r}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.repos.users
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.repos.locations
}

func (m *MockUoW) StayRepository() ports.StayRepository {
	return m.repos.stays
}

func (m *MockUoW) PacketRepository() ports.PacketRepository {
	return m.repos.packets
}

func (m *MockUoW) RouteRepository() ports.RouteRepository {
	return m.repos.routes
}

func (m *MockUoW) DeliveryLogRepository() ports.DeliveryLogRepository {
	return m.repos.logs
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockRouteMaintainer struct{ mock.Mock }

func (m *MockRouteMaintainer) CheckAndRecalculate(ctx context.Context, packetID kernel.UUID, at time.Time) (*route.Route, error) {
	args := m.Called(ctx, packetID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*route.Route), args.Error(1)
}

type MockHumanIDGenerator struct{ mock.Mock }

func (m *MockHumanIDGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendChatMessage(ctx context.Context, msg chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockNotifier) Notify(ctx context.Context, userID kernel.UUID, event kernel.DomainEvent) error {
	args := m.Called(ctx, userID, event)
	return args.Error(0)
}
