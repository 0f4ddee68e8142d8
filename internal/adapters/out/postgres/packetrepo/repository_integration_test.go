package packetrepo_test

import (
	"context"
	"testing"
	"time"

	"relay/internal/adapters/out/postgres/deliverylogrepo"
	"relay/internal/adapters/out/postgres/packetrepo"
	"relay/internal/adapters/out/postgres/routerepo"
	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/route"
	"relay/internal/core/ports"
	"relay/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var createdAt = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PacketRepositoryIntegrationTestSuite verifies packet persistence and the
// maintenance sweep query against PostgreSQL.
type PacketRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	packets   *packetrepo.GormPacketRepository
	routes    *routerepo.GormRouteRepository
	logs      *deliverylogrepo.GormDeliveryLogRepository
	tracker   *MockAggregateTracker
}

func (suite *PacketRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&packetrepo.PacketDTO{},
		&routerepo.RouteDTO{},
		&routerepo.RouteStepDTO{},
		&deliverylogrepo.EntryDTO{},
	))
}

func (suite *PacketRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_logs, route_steps, routes, packets CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.packets = packetrepo.NewGormPacketRepository(suite.db, suite.tracker)
	suite.routes = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
	suite.logs = deliverylogrepo.NewGormDeliveryLogRepository(suite.db)
}

func (suite *PacketRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PacketRepositoryIntegrationTestSuite) TestAdd_ValidPacket_Success() {
	ctx := context.Background()
	p := suite.newPacket("brave-turtle-1", createdAt)
	suite.tracker.On("TrackAggregate", p.ID(), p).Once()

	suite.Require().NoError(suite.packets.Add(ctx, p))

	restored, err := suite.packets.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal("brave-turtle-1", restored.HumanID())
	suite.True(restored.SenderID().IsEqual(p.SenderID()))
	suite.True(restored.RecipientID().IsEqual(p.RecipientID()))
	suite.True(restored.CreatedAt().Equal(createdAt))
	suite.False(restored.IsCancelled())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PacketRepositoryIntegrationTestSuite) TestAdd_HumanIDTaken() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Once()

	suite.Require().NoError(suite.packets.Add(ctx, suite.newPacket("brave-turtle-1", createdAt)))
	err := suite.packets.Add(ctx, suite.newPacket("brave-turtle-1", createdAt))

	suite.Require().ErrorIs(err, ports.ErrHumanIDTaken)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PacketRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellation() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	p := suite.newPacket("brave-turtle-1", createdAt)
	suite.Require().NoError(suite.packets.Add(ctx, p))

	suite.Require().NoError(p.Cancel())
	suite.Require().NoError(suite.packets.Update(ctx, p))

	restored, err := suite.packets.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsCancelled())
}

func (suite *PacketRepositoryIntegrationTestSuite) TestUpdate_UnknownPacket() {
	err := suite.packets.Update(context.Background(), suite.newPacket("brave-turtle-1", createdAt))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PacketRepositoryIntegrationTestSuite) TestListWithoutValidRoute() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	unrouted := suite.addPacket("a", createdAt.Add(time.Hour))
	healthy := suite.addPacket("b", createdAt)
	suite.addRoute(healthy, route.Current, route.Accepted, route.Suggested)

	rejected := suite.addPacket("c", createdAt.Add(2*time.Hour))
	suite.addRoute(rejected, route.Current, route.Accepted, route.Rejected)

	delivered := suite.addPacket("d", createdAt)
	suite.addRoute(delivered, route.Current, route.Completed, route.Cancelled, route.Completed)

	onlyOld := suite.addPacket("e", createdAt.Add(-time.Hour))
	suite.addRoute(onlyOld, route.CancelledRoute, route.Suggested)

	cancelled := suite.addPacket("f", createdAt)
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.packets.Update(ctx, cancelled))

	missing, err := suite.packets.ListWithoutValidRoute(ctx, 10, createdAt)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{onlyOld.ID(), unrouted.ID(), rejected.ID()}, missing)

	limited, err := suite.packets.ListWithoutValidRoute(ctx, 1, createdAt)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{onlyOld.ID()}, limited)
}

func (suite *PacketRepositoryIntegrationTestSuite) TestListWithoutValidRoute_WaitsAfterNoRouteFound() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	fresh := suite.addPacket("a", createdAt)
	suite.addLog(deliverylog.NewSearchingRouteEntry(fresh.ID(), createdAt.Add(time.Hour)))
	suite.addLog(deliverylog.NewNoRouteFoundEntry(fresh.ID(), createdAt.Add(time.Hour)))

	stale := suite.addPacket("b", createdAt.Add(time.Minute))
	suite.addLog(deliverylog.NewNoRouteFoundEntry(stale.ID(), createdAt.Add(-time.Hour)))

	searching := suite.addPacket("c", createdAt.Add(2*time.Minute))
	suite.addLog(deliverylog.NewNoRouteFoundEntry(searching.ID(), createdAt.Add(time.Hour)))
	suite.addLog(deliverylog.NewSearchingRouteEntry(searching.ID(), createdAt.Add(2*time.Hour)))

	missing, err := suite.packets.ListWithoutValidRoute(ctx, 10, createdAt)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{stale.ID(), searching.ID()}, missing)

	later, err := suite.packets.ListWithoutValidRoute(ctx, 10, createdAt.Add(3*time.Hour))
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{fresh.ID(), stale.ID(), searching.ID()}, later)
}

func (suite *PacketRepositoryIntegrationTestSuite) addLog(entry *deliverylog.Entry, err error) {
	suite.Require().NoError(err)
	suite.Require().NoError(suite.logs.Add(context.Background(), entry))
}

func (suite *PacketRepositoryIntegrationTestSuite) newPacket(humanID string, at time.Time) *packet.Packet {
	p, err := packet.NewPacket(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), humanID, at)
	suite.Require().NoError(err)
	return p
}

func (suite *PacketRepositoryIntegrationTestSuite) addPacket(suffix string, at time.Time) *packet.Packet {
	p := suite.newPacket("brave-turtle-"+suffix, at)
	suite.Require().NoError(suite.packets.Add(context.Background(), p))
	return p
}

func (suite *PacketRepositoryIntegrationTestSuite) addRoute(p *packet.Packet, status route.Status, steps ...route.StepStatus) {
	day := kernel.DateOf(createdAt)
	restored := make([]*route.Step, 0, len(steps))
	for i, s := range steps {
		period := kernel.MustNewDateRange(day.AddDays(i), day.AddDays(i+1))
		step, err := route.RestoreStep(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Place", period, s)
		suite.Require().NoError(err)
		restored = append(restored, step)
	}

	r, err := route.RestoreRoute(kernel.NewUUID(), p.ID(), status, createdAt, restored)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.routes.Add(context.Background(), r))
}

func TestPacketRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PacketRepositoryIntegrationTestSuite))
}
