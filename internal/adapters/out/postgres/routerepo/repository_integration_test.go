package routerepo_test

import (
	"context"
	"testing"
	"time"

	"relay/internal/adapters/out/postgres/routerepo"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"
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

// RouteRepositoryIntegrationTestSuite verifies route persistence against
// PostgreSQL.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&routerepo.RouteDTO{}, &routerepo.RouteStepDTO{}))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE route_steps, routes CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	r := suite.newRoute(kernel.NewUUID(), createdAt, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, r))

	restored, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.True(restored.PacketID().IsEqual(r.PacketID()))
	suite.Equal(route.Current, restored.Status())
	suite.True(restored.CreatedAt().Equal(createdAt))
	suite.Empty(restored.DomainEvents())
	suite.Require().Len(restored.Steps(), 3)
	for i, step := range restored.Steps() {
		original := r.Steps()[i]
		suite.True(step.ID().IsEqual(original.ID()), "step %d keeps its position", i)
		suite.True(step.StayID().IsEqual(original.StayID()))
		suite.True(step.HolderID().IsEqual(original.HolderID()))
		suite.True(step.Period().IsEqual(original.Period()))
		suite.Equal(route.Suggested, step.Status())
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_PersistsStatuses() {
	ctx := context.Background()
	r := suite.newRoute(kernel.NewUUID(), createdAt, kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.Require().NoError(r.RejectStep(r.Steps()[1].ID()))
	suite.Require().NoError(r.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, r))

	restored, err := suite.repository.GetByStep(ctx, r.Steps()[1].ID())
	suite.Require().NoError(err)
	suite.Equal(route.CancelledRoute, restored.Status())
	suite.Equal(route.Rejected, restored.Steps()[1].Status())

	_, err = suite.repository.GetCurrentForPacket(ctx, r.PacketID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_UnknownRoute() {
	r := suite.newRoute(kernel.NewUUID(), createdAt, kernel.NewUUID())
	err := suite.repository.Update(context.Background(), r)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGetByStep_UnknownStep() {
	_, err := suite.repository.GetByStep(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestCurrentRoutesAndLastCreatedAt() {
	ctx := context.Background()
	packetID := kernel.NewUUID()
	sharedStay := kernel.NewUUID()

	old := suite.newRoute(packetID, createdAt, sharedStay)
	suite.Require().NoError(suite.repository.Add(ctx, old))
	suite.Require().NoError(old.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, old))

	current := suite.newRoute(packetID, createdAt.Add(time.Hour), kernel.NewUUID(), sharedStay)
	suite.Require().NoError(suite.repository.Add(ctx, current))

	other := suite.newRoute(kernel.NewUUID(), createdAt.Add(2*time.Hour), sharedStay)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	found, err := suite.repository.GetCurrentForPacket(ctx, packetID)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(current.ID()))

	byStay, err := suite.repository.ListCurrentByStay(ctx, sharedStay)
	suite.Require().NoError(err)
	suite.Require().Len(byStay, 2)
	suite.True(byStay[0].ID().IsEqual(current.ID()))
	suite.True(byStay[1].ID().IsEqual(other.ID()))

	last, err := suite.repository.LastCreatedAt(ctx, packetID)
	suite.Require().NoError(err)
	suite.Require().NotNil(last)
	suite.True(last.Equal(createdAt.Add(time.Hour)))

	never, err := suite.repository.LastCreatedAt(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Nil(never)
}

func (suite *RouteRepositoryIntegrationTestSuite) newRoute(packetID kernel.UUID, at time.Time, stayIDs ...kernel.UUID) *route.Route {
	day := kernel.DateOf(at)
	steps := make([]*route.Step, 0, len(stayIDs))
	for i, stayID := range stayIDs {
		period := kernel.MustNewDateRange(day.AddDays(2*i), day.AddDays(2*i+1))
		step, err := route.NewStep(kernel.NewUUID(), stayID, kernel.NewUUID(), "Place", period)
		suite.Require().NoError(err)
		steps = append(steps, step)
	}

	r, err := route.NewRoute(kernel.NewUUID(), packetID, at, steps)
	suite.Require().NoError(err)
	return r
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
