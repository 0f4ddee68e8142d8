package queries_test

import (
	"context"
	"testing"
	"time"

	"relay/internal/adapters/out/postgres/deliverylogrepo"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/model/deliverylog"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/route"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDeliveryLogQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetDeliveryLogQueryHandler
	logRepo   *deliverylogrepo.GormDeliveryLogRepository
}

func (suite *GetDeliveryLogQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&deliverylogrepo.EntryDTO{}))

	suite.handler = queries.NewGetDeliveryLogQueryHandler(db)
	suite.logRepo = deliverylogrepo.NewGormDeliveryLogRepository(db)
}

func (suite *GetDeliveryLogQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDeliveryLogQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_logs").Error)
}

func (suite *GetDeliveryLogQueryHandlerTestSuite) TestHandle_RendersNewestFirst() {
	ctx := context.Background()
	packetID := kernel.NewUUID()
	routeID := kernel.NewUUID()
	stepID := kernel.NewUUID()

	searching, err := deliverylog.NewSearchingRouteEntry(packetID, createdAt)
	suite.Require().NoError(err)
	found, err := deliverylog.NewRouteEntry(packetID, routeID, createdAt)
	suite.Require().NoError(err)
	accepted, err := deliverylog.NewStepChangeEntry(packetID, routeID, stepID, route.Accepted, createdAt.Add(time.Hour))
	suite.Require().NoError(err)
	moved, err := deliverylog.NewPacketMovedEntry(packetID, routeID, stepID, createdAt.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.logRepo.Add(ctx, searching, found, accepted, moved))

	query, err := queries.NewGetDeliveryLogQuery(packetID)
	suite.Require().NoError(err)

	lines, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 4)

	suite.Equal("Packet changed location", lines[0].Description)
	suite.Equal(deliverylog.RouteStepChange, lines[1].Action)
	suite.Contains(lines[1].Description, route.Accepted.String())
	suite.Require().NotNil(lines[1].StepID)
	suite.True(lines[1].StepID.IsEqual(stepID))
	suite.Equal("New route found", lines[2].Description)
	suite.Nil(lines[2].StepID)
	suite.Equal("Searching for a new route", lines[3].Description)
	suite.Nil(lines[3].RouteID)
}

func (suite *GetDeliveryLogQueryHandlerTestSuite) TestHandle_UnknownPacketIsEmpty() {
	query, err := queries.NewGetDeliveryLogQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	lines, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(lines)
}

func TestGetDeliveryLogQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDeliveryLogQueryHandlerTestSuite))
}
