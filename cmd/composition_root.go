package cmd

import (
	"context"
	"log/slog"

	"relay/internal/adapters/in/csvseed"
	httpin "relay/internal/adapters/in/http"
	"relay/internal/adapters/out/events"
	"relay/internal/adapters/out/humanid"
	"relay/internal/adapters/out/memlock"
	"relay/internal/adapters/out/notifier"
	"relay/internal/adapters/out/postgres"
	"relay/internal/adapters/out/redislock"
	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/application/usecases/queries"
	"relay/internal/core/domain/services"
	"relay/internal/core/ports"
	"relay/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const eventBufferSize = 256

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	bus         *events.Bus
	redisClient *redis.Client
	uowFactory  *postgres.GormUnitOfWorkFactory
	planner     *commands.RoutePlanner
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	bus := events.NewBus(eventBufferSize)
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, bus, services.NewReachabilityRule(cfg.Policy), logger)
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		bus:        bus,
		uowFactory: uowFactory,
	}
	c.planner = commands.NewRoutePlanner(c.planningUoWFactory(), cfg.Policy, logger)
	if cfg.RedisAddr != "" {
		c.redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	return c
}

// Close stops event delivery and releases external clients.
func (c *CompositionRoot) Close() error {
	c.bus.Close()
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}

func (c *CompositionRoot) uowFactoryAdapter() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) planningUoWFactory() commands.PlanningUoWFactory {
	return FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) packetReadUoWFactory() queries.PacketReadUoWFactory {
	return FuncPacketReadUoWFactory(func() queries.PacketReadUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	return commands.NewCreateUserCommandHandler(c.uowFactoryAdapter())
}

func (c *CompositionRoot) CreateCreateLocationCommandHandler() commands.CreateLocationCommandHandler {
	return commands.NewCreateLocationCommandHandler(c.uowFactoryAdapter())
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.uowFactoryAdapter(), c.planner, c.logger)
}

func (c *CompositionRoot) CreateDeleteLocationCommandHandler() commands.DeleteLocationCommandHandler {
	return commands.NewDeleteLocationCommandHandler(c.uowFactoryAdapter(), c.planner, c.logger)
}

func (c *CompositionRoot) CreateCreateStayCommandHandler() commands.CreateStayCommandHandler {
	return commands.NewCreateStayCommandHandler(c.uowFactoryAdapter())
}

func (c *CompositionRoot) CreateUpdateStayCommandHandler() commands.UpdateStayCommandHandler {
	return commands.NewUpdateStayCommandHandler(c.uowFactoryAdapter(), c.planner, c.logger)
}

func (c *CompositionRoot) CreateDeleteStayCommandHandler() commands.DeleteStayCommandHandler {
	return commands.NewDeleteStayCommandHandler(c.uowFactoryAdapter(), c.planner, c.logger)
}

func (c *CompositionRoot) CreateCreatePacketCommandHandler() commands.CreatePacketCommandHandler {
	return commands.NewCreatePacketCommandHandler(c.uowFactoryAdapter(), humanid.New(), c.planner, c.logger)
}

func (c *CompositionRoot) CreateCancelPacketCommandHandler() commands.CancelPacketCommandHandler {
	return commands.NewCancelPacketCommandHandler(c.planningUoWFactory())
}

func (c *CompositionRoot) CreateRespondToStepCommandHandler() commands.RespondToStepCommandHandler {
	return commands.NewRespondToStepCommandHandler(c.planningUoWFactory(), c.planner, c.cfg.Cooldowns, c.logger)
}

func (c *CompositionRoot) CreateStepActionCommandHandler() commands.StepActionCommandHandler {
	return commands.NewStepActionCommandHandler(c.planningUoWFactory(), c.planner, c.logger)
}

func (c *CompositionRoot) CreatePostChatMessageCommandHandler() commands.PostChatMessageCommandHandler {
	return commands.NewPostChatMessageCommandHandler(c.planningUoWFactory(), c.CreateNotifier())
}

// CreateNotifier returns the chat and notification delivery. Messages are
// only logged for now.
func (c *CompositionRoot) CreateNotifier() ports.Notifier {
	return notifier.NewLogNotifier(c.logger)
}

func (c *CompositionRoot) CreateRecalculateRouteCommandHandler() commands.RecalculateRouteCommandHandler {
	return commands.NewRecalculateRouteCommandHandler(c.planner)
}

func (c *CompositionRoot) CreateRecalculateMissingRoutesCommandHandler() commands.RecalculateMissingRoutesCommandHandler {
	return commands.NewRecalculateMissingRoutesCommandHandler(
		c.planningUoWFactory(), c.planner, c.cfg.MaintenanceConcurrency, c.cfg.MaintenanceRetryBackoff,
	)
}

func (c *CompositionRoot) CreateGetPacketStatusQueryHandler() *queries.GetPacketStatusQueryHandler {
	return queries.NewGetPacketStatusQueryHandler(c.packetReadUoWFactory(), c.cfg.NoRouteGracePeriod)
}

func (c *CompositionRoot) CreateGetDeliveryLogQueryHandler() queries.GetDeliveryLogQueryHandler {
	return queries.NewGetDeliveryLogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatsQueryHandler() queries.GetStatsQueryHandler {
	return queries.NewGetStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateUser:        c.CreateCreateUserCommandHandler(),
		CreateLocation:    c.CreateCreateLocationCommandHandler(),
		UpdateLocation:    c.CreateUpdateLocationCommandHandler(),
		DeleteLocation:    c.CreateDeleteLocationCommandHandler(),
		CreateStay:        c.CreateCreateStayCommandHandler(),
		UpdateStay:        c.CreateUpdateStayCommandHandler(),
		DeleteStay:        c.CreateDeleteStayCommandHandler(),
		CreatePacket:      c.CreateCreatePacketCommandHandler(),
		CancelPacket:      c.CreateCancelPacketCommandHandler(),
		RespondToStep:     c.CreateRespondToStepCommandHandler(),
		PerformStepAction: c.CreateStepActionCommandHandler(),
		PostChatMessage:   c.CreatePostChatMessageCommandHandler(),
		RecalculateRoute:  c.CreateRecalculateRouteCommandHandler(),
		GetPacketStatus:   c.CreateGetPacketStatusQueryHandler(),
		GetDeliveryLog:    c.CreateGetDeliveryLogQueryHandler(),
		GetStats:          c.CreateGetStatsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateSeedImporter() *csvseed.Importer {
	return csvseed.NewImporter(
		c.CreateCreateUserCommandHandler(),
		c.CreateCreateLocationCommandHandler(),
		c.CreateCreateStayCommandHandler(),
		c.logger,
	)
}

// CreateJobLock returns the redis lock when REDIS_ADDR is set, otherwise a
// lock that only excludes runs inside this process.
func (c *CompositionRoot) CreateJobLock() ports.JobLock {
	if c.redisClient != nil {
		return redislock.New(c.redisClient)
	}
	return memlock.New()
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	maintenance := jobs.NewRouteMaintenanceJob(
		c.CreateRecalculateMissingRoutesCommandHandler(),
		c.CreateJobLock(),
		c.cfg.MaintenanceSchedule,
		c.logger,
	)
	return jobs.NewJobManager(maintenance)
}

// StartEventDispatcher delivers domain events published after commits
// until ctx is done or the bus is closed.
func (c *CompositionRoot) StartEventDispatcher(ctx context.Context) <-chan struct{} {
	dispatcher := events.NewDispatcher(c.bus, c.CreateNotifier(), c.logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		dispatcher.Run(ctx)
	}()
	return done
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncPacketReadUoWFactory func() queries.PacketReadUoW

func (f FuncPacketReadUoWFactory) Create() queries.PacketReadUoW {
	return f()
}
