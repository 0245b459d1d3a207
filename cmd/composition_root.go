package cmd

import (
	"log/slog"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/memberrepo"
	"freight/internal/adapters/out/postgres/notificationrepo"
	redisout "freight/internal/adapters/out/redis"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/notifications"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot builds the application object graph. All handlers share one
// unit-of-work factory; the notifier and jobs get their own collaborators.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	notifier := notifications.NewService(
		uowFactory,
		memberrepo.NewGormMemberRepository(gormDB),
		redisout.NewPublisher(redisClient),
		logger,
	)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateReceiveOrderCommandHandler() commands.ReceiveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceiveOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCreateTripsCommandHandler() commands.CreateTripsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTripsCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateEditTripCommandHandler() commands.EditTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditTripCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateChangeTripStatusCommandHandler() commands.ChangeTripStatusCommandHandler {
	var f commands.TripReportUoWFactory = FuncTripReportUoWFactory(func() commands.TripReportUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeTripStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateResetTripDriverExpensesCommandHandler() commands.ResetTripDriverExpensesCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetTripDriverExpensesCommandHandler(f)
}

func (c *CompositionRoot) CreateSendDriverNotificationsCommandHandler() commands.SendDriverNotificationsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendDriverNotificationsCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTripsQueryHandler() queries.GetOrderTripsQueryHandler {
	return queries.NewGetOrderTripsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadNotificationsQueryHandler() queries.GetUnreadNotificationsQueryHandler {
	return queries.NewGetUnreadNotificationsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every route handler the API exposes.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateReceiveOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateEditOrderCommandHandler(),
		c.CreateCreateTripsCommandHandler(),
		c.CreateEditTripCommandHandler(),
		c.CreateChangeTripStatusCommandHandler(),
		c.CreateResetTripDriverExpensesCommandHandler(),
		c.CreateSendDriverNotificationsCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderTripsQueryHandler(),
		c.CreateGetUnreadNotificationsQueryHandler(),
	)
}

// CreateJobManager builds the background job scheduler. The cleanup job runs
// outside any unit of work, so it gets a repository bound to the base
// connection.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		notificationrepo.NewGormNotificationRepository(c.gormDB),
		c.config.NotificationRetention,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncTripReportUoWFactory func() commands.TripReportUoW

func (f FuncTripReportUoWFactory) Create() commands.TripReportUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
