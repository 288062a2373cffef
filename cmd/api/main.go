package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-reporting/internal/common/api"
	"go-reporting/internal/config"
	"go-reporting/internal/database"
	"go-reporting/internal/features/audit"
	"go-reporting/internal/features/index"
	"go-reporting/internal/features/system"
	"go-reporting/internal/features/testcase"
	"go-reporting/internal/features/view"
	"go-reporting/internal/logger"
	"go-reporting/internal/middleware"
	"go-reporting/internal/search"

	_ "go-reporting/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORSMiddleware(cfg))

	// Attribute view changes to the X-Actor header
	app.Use(middleware.ActorMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	logger.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		logger.Debug("Setting up route", zap.String("type", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndex registers the index template and creates the index in the
// background, then starts the periodic re-check when one is configured.
func InitializeIndex(lc fx.Lifecycle, indexService index.IndexService, scheduler *index.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				indexService.EnsureOnce(ctx)
			}()
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

// @title           Test Results Reporting API
// @version         1.0
// @description     Reports over indexed test results and a store of saved report views.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Infrastructure
			database.NewDatabase,
			logger.NewLogger,
			NewFiberServer,
			search.NewElasticClient,

			// Initialize Repository
			audit.NewAuditRepository,
			view.NewViewRepository,

			// Initialize Service
			audit.NewAuditService,
			view.NewViewService,
			index.NewIndexService,
			index.NewScheduler,
			testcase.NewReportService,

			// Initialize Controller
			audit.NewAuditController,
			view.NewViewController,
			index.NewIndexController,
			testcase.NewReportController,

			// Initialize API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(view.NewViewApi),
			AsRoute(index.NewIndexApi),
			AsRoute(testcase.NewReportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndex,
		),
	)

	app.Run()
}
