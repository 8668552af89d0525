package routes

import (
	"io"
	"log/slog"

	"presence-backend/config"
	"presence-backend/internal/blob"
	"presence-backend/internal/metrics"
	"presence-backend/internal/model"
	"presence-backend/internal/middleware"
	"presence-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Deps carries the shared collaborators every route group is built from.
type Deps struct {
	DB      *gorm.DB
	Config  config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics
	Offices repository.OfficeRepository
	Images  blob.Store
	Version string

	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
}

// adminOnly returns the Auth and Role("admin") handlers, in that order.
func (d *Deps) adminOnly() (fiber.Handler, fiber.Handler) {
	return middleware.Auth(d.Config.JWTSecret), middleware.Role(model.RoleAdmin)
}

// NewApp builds the fiber app with the global middleware, static uploads and
// every route group.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "presence-backend " + d.Version,
		BodyLimit: 16 * 1024 * 1024, // base64 photos
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	if d.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: d.AccessLog,
		}))
	}

	// Captured photos are served from here
	app.Static("/uploads", d.Config.UploadDir)

	Setup(app, d)
	return app
}

// Setup registers every route group on app.
func Setup(app *fiber.App, d *Deps) {
	SetupSystemRoutes(app, d)
	SetupAdminRoutes(app, d)
	SetupOfficeRoutes(app, d)
	SetupWorkerRoutes(app, d)
	SetupAttendanceRoutes(app, d)
	SetupLocationRoutes(app, d)
	SetupPresenceRoutes(app, d)
	SetupDashboardRoutes(app, d)
	SetupReportRoutes(app, d)
}
