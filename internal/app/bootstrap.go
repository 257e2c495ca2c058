package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/delivery/http/handler"
	"jobtrack/internal/delivery/http/middleware"
	"jobtrack/internal/delivery/http/routes"
	"jobtrack/internal/metrics"
	"jobtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// bodyLimitSlack leaves room for multipart framing around an upload.
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    bodyLimit(cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	registerGlobalMiddleware(f, cfg, c.Logger, c.Metrics)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func bodyLimit(cfg config.Config) int {
	if cfg.Upload.MaxBytes <= 0 {
		return 0
	}
	return int(cfg.Upload.MaxBytes) + bodyLimitSlack
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *zap.Logger, m *metrics.Metrics) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewMetricsMiddleware(m).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CORSOrigins,
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderAuthorization, fiber.HeaderContentType, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, fiber.HeaderContentDisposition},
	}))
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	uc := c.Usecases
	loc := c.Config.Location()
	h := routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Auth:           handler.NewAuthHandler(uc.Auth),
		Companies:      handler.NewCompanyHandler(uc.Companies),
		Applications:   handler.NewApplicationHandler(uc.Applications, uc.Import),
		Contacts:       handler.NewContactHandler(uc.Contacts),
		Events:         handler.NewEventHandler(uc.Events, loc),
		Reminders:      handler.NewReminderHandler(uc.Reminders, loc),
		Learning:       handler.NewLearningHandler(uc.Learning),
		Resources:      handler.NewResourceHandler(uc.Resources),
		Resumes:        handler.NewResumeHandler(uc.Resumes),
		EmailTemplates: handler.NewEmailTemplateHandler(uc.EmailTemplates),
		Analytics:      handler.NewAnalyticsHandler(uc.Analytics),
		Calendar:       handler.NewCalendarHandler(uc.Calendar),
		WS:             ws.NewHandler(c.Hub, c.Logger.Named("ws"), c.Config.App.CORSOrigins),
		Metrics:        promhttp.Handler(),
	}

	var protect fiber.Handler
	if c.Config.Auth.Enabled() && c.JWT != nil {
		protect = middleware.NewAuthMiddleware(c.JWT).Middleware()
	}
	routes.NewRegistry(h, protect).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
