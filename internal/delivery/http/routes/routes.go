package routes

import (
	"net/http"

	"jobtrack/internal/delivery/http/handler"
	"jobtrack/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Handlers is filled in by the app container. Nil entries are skipped.
type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Companies      *handler.CompanyHandler
	Applications   *handler.ApplicationHandler
	Contacts       *handler.ContactHandler
	Events         *handler.EventHandler
	Reminders      *handler.ReminderHandler
	Learning       *handler.LearningHandler
	Resources      *handler.ResourceHandler
	Resumes        *handler.ResumeHandler
	EmailTemplates *handler.EmailTemplateHandler
	Analytics      *handler.AnalyticsHandler
	Calendar       *handler.CalendarHandler
	WS             *ws.Handler
	Metrics        http.Handler
}

type Registry struct {
	h       Handlers
	protect fiber.Handler
}

// NewRegistry mounts everything under /api/v1. When protect is non-nil it
// guards every API route except /auth/*.
func NewRegistry(h Handlers, protect fiber.Handler) *Registry {
	return &Registry{h: h, protect: protect}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.h.Metrics))
	}
	if r.h.WS != nil {
		r.h.WS.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h, r.protect)
}
