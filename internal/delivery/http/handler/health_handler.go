package handler

import (
	"context"
	"time"

	"jobtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by the database pool and the redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

type healthStatus struct {
	Database bool `json:"database"`
	Redis    bool `json:"redis"`
}

// NewHealthHandler accepts a nil cache when redis is not configured.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check reports 503 only when the database is down; redis is optional.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	st := healthStatus{
		Database: ping(ctx, h.db),
		Redis:    ping(ctx, h.cache),
	}
	if !st.Database {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, st)
	}
	return response.OK(c, st)
}

func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	return p.Ping(ctx) == nil
}
