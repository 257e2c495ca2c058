package handler

import (
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Summary)
	r.Get("/achievements", h.Achievements)
	r.Get("/insights", h.Insights)
}

func (h *AnalyticsHandler) Summary(c fiber.Ctx) error {
	s, err := h.uc.Summary(c.Context())
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, s)
}

func (h *AnalyticsHandler) Achievements(c fiber.Ctx) error {
	a, err := h.uc.Achievements(c.Context())
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, a)
}

func (h *AnalyticsHandler) Insights(c fiber.Ctx) error {
	in, err := h.uc.Insights(c.Context())
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, in)
}
