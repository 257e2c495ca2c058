package handler

import (
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CalendarHandler struct {
	uc usecase.CalendarUsecase
}

func NewCalendarHandler(uc usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

func (h *CalendarHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Month)
}

func (h *CalendarHandler) Month(c fiber.Ctx) error {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		return err
	}
	m, err := h.uc.Month(c.Context(), year, month)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, m)
}
