package handler

import (
	"fmt"
	"time"

	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultDueWithinHours = 24
	maxDueWithinHours     = 24 * 366
)

type ReminderHandler struct {
	uc  usecase.ReminderUsecase
	loc *time.Location
}

func NewReminderHandler(uc usecase.ReminderUsecase, loc *time.Location) *ReminderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderHandler{uc: uc, loc: loc}
}

func (h *ReminderHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/due", h.Due)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Patch("/:id/toggle", h.Toggle)
	r.Delete("/:id", h.Delete)
}

func (h *ReminderHandler) List(c fiber.Ctx) error {
	var (
		f   reminder.Filter
		err error
	)
	if f.Completed, err = queryBool(c, "completed"); err != nil {
		return err
	}
	if f.ApplicationID, err = queryUUID(c, "application_id"); err != nil {
		return err
	}
	if f.DueFrom, err = queryTime(c, "due_from", h.loc); err != nil {
		return err
	}
	if f.DueBefore, err = queryTime(c, "due_before", h.loc); err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

// Due lists open reminders due within ?hours= (default 24), overdue included.
func (h *ReminderHandler) Due(c fiber.Ctx) error {
	hours, err := queryInt(c, "hours", defaultDueWithinHours)
	if err != nil {
		return err
	}
	if hours > maxDueWithinHours {
		return badRequest(fmt.Sprintf("hours must be at most %d", maxDueWithinHours), nil)
	}
	items, err := h.uc.Due(c.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ReminderHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, r)
}

func (h *ReminderHandler) Create(c fiber.Ctx) error {
	var in usecase.ReminderInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	r, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, r)
}

func (h *ReminderHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.ReminderInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	r, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, r)
}

func (h *ReminderHandler) Toggle(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.uc.Toggle(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, r)
}

func (h *ReminderHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}
