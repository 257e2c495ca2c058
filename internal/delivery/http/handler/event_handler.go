package handler

import (
	"time"

	"jobtrack/internal/domain/event"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EventHandler struct {
	uc  usecase.EventUsecase
	loc *time.Location
}

func NewEventHandler(uc usecase.EventUsecase, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{uc: uc, loc: loc}
}

type nextStepRequest struct {
	Text string `json:"text"`
}

func (h *EventHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Put("/:id/outcome", h.SetOutcome)
	r.Post("/:id/next-steps", h.AddNextStep)
	r.Patch("/:id/next-steps/:index/toggle", h.ToggleNextStep)
	r.Delete("/:id/next-steps/:index", h.RemoveNextStep)
}

func (h *EventHandler) List(c fiber.Ctx) error {
	var (
		f   event.Filter
		err error
	)
	if f.ApplicationID, err = queryUUID(c, "application_id"); err != nil {
		return err
	}
	if raw := c.Query("type"); raw != "" {
		t, err := event.ParseType(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Type = &t
	}
	if raw := c.Query("status"); raw != "" {
		s, err := event.ParseStatus(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Status = &s
	}
	if f.From, err = queryTime(c, "from", h.loc); err != nil {
		return err
	}
	if f.To, err = queryTime(c, "to", h.loc); err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *EventHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, e)
}

func (h *EventHandler) Create(c fiber.Ctx) error {
	var in usecase.EventInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	e, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, e)
}

func (h *EventHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.EventInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	e, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, e)
}

func (h *EventHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}

func (h *EventHandler) SetOutcome(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.OutcomeInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	e, err := h.uc.SetOutcome(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, e)
}

func (h *EventHandler) AddNextStep(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req nextStepRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	e, err := h.uc.AddNextStep(c.Context(), id, req.Text)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, e)
}

func (h *EventHandler) ToggleNextStep(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	idx, err := paramIndex(c, "index")
	if err != nil {
		return err
	}
	e, err := h.uc.ToggleNextStep(c.Context(), id, idx)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, e)
}

func (h *EventHandler) RemoveNextStep(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	idx, err := paramIndex(c, "index")
	if err != nil {
		return err
	}
	e, err := h.uc.RemoveNextStep(c.Context(), id, idx)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, e)
}
