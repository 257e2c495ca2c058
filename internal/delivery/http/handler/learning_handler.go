package handler

import (
	"strings"

	"jobtrack/internal/domain/learning"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LearningHandler struct {
	uc usecase.LearningUsecase
}

func NewLearningHandler(uc usecase.LearningUsecase) *LearningHandler {
	return &LearningHandler{uc: uc}
}

func (h *LearningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *LearningHandler) List(c fiber.Ctx) error {
	f := learning.Filter{Category: strings.TrimSpace(c.Query("category"))}
	if raw := c.Query("status"); raw != "" {
		s, err := learning.ParseStatus(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Status = &s
	}
	if raw := c.Query("priority"); raw != "" {
		p, err := learning.ParsePriority(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Priority = &p
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *LearningHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	it, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, it)
}

func (h *LearningHandler) Create(c fiber.Ctx) error {
	var in usecase.LearningInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	it, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, it)
}

func (h *LearningHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.LearningInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	it, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, it)
}

func (h *LearningHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}
