package handler

import (
	"strings"

	"jobtrack/internal/domain/contact"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *ContactHandler) List(c fiber.Ctx) error {
	var f contact.Filter
	if raw := c.Query("status"); raw != "" {
		s, err := contact.ParseStatus(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Status = &s
	}
	var err error
	if f.CompanyID, err = queryUUID(c, "company_id"); err != nil {
		return err
	}
	if f.CanRefer, err = queryBool(c, "can_refer"); err != nil {
		return err
	}
	f.Query = strings.TrimSpace(c.Query("q"))

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ContactHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, out)
}

func (h *ContactHandler) Create(c fiber.Ctx) error {
	var in usecase.ContactInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, out)
}

func (h *ContactHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.ContactInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, out)
}

func (h *ContactHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}
