package handler

import (
	"jobtrack/internal/domain/emailtemplate"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EmailTemplateHandler struct {
	uc usecase.EmailTemplateUsecase
}

func NewEmailTemplateHandler(uc usecase.EmailTemplateUsecase) *EmailTemplateHandler {
	return &EmailTemplateHandler{uc: uc}
}

type renderRequest struct {
	Variables map[string]string `json:"variables"`
}

func (h *EmailTemplateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/render", h.Render)
}

func (h *EmailTemplateHandler) List(c fiber.Ctx) error {
	var f emailtemplate.Filter
	if raw := c.Query("category"); raw != "" {
		cat, err := emailtemplate.ParseCategory(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Category = &cat
	}
	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *EmailTemplateHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, t)
}

func (h *EmailTemplateHandler) Create(c fiber.Ctx) error {
	var in usecase.EmailTemplateInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, t)
}

func (h *EmailTemplateHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.EmailTemplateInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	t, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, t)
}

func (h *EmailTemplateHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}

func (h *EmailTemplateHandler) Render(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req renderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	out, err := h.uc.Render(c.Context(), id, req.Variables)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, out)
}
