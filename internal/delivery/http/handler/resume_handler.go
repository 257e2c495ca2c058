package handler

import (
	"fmt"

	"jobtrack/internal/domain/resume"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/latex", h.LaTeX)
	r.Post("/:id/:section", h.CreateItem)
	r.Patch("/:id/:section/:itemId", h.UpdateItem)
	r.Delete("/:id/:section/:itemId", h.DeleteItem)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ResumeHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	full, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, full)
}

func (h *ResumeHandler) Create(c fiber.Ctx) error {
	var in usecase.ResumeInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, t)
}

func (h *ResumeHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.ResumeInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	t, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, t)
}

func (h *ResumeHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}

// LaTeX returns the rendered document in the envelope, or as a .tex
// attachment with ?download=true.
func (h *ResumeHandler) LaTeX(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	doc, err := h.uc.RenderLaTeX(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	download, err := queryBool(c, "download")
	if err != nil {
		return err
	}
	if download != nil && *download {
		c.Set(fiber.HeaderContentType, "application/x-tex; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume-%s.tex"`, id))
		return c.SendString(doc)
	}
	return response.OK(c, fiber.Map{"latex": doc})
}

func (h *ResumeHandler) CreateItem(c fiber.Ctx) error {
	return h.saveItem(c, false)
}

func (h *ResumeHandler) UpdateItem(c fiber.Ctx) error {
	return h.saveItem(c, true)
}

func (h *ResumeHandler) saveItem(c fiber.Ctx, existing bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	section, err := h.section(c)
	if err != nil {
		return err
	}
	itemID := uuid.Nil
	if existing {
		if itemID, err = paramID(c, "itemId"); err != nil {
			return err
		}
	}
	var in usecase.ResumeItemInput
	if err := bindBody(c, &in); err != nil {
		return err
	}

	item, err := h.uc.SaveItem(c.Context(), id, section, itemID, in)
	if err != nil {
		return usecaseError(err)
	}
	if existing {
		return response.OK(c, item)
	}
	return response.Created(c, item)
}

func (h *ResumeHandler) DeleteItem(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	section, err := h.section(c)
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteItem(c.Context(), id, section, itemID); err != nil {
		return usecaseError(err)
	}
	return deleted(c, itemID)
}

func (h *ResumeHandler) section(c fiber.Ctx) (resume.Section, error) {
	s, err := resume.ParseSection(c.Params("section"))
	if err != nil {
		return "", notFound(err.Error(), err)
	}
	return s, nil
}
