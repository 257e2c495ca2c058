package handler

import (
	"strings"

	"jobtrack/internal/domain/company"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	fav, err := queryBool(c, "favorite")
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), company.Filter{
		Query:    strings.TrimSpace(c.Query("q")),
		Industry: strings.TrimSpace(c.Query("industry")),
		Favorite: fav,
	})
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, d)
}

func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var in usecase.CompanyInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, out)
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.CompanyInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, out)
}

func (h *CompanyHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}
