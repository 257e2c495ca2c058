package handler

import (
	"jobtrack/internal/domain/resource"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResourceHandler struct {
	uc usecase.ResourceUsecase
}

func NewResourceHandler(uc usecase.ResourceUsecase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

func (h *ResourceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List returns a flat list, or the nested forest with ?tree=true.
// ?root=true restricts the flat list to top-level resources.
func (h *ResourceHandler) List(c fiber.Ctx) error {
	tree, err := queryBool(c, "tree")
	if err != nil {
		return err
	}
	if tree != nil && *tree {
		nodes, err := h.uc.Tree(c.Context())
		if err != nil {
			return usecaseError(err)
		}
		return response.OK(c, nodes)
	}

	var f resource.Filter
	if f.ParentID, err = queryUUID(c, "parent_id"); err != nil {
		return err
	}
	root, err := queryBool(c, "root")
	if err != nil {
		return err
	}
	f.RootOnly = root != nil && *root

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ResourceHandler) Get(c fiber.Ctx) error {
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

func (h *ResourceHandler) Create(c fiber.Ctx) error {
	var in usecase.ResourceInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	r, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, r)
}

func (h *ResourceHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.ResourceInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	r, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, r)
}

func (h *ResourceHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}
