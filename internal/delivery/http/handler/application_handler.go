package handler

import (
	"fmt"
	"strings"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/pkg/response"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc       usecase.ApplicationUsecase
	importer usecase.ImportUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase, importer usecase.ImportUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, importer: importer}
}

type importRequest struct {
	URL string `json:"url"`
}

type importBatchRequest struct {
	URLs []string `json:"urls"`
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/import", h.Import)
	r.Post("/import/batch", h.ImportBatch)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/files", h.UploadFiles)
}

func (h *ApplicationHandler) List(c fiber.Ctx) error {
	var f application.Filter
	if raw := c.Query("status"); raw != "" {
		s, err := application.ParseStatus(raw)
		if err != nil {
			return badRequest(err.Error(), err)
		}
		f.Status = &s
	}
	companyID, err := queryUUID(c, "company_id")
	if err != nil {
		return err
	}
	f.CompanyID = companyID
	f.Query = strings.TrimSpace(c.Query("q"))
	if f.Sort, err = application.ParseSort(c.Query("sort")); err != nil {
		return badRequest(err.Error(), err)
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, items)
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, a)
}

func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	var in usecase.ApplicationInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	a, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return usecaseError(err)
	}
	return response.Created(c, a)
}

func (h *ApplicationHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var in usecase.ApplicationInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	a, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, a)
}

func (h *ApplicationHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return usecaseError(err)
	}
	return deleted(c, id)
}

// UploadFiles reads the multipart fields resume and cover_letter; either may
// be absent.
func (h *ApplicationHandler) UploadFiles(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest("expected multipart/form-data", err)
	}

	uploads := make([]usecase.Upload, 0, 2)
	for _, kind := range []usecase.FileKind{usecase.FileResume, usecase.FileCoverLetter} {
		headers := form.File[string(kind)]
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			return badRequest(fmt.Sprintf("cannot read %s", kind), err)
		}
		defer f.Close()
		uploads = append(uploads, usecase.Upload{Kind: kind, Filename: fh.Filename, Size: fh.Size, Content: f})
	}

	a, err := h.uc.AttachFiles(c.Context(), id, uploads)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, a)
}

func (h *ApplicationHandler) Import(c fiber.Ctx) error {
	var req importRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	d, err := h.importer.Import(c.Context(), req.URL)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, d)
}

func (h *ApplicationHandler) ImportBatch(c fiber.Ctx) error {
	var req importBatchRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	res, err := h.importer.ImportBatch(c.Context(), req.URLs)
	if err != nil {
		return usecaseError(err)
	}
	return response.OK(c, res)
}
