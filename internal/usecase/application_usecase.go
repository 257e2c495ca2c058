package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/infrastructure/storage"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const entityApplication = "application"

type ApplicationInput struct {
	CompanyID      *uuid.UUID `json:"company_id"`
	Position       *string    `json:"position"`
	Status         *string    `json:"status"`
	JobURL         *string    `json:"job_url"`
	Location       *string    `json:"location"`
	Salary         *string    `json:"salary"`
	WorkType       *string    `json:"work_type"`
	JobDescription *string    `json:"job_description"`
	Notes          *string    `json:"notes"`
	AppliedAt      *time.Time `json:"applied_at"`
}

type FileKind string

const (
	FileResume      FileKind = "resume"
	FileCoverLetter FileKind = "cover_letter"
)

type Upload struct {
	Kind     FileKind
	Filename string
	Size     int64
	Content  io.Reader
}

type FileStore interface {
	Save(ctx context.Context, applicationID uuid.UUID, kind string, filename string, r io.Reader) (string, error)
}

type ApplicationUsecase interface {
	List(ctx context.Context, f application.Filter) ([]application.Application, error)
	Get(ctx context.Context, id uuid.UUID) (application.Application, error)
	Create(ctx context.Context, in ApplicationInput) (application.Application, error)
	Update(ctx context.Context, id uuid.UUID, in ApplicationInput) (application.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachFiles(ctx context.Context, id uuid.UUID, files []Upload) (application.Application, error)
}

type Application struct {
	repo     repository.ApplicationRepository
	files    FileStore
	maxBytes int64
	deps     Deps
}

func NewApplicationUsecase(repo repository.ApplicationRepository, files FileStore, maxBytes int64, deps Deps) *Application {
	return &Application{repo: repo, files: files, maxBytes: maxBytes, deps: deps.withDefaults()}
}

func (u *Application) List(ctx context.Context, f application.Filter) ([]application.Application, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "application.list", entityApplication, err)
	}
	return out, nil
}

func (u *Application) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := u.repo.Get(ctx, id)
	if err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.get", entityApplication, err)
	}
	return a, nil
}

// apply copies the present fields onto a. Status goes last so the applied_at
// stamp sees any explicit applied_at from the same request.
func (u *Application) apply(a *application.Application, in ApplicationInput) error {
	if in.CompanyID != nil {
		if *in.CompanyID == uuid.Nil {
			return invalid("company_id is required")
		}
		a.CompanyID = *in.CompanyID
	}
	if in.Position != nil {
		if trimmed(in.Position) == "" {
			return invalid("position cannot be empty")
		}
		a.Position = trimmed(in.Position)
	}
	if in.WorkType != nil {
		w, err := application.ParseWorkType(*in.WorkType)
		if err != nil {
			return invalid("%s", err.Error())
		}
		a.WorkType = w
	}
	setString(&a.JobURL, in.JobURL)
	setString(&a.Location, in.Location)
	setString(&a.Salary, in.Salary)
	setString(&a.JobDescription, in.JobDescription)
	setString(&a.Notes, in.Notes)
	if in.AppliedAt != nil {
		t := in.AppliedAt.UTC()
		a.AppliedAt = &t
	}
	if in.Status != nil {
		s, err := application.ParseStatus(*in.Status)
		if err != nil {
			return invalid("%s", err.Error())
		}
		a.SetStatus(s, u.deps.Now())
	}
	return nil
}

func (u *Application) Create(ctx context.Context, in ApplicationInput) (application.Application, error) {
	if in.CompanyID == nil || *in.CompanyID == uuid.Nil {
		return application.Application{}, invalid("company_id is required")
	}
	if trimmed(in.Position) == "" {
		return application.Application{}, invalid("position is required")
	}

	a := application.Application{ID: uuid.New(), Status: application.StatusNotApplied}
	if err := u.apply(&a, in); err != nil {
		return application.Application{}, err
	}

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.create", entityApplication, err)
	}
	u.deps.changed(ctx, entityApplication, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Application) Update(ctx context.Context, id uuid.UUID, in ApplicationInput) (application.Application, error) {
	a, err := u.repo.Get(ctx, id)
	if err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.update", entityApplication, err)
	}
	if err := u.apply(&a, in); err != nil {
		return application.Application{}, err
	}

	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.update", entityApplication, err)
	}
	u.deps.changed(ctx, entityApplication, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Application) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "application.delete", entityApplication, err)
	}
	u.deps.changed(ctx, entityApplication, ws.ActionDeleted, id)
	return nil
}

// AttachFiles stores the uploaded documents and records their paths. Only the
// kinds present in files are replaced.
func (u *Application) AttachFiles(ctx context.Context, id uuid.UUID, files []Upload) (application.Application, error) {
	if len(files) == 0 {
		return application.Application{}, invalid("no files provided; use fields resume or cover_letter")
	}
	if _, err := u.repo.Get(ctx, id); err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.files", entityApplication, err)
	}
	if u.files == nil {
		u.deps.Logger.Error("file store not configured")
		return application.Application{}, ErrInternal
	}

	var resumePath, coverPath string
	for _, f := range files {
		if f.Kind != FileResume && f.Kind != FileCoverLetter {
			return application.Application{}, invalid("unknown file field %q", f.Kind)
		}
		if strings.TrimSpace(f.Filename) == "" {
			return application.Application{}, invalid("%s has no file name", f.Kind)
		}
		if u.maxBytes > 0 && f.Size > u.maxBytes {
			return application.Application{}, invalid("%s exceeds %d bytes", f.Kind, u.maxBytes)
		}
		path, err := u.files.Save(ctx, id, string(f.Kind), f.Filename, f.Content)
		if errors.Is(err, storage.ErrTooLarge) {
			return application.Application{}, invalid("%s exceeds %d bytes", f.Kind, u.maxBytes)
		}
		if err != nil {
			u.deps.Logger.Error("save upload failed", zap.String("application_id", id.String()), zap.String("kind", string(f.Kind)), zap.Error(err))
			return application.Application{}, ErrInternal
		}
		if f.Kind == FileResume {
			resumePath = path
		} else {
			coverPath = path
		}
	}

	if err := u.repo.SetFiles(ctx, id, resumePath, coverPath); err != nil {
		return application.Application{}, storeErr(u.deps.Logger, "application.files", entityApplication, err)
	}
	u.deps.changed(ctx, entityApplication, ws.ActionUpdated, id)
	return u.Get(ctx, id)
}
