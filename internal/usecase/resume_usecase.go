package usecase

import (
	"context"

	"jobtrack/internal/domain/resume"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityResume = "resume"

type ResumeInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HeaderLatex *string `json:"header_latex"`
	IsDefault   *bool   `json:"is_default"`
}

// ResumeItemInput carries the union of child fields; each section reads the
// ones it has.
type ResumeItemInput struct {
	Company      *string `json:"company"`
	Role         *string `json:"role"`
	Location     *string `json:"location"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	BulletsLatex *string `json:"bullets_latex"`
	Name         *string `json:"name"`
	TechStack    *string `json:"tech_stack"`
	Link         *string `json:"link"`
	Skills       *string `json:"skills"`
	Institution  *string `json:"institution"`
	Degree       *string `json:"degree"`
	Field        *string `json:"field"`
	DetailsLatex *string `json:"details_latex"`
	SortOrder    *int    `json:"sort_order"`
}

type ResumeUsecase interface {
	List(ctx context.Context) ([]resume.Template, error)
	Get(ctx context.Context, id uuid.UUID) (resume.Full, error)
	Create(ctx context.Context, in ResumeInput) (resume.Template, error)
	Update(ctx context.Context, id uuid.UUID, in ResumeInput) (resume.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RenderLaTeX(ctx context.Context, id uuid.UUID) (string, error)
	SaveItem(ctx context.Context, resumeID uuid.UUID, section resume.Section, itemID uuid.UUID, in ResumeItemInput) (any, error)
	DeleteItem(ctx context.Context, resumeID uuid.UUID, section resume.Section, itemID uuid.UUID) error
}

type Resume struct {
	repo repository.ResumeRepository
	deps Deps
}

func NewResumeUsecase(repo repository.ResumeRepository, deps Deps) *Resume {
	return &Resume{repo: repo, deps: deps.withDefaults()}
}

func (u *Resume) List(ctx context.Context) ([]resume.Template, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "resume.list", entityResume, err)
	}
	return out, nil
}

func (u *Resume) Get(ctx context.Context, id uuid.UUID) (resume.Full, error) {
	f, err := u.repo.GetFull(ctx, id)
	if err != nil {
		return resume.Full{}, storeErr(u.deps.Logger, "resume.get", entityResume, err)
	}
	return f, nil
}

func (in ResumeInput) apply(t *resume.Template) error {
	if in.Name != nil {
		if trimmed(in.Name) == "" {
			return invalid("name cannot be empty")
		}
		t.Name = trimmed(in.Name)
	}
	setString(&t.Description, in.Description)
	if in.HeaderLatex != nil {
		t.HeaderLatex = *in.HeaderLatex
	}
	setBool(&t.IsDefault, in.IsDefault)
	return nil
}

func (u *Resume) Create(ctx context.Context, in ResumeInput) (resume.Template, error) {
	if trimmed(in.Name) == "" {
		return resume.Template{}, invalid("name is required")
	}
	t := resume.Template{ID: uuid.New()}
	if err := in.apply(&t); err != nil {
		return resume.Template{}, err
	}
	created, err := u.repo.Create(ctx, t)
	if err != nil {
		return resume.Template{}, storeErr(u.deps.Logger, "resume.create", entityResume, err)
	}
	u.deps.changed(ctx, entityResume, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Resume) Update(ctx context.Context, id uuid.UUID, in ResumeInput) (resume.Template, error) {
	t, err := u.repo.Get(ctx, id)
	if err != nil {
		return resume.Template{}, storeErr(u.deps.Logger, "resume.update", entityResume, err)
	}
	if err := in.apply(&t); err != nil {
		return resume.Template{}, err
	}
	updated, err := u.repo.Update(ctx, t)
	if err != nil {
		return resume.Template{}, storeErr(u.deps.Logger, "resume.update", entityResume, err)
	}
	u.deps.changed(ctx, entityResume, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Resume) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "resume.delete", entityResume, err)
	}
	u.deps.changed(ctx, entityResume, ws.ActionDeleted, id)
	return nil
}

func (u *Resume) RenderLaTeX(ctx context.Context, id uuid.UUID) (string, error) {
	f, err := u.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return resume.RenderLaTeX(f), nil
}

// SaveItem creates a child row when itemID is uuid.Nil and patches the
// existing one otherwise.
func (u *Resume) SaveItem(ctx context.Context, resumeID uuid.UUID, section resume.Section, itemID uuid.UUID, in ResumeItemInput) (any, error) {
	full, err := u.repo.GetFull(ctx, resumeID)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "resume.item", entityResume, err)
	}
	creating := itemID == uuid.Nil

	var saved any
	switch section {
	case resume.SectionExperiences:
		e := resume.Experience{ResumeID: resumeID}
		if !creating {
			found := false
			for _, cur := range full.Experiences {
				if cur.ID == itemID {
					e, found = cur, true
				}
			}
			if !found {
				return nil, notFound("experience")
			}
		}
		if err := requireOn(creating, in.Company, "company"); err != nil {
			return nil, err
		}
		setString(&e.Company, in.Company)
		setString(&e.Role, in.Role)
		setString(&e.Location, in.Location)
		setString(&e.StartDate, in.StartDate)
		setString(&e.EndDate, in.EndDate)
		setRaw(&e.BulletsLatex, in.BulletsLatex)
		setInt(&e.SortOrder, in.SortOrder)
		saved, err = u.repo.SaveExperience(ctx, e)

	case resume.SectionProjects:
		p := resume.Project{ResumeID: resumeID}
		if !creating {
			found := false
			for _, cur := range full.Projects {
				if cur.ID == itemID {
					p, found = cur, true
				}
			}
			if !found {
				return nil, notFound("project")
			}
		}
		if err := requireOn(creating, in.Name, "name"); err != nil {
			return nil, err
		}
		setString(&p.Name, in.Name)
		setString(&p.TechStack, in.TechStack)
		setString(&p.Link, in.Link)
		setRaw(&p.BulletsLatex, in.BulletsLatex)
		setInt(&p.SortOrder, in.SortOrder)
		saved, err = u.repo.SaveProject(ctx, p)

	case resume.SectionSkills:
		s := resume.SkillCategory{ResumeID: resumeID}
		if !creating {
			found := false
			for _, cur := range full.Skills {
				if cur.ID == itemID {
					s, found = cur, true
				}
			}
			if !found {
				return nil, notFound("skill category")
			}
		}
		if err := requireOn(creating, in.Name, "name"); err != nil {
			return nil, err
		}
		setString(&s.Name, in.Name)
		setString(&s.Skills, in.Skills)
		setInt(&s.SortOrder, in.SortOrder)
		saved, err = u.repo.SaveSkillCategory(ctx, s)

	case resume.SectionEducation:
		e := resume.Education{ResumeID: resumeID}
		if !creating {
			found := false
			for _, cur := range full.Education {
				if cur.ID == itemID {
					e, found = cur, true
				}
			}
			if !found {
				return nil, notFound("education")
			}
		}
		if err := requireOn(creating, in.Institution, "institution"); err != nil {
			return nil, err
		}
		setString(&e.Institution, in.Institution)
		setString(&e.Degree, in.Degree)
		setString(&e.Field, in.Field)
		setString(&e.Location, in.Location)
		setString(&e.StartDate, in.StartDate)
		setString(&e.EndDate, in.EndDate)
		setRaw(&e.DetailsLatex, in.DetailsLatex)
		setInt(&e.SortOrder, in.SortOrder)
		saved, err = u.repo.SaveEducation(ctx, e)

	default:
		return nil, invalid("unknown resume section %q", section)
	}
	if err != nil {
		return nil, storeErr(u.deps.Logger, "resume.item", entityResume, err)
	}
	u.deps.changed(ctx, entityResume, ws.ActionUpdated, resumeID)
	return saved, nil
}

func (u *Resume) DeleteItem(ctx context.Context, resumeID uuid.UUID, section resume.Section, itemID uuid.UUID) error {
	if _, err := resume.ParseSection(string(section)); err != nil {
		return invalid("%s", err.Error())
	}
	if err := u.repo.DeleteItem(ctx, section, resumeID, itemID); err != nil {
		return storeErr(u.deps.Logger, "resume.item.delete", string(section)+" item", err)
	}
	u.deps.changed(ctx, entityResume, ws.ActionUpdated, resumeID)
	return nil
}

// requireOn enforces a required field on create and rejects blanking it on update.
func requireOn(creating bool, v *string, field string) error {
	if creating && trimmed(v) == "" {
		return invalid("%s is required", field)
	}
	if !creating && v != nil && trimmed(v) == "" {
		return invalid("%s cannot be empty", field)
	}
	return nil
}

func setRaw(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
