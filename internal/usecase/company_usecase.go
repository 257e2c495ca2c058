package usecase

import (
	"context"

	"jobtrack/internal/domain/company"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityCompany = "company"

type CompanyInput struct {
	Name        *string `json:"name"`
	Website     *string `json:"website"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	IsFavorite  *bool   `json:"is_favorite"`
}

func (in CompanyInput) apply(c *company.Company) {
	setString(&c.Name, in.Name)
	setString(&c.Website, in.Website)
	setString(&c.Industry, in.Industry)
	setString(&c.Size, in.Size)
	setString(&c.Location, in.Location)
	setString(&c.Description, in.Description)
	setString(&c.Notes, in.Notes)
	setBool(&c.IsFavorite, in.IsFavorite)
}

type CompanyUsecase interface {
	List(ctx context.Context, f company.Filter) ([]company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (company.Detail, error)
	Create(ctx context.Context, in CompanyInput) (company.Company, error)
	Update(ctx context.Context, id uuid.UUID, in CompanyInput) (company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Company struct {
	repo repository.CompanyRepository
	deps Deps
}

func NewCompanyUsecase(repo repository.CompanyRepository, deps Deps) *Company {
	return &Company{repo: repo, deps: deps.withDefaults()}
}

func (u *Company) List(ctx context.Context, f company.Filter) ([]company.Company, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "company.list", entityCompany, err)
	}
	return out, nil
}

func (u *Company) Get(ctx context.Context, id uuid.UUID) (company.Detail, error) {
	d, err := u.repo.Get(ctx, id)
	if err != nil {
		return company.Detail{}, storeErr(u.deps.Logger, "company.get", entityCompany, err)
	}
	return d, nil
}

func (u *Company) Create(ctx context.Context, in CompanyInput) (company.Company, error) {
	if trimmed(in.Name) == "" {
		return company.Company{}, invalid("name is required")
	}
	var c company.Company
	in.apply(&c)
	c.ID = uuid.New()

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return company.Company{}, storeErr(u.deps.Logger, "company.create", entityCompany, err)
	}
	u.deps.changed(ctx, entityCompany, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Company) Update(ctx context.Context, id uuid.UUID, in CompanyInput) (company.Company, error) {
	if in.Name != nil && trimmed(in.Name) == "" {
		return company.Company{}, invalid("name cannot be empty")
	}
	cur, err := u.repo.Get(ctx, id)
	if err != nil {
		return company.Company{}, storeErr(u.deps.Logger, "company.update", entityCompany, err)
	}
	c := cur.Company
	in.apply(&c)

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return company.Company{}, storeErr(u.deps.Logger, "company.update", entityCompany, err)
	}
	u.deps.changed(ctx, entityCompany, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Company) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "company.delete", entityCompany, err)
	}
	u.deps.changed(ctx, entityCompany, ws.ActionDeleted, id)
	return nil
}
