package usecase

import (
	"context"
	"time"

	"jobtrack/internal/domain/contact"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityContact = "contact"

type ContactInput struct {
	CompanyID       *uuid.UUID `json:"company_id"`
	Name            *string    `json:"name"`
	Title           *string    `json:"title"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	LinkedInURL     *string    `json:"linkedin_url"`
	Status          *string    `json:"status"`
	CanRefer        *bool      `json:"can_refer"`
	Notes           *string    `json:"notes"`
	LastContactedAt *time.Time `json:"last_contacted_at"`
}

func (in ContactInput) apply(c *contact.Contact) error {
	if in.CompanyID != nil {
		if *in.CompanyID == uuid.Nil {
			return invalid("company_id is required")
		}
		c.CompanyID = *in.CompanyID
	}
	if in.Name != nil {
		if trimmed(in.Name) == "" {
			return invalid("name cannot be empty")
		}
		c.Name = trimmed(in.Name)
	}
	if in.Status != nil {
		s, err := contact.ParseStatus(*in.Status)
		if err != nil {
			return invalid("%s", err.Error())
		}
		c.Status = s
	}
	setString(&c.Title, in.Title)
	setString(&c.Email, in.Email)
	setString(&c.Phone, in.Phone)
	setString(&c.LinkedInURL, in.LinkedInURL)
	setString(&c.Notes, in.Notes)
	setBool(&c.CanRefer, in.CanRefer)
	if in.LastContactedAt != nil {
		t := in.LastContactedAt.UTC()
		c.LastContactedAt = &t
	}
	return nil
}

type ContactUsecase interface {
	List(ctx context.Context, f contact.Filter) ([]contact.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (contact.Contact, error)
	Create(ctx context.Context, in ContactInput) (contact.Contact, error)
	Update(ctx context.Context, id uuid.UUID, in ContactInput) (contact.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Contact struct {
	repo repository.ContactRepository
	deps Deps
}

func NewContactUsecase(repo repository.ContactRepository, deps Deps) *Contact {
	return &Contact{repo: repo, deps: deps.withDefaults()}
}

func (u *Contact) List(ctx context.Context, f contact.Filter) ([]contact.Contact, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "contact.list", entityContact, err)
	}
	return out, nil
}

func (u *Contact) Get(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return contact.Contact{}, storeErr(u.deps.Logger, "contact.get", entityContact, err)
	}
	return c, nil
}

func (u *Contact) Create(ctx context.Context, in ContactInput) (contact.Contact, error) {
	if in.CompanyID == nil || *in.CompanyID == uuid.Nil {
		return contact.Contact{}, invalid("company_id is required")
	}
	if trimmed(in.Name) == "" {
		return contact.Contact{}, invalid("name is required")
	}
	c := contact.Contact{ID: uuid.New(), Status: contact.StatusNotContacted}
	if err := in.apply(&c); err != nil {
		return contact.Contact{}, err
	}

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return contact.Contact{}, storeErr(u.deps.Logger, "contact.create", entityContact, err)
	}
	u.deps.changed(ctx, entityContact, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Contact) Update(ctx context.Context, id uuid.UUID, in ContactInput) (contact.Contact, error) {
	c, err := u.repo.Get(ctx, id)
	if err != nil {
		return contact.Contact{}, storeErr(u.deps.Logger, "contact.update", entityContact, err)
	}
	if err := in.apply(&c); err != nil {
		return contact.Contact{}, err
	}
	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return contact.Contact{}, storeErr(u.deps.Logger, "contact.update", entityContact, err)
	}
	u.deps.changed(ctx, entityContact, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Contact) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "contact.delete", entityContact, err)
	}
	u.deps.changed(ctx, entityContact, ws.ActionDeleted, id)
	return nil
}
