package usecase

import (
	"context"

	"jobtrack/internal/domain/emailtemplate"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityEmailTemplate = "email_template"

type EmailTemplateInput struct {
	Name     *string `json:"name"`
	Subject  *string `json:"subject"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
}

func (in EmailTemplateInput) apply(t *emailtemplate.Template) error {
	for _, f := range []struct {
		name string
		src  *string
		dst  *string
	}{
		{"name", in.Name, &t.Name},
		{"subject", in.Subject, &t.Subject},
	} {
		if f.src != nil {
			if trimmed(f.src) == "" {
				return invalid("%s cannot be empty", f.name)
			}
			*f.dst = trimmed(f.src)
		}
	}
	if in.Body != nil {
		if trimmed(in.Body) == "" {
			return invalid("body cannot be empty")
		}
		t.Body = *in.Body
	}
	if in.Category != nil {
		c, err := emailtemplate.ParseCategory(*in.Category)
		if err != nil {
			return invalid("%s", err.Error())
		}
		t.Category = c
	}
	return nil
}

type EmailTemplateUsecase interface {
	List(ctx context.Context, f emailtemplate.Filter) ([]emailtemplate.Template, error)
	Get(ctx context.Context, id uuid.UUID) (emailtemplate.Template, error)
	Create(ctx context.Context, in EmailTemplateInput) (emailtemplate.Template, error)
	Update(ctx context.Context, id uuid.UUID, in EmailTemplateInput) (emailtemplate.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Render(ctx context.Context, id uuid.UUID, vars map[string]string) (emailtemplate.Rendered, error)
}

type EmailTemplate struct {
	repo repository.EmailTemplateRepository
	deps Deps
}

func NewEmailTemplateUsecase(repo repository.EmailTemplateRepository, deps Deps) *EmailTemplate {
	return &EmailTemplate{repo: repo, deps: deps.withDefaults()}
}

func (u *EmailTemplate) List(ctx context.Context, f emailtemplate.Filter) ([]emailtemplate.Template, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "email_template.list", entityEmailTemplate, err)
	}
	return out, nil
}

func (u *EmailTemplate) Get(ctx context.Context, id uuid.UUID) (emailtemplate.Template, error) {
	t, err := u.repo.Get(ctx, id)
	if err != nil {
		return emailtemplate.Template{}, storeErr(u.deps.Logger, "email_template.get", entityEmailTemplate, err)
	}
	return t, nil
}

func (u *EmailTemplate) Create(ctx context.Context, in EmailTemplateInput) (emailtemplate.Template, error) {
	switch {
	case trimmed(in.Name) == "":
		return emailtemplate.Template{}, invalid("name is required")
	case trimmed(in.Subject) == "":
		return emailtemplate.Template{}, invalid("subject is required")
	case trimmed(in.Body) == "":
		return emailtemplate.Template{}, invalid("body is required")
	}
	t := emailtemplate.Template{ID: uuid.New(), Category: emailtemplate.CategoryOther}
	if err := in.apply(&t); err != nil {
		return emailtemplate.Template{}, err
	}
	created, err := u.repo.Create(ctx, t)
	if err != nil {
		return emailtemplate.Template{}, storeErr(u.deps.Logger, "email_template.create", entityEmailTemplate, err)
	}
	u.deps.changed(ctx, entityEmailTemplate, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *EmailTemplate) Update(ctx context.Context, id uuid.UUID, in EmailTemplateInput) (emailtemplate.Template, error) {
	t, err := u.repo.Get(ctx, id)
	if err != nil {
		return emailtemplate.Template{}, storeErr(u.deps.Logger, "email_template.update", entityEmailTemplate, err)
	}
	if err := in.apply(&t); err != nil {
		return emailtemplate.Template{}, err
	}
	updated, err := u.repo.Update(ctx, t)
	if err != nil {
		return emailtemplate.Template{}, storeErr(u.deps.Logger, "email_template.update", entityEmailTemplate, err)
	}
	u.deps.changed(ctx, entityEmailTemplate, ws.ActionUpdated, id)
	return updated, nil
}

func (u *EmailTemplate) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "email_template.delete", entityEmailTemplate, err)
	}
	u.deps.changed(ctx, entityEmailTemplate, ws.ActionDeleted, id)
	return nil
}

func (u *EmailTemplate) Render(ctx context.Context, id uuid.UUID, vars map[string]string) (emailtemplate.Rendered, error) {
	t, err := u.Get(ctx, id)
	if err != nil {
		return emailtemplate.Rendered{}, err
	}
	return t.Render(vars), nil
}
