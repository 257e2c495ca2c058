package usecase

import (
	"context"
	"errors"

	"jobtrack/internal/domain/resource"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityResource = "resource"

type ResourceInput struct {
	ParentID    *uuid.UUID `json:"parent_id"`
	Title       *string    `json:"title"`
	URL         *string    `json:"url"`
	Kind        *string    `json:"kind"`
	Description *string    `json:"description"`
	Progress    *int       `json:"progress"`
	IsCompleted *bool      `json:"is_completed"`
	SortOrder   *int       `json:"sort_order"`
}

type ResourceUsecase interface {
	List(ctx context.Context, f resource.Filter) ([]resource.Resource, error)
	Tree(ctx context.Context) ([]*resource.Node, error)
	Get(ctx context.Context, id uuid.UUID) (resource.Resource, error)
	Create(ctx context.Context, in ResourceInput) (resource.Resource, error)
	Update(ctx context.Context, id uuid.UUID, in ResourceInput) (resource.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Resource struct {
	repo repository.ResourceRepository
	deps Deps
}

func NewResourceUsecase(repo repository.ResourceRepository, deps Deps) *Resource {
	return &Resource{repo: repo, deps: deps.withDefaults()}
}

func (u *Resource) List(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "resource.list", entityResource, err)
	}
	return out, nil
}

func (u *Resource) Tree(ctx context.Context) ([]*resource.Node, error) {
	all, err := u.List(ctx, resource.Filter{})
	if err != nil {
		return nil, err
	}
	return resource.BuildTree(all), nil
}

func (u *Resource) Get(ctx context.Context, id uuid.UUID) (resource.Resource, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return resource.Resource{}, storeErr(u.deps.Logger, "resource.get", entityResource, err)
	}
	return r, nil
}

func (u *Resource) apply(ctx context.Context, r *resource.Resource, in ResourceInput) error {
	if in.Title != nil {
		if trimmed(in.Title) == "" {
			return invalid("title cannot be empty")
		}
		r.Title = trimmed(in.Title)
	}
	if in.Kind != nil {
		k, err := resource.ParseKind(*in.Kind)
		if err != nil {
			return invalid("%s", err.Error())
		}
		r.Kind = k
	}
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return invalid("progress must be between 0 and 100")
	}
	setString(&r.URL, in.URL)
	setString(&r.Description, in.Description)
	setInt(&r.Progress, in.Progress)
	setBool(&r.IsCompleted, in.IsCompleted)
	setInt(&r.SortOrder, in.SortOrder)

	if in.ParentID != nil {
		parent := nullableID(in.ParentID)
		if parent != nil {
			if _, err := u.repo.Get(ctx, *parent); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return invalid("parent resource does not exist")
				}
				return storeErr(u.deps.Logger, "resource.parent", entityResource, err)
			}
			err := resource.CheckParent(r.ID, parent, func(id uuid.UUID) (*uuid.UUID, error) {
				return u.repo.ParentOf(ctx, id)
			})
			if errors.Is(err, resource.ErrCycle) {
				return invalid("%s", err.Error())
			}
			if err != nil {
				return storeErr(u.deps.Logger, "resource.parent", entityResource, err)
			}
		}
		r.ParentID = parent
	}
	return nil
}

func (u *Resource) Create(ctx context.Context, in ResourceInput) (resource.Resource, error) {
	if trimmed(in.Title) == "" {
		return resource.Resource{}, invalid("title is required")
	}
	r := resource.Resource{ID: uuid.New()}
	if err := u.apply(ctx, &r, in); err != nil {
		return resource.Resource{}, err
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return resource.Resource{}, storeErr(u.deps.Logger, "resource.create", entityResource, err)
	}
	u.deps.changed(ctx, entityResource, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Resource) Update(ctx context.Context, id uuid.UUID, in ResourceInput) (resource.Resource, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return resource.Resource{}, storeErr(u.deps.Logger, "resource.update", entityResource, err)
	}
	if err := u.apply(ctx, &r, in); err != nil {
		return resource.Resource{}, err
	}
	updated, err := u.repo.Update(ctx, r)
	if err != nil {
		return resource.Resource{}, storeErr(u.deps.Logger, "resource.update", entityResource, err)
	}
	u.deps.changed(ctx, entityResource, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Resource) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "resource.delete", entityResource, err)
	}
	u.deps.changed(ctx, entityResource, ws.ActionDeleted, id)
	return nil
}
