package usecase

import (
	"context"
	"errors"
	"time"

	"jobtrack/internal/domain/learning"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityLearning = "learning_item"

type LearningInput struct {
	Title      *string    `json:"title"`
	Category   *string    `json:"category"`
	Status     *string    `json:"status"`
	Priority   *string    `json:"priority"`
	Progress   *int       `json:"progress"`
	URL        *string    `json:"url"`
	Notes      *string    `json:"notes"`
	TargetDate *time.Time `json:"target_date"`
}

func (in LearningInput) apply(it *learning.Item) error {
	if in.Title != nil {
		if trimmed(in.Title) == "" {
			return invalid("title cannot be empty")
		}
		it.Title = trimmed(in.Title)
	}
	if in.Status != nil {
		s, err := learning.ParseStatus(*in.Status)
		if err != nil {
			return invalid("%s", err.Error())
		}
		it.Status = s
	}
	if in.Priority != nil {
		p, err := learning.ParsePriority(*in.Priority)
		if err != nil {
			return invalid("%s", err.Error())
		}
		it.Priority = p
	}
	setString(&it.Category, in.Category)
	setString(&it.URL, in.URL)
	setString(&it.Notes, in.Notes)
	setInt(&it.Progress, in.Progress)
	if in.TargetDate != nil {
		t := in.TargetDate.UTC()
		it.TargetDate = &t
	}

	if err := it.Normalize(in.Status != nil); err != nil {
		if errors.Is(err, learning.ErrProgressRange) {
			return invalid("%s", err.Error())
		}
		return err
	}
	return nil
}

type LearningUsecase interface {
	List(ctx context.Context, f learning.Filter) ([]learning.Item, error)
	Get(ctx context.Context, id uuid.UUID) (learning.Item, error)
	Create(ctx context.Context, in LearningInput) (learning.Item, error)
	Update(ctx context.Context, id uuid.UUID, in LearningInput) (learning.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Learning struct {
	repo repository.LearningRepository
	deps Deps
}

func NewLearningUsecase(repo repository.LearningRepository, deps Deps) *Learning {
	return &Learning{repo: repo, deps: deps.withDefaults()}
}

func (u *Learning) List(ctx context.Context, f learning.Filter) ([]learning.Item, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "learning.list", entityLearning, err)
	}
	return out, nil
}

func (u *Learning) Get(ctx context.Context, id uuid.UUID) (learning.Item, error) {
	it, err := u.repo.Get(ctx, id)
	if err != nil {
		return learning.Item{}, storeErr(u.deps.Logger, "learning.get", entityLearning, err)
	}
	return it, nil
}

func (u *Learning) Create(ctx context.Context, in LearningInput) (learning.Item, error) {
	if trimmed(in.Title) == "" {
		return learning.Item{}, invalid("title is required")
	}
	it := learning.Item{ID: uuid.New(), Status: learning.StatusNotStarted, Priority: learning.PriorityMedium}
	if err := in.apply(&it); err != nil {
		return learning.Item{}, err
	}
	created, err := u.repo.Create(ctx, it)
	if err != nil {
		return learning.Item{}, storeErr(u.deps.Logger, "learning.create", entityLearning, err)
	}
	u.deps.changed(ctx, entityLearning, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Learning) Update(ctx context.Context, id uuid.UUID, in LearningInput) (learning.Item, error) {
	it, err := u.repo.Get(ctx, id)
	if err != nil {
		return learning.Item{}, storeErr(u.deps.Logger, "learning.update", entityLearning, err)
	}
	if err := in.apply(&it); err != nil {
		return learning.Item{}, err
	}
	updated, err := u.repo.Update(ctx, it)
	if err != nil {
		return learning.Item{}, storeErr(u.deps.Logger, "learning.update", entityLearning, err)
	}
	u.deps.changed(ctx, entityLearning, ws.ActionUpdated, id)
	return updated, nil
}

func (u *Learning) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "learning.delete", entityLearning, err)
	}
	u.deps.changed(ctx, entityLearning, ws.ActionDeleted, id)
	return nil
}
