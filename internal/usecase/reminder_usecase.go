package usecase

import (
	"context"
	"time"

	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityReminder = "reminder"

type ReminderInput struct {
	ApplicationID *uuid.UUID `json:"application_id"`
	ContactID     *uuid.UUID `json:"contact_id"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Type          *string    `json:"type"`
	DueDate       *time.Time `json:"due_date"`
	IsCompleted   *bool      `json:"is_completed"`
}

func (in ReminderInput) apply(r *reminder.Reminder, now time.Time) error {
	if in.ApplicationID != nil {
		r.ApplicationID = nullableID(in.ApplicationID)
	}
	if in.ContactID != nil {
		r.ContactID = nullableID(in.ContactID)
	}
	if in.Title != nil {
		if trimmed(in.Title) == "" {
			return invalid("title cannot be empty")
		}
		r.Title = trimmed(in.Title)
	}
	if in.Type != nil {
		t, err := reminder.ParseType(*in.Type)
		if err != nil {
			return invalid("%s", err.Error())
		}
		r.Type = t
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return invalid("due_date cannot be empty")
		}
		r.DueDate = in.DueDate.UTC()
	}
	setString(&r.Description, in.Description)
	if in.IsCompleted != nil {
		r.SetCompleted(*in.IsCompleted, now)
	}
	return nil
}

type ReminderUsecase interface {
	List(ctx context.Context, f reminder.Filter) ([]reminder.Reminder, error)
	Due(ctx context.Context, within time.Duration) ([]reminder.Reminder, error)
	Get(ctx context.Context, id uuid.UUID) (reminder.Reminder, error)
	Create(ctx context.Context, in ReminderInput) (reminder.Reminder, error)
	Update(ctx context.Context, id uuid.UUID, in ReminderInput) (reminder.Reminder, error)
	Toggle(ctx context.Context, id uuid.UUID) (reminder.Reminder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Reminder struct {
	repo repository.ReminderRepository
	deps Deps
}

func NewReminderUsecase(repo repository.ReminderRepository, deps Deps) *Reminder {
	return &Reminder{repo: repo, deps: deps.withDefaults()}
}

func (u *Reminder) List(ctx context.Context, f reminder.Filter) ([]reminder.Reminder, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "reminder.list", entityReminder, err)
	}
	return out, nil
}

// Due lists open reminders due before now+within, overdue ones included.
func (u *Reminder) Due(ctx context.Context, within time.Duration) ([]reminder.Reminder, error) {
	if within < 0 {
		return nil, invalid("window cannot be negative")
	}
	open := false
	before := u.deps.Now().Add(within)
	return u.List(ctx, reminder.Filter{Completed: &open, DueBefore: &before})
}

func (u *Reminder) Get(ctx context.Context, id uuid.UUID) (reminder.Reminder, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return reminder.Reminder{}, storeErr(u.deps.Logger, "reminder.get", entityReminder, err)
	}
	return r, nil
}

func (u *Reminder) Create(ctx context.Context, in ReminderInput) (reminder.Reminder, error) {
	if trimmed(in.Title) == "" {
		return reminder.Reminder{}, invalid("title is required")
	}
	if in.DueDate == nil || in.DueDate.IsZero() {
		return reminder.Reminder{}, invalid("due_date is required")
	}
	r := reminder.Reminder{ID: uuid.New(), Type: reminder.TypeFollowUp}
	if err := in.apply(&r, u.deps.Now()); err != nil {
		return reminder.Reminder{}, err
	}

	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return reminder.Reminder{}, storeErr(u.deps.Logger, "reminder.create", entityReminder, err)
	}
	u.deps.changed(ctx, entityReminder, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Reminder) Update(ctx context.Context, id uuid.UUID, in ReminderInput) (reminder.Reminder, error) {
	return u.mutate(ctx, id, "reminder.update", func(r *reminder.Reminder) error {
		return in.apply(r, u.deps.Now())
	})
}

func (u *Reminder) Toggle(ctx context.Context, id uuid.UUID) (reminder.Reminder, error) {
	return u.mutate(ctx, id, "reminder.toggle", func(r *reminder.Reminder) error {
		r.Toggle(u.deps.Now())
		return nil
	})
}

func (u *Reminder) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "reminder.delete", entityReminder, err)
	}
	u.deps.changed(ctx, entityReminder, ws.ActionDeleted, id)
	return nil
}

func (u *Reminder) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*reminder.Reminder) error) (reminder.Reminder, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return reminder.Reminder{}, storeErr(u.deps.Logger, op, entityReminder, err)
	}
	if err := fn(&r); err != nil {
		return reminder.Reminder{}, err
	}
	updated, err := u.repo.Update(ctx, r)
	if err != nil {
		return reminder.Reminder{}, storeErr(u.deps.Logger, op, entityReminder, err)
	}
	u.deps.changed(ctx, entityReminder, ws.ActionUpdated, id)
	return updated, nil
}
