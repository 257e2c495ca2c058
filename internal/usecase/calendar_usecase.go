package usecase

import (
	"context"
	"errors"
	"time"

	"jobtrack/internal/domain/calendar"
	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/repository"

	"go.uber.org/zap"
)

type CalendarUsecase interface {
	// Month builds the grid; zero year or month means the current one.
	Month(ctx context.Context, year, month int) (calendar.Month, error)
}

type Calendar struct {
	events    repository.EventRepository
	reminders repository.ReminderRepository
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

func NewCalendarUsecase(events repository.EventRepository, reminders repository.ReminderRepository, loc *time.Location, deps Deps) *Calendar {
	deps = deps.withDefaults()
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{events: events, reminders: reminders, loc: loc, logger: deps.Logger, now: deps.Now}
}

func (u *Calendar) Month(ctx context.Context, year, month int) (calendar.Month, error) {
	now := u.now().In(u.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if err := calendar.Validate(year, month); err != nil {
		if errors.Is(err, calendar.ErrInvalidMonth) {
			return calendar.Month{}, invalid("%s", err.Error())
		}
		return calendar.Month{}, err
	}

	from, to := calendar.Range(year, month, u.loc)

	evs, err := u.events.List(ctx, event.Filter{From: &from, To: &to})
	if err != nil {
		return calendar.Month{}, storeErr(u.logger, "calendar.events", "events", err)
	}
	rms, err := u.reminders.List(ctx, reminder.Filter{DueFrom: &from, DueBefore: &to})
	if err != nil {
		return calendar.Month{}, storeErr(u.logger, "calendar.reminders", "reminders", err)
	}
	return calendar.Build(year, month, now, u.loc, evs, rms)
}
