package usecase

import (
	"context"
	"testing"
	"time"

	"jobtrack/internal/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarUsecase_Month(t *testing.T) {
	events := newMockEventRepo()
	reminders := newMockReminderRepo()
	deps, _, _ := testDeps()
	uc := NewCalendarUsecase(events, reminders, time.UTC, deps)

	_, err := events.put(event.Event{ID: uuid.New(), Title: "Onsite", ScheduledAt: time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	m, err := uc.Month(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2026, m.Year)
	assert.Equal(t, 3, m.Month)
	assert.Equal(t, 0, len(m.Days)%7)

	require.NotNil(t, events.lastFilter.From)
	require.NotNil(t, events.lastFilter.To)
	assert.Equal(t, "2026-03-01", events.lastFilter.From.Format("2006-01-02"))
	assert.Equal(t, "2026-04-05", events.lastFilter.To.Format("2006-01-02"))
	assert.Equal(t, events.lastFilter.From, reminders.lastFilter.DueFrom)

	found := false
	for _, d := range m.Days {
		if d.Date == "2026-03-20" {
			found = len(d.Events) == 1
		}
		if d.Date == "2026-03-15" {
			assert.True(t, d.IsToday)
		}
	}
	assert.True(t, found)
}

func TestCalendarUsecase_InvalidMonth(t *testing.T) {
	uc := NewCalendarUsecase(newMockEventRepo(), newMockReminderRepo(), nil, Deps{})
	_, err := uc.Month(context.Background(), 2026, 13)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Month(context.Background(), 1800, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
