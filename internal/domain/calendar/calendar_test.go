package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/reminder"
)

func TestBuild_GridShape(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for year := 2024; year <= 2027; year++ {
		for month := 1; month <= 12; month++ {
			m, err := Build(year, month, now, time.UTC, nil, nil)
			require.NoError(t, err)

			require.Zero(t, len(m.Days)%7, "%d-%02d", year, month)
			assert.GreaterOrEqual(t, m.Weeks, 4)
			assert.LessOrEqual(t, m.Weeks, 6)

			start, err := time.Parse(dateLayout, m.Days[0].Date)
			require.NoError(t, err)
			assert.Equal(t, time.Sunday, start.Weekday())
			end, err := time.Parse(dateLayout, m.Days[len(m.Days)-1].Date)
			require.NoError(t, err)
			assert.Equal(t, time.Saturday, end.Weekday())

			inMonth := 0
			seen := map[string]bool{}
			for _, d := range m.Days {
				assert.False(t, seen[d.Date])
				seen[d.Date] = true
				if d.InMonth {
					inMonth++
				}
			}
			daysIn := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			assert.Equal(t, daysIn, inMonth)
		}
	}
}

func TestBuild_February2026IsFourWeeks(t *testing.T) {
	m, err := Build(2026, 2, time.Now(), time.UTC, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Weeks)
	assert.Equal(t, "2026-02-01", m.Start)
	assert.Equal(t, "2026-02-28", m.End)
}

func TestBuild_PlacesItemsInLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC) // 11 March local

	ev := event.Event{Title: "tech screen", ScheduledAt: time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)}
	rem := reminder.Reminder{Title: "follow up", DueDate: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	outside := reminder.Reminder{Title: "later", DueDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	m, err := Build(2026, 3, now, loc, []event.Event{ev}, []reminder.Reminder{rem, outside})
	require.NoError(t, err)

	find := func(date string) Day {
		for _, d := range m.Days {
			if d.Date == date {
				return d
			}
		}
		t.Fatalf("day %s not in grid", date)
		return Day{}
	}

	assert.Len(t, find("2026-03-15").Events, 1)
	assert.Empty(t, find("2026-03-14").Events)
	assert.Len(t, find("2026-03-02").Reminders, 1)
	assert.True(t, find("2026-03-11").IsToday)
	assert.False(t, find("2026-03-10").IsToday)

	total := 0
	for _, d := range m.Days {
		total += len(d.Reminders)
		assert.NotNil(t, d.Events)
	}
	assert.Equal(t, 1, total)
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Build(2026, 13, time.Now(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = Build(0, 1, time.Now(), nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestRange(t *testing.T) {
	from, to := Range(2026, 5, time.UTC)
	assert.Equal(t, "2026-04-26", from.Format(dateLayout))
	assert.Equal(t, "2026-06-07", to.Format(dateLayout))
}
