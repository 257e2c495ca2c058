package calendar

import (
	"errors"
	"time"

	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/reminder"
)

const dateLayout = "2006-01-02"

var ErrInvalidMonth = errors.New("year must be 1970-9999 and month 1-12")

type Day struct {
	Date      string              `json:"date"`
	InMonth   bool                `json:"in_month"`
	IsToday   bool                `json:"is_today"`
	Events    []event.Event       `json:"events"`
	Reminders []reminder.Reminder `json:"reminders"`
}

type Month struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Start string `json:"start"`
	End   string `json:"end"`
	Weeks int    `json:"weeks"`
	Days  []Day  `json:"days"`
}

func Validate(year, month int) error {
	if year < 1970 || year > 9999 || month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Range is the half-open [from, to) interval covered by the grid of the month,
// from the Sunday on or before the 1st to the day after the Saturday on or
// after the last day.
func Range(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	from := first.AddDate(0, 0, -int(first.Weekday()))
	to := last.AddDate(0, 0, int(time.Saturday-last.Weekday())+1)
	return from, to
}

// Build lays out the Sunday-first grid and files events and reminders under
// their local day.
func Build(year, month int, now time.Time, loc *time.Location, events []event.Event, reminders []reminder.Reminder) (Month, error) {
	if err := Validate(year, month); err != nil {
		return Month{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	from, to := Range(year, month, loc)
	today := now.In(loc).Format(dateLayout)

	out := Month{Year: year, Month: month, Start: from.Format(dateLayout), Days: []Day{}}
	index := map[string]int{}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(out.Days)
		out.Days = append(out.Days, Day{
			Date:      key,
			InMonth:   int(d.Month()) == month,
			IsToday:   key == today,
			Events:    []event.Event{},
			Reminders: []reminder.Reminder{},
		})
		out.End = key
	}
	out.Weeks = len(out.Days) / 7

	for _, e := range events {
		if i, ok := index[e.ScheduledAt.In(loc).Format(dateLayout)]; ok {
			out.Days[i].Events = append(out.Days[i].Events, e)
		}
	}
	for _, r := range reminders {
		if i, ok := index[r.DueDate.In(loc).Format(dateLayout)]; ok {
			out.Days[i].Reminders = append(out.Days[i].Reminders, r)
		}
	}
	return out, nil
}
