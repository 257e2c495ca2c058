package analytics

import (
	"math"
	"sort"
	"time"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/domain/company"
	"jobtrack/internal/domain/contact"
	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/learning"
	"jobtrack/internal/domain/reminder"
)

const (
	monthsWindow  = 6
	topCompanies  = 5
	upcomingRange = 7 * 24 * time.Hour
)

// Dataset is a full read of every table the summary is derived from.
type Dataset struct {
	Applications []application.Application
	Companies    []company.Company
	Contacts     []contact.Contact
	Events       []event.Event
	Reminders    []reminder.Reminder
	Learning     []learning.Item
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type CompanyCount struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type Summary struct {
	TotalApplications int                        `json:"total_applications"`
	AppliedCount      int                        `json:"applied_count"`
	NotAppliedCount   int                        `json:"not_applied_count"`
	StatusCounts      map[application.Status]int `json:"status_counts"`
	ResponseRate      float64                    `json:"response_rate"`
	InterviewRate     float64                    `json:"interview_rate"`
	OfferRate         float64                    `json:"offer_rate"`
	ByMonth           []MonthCount               `json:"applications_by_month"`
	TopCompanies      []CompanyCount             `json:"top_companies"`

	TotalCompanies   int `json:"total_companies"`
	TotalContacts    int `json:"total_contacts"`
	ReferralContacts int `json:"referral_contacts"`

	TotalEvents     int                `json:"total_events"`
	UpcomingEvents  int                `json:"upcoming_events"`
	EventsNextWeek  int                `json:"events_next_week"`
	CompletedEvents int                `json:"completed_events"`
	InterviewEvents int                `json:"interview_events"`
	EventsByType    map[event.Type]int `json:"events_by_type"`

	PendingReminders   int `json:"pending_reminders"`
	OverdueReminders   int `json:"overdue_reminders"`
	CompletedReminders int `json:"completed_reminders"`

	LearningTotal       int     `json:"learning_total"`
	LearningCompleted   int     `json:"learning_completed"`
	LearningInProgress  int     `json:"learning_in_progress"`
	LearningAvgProgress float64 `json:"learning_average_progress"`

	GeneratedAt time.Time `json:"generated_at"`
}

var (
	responded   = statusSet(application.StatusInReview, application.StatusInterviewing, application.StatusOffer, application.StatusAccepted, application.StatusRejected)
	interviewed = statusSet(application.StatusInterviewing, application.StatusOffer, application.StatusAccepted)
	offered     = statusSet(application.StatusOffer, application.StatusAccepted)
)

func statusSet(ss ...application.Status) map[application.Status]struct{} {
	m := make(map[application.Status]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

// Compute derives the dashboard summary. Month buckets use loc; a nil loc means UTC.
func Compute(ds Dataset, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}
	s := Summary{
		StatusCounts: make(map[application.Status]int, len(application.Statuses())),
		EventsByType: make(map[event.Type]int, len(event.Types())),
		GeneratedAt:  now.UTC(),
	}
	for _, st := range application.Statuses() {
		s.StatusCounts[st] = 0
	}
	for _, ty := range event.Types() {
		s.EventsByType[ty] = 0
	}

	months, index := monthBuckets(now.In(loc))
	perCompany := map[string]*CompanyCount{}
	var nResponded, nInterviewed, nOffered int

	for _, a := range ds.Applications {
		s.TotalApplications++
		s.StatusCounts[a.Status]++
		if application.IsApplied(a.Status) {
			s.AppliedCount++
			if _, ok := responded[a.Status]; ok {
				nResponded++
			}
			if _, ok := interviewed[a.Status]; ok {
				nInterviewed++
			}
			if _, ok := offered[a.Status]; ok {
				nOffered++
			}
		} else {
			s.NotAppliedCount++
		}

		if i, ok := index[a.ActivityTime().In(loc).Format("2006-01")]; ok {
			months[i].Count++
		}

		key := a.CompanyID.String()
		cc, ok := perCompany[key]
		if !ok {
			cc = &CompanyCount{CompanyID: key, Name: a.Company.Name}
			perCompany[key] = cc
		}
		cc.Count++
	}

	s.ResponseRate = rate(nResponded, s.AppliedCount)
	s.InterviewRate = rate(nInterviewed, s.AppliedCount)
	s.OfferRate = rate(nOffered, s.AppliedCount)
	s.ByMonth = months

	s.TopCompanies = make([]CompanyCount, 0, len(perCompany))
	for _, cc := range perCompany {
		s.TopCompanies = append(s.TopCompanies, *cc)
	}
	sort.Slice(s.TopCompanies, func(i, j int) bool {
		a, b := s.TopCompanies[i], s.TopCompanies[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CompanyID < b.CompanyID
	})
	if len(s.TopCompanies) > topCompanies {
		s.TopCompanies = s.TopCompanies[:topCompanies]
	}

	s.TotalCompanies = len(ds.Companies)
	s.TotalContacts = len(ds.Contacts)
	for _, c := range ds.Contacts {
		if c.CanRefer {
			s.ReferralContacts++
		}
	}

	weekAhead := now.Add(upcomingRange)
	for _, e := range ds.Events {
		s.TotalEvents++
		s.EventsByType[e.Type]++
		if e.Type.IsInterview() {
			s.InterviewEvents++
		}
		switch e.Status {
		case event.StatusCompleted:
			s.CompletedEvents++
		case event.StatusScheduled, event.StatusRescheduled:
			if e.EndsAt().After(now) {
				s.UpcomingEvents++
				if e.ScheduledAt.Before(weekAhead) {
					s.EventsNextWeek++
				}
			}
		}
	}

	for _, r := range ds.Reminders {
		if r.IsCompleted {
			s.CompletedReminders++
			continue
		}
		s.PendingReminders++
		if r.Overdue(now) {
			s.OverdueReminders++
		}
	}

	var progress int
	for _, it := range ds.Learning {
		s.LearningTotal++
		progress += it.Progress
		switch it.Status {
		case learning.StatusCompleted:
			s.LearningCompleted++
		case learning.StatusInProgress:
			s.LearningInProgress++
		}
	}
	if s.LearningTotal > 0 {
		s.LearningAvgProgress = round1(float64(progress) / float64(s.LearningTotal))
	}

	return s
}

func monthBuckets(now time.Time) ([]MonthCount, map[string]int) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]MonthCount, monthsWindow)
	index := make(map[string]int, monthsWindow)
	for i := 0; i < monthsWindow; i++ {
		key := first.AddDate(0, i-(monthsWindow-1), 0).Format("2006-01")
		out[i] = MonthCount{Month: key}
		index[key] = i
	}
	return out, index
}

func rate(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return round1(float64(n) / float64(of) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
