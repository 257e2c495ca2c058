package analytics

import (
	"math"

	"jobtrack/internal/domain/application"
)

type Metric string

const (
	MetricApplied            Metric = "applied"
	MetricInterviews         Metric = "interviews"
	MetricOffers             Metric = "offers"
	MetricContacts           Metric = "contacts"
	MetricReferralContacts   Metric = "referral_contacts"
	MetricLearningCompleted  Metric = "learning_completed"
	MetricRemindersCompleted Metric = "reminders_completed"
)

type rule struct {
	ID          string
	Title       string
	Description string
	Metric      Metric
	Threshold   int
}

var rules = []rule{
	{"first-application", "First Step", "Submit your first application", MetricApplied, 1},
	{"applied-10", "Getting Serious", "Submit 10 applications", MetricApplied, 10},
	{"applied-25", "Momentum", "Submit 25 applications", MetricApplied, 25},
	{"applied-50", "Relentless", "Submit 50 applications", MetricApplied, 50},
	{"applied-100", "Centurion", "Submit 100 applications", MetricApplied, 100},
	{"first-interview", "Foot in the Door", "Schedule your first interview", MetricInterviews, 1},
	{"interviews-5", "Interview Circuit", "Go through 5 interviews", MetricInterviews, 5},
	{"first-offer", "Offer in Hand", "Receive your first offer", MetricOffers, 1},
	{"contacts-5", "Networker", "Add 5 contacts", MetricContacts, 5},
	{"contacts-25", "Connector", "Add 25 contacts", MetricContacts, 25},
	{"first-referrer", "Inside Track", "Find a contact who can refer you", MetricReferralContacts, 1},
	{"learning-1", "Student", "Complete a learning item", MetricLearningCompleted, 1},
	{"learning-5", "Scholar", "Complete 5 learning items", MetricLearningCompleted, 5},
	{"reminders-10", "On Top of It", "Complete 10 reminders", MetricRemindersCompleted, 10},
}

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Metric      Metric  `json:"metric"`
	Threshold   int     `json:"threshold"`
	Current     int     `json:"current"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
}

func (s Summary) metric(m Metric) int {
	switch m {
	case MetricApplied:
		return s.AppliedCount
	case MetricInterviews:
		return s.InterviewEvents
	case MetricOffers:
		return s.StatusCounts[application.StatusOffer] + s.StatusCounts[application.StatusAccepted]
	case MetricContacts:
		return s.TotalContacts
	case MetricReferralContacts:
		return s.ReferralContacts
	case MetricLearningCompleted:
		return s.LearningCompleted
	case MetricRemindersCompleted:
		return s.CompletedReminders
	}
	return 0
}

// Achievements evaluates the fixed rule table against a summary, in table order.
func Achievements(s Summary) []Achievement {
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		cur := s.metric(r.Metric)
		out = append(out, Achievement{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Metric:      r.Metric,
			Threshold:   r.Threshold,
			Current:     cur,
			Unlocked:    cur >= r.Threshold,
			Progress:    math.Min(100, round1(float64(cur)/float64(r.Threshold)*100)),
		})
	}
	return out
}
