package analytics

import (
	"fmt"

	"jobtrack/internal/domain/application"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
)

type Insight struct {
	Type    Level  `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	draftBacklog      = 5
	lowResponseFloor  = 10
	lowResponseRate   = 10.0
	strongRateFloor   = 5
	strongRateTrigger = 20.0
)

// Insights applies the advice rules in a fixed order. An empty tracker only
// gets the getting-started hint.
func Insights(s Summary) []Insight {
	out := []Insight{}
	if s.TotalApplications == 0 {
		out = append(out, Insight{LevelInfo, "Start tracking", "Add your first application to start seeing insights."})
		return out
	}

	if n := s.StatusCounts[application.StatusNotApplied]; n >= draftBacklog {
		out = append(out, Insight{LevelInfo, "Drafts waiting",
			fmt.Sprintf("You have %d applications you have not sent yet.", n)})
	}
	if s.AppliedCount >= lowResponseFloor && s.ResponseRate < lowResponseRate {
		out = append(out, Insight{LevelWarning, "Low response rate",
			fmt.Sprintf("Only %.1f%% of applications got a response. Consider tailoring your resume or asking for referrals.", s.ResponseRate)})
	}
	if s.OverdueReminders > 0 {
		out = append(out, Insight{LevelWarning, "Overdue reminders",
			fmt.Sprintf("%d reminders are past due.", s.OverdueReminders)})
	}
	if s.EventsNextWeek > 0 {
		out = append(out, Insight{LevelInfo, "Upcoming interviews",
			fmt.Sprintf("%d events are scheduled in the next 7 days.", s.EventsNextWeek)})
	}
	if n := s.StatusCounts[application.StatusOffer]; n > 0 {
		out = append(out, Insight{LevelSuccess, "Offer pending",
			fmt.Sprintf("%d offers are waiting for your decision.", n)})
	}
	if s.ReferralContacts == 0 {
		out = append(out, Insight{LevelInfo, "No referrers yet",
			"None of your contacts are marked as able to refer you."})
	}
	if s.AppliedCount >= strongRateFloor && s.InterviewRate >= strongRateTrigger {
		out = append(out, Insight{LevelSuccess, "Strong interview rate",
			fmt.Sprintf("%.1f%% of your applications reached interviews.", s.InterviewRate)})
	}
	return out
}
