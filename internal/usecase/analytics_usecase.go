package usecase

import (
	"context"
	"time"

	"jobtrack/internal/domain/analytics"
	"jobtrack/internal/domain/application"
	"jobtrack/internal/domain/company"
	"jobtrack/internal/domain/contact"
	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/learning"
	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/repository"

	"go.uber.org/zap"
)

type AnalyticsUsecase interface {
	Summary(ctx context.Context) (analytics.Summary, error)
	Achievements(ctx context.Context) ([]analytics.Achievement, error)
	Insights(ctx context.Context) ([]analytics.Insight, error)
}

// AnalyticsSources are read in full on every cache miss.
type AnalyticsSources struct {
	Applications repository.ApplicationRepository
	Companies    repository.CompanyRepository
	Contacts     repository.ContactRepository
	Events       repository.EventRepository
	Reminders    repository.ReminderRepository
	Learning     repository.LearningRepository
}

type Analytics struct {
	src  AnalyticsSources
	loc  *time.Location
	ttl  time.Duration
	deps Deps
}

func NewAnalyticsUsecase(src AnalyticsSources, loc *time.Location, ttl time.Duration, deps Deps) *Analytics {
	if loc == nil {
		loc = time.UTC
	}
	return &Analytics{src: src, loc: loc, ttl: ttl, deps: deps.withDefaults()}
}

func (u *Analytics) Summary(ctx context.Context) (analytics.Summary, error) {
	var s analytics.Summary
	if u.deps.Cache != nil {
		if ok, err := u.deps.Cache.GetJSON(ctx, AnalyticsSummaryKey, &s); err == nil && ok {
			return s, nil
		} else if err != nil {
			u.deps.Logger.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	ds, err := u.load(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	s = analytics.Compute(ds, u.deps.Now(), u.loc)

	if u.deps.Cache != nil {
		if err := u.deps.Cache.SetJSON(ctx, AnalyticsSummaryKey, s, u.ttl); err != nil {
			u.deps.Logger.Warn("analytics cache write failed", zap.Error(err))
		}
	}
	return s, nil
}

func (u *Analytics) Achievements(ctx context.Context) ([]analytics.Achievement, error) {
	s, err := u.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Achievements(s), nil
}

func (u *Analytics) Insights(ctx context.Context) ([]analytics.Insight, error) {
	s, err := u.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Insights(s), nil
}

func (u *Analytics) load(ctx context.Context) (analytics.Dataset, error) {
	var (
		ds  analytics.Dataset
		err error
	)
	if ds.Applications, err = u.src.Applications.List(ctx, application.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.applications", "applications", err)
	}
	if ds.Companies, err = u.src.Companies.List(ctx, company.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.companies", "companies", err)
	}
	if ds.Contacts, err = u.src.Contacts.List(ctx, contact.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.contacts", "contacts", err)
	}
	if ds.Events, err = u.src.Events.List(ctx, event.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.events", "events", err)
	}
	if ds.Reminders, err = u.src.Reminders.List(ctx, reminder.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.reminders", "reminders", err)
	}
	if ds.Learning, err = u.src.Learning.List(ctx, learning.Filter{}); err != nil {
		return ds, storeErr(u.deps.Logger, "analytics.learning", "learning items", err)
	}
	return ds, nil
}
