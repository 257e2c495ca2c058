package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/domain/company"
	"jobtrack/internal/domain/contact"
	"jobtrack/internal/domain/emailtemplate"
	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/learning"
	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/domain/resource"
	"jobtrack/internal/domain/resume"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

// memTable keeps rows in insertion order.
type memTable[T any] struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
	id    func(T) uuid.UUID
	err   error
	lists int
}

func newMemTable[T any](id func(T) uuid.UUID) *memTable[T] {
	return &memTable[T]{rows: map[uuid.UUID]T{}, id: id}
}

func (m *memTable[T]) all() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memTable[T]) get(id uuid.UUID) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	if m.err != nil {
		return zero, m.err
	}
	v, ok := m.rows[id]
	if !ok {
		return zero, repository.ErrNotFound
	}
	return v, nil
}

func (m *memTable[T]) put(v T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return v, m.err
	}
	id := m.id(v)
	if _, ok := m.rows[id]; !ok {
		m.order = append(m.order, id)
	}
	m.rows[id] = v
	return v, nil
}

func (m *memTable[T]) update(v T) (T, error) {
	if _, err := m.get(m.id(v)); err != nil {
		return v, err
	}
	return m.put(v)
}

func (m *memTable[T]) del(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	for i, cur := range m.order {
		if cur == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type mockCompanyRepo struct{ *memTable[company.Company] }

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{newMemTable(func(c company.Company) uuid.UUID { return c.ID })}
}

func (m *mockCompanyRepo) List(context.Context, company.Filter) ([]company.Company, error) {
	return m.all()
}
func (m *mockCompanyRepo) Get(_ context.Context, id uuid.UUID) (company.Detail, error) {
	c, err := m.get(id)
	return company.Detail{Company: c}, err
}
func (m *mockCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	return m.put(c)
}
func (m *mockCompanyRepo) Update(_ context.Context, c company.Company) (company.Company, error) {
	return m.update(c)
}
func (m *mockCompanyRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockApplicationRepo struct{ *memTable[application.Application] }

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{newMemTable(func(a application.Application) uuid.UUID { return a.ID })}
}

func (m *mockApplicationRepo) List(_ context.Context, f application.Filter) ([]application.Application, error) {
	rows, err := m.all()
	if err != nil || f.Status == nil {
		return rows, err
	}
	out := make([]application.Application, 0)
	for _, a := range rows {
		if a.Status == *f.Status {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *mockApplicationRepo) Get(_ context.Context, id uuid.UUID) (application.Application, error) {
	return m.get(id)
}
func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	return m.put(a)
}
func (m *mockApplicationRepo) Update(_ context.Context, a application.Application) (application.Application, error) {
	return m.update(a)
}
func (m *mockApplicationRepo) SetFiles(_ context.Context, id uuid.UUID, resumePath, coverLetterPath string) error {
	a, err := m.get(id)
	if err != nil {
		return err
	}
	if resumePath != "" {
		a.ResumePath = resumePath
	}
	if coverLetterPath != "" {
		a.CoverLetterPath = coverLetterPath
	}
	_, err = m.put(a)
	return err
}
func (m *mockApplicationRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockContactRepo struct{ *memTable[contact.Contact] }

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{newMemTable(func(c contact.Contact) uuid.UUID { return c.ID })}
}

func (m *mockContactRepo) List(context.Context, contact.Filter) ([]contact.Contact, error) {
	return m.all()
}
func (m *mockContactRepo) Get(_ context.Context, id uuid.UUID) (contact.Contact, error) {
	return m.get(id)
}
func (m *mockContactRepo) Create(_ context.Context, c contact.Contact) (contact.Contact, error) {
	return m.put(c)
}
func (m *mockContactRepo) Update(_ context.Context, c contact.Contact) (contact.Contact, error) {
	return m.update(c)
}
func (m *mockContactRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockEventRepo struct {
	*memTable[event.Event]
	lastFilter event.Filter
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{memTable: newMemTable(func(e event.Event) uuid.UUID { return e.ID })}
}

func (m *mockEventRepo) List(_ context.Context, f event.Filter) ([]event.Event, error) {
	m.lastFilter = f
	return m.all()
}
func (m *mockEventRepo) Get(_ context.Context, id uuid.UUID) (event.Event, error) {
	return m.get(id)
}
func (m *mockEventRepo) Create(_ context.Context, e event.Event) (event.Event, error) {
	return m.put(e)
}

// Update round-trips next steps through the column encoding like the real store.
func (m *mockEventRepo) Update(_ context.Context, e event.Event) (event.Event, error) {
	raw, err := event.EncodeNextSteps(e.NextSteps)
	if err != nil {
		return e, err
	}
	e.NextSteps = event.DecodeNextSteps(raw)
	return m.update(e)
}
func (m *mockEventRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockReminderRepo struct {
	*memTable[reminder.Reminder]
	lastFilter reminder.Filter
}

func newMockReminderRepo() *mockReminderRepo {
	return &mockReminderRepo{memTable: newMemTable(func(r reminder.Reminder) uuid.UUID { return r.ID })}
}

func (m *mockReminderRepo) List(_ context.Context, f reminder.Filter) ([]reminder.Reminder, error) {
	m.lastFilter = f
	return m.all()
}
func (m *mockReminderRepo) Get(_ context.Context, id uuid.UUID) (reminder.Reminder, error) {
	return m.get(id)
}
func (m *mockReminderRepo) Create(_ context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	return m.put(r)
}
func (m *mockReminderRepo) Update(_ context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	return m.update(r)
}
func (m *mockReminderRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockLearningRepo struct{ *memTable[learning.Item] }

func newMockLearningRepo() *mockLearningRepo {
	return &mockLearningRepo{newMemTable(func(i learning.Item) uuid.UUID { return i.ID })}
}

func (m *mockLearningRepo) List(context.Context, learning.Filter) ([]learning.Item, error) {
	return m.all()
}
func (m *mockLearningRepo) Get(_ context.Context, id uuid.UUID) (learning.Item, error) {
	return m.get(id)
}
func (m *mockLearningRepo) Create(_ context.Context, it learning.Item) (learning.Item, error) {
	return m.put(it)
}
func (m *mockLearningRepo) Update(_ context.Context, it learning.Item) (learning.Item, error) {
	return m.update(it)
}
func (m *mockLearningRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockResourceRepo struct{ *memTable[resource.Resource] }

func newMockResourceRepo() *mockResourceRepo {
	return &mockResourceRepo{newMemTable(func(r resource.Resource) uuid.UUID { return r.ID })}
}

func (m *mockResourceRepo) List(context.Context, resource.Filter) ([]resource.Resource, error) {
	return m.all()
}
func (m *mockResourceRepo) Get(_ context.Context, id uuid.UUID) (resource.Resource, error) {
	return m.get(id)
}
func (m *mockResourceRepo) ParentOf(_ context.Context, id uuid.UUID) (*uuid.UUID, error) {
	r, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return r.ParentID, nil
}
func (m *mockResourceRepo) Create(_ context.Context, r resource.Resource) (resource.Resource, error) {
	return m.put(r)
}
func (m *mockResourceRepo) Update(_ context.Context, r resource.Resource) (resource.Resource, error) {
	return m.update(r)
}
func (m *mockResourceRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }

type mockEmailTemplateRepo struct{ *memTable[emailtemplate.Template] }

func newMockEmailTemplateRepo() *mockEmailTemplateRepo {
	return &mockEmailTemplateRepo{newMemTable(func(t emailtemplate.Template) uuid.UUID { return t.ID })}
}

func (m *mockEmailTemplateRepo) List(context.Context, emailtemplate.Filter) ([]emailtemplate.Template, error) {
	return m.all()
}
func (m *mockEmailTemplateRepo) Get(_ context.Context, id uuid.UUID) (emailtemplate.Template, error) {
	return m.get(id)
}
func (m *mockEmailTemplateRepo) Create(_ context.Context, t emailtemplate.Template) (emailtemplate.Template, error) {
	return m.put(t)
}
func (m *mockEmailTemplateRepo) Update(_ context.Context, t emailtemplate.Template) (emailtemplate.Template, error) {
	return m.update(t)
}
func (m *mockEmailTemplateRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }
func (m *mockEmailTemplateRepo) Count(context.Context) (int, error) {
	rows, err := m.all()
	return len(rows), err
}

type mockResumeRepo struct {
	*memTable[resume.Full]
}

func newMockResumeRepo() *mockResumeRepo {
	return &mockResumeRepo{newMemTable(func(f resume.Full) uuid.UUID { return f.ID })}
}

func (m *mockResumeRepo) List(context.Context) ([]resume.Template, error) {
	rows, err := m.all()
	out := make([]resume.Template, 0, len(rows))
	for _, f := range rows {
		out = append(out, f.Template)
	}
	return out, err
}
func (m *mockResumeRepo) Get(_ context.Context, id uuid.UUID) (resume.Template, error) {
	f, err := m.get(id)
	return f.Template, err
}
func (m *mockResumeRepo) GetFull(_ context.Context, id uuid.UUID) (resume.Full, error) {
	return m.get(id)
}
func (m *mockResumeRepo) Create(_ context.Context, t resume.Template) (resume.Template, error) {
	f, err := m.put(resume.Full{Template: t})
	return f.Template, err
}
func (m *mockResumeRepo) Update(_ context.Context, t resume.Template) (resume.Template, error) {
	f, err := m.get(t.ID)
	if err != nil {
		return t, err
	}
	f.Template = t
	_, err = m.put(f)
	return t, err
}
func (m *mockResumeRepo) Delete(_ context.Context, id uuid.UUID) error { return m.del(id) }
func (m *mockResumeRepo) Count(context.Context) (int, error) {
	rows, err := m.all()
	return len(rows), err
}

func (m *mockResumeRepo) SaveExperience(_ context.Context, e resume.Experience) (resume.Experience, error) {
	f, err := m.get(e.ResumeID)
	if err != nil {
		return e, err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
		f.Experiences = append(f.Experiences, e)
	} else {
		for i := range f.Experiences {
			if f.Experiences[i].ID == e.ID {
				f.Experiences[i] = e
			}
		}
	}
	_, err = m.put(f)
	return e, err
}
func (m *mockResumeRepo) SaveProject(_ context.Context, p resume.Project) (resume.Project, error) {
	f, err := m.get(p.ResumeID)
	if err != nil {
		return p, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
		f.Projects = append(f.Projects, p)
	}
	_, err = m.put(f)
	return p, err
}
func (m *mockResumeRepo) SaveSkillCategory(_ context.Context, s resume.SkillCategory) (resume.SkillCategory, error) {
	f, err := m.get(s.ResumeID)
	if err != nil {
		return s, err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		f.Skills = append(f.Skills, s)
	}
	_, err = m.put(f)
	return s, err
}
func (m *mockResumeRepo) SaveEducation(_ context.Context, e resume.Education) (resume.Education, error) {
	f, err := m.get(e.ResumeID)
	if err != nil {
		return e, err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
		f.Education = append(f.Education, e)
	}
	_, err = m.put(f)
	return e, err
}
func (m *mockResumeRepo) DeleteItem(_ context.Context, section resume.Section, resumeID, itemID uuid.UUID) error {
	f, err := m.get(resumeID)
	if err != nil {
		return err
	}
	if section != resume.SectionExperiences {
		return repository.ErrNotFound
	}
	for i, e := range f.Experiences {
		if e.ID == itemID {
			f.Experiences = append(f.Experiences[:i], f.Experiences[i+1:]...)
			_, err = m.put(f)
			return err
		}
	}
	return repository.ErrNotFound
}

type change struct {
	entity string
	action ws.Action
	id     uuid.UUID
}

type mockNotifier struct {
	mu      sync.Mutex
	changes []change
}

func (n *mockNotifier) NotifyChange(entity string, action ws.Action, id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change{entity, action, id})
}

type mockCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	deletes []string
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string][]byte{}}
}

func (c *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = b
	c.sets++
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func testDeps() (Deps, *mockNotifier, *mockCache) {
	n := &mockNotifier{}
	c := newMockCache()
	return Deps{Notifier: n, Cache: c, Now: func() time.Time { return fixedNow }}, n, c
}
