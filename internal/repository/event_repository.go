package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/event"

	"github.com/google/uuid"
)

type EventRepository interface {
	List(ctx context.Context, f event.Filter) ([]event.Event, error)
	Get(ctx context.Context, id uuid.UUID) (event.Event, error)
	Create(ctx context.Context, e event.Event) (event.Event, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresEventRepository struct {
	db database.Querier
}

func NewPostgresEventRepository(db database.Querier) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventSelect = `SELECT e.id, e.application_id, e.contact_id, e.title, e.type, e.status, e.scheduled_at, e.duration_minutes,
 e.location, e.meeting_url, e.notes, e.outcome, e.next_steps, e.created_at, e.updated_at,
 COALESCE(a.position, ''), COALESCE(c.name, ''), COALESCE(ct.name, '')
 FROM events e
 LEFT JOIN applications a ON a.id = e.application_id
 LEFT JOIN companies c ON c.id = a.company_id
 LEFT JOIN contacts ct ON ct.id = e.contact_id`

func scanEvent(row database.Row) (event.Event, error) {
	var (
		e     event.Event
		steps string
	)
	err := row.Scan(&e.ID, &e.ApplicationID, &e.ContactID, &e.Title, &e.Type, &e.Status, &e.ScheduledAt, &e.DurationMinutes,
		&e.Location, &e.MeetingURL, &e.Notes, &e.Outcome, &steps, &e.CreatedAt, &e.UpdatedAt,
		&e.Position, &e.CompanyName, &e.ContactName)
	e.NextSteps = event.DecodeNextSteps(steps)
	return e, err
}

func (r *PostgresEventRepository) List(ctx context.Context, f event.Filter) ([]event.Event, error) {
	var w where
	if f.ApplicationID != nil {
		w.add("e.application_id = ?", *f.ApplicationID)
	}
	if f.Type != nil {
		w.add("e.type = ?", string(*f.Type))
	}
	if f.Status != nil {
		w.add("e.status = ?", string(*f.Status))
	}
	if f.From != nil {
		w.add("e.scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("e.scheduled_at < ?", *f.To)
	}

	rows, err := r.db.Query(ctx, eventSelect+w.String()+` ORDER BY e.scheduled_at ASC, e.created_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]event.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEventRepository) Get(ctx context.Context, id uuid.UUID) (event.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		return event.Event{}, notFound(err)
	}
	return e, nil
}

func (r *PostgresEventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	steps, err := event.EncodeNextSteps(e.NextSteps)
	if err != nil {
		return event.Event{}, err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO events (id, application_id, contact_id, title, type, status, scheduled_at, duration_minutes,
		 location, meeting_url, notes, outcome, next_steps)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.ApplicationID, e.ContactID, e.Title, string(e.Type), string(e.Status), e.ScheduledAt, e.DurationMinutes,
		e.Location, e.MeetingURL, e.Notes, e.Outcome, steps,
	)
	if err != nil {
		return event.Event{}, err
	}
	return r.Get(ctx, e.ID)
}

// Update rewrites the whole row, next steps included.
func (r *PostgresEventRepository) Update(ctx context.Context, e event.Event) (event.Event, error) {
	steps, err := event.EncodeNextSteps(e.NextSteps)
	if err != nil {
		return event.Event{}, err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE events
		 SET application_id = $2, contact_id = $3, title = $4, type = $5, status = $6, scheduled_at = $7,
		     duration_minutes = $8, location = $9, meeting_url = $10, notes = $11, outcome = $12, next_steps = $13,
		     updated_at = now()
		 WHERE id = $1`,
		e.ID, e.ApplicationID, e.ContactID, e.Title, string(e.Type), string(e.Status), e.ScheduledAt,
		e.DurationMinutes, e.Location, e.MeetingURL, e.Notes, e.Outcome, steps,
	)
	if err != nil {
		return event.Event{}, err
	}
	if n == 0 {
		return event.Event{}, ErrNotFound
	}
	return r.Get(ctx, e.ID)
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
