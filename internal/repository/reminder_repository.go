package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/reminder"

	"github.com/google/uuid"
)

type ReminderRepository interface {
	List(ctx context.Context, f reminder.Filter) ([]reminder.Reminder, error)
	Get(ctx context.Context, id uuid.UUID) (reminder.Reminder, error)
	Create(ctx context.Context, rm reminder.Reminder) (reminder.Reminder, error)
	Update(ctx context.Context, rm reminder.Reminder) (reminder.Reminder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresReminderRepository struct {
	db database.Querier
}

func NewPostgresReminderRepository(db database.Querier) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

const reminderSelect = `SELECT r.id, r.application_id, r.contact_id, r.title, r.description, r.type, r.due_date,
 r.is_completed, r.completed_at, r.created_at, r.updated_at,
 COALESCE(a.position, ''), COALESCE(c.name, ''), COALESCE(ct.name, '')
 FROM reminders r
 LEFT JOIN applications a ON a.id = r.application_id
 LEFT JOIN companies c ON c.id = a.company_id
 LEFT JOIN contacts ct ON ct.id = r.contact_id`

func scanReminder(row database.Row) (reminder.Reminder, error) {
	var rm reminder.Reminder
	err := row.Scan(&rm.ID, &rm.ApplicationID, &rm.ContactID, &rm.Title, &rm.Description, &rm.Type, &rm.DueDate,
		&rm.IsCompleted, &rm.CompletedAt, &rm.CreatedAt, &rm.UpdatedAt,
		&rm.Position, &rm.CompanyName, &rm.ContactName)
	return rm, err
}

func (r *PostgresReminderRepository) List(ctx context.Context, f reminder.Filter) ([]reminder.Reminder, error) {
	var w where
	if f.Completed != nil {
		w.add("r.is_completed = ?", *f.Completed)
	}
	if f.ApplicationID != nil {
		w.add("r.application_id = ?", *f.ApplicationID)
	}
	if f.DueFrom != nil {
		w.add("r.due_date >= ?", *f.DueFrom)
	}
	if f.DueBefore != nil {
		w.add("r.due_date < ?", *f.DueBefore)
	}

	rows, err := r.db.Query(ctx, reminderSelect+w.String()+` ORDER BY r.is_completed ASC, r.due_date ASC, r.created_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminder.Reminder, 0)
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresReminderRepository) Get(ctx context.Context, id uuid.UUID) (reminder.Reminder, error) {
	rm, err := scanReminder(r.db.QueryRow(ctx, reminderSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return reminder.Reminder{}, notFound(err)
	}
	return rm, nil
}

func (r *PostgresReminderRepository) Create(ctx context.Context, rm reminder.Reminder) (reminder.Reminder, error) {
	if rm.ID == uuid.Nil {
		rm.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO reminders (id, application_id, contact_id, title, description, type, due_date, is_completed, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rm.ID, rm.ApplicationID, rm.ContactID, rm.Title, rm.Description, string(rm.Type), rm.DueDate, rm.IsCompleted, rm.CompletedAt,
	)
	if err != nil {
		return reminder.Reminder{}, err
	}
	return r.Get(ctx, rm.ID)
}

func (r *PostgresReminderRepository) Update(ctx context.Context, rm reminder.Reminder) (reminder.Reminder, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE reminders
		 SET application_id = $2, contact_id = $3, title = $4, description = $5, type = $6, due_date = $7,
		     is_completed = $8, completed_at = $9, updated_at = now()
		 WHERE id = $1`,
		rm.ID, rm.ApplicationID, rm.ContactID, rm.Title, rm.Description, string(rm.Type), rm.DueDate, rm.IsCompleted, rm.CompletedAt,
	)
	if err != nil {
		return reminder.Reminder{}, err
	}
	if n == 0 {
		return reminder.Reminder{}, ErrNotFound
	}
	return r.Get(ctx, rm.ID)
}

func (r *PostgresReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
