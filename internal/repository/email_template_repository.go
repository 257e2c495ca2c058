package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/emailtemplate"

	"github.com/google/uuid"
)

type EmailTemplateRepository interface {
	List(ctx context.Context, f emailtemplate.Filter) ([]emailtemplate.Template, error)
	Get(ctx context.Context, id uuid.UUID) (emailtemplate.Template, error)
	Create(ctx context.Context, t emailtemplate.Template) (emailtemplate.Template, error)
	Update(ctx context.Context, t emailtemplate.Template) (emailtemplate.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type PostgresEmailTemplateRepository struct {
	db database.Querier
}

func NewPostgresEmailTemplateRepository(db database.Querier) *PostgresEmailTemplateRepository {
	return &PostgresEmailTemplateRepository{db: db}
}

const emailTemplateColumns = `id, name, subject, body, category, created_at, updated_at`

func scanEmailTemplate(row database.Row) (emailtemplate.Template, error) {
	var t emailtemplate.Template
	err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.Category, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresEmailTemplateRepository) List(ctx context.Context, f emailtemplate.Filter) ([]emailtemplate.Template, error) {
	var w where
	if f.Category != nil {
		w.add("category = ?", string(*f.Category))
	}

	rows, err := r.db.Query(ctx, `SELECT `+emailTemplateColumns+` FROM email_templates`+w.String()+` ORDER BY category ASC, lower(name) ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]emailtemplate.Template, 0)
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmailTemplateRepository) Get(ctx context.Context, id uuid.UUID) (emailtemplate.Template, error) {
	t, err := scanEmailTemplate(r.db.QueryRow(ctx, `SELECT `+emailTemplateColumns+` FROM email_templates WHERE id = $1`, id))
	if err != nil {
		return emailtemplate.Template{}, notFound(err)
	}
	return t, nil
}

func (r *PostgresEmailTemplateRepository) Create(ctx context.Context, t emailtemplate.Template) (emailtemplate.Template, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return scanEmailTemplate(r.db.QueryRow(ctx,
		`INSERT INTO email_templates (id, name, subject, body, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+emailTemplateColumns,
		t.ID, t.Name, t.Subject, t.Body, string(t.Category),
	))
}

func (r *PostgresEmailTemplateRepository) Update(ctx context.Context, t emailtemplate.Template) (emailtemplate.Template, error) {
	out, err := scanEmailTemplate(r.db.QueryRow(ctx,
		`UPDATE email_templates
		 SET name = $2, subject = $3, body = $4, category = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+emailTemplateColumns,
		t.ID, t.Name, t.Subject, t.Body, string(t.Category),
	))
	if err != nil {
		return emailtemplate.Template{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresEmailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresEmailTemplateRepository) Count(ctx context.Context) (int, error) {
	var c int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM email_templates`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}
