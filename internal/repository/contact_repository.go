package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/contact"

	"github.com/google/uuid"
)

type ContactRepository interface {
	List(ctx context.Context, f contact.Filter) ([]contact.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (contact.Contact, error)
	Create(ctx context.Context, c contact.Contact) (contact.Contact, error)
	Update(ctx context.Context, c contact.Contact) (contact.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresContactRepository struct {
	db database.Querier
}

func NewPostgresContactRepository(db database.Querier) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

const contactSelect = `SELECT ct.id, ct.company_id, c.name, ct.name, ct.title, ct.email, ct.phone, ct.linkedin_url, ct.status,
 ct.can_refer, ct.notes, ct.last_contacted_at, ct.created_at, ct.updated_at
 FROM contacts ct
 JOIN companies c ON c.id = ct.company_id`

func scanContact(row database.Row) (contact.Contact, error) {
	var c contact.Contact
	err := row.Scan(&c.ID, &c.CompanyID, &c.CompanyName, &c.Name, &c.Title, &c.Email, &c.Phone, &c.LinkedInURL, &c.Status,
		&c.CanRefer, &c.Notes, &c.LastContactedAt, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresContactRepository) List(ctx context.Context, f contact.Filter) ([]contact.Contact, error) {
	var w where
	if f.Status != nil {
		w.add("ct.status = ?", string(*f.Status))
	}
	if f.CompanyID != nil {
		w.add("ct.company_id = ?", *f.CompanyID)
	}
	if f.CanRefer != nil {
		w.add("ct.can_refer = ?", *f.CanRefer)
	}
	if f.Query != "" {
		w.add("(ct.name ILIKE ? OR ct.title ILIKE ? OR ct.email ILIKE ? OR c.name ILIKE ?)", likePattern(f.Query))
	}

	rows, err := r.db.Query(ctx, contactSelect+w.String()+` ORDER BY lower(ct.name) ASC, ct.created_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contact.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresContactRepository) Get(ctx context.Context, id uuid.UUID) (contact.Contact, error) {
	c, err := scanContact(r.db.QueryRow(ctx, contactSelect+` WHERE ct.id = $1`, id))
	if err != nil {
		return contact.Contact{}, notFound(err)
	}
	return c, nil
}

func (r *PostgresContactRepository) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO contacts (id, company_id, name, title, email, phone, linkedin_url, status, can_refer, notes, last_contacted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		c.ID, c.CompanyID, c.Name, c.Title, c.Email, c.Phone, c.LinkedInURL, string(c.Status), c.CanRefer, c.Notes, c.LastContactedAt,
	)
	if err != nil {
		return contact.Contact{}, err
	}
	return r.Get(ctx, c.ID)
}

func (r *PostgresContactRepository) Update(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE contacts
		 SET company_id = $2, name = $3, title = $4, email = $5, phone = $6, linkedin_url = $7, status = $8,
		     can_refer = $9, notes = $10, last_contacted_at = $11, updated_at = now()
		 WHERE id = $1`,
		c.ID, c.CompanyID, c.Name, c.Title, c.Email, c.Phone, c.LinkedInURL, string(c.Status), c.CanRefer, c.Notes, c.LastContactedAt,
	)
	if err != nil {
		return contact.Contact{}, err
	}
	if n == 0 {
		return contact.Contact{}, ErrNotFound
	}
	return r.Get(ctx, c.ID)
}

func (r *PostgresContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
