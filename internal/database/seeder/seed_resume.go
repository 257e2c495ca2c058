package seeder

import (
	"context"

	"jobtrack/internal/database"

	"github.com/google/uuid"
)

// ResumeSeeder creates one default template with a placeholder entry in each
// section so the LaTeX export has something to show.
type ResumeSeeder struct{}

func (ResumeSeeder) Name() string { return "resume_templates" }

const starterHeader = `\documentclass[letterpaper,11pt]{article}
\usepackage[margin=0.6in]{geometry}
\usepackage[hidelinks]{hyperref}
\usepackage{enumitem}
\setlist[itemize]{leftmargin=*,noitemsep}
\pagestyle{empty}
\begin{document}
\begin{center}
  {\LARGE Your Name} \\
  you@example.com $|$ \href{https://github.com/you}{github.com/you}
\end{center}`

func (ResumeSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "resume_templates", "id", "name", "description", "header_latex", "is_default"); err != nil {
		return 0, err
	}

	inserted := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		empty, err := tableEmpty(ctx, tx, "resume_templates")
		if err != nil || !empty {
			return err
		}

		id := uuid.New()
		stmts := []struct {
			sql  string
			args []any
		}{
			{
				`INSERT INTO resume_templates (id, name, description, header_latex, is_default) VALUES ($1, $2, $3, $4, true)`,
				[]any{id, "Starter resume", "One-page template. Replace the placeholder entries.", starterHeader},
			},
			{
				`INSERT INTO resume_experiences (id, resume_id, company, role, location, start_date, end_date, bullets_latex, sort_order)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)`,
				[]any{uuid.New(), id, "Example Corp", "Software Engineer", "Remote", "Jan 2024", "Present",
					`\item Built and operated services used by thousands of customers.`},
			},
			{
				`INSERT INTO resume_projects (id, resume_id, name, tech_stack, link, bullets_latex, sort_order)
				 VALUES ($1, $2, $3, $4, $5, $6, 0)`,
				[]any{uuid.New(), id, "Side Project", "Go, PostgreSQL", "https://github.com/you/project",
					`\item Describe what it does and what you learned.`},
			},
			{
				`INSERT INTO resume_skill_categories (id, resume_id, name, skills, sort_order) VALUES ($1, $2, $3, $4, 0)`,
				[]any{uuid.New(), id, "Languages", "Go, SQL, TypeScript"},
			},
			{
				`INSERT INTO resume_education (id, resume_id, institution, degree, field, location, start_date, end_date, details_latex, sort_order)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', 0)`,
				[]any{uuid.New(), id, "State University", "B.Sc.", "Computer Science", "Somewhere", "2019", "2023"},
			},
		}
		for _, st := range stmts {
			affected, err := tx.Exec(ctx, st.sql, st.args...)
			if err != nil {
				return err
			}
			inserted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
