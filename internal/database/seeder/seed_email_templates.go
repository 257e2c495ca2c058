package seeder

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/emailtemplate"

	"github.com/google/uuid"
)

type EmailTemplatesSeeder struct{}

func (EmailTemplatesSeeder) Name() string { return "email_templates" }

var defaultEmailTemplates = []emailtemplate.Template{
	{
		Name:     "Cold outreach",
		Category: emailtemplate.CategoryColdOutreach,
		Subject:  "Interest in {{position}} at {{company}}",
		Body: "Hi {{name}},\n\nI came across the {{position}} role at {{company}} and would love to learn more. " +
			"My background in {{skill}} looks like a close fit.\n\nWould you be open to a short chat this week?\n\nBest,\n{{my_name}}",
	},
	{
		Name:     "Application follow-up",
		Category: emailtemplate.CategoryFollowUp,
		Subject:  "Following up on my {{position}} application",
		Body: "Hi {{name}},\n\nI applied for the {{position}} position at {{company}} on {{applied_date}} " +
			"and wanted to check on the status of my application.\n\nThanks for your time,\n{{my_name}}",
	},
	{
		Name:     "Interview thank you",
		Category: emailtemplate.CategoryThankYou,
		Subject:  "Thank you for the {{position}} interview",
		Body: "Hi {{name}},\n\nThank you for speaking with me today about the {{position}} role. " +
			"I enjoyed learning about {{topic}} and I'm excited about the opportunity to join {{company}}.\n\nBest regards,\n{{my_name}}",
	},
	{
		Name:     "Referral request",
		Category: emailtemplate.CategoryReferralRequest,
		Subject:  "Referral for {{position}} at {{company}}?",
		Body: "Hi {{name}},\n\nI'm applying for the {{position}} opening at {{company}}. " +
			"Would you be comfortable referring me? I'm happy to send my resume and a short summary.\n\nThank you,\n{{my_name}}",
	},
	{
		Name:     "Networking hello",
		Category: emailtemplate.CategoryNetworking,
		Subject:  "Connecting about {{topic}}",
		Body:     "Hi {{name}},\n\nI enjoyed your work on {{topic}} and would love to connect and hear how you got started.\n\nCheers,\n{{my_name}}",
	},
}

func (EmailTemplatesSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	if err := EnsureTableColumns(ctx, db, "email_templates", "id", "name", "subject", "body", "category"); err != nil {
		return 0, err
	}

	inserted := 0
	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		empty, err := tableEmpty(ctx, tx, "email_templates")
		if err != nil || !empty {
			return err
		}
		for _, t := range defaultEmailTemplates {
			affected, err := tx.Exec(ctx,
				`INSERT INTO email_templates (id, name, subject, body, category) VALUES ($1, $2, $3, $4, $5)`,
				uuid.New(), t.Name, t.Subject, t.Body, string(t.Category),
			)
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
