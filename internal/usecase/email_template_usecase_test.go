package usecase

import (
	"context"
	"testing"

	"jobtrack/internal/domain/emailtemplate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailTemplateUsecase_Render(t *testing.T) {
	uc := NewEmailTemplateUsecase(newMockEmailTemplateRepo(), Deps{})
	ctx := context.Background()

	tpl, err := uc.Create(ctx, EmailTemplateInput{
		Name:    strPtr("Follow up"),
		Subject: strPtr("Following up on {{position}}"),
		Body:    strPtr("Hi {{ name }},\nThanks for your time at {{company}}. {{signature}}"),
	})
	require.NoError(t, err)
	assert.Equal(t, emailtemplate.CategoryOther, tpl.Category)

	out, err := uc.Render(ctx, tpl.ID, map[string]string{"position": "Go Engineer", "name": "Sam", "company": "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Following up on Go Engineer", out.Subject)
	assert.Equal(t, "Hi Sam,\nThanks for your time at Acme. {{signature}}", out.Body)
	assert.Equal(t, []string{"signature"}, out.Missing)
	assert.Equal(t, []string{"company", "name", "position", "signature"}, out.Placeholders)

	_, err = uc.Render(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmailTemplateUsecase_Validation(t *testing.T) {
	uc := NewEmailTemplateUsecase(newMockEmailTemplateRepo(), Deps{})
	ctx := context.Background()

	_, err := uc.Create(ctx, EmailTemplateInput{Subject: strPtr("s"), Body: strPtr("b")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(ctx, EmailTemplateInput{Name: strPtr("n"), Subject: strPtr("s"), Body: strPtr("b"), Category: strPtr("SPAM")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
