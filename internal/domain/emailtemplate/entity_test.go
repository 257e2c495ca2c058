package emailtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tpl := Template{
		Subject: "Following up on {{position}}",
		Body:    "Hi {{ name }},\nThanks for chatting about {{position}} at {{company}}. {{ signature }}",
	}
	out := tpl.Render(map[string]string{"position": "Backend Engineer", "name": "Sam", "company": "Acme"})

	assert.Equal(t, "Following up on Backend Engineer", out.Subject)
	assert.Equal(t, "Hi Sam,\nThanks for chatting about Backend Engineer at Acme. {{ signature }}", out.Body)
	assert.Equal(t, []string{"signature"}, out.Missing)
	assert.Equal(t, []string{"company", "name", "position", "signature"}, out.Placeholders)
}

func TestRender_NoVariables(t *testing.T) {
	tpl := Template{Subject: "{{a}}", Body: "{{b}} {{a}}"}
	out := tpl.Render(nil)
	assert.Equal(t, "{{a}}", out.Subject)
	assert.Equal(t, "{{b}} {{a}}", out.Body)
	assert.Equal(t, []string{"a", "b"}, out.Missing)
}

func TestRender_EmptyValueIsNotMissing(t *testing.T) {
	out := Template{Body: "x{{ a }}y"}.Render(map[string]string{"a": ""})
	assert.Equal(t, "xy", out.Body)
	assert.NotNil(t, out.Missing)
	assert.Empty(t, out.Missing)
}

func TestPlaceholders(t *testing.T) {
	tpl := Template{Subject: "{{ company }}", Body: "{{name}} {{company}} {not} {{ }}"}
	assert.Equal(t, []string{"company", "name"}, tpl.Placeholders())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("thank_you")
	require.NoError(t, err)
	assert.Equal(t, CategoryThankYou, c)
	_, err = ParseCategory("SPAM")
	assert.Error(t, err)
}
