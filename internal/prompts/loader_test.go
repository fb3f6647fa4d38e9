package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []Name{Advise, Posting}, names)
}

func TestFields(t *testing.T) {
	fields, err := Fields(Advise)
	require.NoError(t, err)
	assert.Equal(t, []string{"Context", "Question"}, fields)

	fields, err = Fields(Posting)
	require.NoError(t, err)
	assert.Equal(t, []string{"Context", "Posting"}, fields)

	_, err = Fields("missing")
	assert.Error(t, err)
}

func TestRender_MentorTemplates(t *testing.T) {
	prompt, err := Render(Advise, map[string]string{
		"Context":  "1. Data Scientist (score 81.4)",
		"Question": "Which career suits me?",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "1. Data Scientist (score 81.4)")
	assert.Contains(t, prompt, "Which career suits me?")
	assert.NotContains(t, prompt, "{{.")
}

func TestRender_MissingValue(t *testing.T) {
	_, err := Render(Posting, map[string]string{"Context": "verdict: safe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Posting")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("summary", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mentor prompt")
}

func TestRender_Substitution(t *testing.T) {
	templates, err := parse([]byte(`{"greet": "Hello {{.Name}}, {{.Name}} again. Keep {{.Extra}}"}`))
	require.NoError(t, err)

	tests := []struct {
		name     string
		values   map[string]string
		expected string
	}{
		{"repeated placeholder", map[string]string{"Name": "Asha", "Extra": "going"}, "Hello Asha, Asha again. Keep going"},
		{"values are not re-expanded", map[string]string{"Name": "{{.Extra}}", "Extra": "x"}, "Hello {{.Extra}}, {{.Extra}} again. Keep x"},
		{"extra values ignored", map[string]string{"Name": "A", "Extra": "B", "Unused": "C"}, "Hello A, A again. Keep B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := render(templates, "greet", tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := parse([]byte(`not json`))
	assert.Error(t, err)

	_, err = parse([]byte(`{"advise": "  "}`))
	assert.Error(t, err)
}
