package profile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonathan/career-compass/internal/personality"
	"github.com/jonathan/career-compass/internal/schemas"
	"github.com/jonathan/career-compass/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(answers map[string]any) types.AnalysisRequest {
	return types.AnalysisRequest{Answers: answers}
}

func TestBuild_FullRequest(t *testing.T) {
	req := request(map[string]any{
		"skill:Python":            9,
		"skill:golang":            6.0,
		"subject:Mathematics":     90,
		"subject:Maths":           70,
		"subject:Physics":         80.0,
		"trait:openness":          5,
		"trait:conscientiousness": 3,
		"mbti:E":                  1,
		"mbti:I:q2":               2,
		"mbti:I:q3":               1,
		"mbti:N":                  2,
		"mbti:T":                  1,
		"mbti:J":                  3,
		"mbti:P":                  1,
		"interest:ai":             true,
		"interest:Robotics":       "TRUE",
		"interest:music":          false,
		"pref:pace":               1.5,
		"pref:experience":         "Mid",
		"pref:location":           "UK",
	})

	p, err := NewBuilder(1).Build(req)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"python": 0.9, "go": 0.6}, p.Skills)
	assert.InDelta(t, 0.8, p.Academics["math"], 1e-9, "duplicate subjects are averaged")
	assert.InDelta(t, 0.8, p.Academics["science"], 1e-9)
	assert.Equal(t, 1.0, p.Personality["openness"])
	assert.Equal(t, 0.5, p.Personality["conscientiousness"])
	assert.InDelta(t, 0.25, p.Personality[personality.AxisEI], 1e-9)
	assert.Equal(t, 0.0, p.Personality[personality.AxisSN])
	assert.Equal(t, 1.0, p.Personality[personality.AxisTF])
	assert.Equal(t, 0.75, p.Personality[personality.AxisJP])
	assert.Equal(t, "INTJ", p.MBTIType)
	assert.Equal(t, []string{"artificial_intelligence", "robotics"}, p.Interests)
	assert.Equal(t, types.Preferences{Pace: 1.5, ExperienceLevel: types.ExperienceMid, Location: "uk"}, p.Preferences)
}

func TestBuild_Defaults(t *testing.T) {
	p, err := NewBuilder(2).Build(request(map[string]any{
		"skill:sql":       5,
		"subject:english": 60,
	}))
	require.NoError(t, err)

	assert.Equal(t, 2.0, p.Preferences.Pace)
	assert.Equal(t, types.ExperienceEntry, p.Preferences.ExperienceLevel)
	assert.Equal(t, types.DefaultLocation, p.Preferences.Location)
	assert.Equal(t, "", p.MBTIType)
	assert.Empty(t, p.Personality)
	assert.NotNil(t, p.Interests)
}

func TestBuild_InterestAsStringTrueIsParsed(t *testing.T) {
	p, err := NewBuilder(1).Build(request(map[string]any{
		"skill:sql":         5,
		"subject:english":   60,
		"interest:robotics": "true",
		"interest:ai":       1,
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"artificial_intelligence", "robotics"}, p.Interests)
}

func TestBuild_JSONNumbers(t *testing.T) {
	var req types.AnalysisRequest
	dec := json.NewDecoder(strings.NewReader(`{"answers": {"skill:python": 7, "subject:math": 55}}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&req))

	p, err := NewBuilder(1).Build(req)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p.Skills["python"], 1e-9)
	assert.InDelta(t, 0.55, p.Academics["math"], 1e-9)
}

func TestBuild_ValidationErrors(t *testing.T) {
	base := func(extra map[string]any) map[string]any {
		answers := map[string]any{"skill:python": 5, "subject:math": 50}
		for k, v := range extra {
			answers[k] = v
		}
		return answers
	}

	tests := []struct {
		name    string
		answers map[string]any
		field   string
	}{
		{"skill above scale", base(map[string]any{"skill:go": 11}), "skill:go"},
		{"negative subject", base(map[string]any{"subject:arts": -1}), "subject:arts"},
		{"likert below scale", base(map[string]any{"trait:openness": 0}), "trait:openness"},
		{"non numeric", base(map[string]any{"skill:go": "lots"}), "skill:go"},
		{"wrong type", base(map[string]any{"skill:go": []int{1}}), "skill:go"},
		{"unknown kind", base(map[string]any{"hobby:chess": 1}), "hobby:chess"},
		{"missing name", base(map[string]any{"skill:": 1}), "skill:"},
		{"no kind", base(map[string]any{"python": 1}), "python"},
		{"bad mbti letter", base(map[string]any{"mbti:X": 1}), "mbti:X"},
		{"negative mbti", base(map[string]any{"mbti:E": -1}), "mbti:E"},
		{"bad pace", base(map[string]any{"pref:pace": 0}), "pref:pace"},
		{"bad experience", base(map[string]any{"pref:experience": "guru"}), "pref:experience"},
		{"location not string", base(map[string]any{"pref:location": 4}), "pref:location"},
		{"unknown pref", base(map[string]any{"pref:salary": 4}), "pref:salary"},
		{"bad interest", base(map[string]any{"interest:ai": "maybe"}), "interest:ai"},
		{"no skills", map[string]any{"subject:math": 50}, "skills"},
		{"no subjects", map[string]any{"skill:python": 5}, "academics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder(1).Build(request(tt.answers))
			require.Error(t, err)

			var ve *types.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestBuild_PaceUpperBound(t *testing.T) {
	_, err := NewBuilder(1).Build(request(map[string]any{"skill:python": 5, "subject:math": 50, "pref:pace": 50}))
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestBuild_Deterministic(t *testing.T) {
	answers := map[string]any{
		"skill:python": 5, "skill:py": 7, "subject:math": 50, "subject:maths": 61, "subject:mathematics": 72,
		"mbti:E": 1, "mbti:I": 1,
	}
	b := NewBuilder(1)
	first, err := b.Build(request(answers))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := b.Build(request(answers))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 0.7, first.Skills["python"])
	assert.Equal(t, "ESTJ", first.MBTIType)
}

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"answers": {"skill:python": 8, "subject:math": 90, "pref:location": "UK"}}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("8"), req.Answers["skill:python"])

	p, err := NewBuilder(1).Build(req)
	require.NoError(t, err)
	assert.Equal(t, 0.8, p.Skills["python"])
	assert.Equal(t, "uk", p.Preferences.Location)
}

func TestDecodeRequest_SchemaViolations(t *testing.T) {
	for _, doc := range []string{
		`{}`,
		`{"answers": {}}`,
		`{"answers": {"Python": 8}}`,
		`{"answers": {"skill:python": [1, 2]}}`,
	} {
		_, err := DecodeRequest([]byte(doc))
		var ve *schemas.ValidationError
		assert.ErrorAs(t, err, &ve, doc)
	}
}
