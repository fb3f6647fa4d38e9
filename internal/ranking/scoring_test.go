package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSkillScore(t *testing.T) {
	tests := []struct {
		name     string
		skills   map[string]float64
		required map[string]float64
		want     float64
	}{
		{"identical", map[string]float64{"go": 0.5, "sql": 0.5}, map[string]float64{"go": 0.5, "sql": 0.5}, 1},
		{"scaled", map[string]float64{"go": 0.4, "sql": 0.2}, map[string]float64{"go": 1, "sql": 0.5}, 1},
		{"orthogonal", map[string]float64{"go": 1}, map[string]float64{"sql": 1}, 0},
		{"partial", map[string]float64{"go": 1}, map[string]float64{"go": 1, "sql": 1}, 1 / math.Sqrt2},
		{"empty profile", map[string]float64{}, map[string]float64{"go": 1}, 0},
		{"zero vector", map[string]float64{"go": 0}, map[string]float64{"go": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, computeSkillScore(tt.skills, tt.required), 1e-9)
		})
	}
}

func TestComputeAcademicScore(t *testing.T) {
	academics := map[string]float64{"math": 0.8, "science": 0.6}

	score, ok := computeAcademicScore(academics, map[string]float64{"math": 1, "science": 0.5})
	require.True(t, ok)
	assert.InDelta(t, 1.1/1.5, score, 1e-9)

	score, ok = computeAcademicScore(map[string]float64{"math": 1}, map[string]float64{"math": 0.3})
	require.True(t, ok)
	assert.InDelta(t, 1.0, score, 1e-9, "a perfect academic match scores 1")

	score, ok = computeAcademicScore(academics, map[string]float64{"arts": 1})
	require.True(t, ok)
	assert.Equal(t, 0.0, score)
}

func TestComputeAcademicScore_NoAffinity(t *testing.T) {
	score, ok := computeAcademicScore(map[string]float64{"math": 1}, nil)
	assert.False(t, ok)
	assert.Equal(t, neutralAcademicScore, score)

	score, ok = computeAcademicScore(map[string]float64{"math": 1}, map[string]float64{"math": 0})
	assert.False(t, ok)
	assert.Equal(t, neutralAcademicScore, score)
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	tests := []struct {
		name    string
		weights Weights
	}{
		{"missing version", Weights{Skill: 0.5, Academic: 0.25, Personality: 0.25}},
		{"sum below one", Weights{Version: "x", Skill: 0.5, Academic: 0.2, Personality: 0.2}},
		{"sum above one", Weights{Version: "x", Skill: 0.5, Academic: 0.5, Personality: 0.5}},
		{"negative", Weights{Version: "x", Skill: 1.2, Academic: -0.2, Personality: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.weights.Validate())
		})
	}
}

func TestWeights_CompositeClampsAndRounds(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 100.0, w.composite(1, 1, 1, 1))
	assert.Equal(t, 0.0, w.composite(0, 0, 0, 1))
	assert.Equal(t, 45.0, w.composite(1, 0, 0, 1))
	assert.Equal(t, 33.3, w.composite(0.333333, 0.333333, 0.333333, 1))
	assert.Equal(t, 33.33, w.composite(0.333333, 0.333333, 0.333333, 2))
}
