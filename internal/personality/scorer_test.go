package personality

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_IdenticalVectors(t *testing.T) {
	traits := map[string]float64{"openness": 0.7, AxisEI: 0.2}

	score, ok := Score(traits, traits)
	require.True(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestScore_OppositeVectors(t *testing.T) {
	traits := map[string]float64{"openness": 1, "agreeableness": 0}
	archetype := map[string]float64{"openness": 0, "agreeableness": 1}

	score, ok := Score(traits, archetype)
	require.True(t, ok)
	assert.Equal(t, 0.0, score)
}

func TestScore_OnlySharedDimensionsCount(t *testing.T) {
	traits := map[string]float64{"openness": 0.5, "neuroticism": 0.9}
	archetype := map[string]float64{"openness": 0.8, "conscientiousness": 0.1}

	score, ok := Score(traits, archetype)
	require.True(t, ok)
	assert.InDelta(t, 0.7, score, 1e-9)
}

func TestScore_NormalizedDistance(t *testing.T) {
	traits := map[string]float64{"a": 0.2, "b": 0.6}
	archetype := map[string]float64{"a": 0.5, "b": 0.2}

	score, ok := Score(traits, archetype)
	require.True(t, ok)
	// distance = sqrt(0.09 + 0.16) / sqrt(2)
	assert.InDelta(t, 1-0.5/math.Sqrt(2), score, 1e-9)
}

func TestScore_NoIntersectionIsNeutral(t *testing.T) {
	score, ok := Score(map[string]float64{"openness": 1}, map[string]float64{AxisJP: 0})
	assert.False(t, ok)
	assert.Equal(t, NeutralScore, score)

	score, ok = Score(nil, nil)
	assert.False(t, ok)
	assert.Equal(t, NeutralScore, score)
}

func TestEncodeMBTI(t *testing.T) {
	axesOut := EncodeMBTI(map[byte]float64{'E': 3, 'I': 1, 'N': 2, 'T': 1, 'F': 1})

	assert.InDelta(t, 0.75, axesOut[AxisEI], 1e-9)
	assert.InDelta(t, 0.0, axesOut[AxisSN], 1e-9)
	assert.InDelta(t, 0.5, axesOut[AxisTF], 1e-9)
	assert.InDelta(t, 0.5, axesOut[AxisJP], 1e-9)
	assert.Equal(t, "ENTJ", TypeFromAxes(axesOut))
}

func TestTypeFromAxes_MissingAxis(t *testing.T) {
	assert.Equal(t, "", TypeFromAxes(map[string]float64{AxisEI: 1}))
}

func TestArchetypeFromType(t *testing.T) {
	arch, ok := ArchetypeFromType("intj")
	require.True(t, ok)
	assert.Equal(t, map[string]float64{AxisEI: 0, AxisSN: 0, AxisTF: 1, AxisJP: 1}, arch)
	assert.Equal(t, "INTJ", TypeFromAxes(arch))

	_, ok = ArchetypeFromType("XYZW")
	assert.False(t, ok)
	_, ok = ArchetypeFromType("INT")
	assert.False(t, ok)
}
