package roadmap

import (
	"testing"

	"github.com/jonathan/career-compass/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGaps() []types.SkillGap {
	return []types.SkillGap{
		{Skill: "communication", Current: 0, Required: 0.5, Deficit: 0.5},
		{Skill: "statistics", Current: 0.7, Required: 1, Deficit: 0.3},
		{Skill: "python", Current: 0.9, Required: 1, Deficit: 0.1},
	}
}

func TestBuildRoadmap_Basic(t *testing.T) {
	g, err := NewGenerator(12, map[string]float64{"statistics": 10})
	require.NoError(t, err)

	roadmap, err := g.BuildRoadmap(sampleGaps(), 1)
	require.NoError(t, err)
	require.Len(t, roadmap.Milestones, 3)

	want := []types.RoadmapMilestone{
		{Order: 1, Skill: "communication", CurrentProficiency: 0, TargetProficiency: 0.5, EstimatedMonths: 6, StartMonth: 0, EndMonth: 6, Year: 1},
		{Order: 2, Skill: "statistics", CurrentProficiency: 0.7, TargetProficiency: 1, EstimatedMonths: 3, StartMonth: 6, EndMonth: 9, Year: 1},
		{Order: 3, Skill: "python", CurrentProficiency: 0.9, TargetProficiency: 1, EstimatedMonths: 2, StartMonth: 9, EndMonth: 11, Year: 1},
	}
	assert.Equal(t, want, roadmap.Milestones)
	assert.Equal(t, 11, roadmap.TotalMonths)
}

func TestBuildRoadmap_Pace(t *testing.T) {
	g, err := NewGenerator(0, nil)
	require.NoError(t, err)

	slow, err := g.BuildRoadmap(sampleGaps(), 0.5)
	require.NoError(t, err)
	fast, err := g.BuildRoadmap(sampleGaps(), 4)
	require.NoError(t, err)

	assert.Equal(t, 12, slow.Milestones[0].EstimatedMonths)
	assert.Equal(t, 2, fast.Milestones[0].EstimatedMonths)
	// 0.1 * 12 / 4 rounds up to the one month minimum
	assert.Equal(t, 1, fast.Milestones[2].EstimatedMonths)
	assert.Greater(t, slow.TotalMonths, fast.TotalMonths)
	assert.Equal(t, 2, slow.Milestones[1].Year)
}

func TestBuildRoadmap_Invariants(t *testing.T) {
	g, err := NewGenerator(18, nil)
	require.NoError(t, err)

	gaps := []types.SkillGap{
		{Skill: "a", Deficit: 1}, {Skill: "b", Deficit: 0.75}, {Skill: "c", Deficit: 0.0001}, {Skill: "d", Deficit: 0.5},
	}
	roadmap, err := g.BuildRoadmap(gaps, 1.3)
	require.NoError(t, err)

	prevEnd := 0
	for i, m := range roadmap.Milestones {
		assert.Equal(t, i+1, m.Order)
		assert.Equal(t, gaps[i].Skill, m.Skill)
		assert.GreaterOrEqual(t, m.EstimatedMonths, 1)
		assert.Equal(t, prevEnd, m.StartMonth, "milestones must not overlap")
		assert.Equal(t, m.StartMonth+m.EstimatedMonths, m.EndMonth)
		prevEnd = m.EndMonth
	}
	assert.Equal(t, prevEnd, roadmap.TotalMonths)
}

func TestBuildRoadmap_Empty(t *testing.T) {
	g, err := NewGenerator(12, nil)
	require.NoError(t, err)

	roadmap, err := g.BuildRoadmap(nil, 1)
	require.NoError(t, err)
	assert.NotNil(t, roadmap.Milestones)
	assert.Empty(t, roadmap.Milestones)
	assert.Equal(t, 0, roadmap.TotalMonths)
}

func TestBuildRoadmap_InvalidPace(t *testing.T) {
	g, err := NewGenerator(12, nil)
	require.NoError(t, err)

	for _, pace := range []float64{0, -1} {
		_, err := g.BuildRoadmap(sampleGaps(), pace)
		require.Error(t, err)
		assert.True(t, types.IsValidation(err))
	}
}

func TestNewGenerator_RejectsNonPositiveDifficulty(t *testing.T) {
	_, err := NewGenerator(12, map[string]float64{"go": 0})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
}

func TestDifficulty(t *testing.T) {
	g, err := NewGenerator(9, map[string]float64{"machine_learning": 24})
	require.NoError(t, err)

	assert.Equal(t, 24.0, g.Difficulty("machine_learning"))
	assert.Equal(t, 9.0, g.Difficulty("excel"))
}
