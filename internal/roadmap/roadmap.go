// Package roadmap turns skill gaps into an ordered, time-estimated learning plan.
package roadmap

import (
	"fmt"
	"maps"
	"math"

	"github.com/jonathan/career-compass/internal/types"
)

// DefaultMonthsToMaster is the months a skill takes from zero to full proficiency at normal pace
const DefaultMonthsToMaster = 12

// monthsPerYear is used to assign milestones to roadmap years
const monthsPerYear = 12

// ceilEpsilon absorbs floating point noise before rounding up (0.3*10 is 3.0000000000000004)
const ceilEpsilon = 1e-9

// Generator builds roadmaps using a per-skill difficulty table and, optionally, a course table.
type Generator struct {
	defaultMonths float64
	difficulty    map[string]float64
	courses       *courseIndex
}

// NewGenerator returns a Generator. difficulty maps a normalized skill name to its months to mastery;
// skills not listed use defaultMonths (DefaultMonthsToMaster when <= 0).
func NewGenerator(defaultMonths float64, difficulty map[string]float64) (*Generator, error) {
	if defaultMonths <= 0 {
		defaultMonths = DefaultMonthsToMaster
	}
	for skill, months := range difficulty {
		if months <= 0 {
			return nil, &types.ValidationError{
				Field:   fmt.Sprintf("roadmap.difficulty[%s]", skill),
				Message: fmt.Sprintf("months to master must be positive, got %v", months),
			}
		}
	}
	return &Generator{defaultMonths: defaultMonths, difficulty: maps.Clone(difficulty)}, nil
}

// Difficulty returns the months to mastery for a skill.
func (g *Generator) Difficulty(skill string) float64 {
	if months, ok := g.difficulty[skill]; ok {
		return months
	}
	return g.defaultMonths
}

// BuildRoadmap converts gaps into milestones, one per gap, in the order given.
// Each milestone takes ceil(deficit * difficulty / pace) months (at least 1) and starts
// when the previous one ends. An empty gap list yields an empty roadmap.
func (g *Generator) BuildRoadmap(gaps []types.SkillGap, pace float64) (types.Roadmap, error) {
	if pace <= 0 || math.IsNaN(pace) || math.IsInf(pace, 0) {
		return types.Roadmap{}, &types.ValidationError{Field: "pace", Message: fmt.Sprintf("must be positive, got %v", pace)}
	}

	milestones := make([]types.RoadmapMilestone, 0, len(gaps))
	elapsed := 0
	for i, gap := range gaps {
		months := g.estimateMonths(gap, pace)
		end := elapsed + months
		milestones = append(milestones, types.RoadmapMilestone{
			Order:              i + 1,
			Skill:              gap.Skill,
			CurrentProficiency: gap.Current,
			TargetProficiency:  gap.Required,
			EstimatedMonths:    months,
			StartMonth:         elapsed,
			EndMonth:           end,
			Year:               (end + monthsPerYear - 1) / monthsPerYear,
			Courses:            g.coursesFor(gap.Skill),
		})
		elapsed = end
	}

	return types.Roadmap{Milestones: milestones, TotalMonths: elapsed}, nil
}

func (g *Generator) coursesFor(skill string) []string {
	if g.courses == nil {
		return nil
	}
	return g.courses.forSkill(skill)
}

func (g *Generator) estimateMonths(gap types.SkillGap, pace float64) int {
	months := int(math.Ceil(gap.Deficit*g.Difficulty(gap.Skill)/pace - ceilEpsilon))
	if months < 1 {
		return 1
	}
	return months
}
