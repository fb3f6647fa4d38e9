package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-compass/internal/aptitude"
	"github.com/jonathan/career-compass/internal/types"
)

const (
	// strengthThreshold is the Big-Five score a trait must exceed to count as a strength
	strengthThreshold = 0.7
	// weakAptitudeBelow marks an aptitude as an improvement area
	weakAptitudeBelow = 0.5
	topAptitudes      = 3
	improvementAreas  = 2
)

// traitStrengths pairs Big-Five traits with their strength phrase, in report order
var traitStrengths = []struct {
	trait  string
	phrase string
}{
	{"openness", "Creative and imaginative"},
	{"conscientiousness", "Organized and dependable"},
	{"extraversion", "Sociable and assertive"},
	{"agreeableness", "Cooperative and empathetic"},
}

const balancedTraits = "Balanced personality traits"

// summarize builds the report overview from the profile, its estimated aptitudes and the
// planned matches, best first.
func summarize(profile types.StudentProfile, aptitudes map[string]float64, entries []types.CareerMatchReport) types.ReportSummary {
	summary := types.ReportSummary{
		KeyStrengths:     keyStrengths(profile.Personality),
		TopAptitudes:     []types.AptitudeScore{},
		ImprovementAreas: []string{},
		NextSteps:        nextSteps(entries),
	}

	ranked := aptitude.Ranked(aptitudes)
	summary.TopAptitudes = append(summary.TopAptitudes, ranked[:min(topAptitudes, len(ranked))]...)

	for i := len(ranked) - 1; i >= 0 && len(summary.ImprovementAreas) < improvementAreas; i-- {
		if ranked[i].Score < weakAptitudeBelow {
			summary.ImprovementAreas = append(summary.ImprovementAreas, ranked[i].Name)
		}
	}
	return summary
}

func keyStrengths(traits map[string]float64) []string {
	var out []string
	for _, ts := range traitStrengths {
		if traits[ts.trait] > strengthThreshold {
			out = append(out, ts.phrase)
		}
	}
	if len(out) == 0 {
		return []string{balancedTraits}
	}
	return out
}

func nextSteps(entries []types.CareerMatchReport) []string {
	if len(entries) == 0 {
		return []string{"Answer more skill and subject questions to get career recommendations"}
	}

	top := entries[0]
	name := top.Match.CareerName
	steps := []string{fmt.Sprintf("Research the %s career path", name)}

	if ms := top.Roadmap.Milestones; len(ms) > 0 {
		steps = append(steps, fmt.Sprintf("Start learning %s", humanize(ms[0].Skill)))
		if len(ms[0].Courses) > 0 {
			steps = append(steps, fmt.Sprintf("Enroll in %s", ms[0].Courses[0]))
		}
	} else {
		steps = append(steps, fmt.Sprintf("Keep your %s skills current with advanced projects", name))
	}

	return append(steps,
		"Connect with professionals in your field of interest",
		"Build a portfolio with small projects",
	)
}

// humanize turns a snake_case key into words
func humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
