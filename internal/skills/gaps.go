// Package skills compares a student's skill vector with the skills a career requires.
package skills

import (
	"cmp"
	"math"
	"slices"

	"github.com/jonathan/career-compass/internal/types"
)

// deficitPrecision is the number of decimals kept on a deficit so that
// float noise never decides an ordering
const deficitPrecision = 4

// Gaps returns the skills where the profile falls short of the career's requirement.
// Only positive deficits are included. Entries are ordered by descending deficit,
// then descending required weight, then skill name.
func Gaps(profile types.StudentProfile, career types.CareerProfile) []types.SkillGap {
	gaps := make([]types.SkillGap, 0, len(career.RequiredSkills))
	for skill, required := range career.RequiredSkills {
		current := profile.Skill(skill)
		deficit := round(math.Max(0, required-current), deficitPrecision)
		if deficit <= 0 {
			continue
		}
		gaps = append(gaps, types.SkillGap{
			Skill:    skill,
			Current:  current,
			Required: required,
			Deficit:  deficit,
		})
	}

	SortGaps(gaps)
	return gaps
}

// SortGaps sorts gaps in priority order in place.
func SortGaps(gaps []types.SkillGap) {
	slices.SortFunc(gaps, func(a, b types.SkillGap) int {
		if c := cmp.Compare(b.Deficit, a.Deficit); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Required, a.Required); c != 0 {
			return c
		}
		return cmp.Compare(a.Skill, b.Skill)
	})
}

// TotalDeficit sums the deficits of a gap list.
func TotalDeficit(gaps []types.SkillGap) float64 {
	total := 0.0
	for _, g := range gaps {
		total += g.Deficit
	}
	return round(total, deficitPrecision)
}

// Coverage returns the share of required skills the profile already meets (0-1).
// A career without requirements is fully covered.
func Coverage(profile types.StudentProfile, career types.CareerProfile) float64 {
	if len(career.RequiredSkills) == 0 {
		return 1.0
	}
	met := 0
	for skill, required := range career.RequiredSkills {
		if profile.Skill(skill) >= required {
			met++
		}
	}
	return float64(met) / float64(len(career.RequiredSkills))
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
