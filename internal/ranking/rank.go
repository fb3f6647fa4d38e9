package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/career-compass/internal/skills"
	"github.com/jonathan/career-compass/internal/types"
)

// DefaultPrecision is the number of decimals kept on composite scores
const DefaultPrecision = 1

// maxNotedGaps limits how many missing skills an explanation names
const maxNotedGaps = 3

// Catalog is the read-only career source the engine ranks.
type Catalog interface {
	All() []types.CareerProfile
}

// Engine scores and ranks careers for a student profile. Its zero value is not usable; build it with NewEngine.
type Engine struct {
	weights   Weights
	precision int
}

// NewEngine validates the weights and returns an Engine. precision < 0 selects DefaultPrecision.
func NewEngine(weights Weights, precision int) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Engine{weights: weights, precision: precision}, nil
}

// Weights returns the engine's weighting.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Match scores every career in the catalog and returns the topN best, ordered by descending
// composite score, then descending skill score, then ascending career id.
// When the catalog holds fewer than topN careers all of them are returned.
func (e *Engine) Match(profile types.StudentProfile, catalog Catalog, topN int) ([]types.MatchResult, error) {
	if topN < 1 {
		return nil, &types.ValidationError{Field: "top_n", Message: fmt.Sprintf("must be at least 1, got %d", topN)}
	}

	careers := catalog.All()
	results := make([]types.MatchResult, 0, len(careers))
	for i := range careers {
		results = append(results, e.Score(profile, &careers[i]))
	}

	SortResults(results)

	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Score computes the match of a profile against one career.
func (e *Engine) Score(profile types.StudentProfile, career *types.CareerProfile) types.MatchResult {
	skillScore := computeSkillScore(profile.Skills, career.RequiredSkills)
	academicScore, academicOK := computeAcademicScore(profile.Academics, career.AcademicAffinity)
	personalityScore, personalityOK := computePersonalityScore(profile.Personality, career.PersonalityArchetype)

	confidence := types.ConfidenceHigh
	var reasons []string
	if !personalityOK {
		confidence = types.ConfidenceLow
		reasons = append(reasons, reasonNoSharedTraits)
	}
	if !academicOK {
		confidence = types.ConfidenceLow
		reasons = append(reasons, reasonNoAcademicAffinity)
	}

	gaps := skills.Gaps(profile, *career)

	return types.MatchResult{
		CareerID:          career.ID,
		CareerName:        career.Name,
		Category:          career.Category,
		CompositeScore:    e.weights.composite(skillScore, academicScore, personalityScore, e.precision),
		SkillScore:        skillScore,
		AcademicScore:     academicScore,
		PersonalityScore:  personalityScore,
		SkillGaps:         gaps,
		Confidence:        confidence,
		ConfidenceReasons: reasons,
		Notes:             generateNotes(skillScore, academicScore, personalityScore, personalityOK, gaps),
	}
}

// SortResults orders results by descending composite score, then descending skill score,
// then ascending career id. Since ids are unique this is a total order.
func SortResults(results []types.MatchResult) {
	slices.SortFunc(results, compareResults)
}

func compareResults(a, b types.MatchResult) int {
	if c := cmp.Compare(b.CompositeScore, a.CompositeScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.SkillScore, a.SkillScore); c != 0 {
		return c
	}
	return cmp.Compare(a.CareerID, b.CareerID)
}

// generateNotes creates a brief explanation of the match.
func generateNotes(skillScore, academicScore, personalityScore float64, personalityOK bool, gaps []types.SkillGap) string {
	var parts []string

	switch {
	case skillScore >= 0.7:
		parts = append(parts, "Strong skill match")
	case skillScore >= 0.4:
		parts = append(parts, "Moderate skill match")
	case skillScore > 0:
		parts = append(parts, "Weak skill match")
	default:
		parts = append(parts, "No skill matches")
	}

	if len(gaps) > 0 {
		names := make([]string, 0, maxNotedGaps)
		for _, g := range gaps[:min(len(gaps), maxNotedGaps)] {
			names = append(names, g.Skill)
		}
		parts = append(parts, fmt.Sprintf("Biggest gaps: %s", strings.Join(names, ", ")))
	} else {
		parts = append(parts, "All required skills met")
	}

	if academicScore >= 0.7 {
		parts = append(parts, "Strong academic fit")
	} else if academicScore < 0.4 {
		parts = append(parts, "Weak academic fit")
	}

	switch {
	case !personalityOK:
		parts = append(parts, "Personality fit unknown")
	case personalityScore >= 0.75:
		parts = append(parts, "Strong personality fit")
	case personalityScore >= 0.5:
		parts = append(parts, "Moderate personality fit")
	default:
		parts = append(parts, "Weak personality fit")
	}

	return strings.Join(parts, ". ")
}
