package ranking

import (
	"math"
	"slices"

	"github.com/jonathan/career-compass/internal/personality"
)

// neutralAcademicScore is used when a career declares no academic affinity
const neutralAcademicScore = 0.5

// Confidence reasons attached to results that used a fallback
const (
	reasonNoSharedTraits     = "personality: no shared trait dimensions, neutral score used"
	reasonNoAcademicAffinity = "academic: career declares no academic affinity, neutral score used"
)

// computeSkillScore returns the cosine similarity between the student's skills and the
// career's required skills over the union of both key sets. Missing entries count as 0.
func computeSkillScore(skills, required map[string]float64) float64 {
	dot, normA, normB := 0.0, 0.0, 0.0
	for _, name := range unionKeys(skills, required) {
		a, b := skills[name], required[name]
		dot += a * b
		normA += a * a
		normB += b * b
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// computeAcademicScore returns the affinity-weighted mean of the student's subject scores.
// A student scoring 1 in every weighted subject gets 1. ok is false when the career
// declares no positive affinity weight.
func computeAcademicScore(academics, affinity map[string]float64) (score float64, ok bool) {
	keys := sortedKeys(affinity)
	dot, total := 0.0, 0.0
	for _, subject := range keys {
		w := affinity[subject]
		dot += academics[subject] * w
		total += w
	}
	if total <= 0 {
		return neutralAcademicScore, false
	}
	return clamp01(dot / total), true
}

// computePersonalityScore delegates to the personality scorer.
func computePersonalityScore(traits, archetype map[string]float64) (float64, bool) {
	return personality.Score(traits, archetype)
}

// unionKeys returns the sorted union of the keys of a and b. Sums iterate in this
// order so results are bit-for-bit reproducible.
func unionKeys(a, b map[string]float64) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, dup := a[k]; !dup {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
