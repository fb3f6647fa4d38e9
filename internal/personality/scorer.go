// Package personality scores how closely a student's traits match a career archetype.
package personality

import (
	"math"
	"sort"
)

// NeutralScore is returned when the vectors share no trait dimensions
const NeutralScore = 0.5

// Score returns 1 minus the normalized Euclidean distance between traits and archetype
// over the dimensions both declare. Trait values are expected in [0,1], so the distance
// is normalized by sqrt(n), the largest possible distance over n dimensions.
//
// ok is false when no dimensions intersect; the score is then NeutralScore and the
// caller is expected to flag its result as low confidence.
func Score(traits, archetype map[string]float64) (score float64, ok bool) {
	shared := SharedDimensions(traits, archetype)
	if len(shared) == 0 {
		return NeutralScore, false
	}

	sumSq := 0.0
	for _, dim := range shared {
		d := traits[dim] - archetype[dim]
		sumSq += d * d
	}

	distance := math.Sqrt(sumSq) / math.Sqrt(float64(len(shared)))
	return clamp01(1 - distance), true
}

// SharedDimensions returns the sorted trait names declared in both vectors.
func SharedDimensions(traits, archetype map[string]float64) []string {
	shared := make([]string, 0, len(archetype))
	for dim := range archetype {
		if _, ok := traits[dim]; ok {
			shared = append(shared, dim)
		}
	}
	sort.Strings(shared)
	return shared
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
