// Package ranking provides functionality to score and rank careers against student profiles.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/career-compass/internal/types"
)

// weightSumTolerance bounds the floating point error allowed when weights are summed
const weightSumTolerance = 1e-6

// Weights is a versioned composite-score weighting. The three components must sum to 1.
type Weights struct {
	Version     string  `json:"version" mapstructure:"version"`
	Skill       float64 `json:"skill" mapstructure:"skill"`
	Academic    float64 `json:"academic" mapstructure:"academic"`
	Personality float64 `json:"personality" mapstructure:"personality"`
}

// DefaultWeights returns the v1 weighting (45% skills, 25% academics, 30% personality).
func DefaultWeights() Weights {
	return Weights{
		Version:     "v1",
		Skill:       0.45,
		Academic:    0.25,
		Personality: 0.30,
	}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	if w.Version == "" {
		return &types.ValidationError{Field: "weights.version", Message: "version is required"}
	}
	for name, v := range map[string]float64{"skill": w.Skill, "academic": w.Academic, "personality": w.Personality} {
		if v < 0 || math.IsNaN(v) {
			return &types.ValidationError{Field: "weights." + name, Message: fmt.Sprintf("must be non-negative, got %v", v)}
		}
	}
	sum := w.Skill + w.Academic + w.Personality
	if math.Abs(sum-1) > weightSumTolerance {
		return &types.ValidationError{Field: "weights", Message: fmt.Sprintf("must sum to 1.0, got %.6f", sum)}
	}
	return nil
}

// composite combines sub-scores into a 0-100 score rounded to precision decimals.
func (w Weights) composite(skill, academic, personality float64, precision int) float64 {
	score := 100 * (w.Skill*skill + w.Academic*academic + w.Personality*personality)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	scale := math.Pow(10, float64(precision))
	return math.Round(score*scale) / scale
}
