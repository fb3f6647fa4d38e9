// Package aptitude estimates broad aptitude categories (analytical, creative, technical, ...)
// from a student's academic marks with one boosted regression model per category.
package aptitude

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jonathan/career-compass/internal/forecast"
	"github.com/jonathan/career-compass/internal/types"
)

// Aptitude categories, in report order
const (
	Analytical     = "analytical"
	Creative       = "creative"
	Technical      = "technical"
	Communication  = "communication"
	Leadership     = "leadership"
	DetailOriented = "detail_oriented"
	ProblemSolving = "problem_solving"
	Research       = "research"
)

// Categories lists every aptitude the model predicts.
var Categories = []string{
	Analytical, Creative, Technical, Communication,
	Leadership, DetailOriented, ProblemSolving, Research,
}

// Subjects are the model features, in feature order.
var Subjects = []string{
	"math", "science", "english", "arts", "commerce", "computer", "sports", "social_activities",
}

// MissingSubjectScore stands in for subjects the student has no mark for
const MissingSubjectScore = 0.5

// scoreScale rounds predictions to 3 decimals
const scoreScale = 1000

// subjectWeights is the synthetic ground truth the regressors learn: each aptitude is a
// weighted blend of subject marks.
var subjectWeights = map[string]map[string]float64{
	Analytical:     {"math": 0.4, "science": 0.3, "computer": 0.3},
	Creative:       {"arts": 0.5, "english": 0.3, "social_activities": 0.2},
	Technical:      {"computer": 0.5, "math": 0.3, "science": 0.2},
	Communication:  {"english": 0.5, "social_activities": 0.4, "arts": 0.1},
	Leadership:     {"social_activities": 0.5, "commerce": 0.3, "english": 0.2},
	DetailOriented: {"math": 0.4, "commerce": 0.4, "science": 0.2},
	ProblemSolving: {"math": 0.35, "science": 0.35, "computer": 0.3},
	Research:       {"science": 0.4, "english": 0.3, "computer": 0.3},
}

// TrainingConfig controls the synthetic training set and the per-category regressors.
type TrainingConfig struct {
	Samples int                     `json:"samples" mapstructure:"samples"`
	Seed    uint64                  `json:"seed" mapstructure:"seed"`
	Model   forecast.BoostingParams `json:"model" mapstructure:"model"`
}

// DefaultTrainingConfig returns the default training setup.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Samples: 300,
		Seed:    42,
		Model:   forecast.BoostingParams{Trees: 40, MaxDepth: 3, MinLeaf: 5, LearningRate: 0.15},
	}
}

// Validate checks the training setup.
func (c TrainingConfig) Validate() error {
	if c.Samples < 10 {
		return &types.ValidationError{Field: "aptitude.samples", Message: fmt.Sprintf("must be at least 10, got %d", c.Samples)}
	}
	if err := c.Model.Validate(); err != nil {
		return &types.ValidationError{Field: "aptitude.model", Message: err.Error()}
	}
	return nil
}

// TrainingSamples draws n uniformly random mark vectors from a PCG source seeded with seed and
// labels them for every category. The same n and seed always give the same samples.
func TrainingSamples(n int, seed uint64) map[string][]forecast.Sample {
	rng := rand.New(rand.NewPCG(seed, seed))
	out := make(map[string][]forecast.Sample, len(Categories))
	for _, category := range Categories {
		out[category] = make([]forecast.Sample, 0, n)
	}

	for i := 0; i < n; i++ {
		features := make([]float64, len(Subjects))
		for j := range features {
			features[j] = rng.Float64()
		}
		for _, category := range Categories {
			out[category] = append(out[category], forecast.Sample{
				Features: features,
				Target:   label(category, features),
			})
		}
	}
	return out
}

func label(category string, features []float64) float64 {
	weights := subjectWeights[category]
	total := 0.0
	for j, subject := range Subjects {
		total += weights[subject] * features[j]
	}
	return min(1, max(0, total))
}

// Model predicts aptitude scores. It is immutable and safe for concurrent use.
type Model struct {
	regressors map[string]forecast.Forecaster
}

// NewModel wraps one fitted regressor per category. Every category needs a regressor.
func NewModel(regressors map[string]forecast.Forecaster) (*Model, error) {
	m := &Model{regressors: make(map[string]forecast.Forecaster, len(Categories))}
	for _, category := range Categories {
		r, ok := regressors[category]
		if !ok || r == nil {
			return nil, &forecast.FitError{Model: "aptitude", Message: fmt.Sprintf("no regressor for %s", category)}
		}
		m.regressors[category] = r
	}
	return m, nil
}

// Fit trains the per-category regressors on TrainingSamples.
func Fit(cfg TrainingConfig) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	samples := TrainingSamples(cfg.Samples, cfg.Seed)
	regressors := make(map[string]forecast.Forecaster, len(Categories))
	for _, category := range Categories {
		r, err := forecast.FitGradientBoosted(samples[category], cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to fit %s aptitude: %w", category, err)
		}
		regressors[category] = r
	}
	return NewModel(regressors)
}

// Predict scores every category from academics, keyed by normalized subject. Scores are
// clamped to [0,1] and rounded to 3 decimals.
func (m *Model) Predict(academics map[string]float64) map[string]float64 {
	features := make([]float64, len(Subjects))
	for j, subject := range Subjects {
		v, ok := academics[subject]
		if !ok {
			v = MissingSubjectScore
		}
		features[j] = v
	}

	out := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		v := min(1, max(0, m.regressors[category].Predict(features)))
		out[category] = math.Round(v*scoreScale) / scoreScale
	}
	return out
}

// Name identifies the model in logs.
func (m *Model) Name() string {
	return "aptitude_" + m.regressors[Categories[0]].Name()
}

// Ranked orders scores by descending value, ties by name.
func Ranked(scores map[string]float64) []types.AptitudeScore {
	out := make([]types.AptitudeScore, 0, len(scores))
	for name, score := range scores {
		out = append(out, types.AptitudeScore{Name: name, Score: score})
	}
	slices.SortFunc(out, func(a, b types.AptitudeScore) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Name, b.Name))
	})
	return out
}
