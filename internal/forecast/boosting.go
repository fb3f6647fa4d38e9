package forecast

import "fmt"

// BoostingParams controls gradient-boosted tree fitting.
type BoostingParams struct {
	Trees        int     `json:"trees" mapstructure:"trees"`
	MaxDepth     int     `json:"max_depth" mapstructure:"max_depth"`
	MinLeaf      int     `json:"min_leaf" mapstructure:"min_leaf"`
	LearningRate float64 `json:"learning_rate" mapstructure:"learning_rate"`
}

// DefaultBoostingParams returns the parameters used for the salary growth regressor.
func DefaultBoostingParams() BoostingParams {
	return BoostingParams{Trees: 150, MaxDepth: 3, MinLeaf: 5, LearningRate: 0.1}
}

// Validate checks that all parameters are in range.
func (p BoostingParams) Validate() error {
	switch {
	case p.Trees < 1:
		return &FitError{Model: "gradient_boosted", Message: fmt.Sprintf("trees must be at least 1, got %d", p.Trees)}
	case p.MaxDepth < 1:
		return &FitError{Model: "gradient_boosted", Message: fmt.Sprintf("max depth must be at least 1, got %d", p.MaxDepth)}
	case p.MinLeaf < 1:
		return &FitError{Model: "gradient_boosted", Message: fmt.Sprintf("min leaf must be at least 1, got %d", p.MinLeaf)}
	case p.LearningRate <= 0 || p.LearningRate > 1:
		return &FitError{Model: "gradient_boosted", Message: fmt.Sprintf("learning rate must be in (0,1], got %v", p.LearningRate)}
	}
	return nil
}

// GradientBoosted is an ensemble of least-squares regression trees fitted stagewise on residuals.
type GradientBoosted struct {
	initial      float64
	learningRate float64
	nFeatures    int
	trees        []*treeNode
}

// FitGradientBoosted fits a boosted ensemble with squared loss. Fitting is deterministic:
// identical samples and params always produce identical models.
func FitGradientBoosted(samples []Sample, params BoostingParams) (*GradientBoosted, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, &FitError{Model: "gradient_boosted", Message: "no training samples"}
	}
	nFeatures := len(samples[0].Features)
	if nFeatures == 0 {
		return nil, &FitError{Model: "gradient_boosted", Message: "samples have no features"}
	}

	mean := 0.0
	for i, s := range samples {
		if len(s.Features) != nFeatures {
			return nil, &FitError{
				Model:   "gradient_boosted",
				Message: fmt.Sprintf("sample %d has %d features, want %d", i, len(s.Features), nFeatures),
			}
		}
		mean += s.Target
	}
	mean /= float64(len(samples))

	model := &GradientBoosted{
		initial:      mean,
		learningRate: params.LearningRate,
		nFeatures:    nFeatures,
		trees:        make([]*treeNode, 0, params.Trees),
	}

	predictions := make([]float64, len(samples))
	residuals := make([]float64, len(samples))
	idx := make([]int, len(samples))
	for i := range samples {
		predictions[i] = mean
		idx[i] = i
	}

	for round := 0; round < params.Trees; round++ {
		for i, s := range samples {
			residuals[i] = s.Target - predictions[i]
		}
		tree := fitTree(samples, residuals, idx, 0, params.MaxDepth, params.MinLeaf)
		if tree.Left == nil && round > 0 {
			// Residuals can no longer be split; further rounds would add constants only
			break
		}
		model.trees = append(model.trees, tree)
		for i, s := range samples {
			predictions[i] += params.LearningRate * tree.predict(s.Features)
		}
	}

	return model, nil
}

// Predict returns the ensemble prediction. Missing trailing features are treated as 0.
func (m *GradientBoosted) Predict(features []float64) float64 {
	if len(features) < m.nFeatures {
		padded := make([]float64, m.nFeatures)
		copy(padded, features)
		features = padded
	}
	out := m.initial
	for _, t := range m.trees {
		out += m.learningRate * t.predict(features)
	}
	return out
}

// Name identifies the model in reports.
func (m *GradientBoosted) Name() string {
	return "gradient_boosted"
}

// Size returns the number of fitted trees.
func (m *GradientBoosted) Size() int {
	return len(m.trees)
}
