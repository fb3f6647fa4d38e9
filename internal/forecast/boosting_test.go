package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func stepSamples() []Sample {
	samples := make([]Sample, 0, 20)
	for x := 0; x < 20; x++ {
		target := 0.0
		if x >= 10 {
			target = 10
		}
		samples = append(samples, Sample{Features: []float64{float64(x)}, Target: target})
	}
	return samples
}

func TestFitGradientBoosted_StepFunction(t *testing.T) {
	model, err := FitGradientBoosted(stepSamples(), BoostingParams{Trees: 60, MaxDepth: 1, MinLeaf: 1, LearningRate: 0.5})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, model.Predict([]float64{3}), 1e-6)
	assert.InDelta(t, 10.0, model.Predict([]float64{15}), 1e-6)
	assert.InDelta(t, 10.0, model.Predict([]float64{100}), 1e-6)
	assert.Equal(t, "gradient_boosted", model.Name())
	assert.GreaterOrEqual(t, model.Size(), 1)
}

func TestFitGradientBoosted_ApproximatesSalaryCurve(t *testing.T) {
	model, err := FitGradientBoosted(SalaryTrainingSamples(), DefaultBoostingParams())
	require.NoError(t, err)

	var curve SalaryCurve
	for _, features := range [][]float64{{0, 0.1}, {5, 0.12}, {10, 0.05}, {20, 0.18}} {
		assert.InDelta(t, curve.Predict(features), model.Predict(features), 0.1, "features %v", features)
	}
}

func TestFitGradientBoosted_Deterministic(t *testing.T) {
	params := BoostingParams{Trees: 20, MaxDepth: 2, MinLeaf: 3, LearningRate: 0.2}
	a, err := FitGradientBoosted(SalaryTrainingSamples(), params)
	require.NoError(t, err)
	b, err := FitGradientBoosted(SalaryTrainingSamples(), params)
	require.NoError(t, err)

	for _, features := range [][]float64{{1, 0.03}, {7.5, 0.11}, {29, 0.2}} {
		assert.Equal(t, a.Predict(features), b.Predict(features))
	}
}

func TestFitGradientBoosted_Errors(t *testing.T) {
	_, err := FitGradientBoosted(nil, DefaultBoostingParams())
	assert.Error(t, err)

	_, err = FitGradientBoosted([]Sample{{Features: []float64{1}}, {Features: []float64{1, 2}}}, DefaultBoostingParams())
	assert.Error(t, err)

	_, err = FitGradientBoosted(stepSamples(), BoostingParams{Trees: 1, MaxDepth: 1, MinLeaf: 1, LearningRate: 0})
	var fitErr *FitError
	require.ErrorAs(t, err, &fitErr)
	assert.Equal(t, "gradient_boosted", fitErr.Model)
}

func TestPredict_PadsMissingFeatures(t *testing.T) {
	samples := []Sample{
		{Features: []float64{0, 0}, Target: 1},
		{Features: []float64{0, 1}, Target: 1},
		{Features: []float64{1, 0}, Target: 3},
		{Features: []float64{1, 1}, Target: 3},
	}
	model, err := FitGradientBoosted(samples, BoostingParams{Trees: 30, MaxDepth: 1, MinLeaf: 1, LearningRate: 0.5})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, model.Predict(nil), 1e-6)
}

func TestFitPolyTrend_Linear(t *testing.T) {
	trend, err := FitPolyTrend([]float64{10, 12, 14, 16}, 1)
	require.NoError(t, err)

	require.Len(t, trend.Coefficients, 2)
	assert.InDelta(t, 10, trend.Coefficients[0], 1e-9)
	assert.InDelta(t, 2, trend.Coefficients[1], 1e-9)
	assert.InDelta(t, 0, trend.ResidualStdDev, 1e-9)
	assert.InDelta(t, 20, trend.Predict([]float64{5}), 1e-9)
	assert.Equal(t, "poly_trend_d1", trend.Name())
}

func TestFitPolyTrend_Quadratic(t *testing.T) {
	trend, err := FitPolyTrend([]float64{0, 1, 4, 9, 16}, 2)
	require.NoError(t, err)

	assert.InDelta(t, 0, trend.Coefficients[0], 1e-9)
	assert.InDelta(t, 0, trend.Coefficients[1], 1e-9)
	assert.InDelta(t, 1, trend.Coefficients[2], 1e-9)
	assert.InDelta(t, 36, trend.At(6), 1e-8)
}

func TestFitPolyTrend_Noisy(t *testing.T) {
	trend, err := FitPolyTrend([]float64{1, 3, 2, 4}, 1)
	require.NoError(t, err)

	// least squares line: 1.3 + 0.8x
	assert.InDelta(t, 1.3, trend.Coefficients[0], 1e-9)
	assert.InDelta(t, 0.8, trend.Coefficients[1], 1e-9)
	// residuals -0.3, 0.9, -0.9, 0.3 over 2 degrees of freedom
	assert.InDelta(t, math.Sqrt(0.9), trend.ResidualStdDev, 1e-9)
}

func TestFitPolyTrend_MatchesLinearRegression(t *testing.T) {
	series := []float64{100, 104, 111, 109, 118, 125}
	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, series, nil, false)

	trend, err := FitPolyTrend(series, 1)
	require.NoError(t, err)
	assert.InDelta(t, alpha, trend.Coefficients[0], 1e-9)
	assert.InDelta(t, beta, trend.Coefficients[1], 1e-9)
	assert.Equal(t, len(series), trend.Points)
}

func TestFitPolyTrend_TooFewPoints(t *testing.T) {
	_, err := FitPolyTrend([]float64{1, 2}, 2)
	assert.Error(t, err)

	_, err = FitPolyTrend([]float64{1}, -1)
	assert.Error(t, err)
}
