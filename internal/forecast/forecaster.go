// Package forecast provides the regression models behind salary and job-market projections.
//
// Models are fitted once, before serving starts, and are read-only afterwards, so a fitted
// model can be shared by concurrent requests.
package forecast

import "math"

// Forecaster is a fitted regressor mapping a feature vector to a prediction.
type Forecaster interface {
	Predict(features []float64) float64
	Name() string
}

// Sample is one training example.
type Sample struct {
	Features []float64
	Target   float64
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
