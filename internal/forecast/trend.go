package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PolyTrend is a least-squares polynomial fitted to an evenly spaced series, x = 0..n-1.
type PolyTrend struct {
	// Coefficients in ascending order of power
	Coefficients []float64
	// ResidualStdDev is the standard deviation of the fit residuals
	ResidualStdDev float64
	// Points is the length of the fitted series
	Points int
}

// FitPolyTrend fits a polynomial of the given degree by QR least squares on the Vandermonde
// matrix. The series needs more points than the degree.
func FitPolyTrend(series []float64, degree int) (*PolyTrend, error) {
	name := fmt.Sprintf("poly_trend_d%d", degree)
	if degree < 0 {
		return nil, &FitError{Model: name, Message: "degree must be non-negative"}
	}
	n := len(series)
	if n <= degree {
		return nil, &FitError{Model: name, Message: fmt.Sprintf("need more than %d points, got %d", degree, n)}
	}

	size := degree + 1
	design := mat.NewDense(n, size, nil)
	for x := 0; x < n; x++ {
		p := 1.0
		for k := 0; k < size; k++ {
			design.Set(x, k, p)
			p *= float64(x)
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), series...))

	var qr mat.QR
	qr.Factorize(design)
	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, y); err != nil {
		return nil, &FitError{Model: name, Message: "least squares", Cause: err}
	}

	trend := &PolyTrend{Coefficients: mat.Col(nil, 0, &coef), Points: n}

	if dof := n - size; dof > 0 {
		var fitted mat.VecDense
		fitted.MulVec(design, &coef)
		residuals := make([]float64, n)
		floats.SubTo(residuals, series, fitted.RawVector().Data)
		trend.ResidualStdDev = math.Sqrt(floats.Dot(residuals, residuals) / float64(dof))
	}
	return trend, nil
}

// At evaluates the polynomial at x.
func (t *PolyTrend) At(x float64) float64 {
	out := 0.0
	for i := len(t.Coefficients) - 1; i >= 0; i-- {
		out = out*x + t.Coefficients[i]
	}
	return out
}

// Predict evaluates the trend at features[0].
func (t *PolyTrend) Predict(features []float64) float64 {
	if len(features) == 0 {
		return t.At(0)
	}
	return t.At(features[0])
}

// Name identifies the model in reports.
func (t *PolyTrend) Name() string {
	return fmt.Sprintf("poly_trend_d%d", len(t.Coefficients)-1)
}
