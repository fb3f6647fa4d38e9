package forecast

import (
	"fmt"
	"maps"
	"math"

	"github.com/jonathan/career-compass/internal/types"
)

// Salary curve parameters. A career growing at annual rate g reaches a pay ratio of
// exp(curveSpan*g*(1-exp(-y/curveSpan))) after y years: growth is close to g early on
// and flattens over a career.
const (
	curveSpan       = 12.0
	trainMaxYears   = 30.0
	trainYearStep   = 0.5
	trainMinGrowth  = 0.02
	trainMaxGrowth  = 0.20
	trainGrowthStep = 0.01
)

// SalaryConfig holds the adjustment tables of the salary model.
type SalaryConfig struct {
	LocationFactors   map[string]float64 `json:"location_factors" mapstructure:"location_factors"`
	ExperienceFactors map[string]float64 `json:"experience_factors" mapstructure:"experience_factors"`
	ExperienceYears   map[string]float64 `json:"experience_years" mapstructure:"experience_years"`
	CategoryGrowth    map[string]float64 `json:"category_growth" mapstructure:"category_growth"`
	DefaultGrowth     float64            `json:"default_growth" mapstructure:"default_growth"`
	UncertaintyBase   float64            `json:"uncertainty_base" mapstructure:"uncertainty_base"`
	UncertaintyGrowth float64            `json:"uncertainty_growth" mapstructure:"uncertainty_growth"`
	MaxHorizon        int                `json:"max_horizon" mapstructure:"max_horizon"`
	Training          BoostingParams     `json:"training" mapstructure:"training"`
}

// DefaultSalaryConfig returns the default adjustment tables.
func DefaultSalaryConfig() SalaryConfig {
	return SalaryConfig{
		LocationFactors: map[string]float64{
			types.DefaultLocation: 1.0,
			"us":                  1.0,
			"uk":                  0.85,
			"eu":                  0.8,
			"canada":              0.85,
			"india":               0.3,
			"remote":              0.9,
		},
		ExperienceFactors: map[string]float64{
			types.ExperienceEntry:  1.0,
			types.ExperienceMid:    1.25,
			types.ExperienceSenior: 1.5,
			types.ExperienceLead:   1.75,
		},
		ExperienceYears: map[string]float64{
			types.ExperienceEntry:  0,
			types.ExperienceMid:    4,
			types.ExperienceSenior: 8,
			types.ExperienceLead:   12,
		},
		CategoryGrowth: map[string]float64{
			"technology":  0.12,
			"healthcare":  0.08,
			"finance":     0.15,
			"engineering": 0.08,
			"creative":    0.10,
			"marketing":   0.10,
			"law":         0.12,
			"design":      0.09,
			"media":       0.07,
			"science":     0.08,
		},
		DefaultGrowth:     0.10,
		UncertaintyBase:   0.05,
		UncertaintyGrowth: 0.04,
		MaxHorizon:        20,
		Training:          DefaultBoostingParams(),
	}
}

// Validate checks the salary configuration.
func (c SalaryConfig) Validate() error {
	if c.MaxHorizon < 1 {
		return &types.ValidationError{Field: "salary.max_horizon", Message: "must be at least 1"}
	}
	if c.UncertaintyBase < 0 || c.UncertaintyGrowth <= 0 {
		return &types.ValidationError{Field: "salary.uncertainty", Message: "base must be >= 0 and growth > 0"}
	}
	if len(c.ExperienceFactors) == 0 {
		return &types.ValidationError{Field: "salary.experience_factors", Message: "at least one experience level is required"}
	}
	for level, f := range c.ExperienceFactors {
		if f <= 0 {
			return &types.ValidationError{Field: "salary.experience_factors." + level, Message: "must be positive"}
		}
		if y := c.ExperienceYears[level]; y < 0 {
			return &types.ValidationError{Field: "salary.experience_years." + level, Message: "must be non-negative"}
		}
	}
	for loc, f := range c.LocationFactors {
		if f <= 0 {
			return &types.ValidationError{Field: "salary.location_factors." + loc, Message: "must be positive"}
		}
	}
	return c.Training.Validate()
}

// SalaryCurve is the closed-form log pay ratio exp(...) described above, as a Forecaster over
// features [years, growthRate]. It is the source of the default training data and can stand
// in for the fitted regressor.
type SalaryCurve struct{}

// Predict returns the log pay ratio after features[0] years at growth rate features[1].
func (SalaryCurve) Predict(features []float64) float64 {
	if len(features) < 2 {
		return 0
	}
	years, growth := math.Max(features[0], 0), features[1]
	return curveSpan * growth * (1 - math.Exp(-years/curveSpan))
}

// Name identifies the model in reports.
func (SalaryCurve) Name() string {
	return "salary_curve"
}

// SalaryTrainingSamples synthesizes the default salary-by-experience training grid.
func SalaryTrainingSamples() []Sample {
	var curve SalaryCurve
	var samples []Sample
	for gi := 0; ; gi++ {
		g := trainMinGrowth + float64(gi)*trainGrowthStep
		if g > trainMaxGrowth+1e-9 {
			break
		}
		for yi := 0; ; yi++ {
			y := float64(yi) * trainYearStep
			if y > trainMaxYears {
				break
			}
			features := []float64{y, roundTo(g, 4)}
			samples = append(samples, Sample{Features: features, Target: curve.Predict(features)})
		}
	}
	return samples
}

// SalaryModel projects salary curves from a fitted growth regressor.
type SalaryModel struct {
	regressor Forecaster
	cfg       SalaryConfig
}

// NewSalaryModel wraps a fitted regressor predicting the log pay ratio from [years, growthRate].
func NewSalaryModel(regressor Forecaster, cfg SalaryConfig) (*SalaryModel, error) {
	if regressor == nil {
		return nil, &FitError{Model: "salary", Message: "regressor is required"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LocationFactors = maps.Clone(cfg.LocationFactors)
	cfg.ExperienceFactors = maps.Clone(cfg.ExperienceFactors)
	cfg.ExperienceYears = maps.Clone(cfg.ExperienceYears)
	cfg.CategoryGrowth = maps.Clone(cfg.CategoryGrowth)
	return &SalaryModel{regressor: regressor, cfg: cfg}, nil
}

// FitSalaryModel fits a gradient-boosted regressor on samples and wraps it in a SalaryModel.
// A nil samples slice uses SalaryTrainingSamples.
func FitSalaryModel(samples []Sample, cfg SalaryConfig) (*SalaryModel, error) {
	if samples == nil {
		samples = SalaryTrainingSamples()
	}
	regressor, err := FitGradientBoosted(samples, cfg.Training)
	if err != nil {
		return nil, err
	}
	return NewSalaryModel(regressor, cfg)
}

// Name reports the regressor behind the model.
func (m *SalaryModel) Name() string {
	return m.regressor.Name()
}

// GrowthRate returns the annual salary growth assumed for a career category.
func (m *SalaryModel) GrowthRate(category string) float64 {
	if g, ok := m.cfg.CategoryGrowth[category]; ok {
		return g
	}
	return m.cfg.DefaultGrowth
}

// Project returns horizon yearly salary points. The base midpoint is scaled by the location and
// experience factors, then grown by the regressor's predicted pay ratio relative to the current
// experience. Bounds are value*(1±w) with w growing linearly in the year offset.
func (m *SalaryModel) Project(base types.SalaryRange, experienceLevel, location string, horizon int, growthRate float64) (types.SalaryForecast, error) {
	if base.Min < 0 || base.Max < base.Min || base.Max <= 0 {
		return types.SalaryForecast{}, &types.ValidationError{
			Field:   "salary_range",
			Message: fmt.Sprintf("invalid range [%v, %v]", base.Min, base.Max),
		}
	}
	if horizon < 1 || horizon > m.cfg.MaxHorizon {
		return types.SalaryForecast{}, &types.ValidationError{
			Field:   "horizon",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", m.cfg.MaxHorizon, horizon),
		}
	}

	expFactor, ok := m.cfg.ExperienceFactors[experienceLevel]
	if !ok {
		return types.SalaryForecast{}, &types.ValidationError{
			Field:   "experience_level",
			Message: fmt.Sprintf("unknown experience level %q", experienceLevel),
		}
	}
	locFactor := m.locationFactor(location)
	years := m.cfg.ExperienceYears[experienceLevel]

	start := base.Midpoint() * locFactor * expFactor
	origin := m.regressor.Predict([]float64{years, growthRate})

	points := make([]types.ForecastPoint, 0, horizon)
	for t := 1; t <= horizon; t++ {
		ratio := math.Exp(m.regressor.Predict([]float64{years + float64(t), growthRate}) - origin)
		value := start * ratio
		w := m.cfg.UncertaintyBase + m.cfg.UncertaintyGrowth*float64(t)
		points = append(points, types.ForecastPoint{
			YearOffset: t,
			Value:      roundTo(value, 2),
			LowerBound: roundTo(math.Max(0, value*(1-w)), 2),
			UpperBound: roundTo(value*(1+w), 2),
		})
	}

	return types.SalaryForecast{
		Currency:         base.Currency,
		BaseMidpoint:     roundTo(base.Midpoint(), 2),
		LocationFactor:   locFactor,
		ExperienceFactor: expFactor,
		Model:            m.regressor.Name(),
		Points:           points,
	}, nil
}

// locationFactor falls back to the default location, then to 1.
func (m *SalaryModel) locationFactor(location string) float64 {
	if f, ok := m.cfg.LocationFactors[location]; ok {
		return f
	}
	if f, ok := m.cfg.LocationFactors[types.DefaultLocation]; ok {
		return f
	}
	return 1.0
}
