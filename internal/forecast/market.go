package forecast

import (
	"fmt"
	"math"

	"github.com/jonathan/career-compass/internal/types"
)

// MethodFallback is reported when a projection used baseGrowthRate alone
const MethodFallback = "base_growth_fallback"

// Outlook labels by the ratio of final to current demand
const (
	OutlookExcellent = "Excellent"
	OutlookVeryGood  = "Very Good"
	OutlookGood      = "Good"
	OutlookStable    = "Stable"
	OutlookDeclining = "Declining"
)

// fallbackSigmaShare is the assumed noise of a fallback projection, as a share of the base index
const fallbackSigmaShare = 0.10

// minSigmaShare keeps bands open on perfectly smooth histories
const minSigmaShare = 0.02

// MarketConfig controls demand extrapolation.
type MarketConfig struct {
	MinHistoryPoints    int     `json:"min_history_points" mapstructure:"min_history_points"`
	TrendDegree         int     `json:"trend_degree" mapstructure:"trend_degree"`
	AutomationDampening float64 `json:"automation_dampening" mapstructure:"automation_dampening"`
	RiskGrowth          float64 `json:"risk_growth" mapstructure:"risk_growth"`
	BandZ               float64 `json:"band_z" mapstructure:"band_z"`
	BaseIndex           float64 `json:"base_index" mapstructure:"base_index"`
	MaxHorizon          int     `json:"max_horizon" mapstructure:"max_horizon"`
}

// DefaultMarketConfig returns the default extrapolation settings.
func DefaultMarketConfig() MarketConfig {
	return MarketConfig{
		MinHistoryPoints:    3,
		TrendDegree:         1,
		AutomationDampening: 0.5,
		RiskGrowth:          0.05,
		BandZ:               1.28,
		BaseIndex:           100,
		MaxHorizon:          20,
	}
}

// Validate checks the market configuration.
func (c MarketConfig) Validate() error {
	switch {
	case c.MinHistoryPoints < 2:
		return &types.ValidationError{Field: "market.min_history_points", Message: "must be at least 2"}
	case c.TrendDegree < 1 || c.TrendDegree > 2:
		return &types.ValidationError{Field: "market.trend_degree", Message: "must be 1 or 2"}
	case c.AutomationDampening < 0:
		return &types.ValidationError{Field: "market.automation_dampening", Message: "must be non-negative"}
	case c.RiskGrowth < 0:
		return &types.ValidationError{Field: "market.risk_growth", Message: "must be non-negative"}
	case c.BandZ <= 0:
		return &types.ValidationError{Field: "market.band_z", Message: "must be positive"}
	case c.BaseIndex <= 0:
		return &types.ValidationError{Field: "market.base_index", Message: "must be positive"}
	case c.MaxHorizon < 1:
		return &types.ValidationError{Field: "market.max_horizon", Message: "must be at least 1"}
	}
	return nil
}

// MarketModel extrapolates demand indices. Trends are fitted per career in NewMarketModel.
type MarketModel struct {
	cfg    MarketConfig
	trends map[int]*PolyTrend
}

// NewMarketModel fits a trend for every career with enough history. Careers whose fit fails
// are left without a trend and forecast with the fallback estimator.
func NewMarketModel(cfg MarketConfig, careers []types.CareerProfile) (*MarketModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &MarketModel{cfg: cfg, trends: make(map[int]*PolyTrend, len(careers))}
	for i := range careers {
		if trend, ok := m.fit(careers[i].HistoricalDemandIndex); ok {
			m.trends[careers[i].ID] = trend
		}
	}
	return m, nil
}

// Trends returns the number of careers with a fitted trend.
func (m *MarketModel) Trends() int {
	return len(m.trends)
}

func (m *MarketModel) fit(history []float64) (*PolyTrend, bool) {
	if len(history) < m.cfg.MinHistoryPoints {
		return nil, false
	}
	degree := m.cfg.TrendDegree
	if degree == 2 && len(history) < 4 {
		degree = 1
	}
	trend, err := FitPolyTrend(history, degree)
	if err != nil {
		return nil, false
	}
	return trend, true
}

// Forecast projects the career's demand index horizon years ahead along with its automation
// risk trajectory. Histories shorter than MinHistoryPoints use baseGrowthRate alone and are
// marked low confidence.
func (m *MarketModel) Forecast(career types.CareerProfile, horizon int) (types.DemandForecast, error) {
	if horizon < 1 || horizon > m.cfg.MaxHorizon {
		return types.DemandForecast{}, &types.ValidationError{
			Field:   "horizon",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", m.cfg.MaxHorizon, horizon),
		}
	}

	trend, ok := m.trends[career.ID]
	if !ok {
		trend, ok = m.fit(career.HistoricalDemandIndex)
	}

	var out types.DemandForecast
	if ok {
		out = m.trendForecast(career, trend, horizon)
	} else {
		out = m.fallbackForecast(career, horizon)
	}
	out.AutomationRiskTrajectory = m.riskTrajectory(career.AutomationRiskBase, horizon)
	out.Outlook = Outlook(out.BaseIndex, out.Points[len(out.Points)-1].Value)
	return out, nil
}

// trendForecast continues the fitted trend from the last observation. Growth is damped by
// exp(-risk*dampening*k); declines are not damped.
func (m *MarketModel) trendForecast(career types.CareerProfile, trend *PolyTrend, horizon int) types.DemandForecast {
	history := career.HistoricalDemandIndex
	lastX := float64(len(history) - 1)
	last := history[len(history)-1]
	anchor := trend.At(lastX)
	sigma := math.Max(trend.ResidualStdDev, minSigmaShare*last)

	points := make([]types.ForecastPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		delta := trend.At(lastX+float64(k)) - anchor
		if delta > 0 {
			delta *= math.Exp(-career.AutomationRiskBase * m.cfg.AutomationDampening * float64(k))
		}
		points = append(points, m.point(k, last+delta, sigma))
	}

	return types.DemandForecast{
		Method:     trend.Name(),
		Confidence: types.ConfidenceHigh,
		BaseIndex:  roundTo(last, 2),
		Points:     points,
	}
}

// fallbackForecast compounds baseGrowthRate, reduced by the automation risk.
func (m *MarketModel) fallbackForecast(career types.CareerProfile, horizon int) types.DemandForecast {
	base := m.cfg.BaseIndex
	if n := len(career.HistoricalDemandIndex); n > 0 {
		base = career.HistoricalDemandIndex[n-1]
	}
	rate := math.Max(0, 1+career.BaseGrowthRate*(1-career.AutomationRiskBase*m.cfg.AutomationDampening))
	sigma := math.Max(fallbackSigmaShare*base, minSigmaShare*base)

	points := make([]types.ForecastPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		points = append(points, m.point(k, base*math.Pow(rate, float64(k)), sigma))
	}

	return types.DemandForecast{
		Method:     MethodFallback,
		Confidence: types.ConfidenceLow,
		BaseIndex:  roundTo(base, 2),
		Points:     points,
	}
}

// point clamps value to be non-negative and brackets it with z*sigma*sqrt(k).
func (m *MarketModel) point(k int, value, sigma float64) types.ForecastPoint {
	value = math.Max(0, value)
	half := m.cfg.BandZ * sigma * math.Sqrt(float64(k))
	return types.ForecastPoint{
		YearOffset: k,
		Value:      roundTo(value, 2),
		LowerBound: roundTo(math.Max(0, value-half), 2),
		UpperBound: roundTo(value+half, 2),
	}
}

func (m *MarketModel) riskTrajectory(base float64, horizon int) []types.RiskPoint {
	out := make([]types.RiskPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		risk := math.Min(1, base*math.Pow(1+m.cfg.RiskGrowth, float64(k)))
		out = append(out, types.RiskPoint{YearOffset: k, Risk: roundTo(risk, 4)})
	}
	return out
}

// Outlook labels a projection by the ratio of its final value to the base index.
func Outlook(base, final float64) string {
	if base <= 0 {
		if final > 0 {
			return OutlookExcellent
		}
		return OutlookStable
	}
	ratio := final / base
	switch {
	case ratio > 2.0:
		return OutlookExcellent
	case ratio > 1.5:
		return OutlookVeryGood
	case ratio > 1.2:
		return OutlookGood
	case ratio > 1.0:
		return OutlookStable
	default:
		return OutlookDeclining
	}
}
