// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ForecastPoint is one projected year. LowerBound <= Value <= UpperBound always holds.
type ForecastPoint struct {
	YearOffset int     `json:"year_offset"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// SalaryForecast is a projected salary curve
type SalaryForecast struct {
	Currency         string          `json:"currency,omitempty"`
	BaseMidpoint     float64         `json:"base_midpoint"`
	LocationFactor   float64         `json:"location_factor"`
	ExperienceFactor float64         `json:"experience_factor"`
	Model            string          `json:"model"`
	Points           []ForecastPoint `json:"points"`
}

// RiskPoint is the projected automation risk for one year
type RiskPoint struct {
	YearOffset int     `json:"year_offset"`
	Risk       float64 `json:"risk"`
}

// DemandForecast is a projected job-market demand index
type DemandForecast struct {
	Method                   string          `json:"method"`
	Confidence               Confidence      `json:"confidence"`
	Outlook                  string          `json:"outlook"`
	BaseIndex                float64         `json:"base_index"`
	Points                   []ForecastPoint `json:"points"`
	AutomationRiskTrajectory []RiskPoint     `json:"automation_risk_trajectory"`
}

// CareerForecast is the salary and demand outlook of a single career
type CareerForecast struct {
	CareerID        int            `json:"career_id"`
	CareerName      string         `json:"career_name"`
	Category        string         `json:"category"`
	Horizon         int            `json:"horizon_years"`
	ExperienceLevel string         `json:"experience_level"`
	Location        string         `json:"location"`
	Salary          SalaryForecast `json:"salary"`
	Demand          DemandForecast `json:"demand"`
}
