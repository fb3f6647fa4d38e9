// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRequest is a raw answer set keyed by question id ("skill:python", "subject:math", ...)
type AnalysisRequest struct {
	Answers map[string]any `json:"answers"`
}

// ProfileSummary is the part of the profile echoed back in a report
type ProfileSummary struct {
	MBTIType        string   `json:"mbti_type,omitempty"`
	Interests       []string `json:"interests"`
	ExperienceLevel string   `json:"experience_level"`
	Location        string   `json:"location"`
	Pace            float64  `json:"pace"`

	// Aptitudes are estimated from academic marks; they do not feed the match scores
	Aptitudes map[string]float64 `json:"aptitudes,omitempty"`
}

// AptitudeScore is one estimated aptitude
type AptitudeScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ReportSummary is the plain-language overview at the top of a report
type ReportSummary struct {
	KeyStrengths     []string        `json:"key_strengths"`
	TopAptitudes     []AptitudeScore `json:"top_aptitudes"`
	ImprovementAreas []string        `json:"improvement_areas"`
	NextSteps        []string        `json:"next_steps"`
}

// CareerMatchReport is a match plus everything derived from it
type CareerMatchReport struct {
	Match   MatchResult    `json:"match"`
	Roadmap Roadmap        `json:"roadmap"`
	Salary  SalaryForecast `json:"salary"`
	Demand  DemandForecast `json:"demand"`
}

// CareerReport is the full recommendation report produced for one analysis call
type CareerReport struct {
	ID             uuid.UUID           `json:"id"`
	GeneratedAt    time.Time           `json:"generated_at"`
	CatalogVersion string              `json:"catalog_version"`
	WeightsVersion string              `json:"weights_version"`
	Horizon        int                 `json:"horizon_years"`
	Profile        ProfileSummary      `json:"profile"`
	Summary        ReportSummary       `json:"summary"`
	Matches        []CareerMatchReport `json:"matches"`
}
