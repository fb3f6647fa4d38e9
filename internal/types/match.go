// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "slices"

// Confidence marks whether a result relied on fallback estimates
type Confidence string

// Confidence levels
const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// SkillGap is one skill the student has to improve for a career
type SkillGap struct {
	Skill    string  `json:"skill"`
	Current  float64 `json:"current_proficiency"`
	Required float64 `json:"required_proficiency"`
	Deficit  float64 `json:"deficit"`
}

// MatchResult is the scored fit of a student for one career
type MatchResult struct {
	CareerID          int        `json:"career_id"`
	CareerName        string     `json:"career_name"`
	Category          string     `json:"category"`
	CompositeScore    float64    `json:"composite_score"` // 0-100
	SkillScore        float64    `json:"skill_score"`     // 0-1
	AcademicScore     float64    `json:"academic_score"`  // 0-1
	PersonalityScore  float64    `json:"personality_score"`
	SkillGaps         []SkillGap `json:"skill_gaps"`
	Confidence        Confidence `json:"confidence"`
	ConfidenceReasons []string   `json:"confidence_reasons,omitempty"`
	Notes             string     `json:"notes"`
}

// Clone returns a copy of r that shares no slices with it.
func (r MatchResult) Clone() MatchResult {
	r.SkillGaps = slices.Clone(r.SkillGaps)
	r.ConfidenceReasons = slices.Clone(r.ConfidenceReasons)
	return r
}
