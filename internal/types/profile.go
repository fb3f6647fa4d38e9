// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"maps"
	"slices"
)

// Experience levels accepted in preferences
const (
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
	ExperienceLead   = "lead"
)

// DefaultLocation is used when no location preference is given
const DefaultLocation = "default"

// StudentProfile is the canonical, normalized representation of a student's assessment.
// Build it with NewStudentProfile; the maps must not be modified afterwards.
type StudentProfile struct {
	Skills      map[string]float64 `json:"skills" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	Academics   map[string]float64 `json:"academics" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	Personality map[string]float64 `json:"personality" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	Interests   []string           `json:"interests"`
	MBTIType    string             `json:"mbti_type,omitempty"`
	Preferences Preferences        `json:"preferences"`
}

// Preferences holds the planning and forecasting preferences of a student
type Preferences struct {
	// Pace is the learning pace multiplier; 1.0 is a normal pace, 2.0 twice as fast
	Pace float64 `json:"pace" validate:"gt=0,lte=10"`
	// ExperienceLevel is used by salary forecasts
	ExperienceLevel string `json:"experience_level" validate:"oneof=entry mid senior lead"`
	// Location is the key used for salary location adjustment
	Location string `json:"location" validate:"required"`
}

// NewStudentProfile validates the given vectors and returns an immutable profile.
// Input maps are copied; interests are deduplicated and sorted.
func NewStudentProfile(p StudentProfile) (StudentProfile, error) {
	out := StudentProfile{
		Skills:      copyVector(p.Skills),
		Academics:   copyVector(p.Academics),
		Personality: copyVector(p.Personality),
		MBTIType:    p.MBTIType,
		Preferences: p.Preferences,
	}

	if out.Preferences.Location == "" {
		out.Preferences.Location = DefaultLocation
	}
	if out.Preferences.ExperienceLevel == "" {
		out.Preferences.ExperienceLevel = ExperienceEntry
	}
	if out.Preferences.Pace == 0 {
		out.Preferences.Pace = 1.0
	}

	interests := slices.Clone(p.Interests)
	slices.Sort(interests)
	out.Interests = slices.Compact(interests)
	if out.Interests == nil {
		out.Interests = []string{}
	}

	if len(out.Skills) == 0 {
		return StudentProfile{}, &ValidationError{Field: "skills", Message: "at least one skill is required"}
	}
	if len(out.Academics) == 0 {
		return StudentProfile{}, &ValidationError{Field: "academics", Message: "at least one subject score is required"}
	}

	if err := validateStruct(out); err != nil {
		return StudentProfile{}, err
	}
	return out, nil
}

// Skill returns the proficiency for a skill, 0 when absent.
func (p StudentProfile) Skill(name string) float64 {
	return p.Skills[name]
}

func copyVector(in map[string]float64) map[string]float64 {
	if in == nil {
		return map[string]float64{}
	}
	return maps.Clone(in)
}
