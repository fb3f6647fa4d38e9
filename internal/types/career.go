// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// SalaryRange represents the base salary band of a career
type SalaryRange struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gt=0,gtefield=Min"`
	Currency string  `json:"currency,omitempty"`
}

// Midpoint returns the centre of the band
func (r SalaryRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// CareerProfile is one career path from the catalog. It doubles as the catalog record format.
type CareerProfile struct {
	ID                    int                `json:"id" validate:"gt=0"`
	Name                  string             `json:"name" validate:"required"`
	Category              string             `json:"category" validate:"required"`
	RequiredSkills        map[string]float64 `json:"required_skills" validate:"min=1,dive,keys,required,endkeys,gte=0,lte=1"`
	AcademicAffinity      map[string]float64 `json:"academic_affinity" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	PersonalityArchetype  map[string]float64 `json:"personality_archetype" validate:"dive,keys,required,endkeys,gte=0,lte=1"`
	PreferredMBTI         string             `json:"preferred_mbti,omitempty" validate:"omitempty,len=4,alpha"`
	SalaryRange           SalaryRange        `json:"salary_range"`
	BaseGrowthRate        float64            `json:"base_growth_rate" validate:"gte=-1,lte=1"`
	AutomationRiskBase    float64            `json:"automation_risk_base" validate:"gte=0,lte=1"`
	HistoricalDemandIndex []float64          `json:"historical_demand_index,omitempty" validate:"dive,gte=0"`
}

// Validate checks the record's field rules.
func (c *CareerProfile) Validate() error {
	if err := validateStruct(c); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			ve.Field = fmt.Sprintf("career[%d].%s", c.ID, ve.Field)
		}
		return err
	}
	return nil
}
