// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RoadmapMilestone is one learning step of a roadmap
type RoadmapMilestone struct {
	Order              int      `json:"order"`
	Skill              string   `json:"skill"`
	CurrentProficiency float64  `json:"current_proficiency"`
	TargetProficiency  float64  `json:"target_proficiency"`
	EstimatedMonths    int      `json:"estimated_months"`
	StartMonth         int      `json:"start_month"` // Months from today when work on the skill starts
	EndMonth           int      `json:"end_month"`   // Cumulative months when the milestone is reached
	Year               int      `json:"year"`        // Roadmap year the milestone completes in (1-based)
	Courses            []string `json:"courses,omitempty"`
}

// Roadmap is an ordered, non-overlapping milestone sequence
type Roadmap struct {
	Milestones  []RoadmapMilestone `json:"milestones"`
	TotalMonths int                `json:"total_months"`

	// AdvancedCourses follow the last milestone and depend on the career category
	AdvancedCourses []string `json:"advanced_courses,omitempty"`
}
