// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Verdict classifies a job posting's fraud risk
type Verdict string

// Verdict values
const (
	VerdictSafe          Verdict = "safe"
	VerdictSuspicious    Verdict = "suspicious"
	VerdictHighRisk      Verdict = "high-risk"
	VerdictIndeterminate Verdict = "indeterminate"
)

// JobPosting is the input to a fraud-risk assessment
type JobPosting struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // Optional source name or URL
}

// ScamAssessment is the fraud-risk assessment of a job posting
type ScamAssessment struct {
	RiskScore         float64  `json:"risk_score"` // 0-100
	TriggeredFlags    []string `json:"triggered_flags"`
	Verdict           Verdict  `json:"verdict"`
	TokenCount        int      `json:"token_count"`
	SignaturesVersion string   `json:"signatures_version"`
	Recommendation    string   `json:"recommendation"`
}
