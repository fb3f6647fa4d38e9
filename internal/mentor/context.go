// Package mentor turns analysis results into grounded questions for the external
// mentoring-text service. The service never sees anything the analysis did not produce.
package mentor

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-compass/internal/types"
)

// DefaultMaxMatches bounds how many matches are described in the grounding context
const DefaultMaxMatches = 3

// maxGaps is how many skill gaps are listed per match
const maxGaps = 3

// BuildContext renders a report as plain text. The output depends only on the report, so
// the same report always yields the same prompt.
func BuildContext(report types.CareerReport, maxMatches int) string {
	if maxMatches <= 0 {
		maxMatches = DefaultMaxMatches
	}

	var sb strings.Builder
	p := report.Profile
	fmt.Fprintf(&sb, "Student: experience %s, location %s", p.ExperienceLevel, p.Location)
	if p.MBTIType != "" {
		fmt.Fprintf(&sb, ", MBTI %s", p.MBTIType)
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(&sb, ", interests %s", strings.Join(p.Interests, ", "))
	}
	sb.WriteString(".\n")
	if len(report.Summary.KeyStrengths) > 0 {
		fmt.Fprintf(&sb, "Strengths: %s.\n", strings.Join(report.Summary.KeyStrengths, ", "))
	}
	if top := report.Summary.TopAptitudes; len(top) > 0 {
		names := make([]string, len(top))
		for i, a := range top {
			names[i] = a.Name
		}
		fmt.Fprintf(&sb, "Top aptitudes: %s.\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "Forecast horizon: %d years.\n", report.Horizon)

	if len(report.Matches) == 0 {
		sb.WriteString("No career matched the student's profile.\n")
		return sb.String()
	}

	for i, m := range report.Matches {
		if i == maxMatches {
			break
		}
		match := m.Match
		fmt.Fprintf(&sb, "\n%d. %s (%s): score %.1f/100, skills %.2f, academics %.2f, personality %.2f, confidence %s.\n",
			i+1, match.CareerName, match.Category, match.CompositeScore,
			match.SkillScore, match.AcademicScore, match.PersonalityScore, match.Confidence)
		if match.Notes != "" {
			fmt.Fprintf(&sb, "   Notes: %s\n", match.Notes)
		}
		if gaps := gapSummary(match.SkillGaps); gaps != "" {
			fmt.Fprintf(&sb, "   Skill gaps: %s.\n", gaps)
		}
		if m.Roadmap.TotalMonths > 0 {
			fmt.Fprintf(&sb, "   Roadmap: %d milestones over %d months.\n", len(m.Roadmap.Milestones), m.Roadmap.TotalMonths)
		}
		if n := len(m.Salary.Points); n > 0 {
			last := m.Salary.Points[n-1]
			fmt.Fprintf(&sb, "   Salary: %.0f %s now, about %.0f (range %.0f-%.0f) in year %d.\n",
				m.Salary.BaseMidpoint*m.Salary.LocationFactor*m.Salary.ExperienceFactor, m.Salary.Currency,
				last.Value, last.LowerBound, last.UpperBound, last.YearOffset)
		}
		if n := len(m.Demand.Points); n > 0 {
			fmt.Fprintf(&sb, "   Demand outlook: %s (index %.1f to %.1f, %s confidence)",
				m.Demand.Outlook, m.Demand.BaseIndex, m.Demand.Points[n-1].Value, m.Demand.Confidence)
			if r := len(m.Demand.AutomationRiskTrajectory); r > 0 {
				fmt.Fprintf(&sb, ", automation risk %.0f%% by year %d",
					100*m.Demand.AutomationRiskTrajectory[r-1].Risk, m.Demand.AutomationRiskTrajectory[r-1].YearOffset)
			}
			sb.WriteString(".\n")
		}
	}
	return sb.String()
}

func gapSummary(gaps []types.SkillGap) string {
	parts := make([]string, 0, maxGaps)
	for i, g := range gaps {
		if i == maxGaps {
			break
		}
		parts = append(parts, fmt.Sprintf("%s %.2f->%.2f", g.Skill, g.Current, g.Required))
	}
	return strings.Join(parts, ", ")
}

// AssessmentContext renders a scam assessment as plain text.
func AssessmentContext(a types.ScamAssessment) string {
	flags := "none"
	if len(a.TriggeredFlags) > 0 {
		flags = strings.Join(a.TriggeredFlags, ", ")
	}
	return fmt.Sprintf("Verdict: %s\nRisk score: %.1f/100\nTriggered flags: %s\nTokens: %d\nRecommendation: %s\n",
		a.Verdict, a.RiskScore, flags, a.TokenCount, a.Recommendation)
}
