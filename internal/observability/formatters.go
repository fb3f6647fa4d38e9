// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-compass/internal/mentor"
	"github.com/jonathan/career-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(fit(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(fit(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit shortens line to width runes, marking the cut with "..."
func fit(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	return string([]rune(line)[:width-3]) + "..."
}

func pad(line string, width int) string {
	return line + strings.Repeat(" ", max(0, width-utf8.RuneCountInString(line)))
}

// PrintReport outputs a summary of every match of a report.
func (p *Printer) PrintReport(report *types.CareerReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Report:    %s\n", report.ID)
	fmt.Fprintf(&sb, "Catalog:   %s  Weights: %s\n", report.CatalogVersion, report.WeightsVersion)
	prof := report.Profile
	fmt.Fprintf(&sb, "Profile:   %s, %s", prof.ExperienceLevel, prof.Location)
	if prof.MBTIType != "" {
		fmt.Fprintf(&sb, ", %s", prof.MBTIType)
	}
	sb.WriteString("\n")
	summary := report.Summary
	if len(summary.KeyStrengths) > 0 {
		fmt.Fprintf(&sb, "Strengths: %s\n", strings.Join(summary.KeyStrengths, ", "))
	}
	if len(summary.TopAptitudes) > 0 {
		parts := make([]string, len(summary.TopAptitudes))
		for i, a := range summary.TopAptitudes {
			parts[i] = fmt.Sprintf("%s %.2f", a.Name, a.Score)
		}
		fmt.Fprintf(&sb, "Aptitudes: %s\n", strings.Join(parts, ", "))
	}
	if len(summary.ImprovementAreas) > 0 {
		fmt.Fprintf(&sb, "Improve:   %s\n", strings.Join(summary.ImprovementAreas, ", "))
	}
	if len(report.Matches) == 0 {
		sb.WriteString("\nNo careers matched.\n")
	}
	if len(summary.NextSteps) > 0 {
		sb.WriteString("\nNext Steps:\n")
		writeList(&sb, len(summary.NextSteps), func(i int) string { return summary.NextSteps[i] })
	}
	p.printBox(fmt.Sprintf("Career Report (%d matches, %d-year horizon)", len(report.Matches), report.Horizon), sb.String())

	for i := range report.Matches {
		p.printMatch(i+1, &report.Matches[i])
	}
}

func (p *Printer) printMatch(rank int, m *types.CareerMatchReport) {
	var sb strings.Builder
	match := m.Match
	fmt.Fprintf(&sb, "Score:       %.1f  (skill %.2f, academic %.2f, personality %.2f)\n",
		match.CompositeScore, match.SkillScore, match.AcademicScore, match.PersonalityScore)
	fmt.Fprintf(&sb, "Confidence:  %s", match.Confidence)
	if len(match.ConfidenceReasons) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(match.ConfidenceReasons, "; "))
	}
	sb.WriteString("\n")
	if match.Notes != "" {
		fmt.Fprintf(&sb, "Notes:       %s\n", match.Notes)
	}

	if len(match.SkillGaps) > 0 {
		sb.WriteString("\nSkill Gaps:\n")
		writeList(&sb, len(match.SkillGaps), func(i int) string {
			g := match.SkillGaps[i]
			return fmt.Sprintf("%s %.2f -> %.2f", g.Skill, g.Current, g.Required)
		})
	}

	if len(m.Roadmap.Milestones) > 0 {
		fmt.Fprintf(&sb, "\nRoadmap (%d months):\n", m.Roadmap.TotalMonths)
		writeList(&sb, len(m.Roadmap.Milestones), func(i int) string {
			ms := m.Roadmap.Milestones[i]
			line := fmt.Sprintf("%s: months %d-%d (year %d)", ms.Skill, ms.StartMonth, ms.EndMonth, ms.Year)
			if len(ms.Courses) > 0 {
				// one course per continuation line; fit would cut a joined list
				line += "\n      " + strings.Join(ms.Courses, "\n      ")
			}
			return line
		})
	}
	if len(m.Roadmap.AdvancedCourses) > 0 {
		fmt.Fprintf(&sb, "Then:        %s\n", strings.Join(m.Roadmap.AdvancedCourses, ", "))
	}

	if n := len(m.Salary.Points); n > 0 {
		last := m.Salary.Points[n-1]
		fmt.Fprintf(&sb, "\nSalary:      %s in year %d\n", band(last), last.YearOffset)
	}
	if n := len(m.Demand.Points); n > 0 {
		fmt.Fprintf(&sb, "Demand:      %s, %.1f -> %.1f (%s)\n",
			m.Demand.Outlook, m.Demand.BaseIndex, m.Demand.Points[n-1].Value, m.Demand.Method)
	}

	p.printBox(fmt.Sprintf("#%d %s (%s)", rank, match.CareerName, match.Category), sb.String())
}

// PrintAssessment outputs a scam assessment.
func (p *Printer) PrintAssessment(a types.ScamAssessment) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Verdict:     %s\n", strings.ToUpper(string(a.Verdict)))
	fmt.Fprintf(&sb, "Risk score:  %.1f / 100\n", a.RiskScore)
	fmt.Fprintf(&sb, "Tokens:      %d\n", a.TokenCount)
	fmt.Fprintf(&sb, "Signatures:  %s\n", a.SignaturesVersion)
	if len(a.TriggeredFlags) > 0 {
		sb.WriteString("\nTriggered Flags:\n")
		writeList(&sb, len(a.TriggeredFlags), func(i int) string { return a.TriggeredFlags[i] })
	}
	fmt.Fprintf(&sb, "\n%s\n", a.Recommendation)
	p.printBox("Posting Assessment", sb.String())
}

// PrintForecast outputs the yearly salary and demand projections of one career.
func (p *Printer) PrintForecast(f types.CareerForecast) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Experience:  %s  Location: %s\n", f.ExperienceLevel, f.Location)
	fmt.Fprintf(&sb, "Salary model: %s  Demand method: %s (%s)\n", f.Salary.Model, f.Demand.Method, f.Demand.Confidence)
	sb.WriteString("\nYear  Salary                         Demand   Risk\n")
	for i, s := range f.Salary.Points {
		demand, risk := "-", "-"
		if i < len(f.Demand.Points) {
			demand = fmt.Sprintf("%.1f", f.Demand.Points[i].Value)
		}
		if i < len(f.Demand.AutomationRiskTrajectory) {
			risk = fmt.Sprintf("%.0f%%", 100*f.Demand.AutomationRiskTrajectory[i].Risk)
		}
		fmt.Fprintf(&sb, "%-5d %-30s %-8s %s\n", s.YearOffset, band(s), demand, risk)
	}
	fmt.Fprintf(&sb, "\nOutlook: %s\n", f.Demand.Outlook)
	p.printBox(fmt.Sprintf("%s Forecast (%d years)", f.CareerName, f.Horizon), sb.String())
}

// PrintAdvice outputs a mentoring answer.
func (p *Printer) PrintAdvice(a mentor.Advice) {
	var sb strings.Builder
	sb.WriteString(wrap(a.Answer, boxWidth-4))
	sb.WriteString("\n")
	if len(a.ActionItems) > 0 {
		sb.WriteString("\nNext Steps:\n")
		writeList(&sb, len(a.ActionItems), func(i int) string { return a.ActionItems[i] })
	}
	if len(a.CareersReferenced) > 0 {
		fmt.Fprintf(&sb, "\nCareers: %s\n", strings.Join(a.CareersReferenced, ", "))
	}
	p.printBox("Mentor ("+a.Model+")", sb.String())
}

func band(pt types.ForecastPoint) string {
	return fmt.Sprintf("%.0f [%.0f-%.0f]", pt.Value, pt.LowerBound, pt.UpperBound)
}

// writeList writes up to maxItemsToShow bullet items and a count of the rest.
func writeList(sb *strings.Builder, n int, item func(int) string) {
	for i := range min(n, maxItemsToShow) {
		fmt.Fprintf(sb, "  • %s\n", item(i))
	}
	if n > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", n-maxItemsToShow)
	}
}

// wrap breaks text into lines of at most width runes at word boundaries.
func wrap(text string, width int) string {
	var lines []string
	var line []string
	length := 0
	for _, word := range strings.Fields(text) {
		n := utf8.RuneCountInString(word)
		if length > 0 && length+1+n > width {
			lines = append(lines, strings.Join(line, " "))
			line, length = nil, 0
		}
		if length > 0 {
			length++
		}
		line = append(line, word)
		length += n
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}
