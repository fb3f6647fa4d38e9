package scam

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/jonathan/career-compass/internal/types"
)

// UntrustedSourceFlag is raised when a flagged posting comes from a source outside the trusted list
const UntrustedSourceFlag = "untrusted_source"

// Options tunes the score-to-verdict mapping.
type Options struct {
	// Saturation is the weight sum at which the score reaches 1-1/e of 100
	Saturation float64 `json:"saturation" mapstructure:"saturation"`
	// SafeBelow: scores below it are safe
	SafeBelow float64 `json:"safe_below" mapstructure:"safe_below"`
	// HighRiskAbove: scores above it are high-risk
	HighRiskAbove float64 `json:"high_risk_above" mapstructure:"high_risk_above"`
	// MinTokens: shorter postings are indeterminate
	MinTokens             int      `json:"min_tokens" mapstructure:"min_tokens"`
	TrustedSources        []string `json:"trusted_sources" mapstructure:"trusted_sources"`
	UntrustedSourceWeight float64  `json:"untrusted_source_weight" mapstructure:"untrusted_source_weight"`
}

// DefaultOptions returns the default thresholds.
func DefaultOptions() Options {
	return Options{
		Saturation:            40,
		SafeBelow:             25,
		HighRiskAbove:         60,
		MinTokens:             8,
		TrustedSources:        DefaultTrustedSources(),
		UntrustedSourceWeight: 20,
	}
}

// Validate checks that thresholds are ordered and inside [0,100].
func (o Options) Validate() error {
	switch {
	case o.Saturation <= 0:
		return &types.ValidationError{Field: "scam.saturation", Message: "must be positive"}
	case o.SafeBelow < 0 || o.HighRiskAbove > 100 || o.SafeBelow > o.HighRiskAbove:
		return &types.ValidationError{
			Field:   "scam.thresholds",
			Message: fmt.Sprintf("need 0 <= safe_below (%v) <= high_risk_above (%v) <= 100", o.SafeBelow, o.HighRiskAbove),
		}
	case o.MinTokens < 1:
		return &types.ValidationError{Field: "scam.min_tokens", Message: "must be at least 1"}
	case o.UntrustedSourceWeight < 0:
		return &types.ValidationError{Field: "scam.untrusted_source_weight", Message: "must be non-negative"}
	}
	return nil
}

// Detector assesses postings against a compiled signature table. It is safe for concurrent use.
type Detector struct {
	version    string
	signatures []compiledSignature
	opts       Options
	trusted    []string
}

// NewDetector compiles the table and returns a Detector.
func NewDetector(table SignatureTable, opts Options) (*Detector, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	compiled, err := table.compile()
	if err != nil {
		return nil, err
	}

	trusted := make([]string, 0, len(opts.TrustedSources))
	for _, s := range opts.TrustedSources {
		if words := sourceWords(s); words != "" {
			trusted = append(trusted, words)
		}
	}

	return &Detector{version: table.Version, signatures: compiled, opts: opts, trusted: trusted}, nil
}

// Version returns the signature table version.
func (d *Detector) Version() string {
	return d.version
}

// Assess scores posting text with no source information.
func (d *Detector) Assess(text string) types.ScamAssessment {
	return d.AssessPosting(types.JobPosting{Text: text})
}

// AssessPosting scores a posting. Flags are reported in table order, with the untrusted source
// flag last. Postings shorter than MinTokens are indeterminate whatever their score.
func (d *Detector) AssessPosting(posting types.JobPosting) types.ScamAssessment {
	flags := make([]string, 0)
	total := 0.0
	for _, sig := range d.signatures {
		if sig.re.MatchString(posting.Text) {
			flags = append(flags, sig.Name)
			total += sig.Weight
		}
	}

	if len(flags) > 0 && posting.Source != "" && !d.isTrusted(posting.Source) && d.opts.UntrustedSourceWeight > 0 {
		flags = append(flags, UntrustedSourceFlag)
		total += d.opts.UntrustedSourceWeight
	}

	score := saturate(total, d.opts.Saturation)
	tokens := len(strings.Fields(posting.Text))

	verdict := d.verdict(score)
	if tokens < d.opts.MinTokens {
		verdict = types.VerdictIndeterminate
	}

	return types.ScamAssessment{
		RiskScore:         score,
		TriggeredFlags:    flags,
		Verdict:           verdict,
		TokenCount:        tokens,
		SignaturesVersion: d.version,
		Recommendation:    recommendation(verdict),
	}
}

func (d *Detector) verdict(score float64) types.Verdict {
	switch {
	case score < d.opts.SafeBelow:
		return types.VerdictSafe
	case score > d.opts.HighRiskAbove:
		return types.VerdictHighRisk
	default:
		return types.VerdictSuspicious
	}
}

// isTrusted matches trusted names as whole words of the source, so "mit" does not match "commit".
func (d *Detector) isTrusted(source string) bool {
	padded := " " + sourceWords(source) + " "
	for _, t := range d.trusted {
		if strings.Contains(padded, " "+t+" ") {
			return true
		}
	}
	return false
}

// sourceWords lowercases s and joins its alphanumeric runs with single spaces.
func sourceWords(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// saturate maps a weight sum onto [0,100) with diminishing returns, rounded to one decimal.
func saturate(total, saturation float64) float64 {
	if total <= 0 {
		return 0
	}
	score := 100 * (1 - math.Exp(-total/saturation))
	return math.Min(100, math.Round(score*10)/10)
}

func recommendation(v types.Verdict) string {
	switch v {
	case types.VerdictHighRisk:
		return "Avoid this posting. Its claims match several known scam patterns."
	case types.VerdictSuspicious:
		return "Be cautious. Verify the employer and never pay to apply."
	case types.VerdictSafe:
		return "No scam indicators detected. Still verify details before sharing personal data."
	default:
		return "Not enough text to assess. Request the full job description."
	}
}
