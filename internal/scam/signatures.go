// Package scam scores job postings against a weighted table of lexical fraud signatures.
package scam

import (
	"fmt"
	"regexp"

	"github.com/jonathan/career-compass/internal/types"
)

// Signature is one fraud indicator. Pattern is an RE2 expression matched case-insensitively.
type Signature struct {
	Name    string  `json:"name" mapstructure:"name"`
	Pattern string  `json:"pattern" mapstructure:"pattern"`
	Weight  float64 `json:"weight" mapstructure:"weight"`
}

// SignatureTable is a versioned set of signatures.
type SignatureTable struct {
	Version    string      `json:"version" mapstructure:"version"`
	Signatures []Signature `json:"signatures" mapstructure:"signatures"`
}

// DefaultSignatures returns the v1 signature table.
func DefaultSignatures() SignatureTable {
	return SignatureTable{
		Version: "v1",
		Signatures: []Signature{
			{Name: "pay_to_start", Pattern: `(pay|deposit)\s+(a\s+)?(small\s+)?(fee\s+)?(to|before\s+you)\s+(start|begin|join)`, Weight: 25},
			{Name: "registration_fee", Pattern: `(registration|training|joining|starter\s+kit)\s+(fee|charges?|cost)`, Weight: 20},
			{Name: "guaranteed_income", Pattern: `guaranteed\s+(job|placement|income|salary|earnings)`, Weight: 20},
			{Name: "pyramid_recruitment", Pattern: `(recruit|refer|sign\s+up)\s+(\d+\s+)?(friends|members|others|people)|(build|grow)\s+your\s+(own\s+)?downline`, Weight: 25},
			{Name: "earn_per_month", Pattern: `earn\s+\d+\s*(lakh|lakhs|k|thousand)\s*(per|a)\s*month`, Weight: 15},
			{Name: "no_experience_needed", Pattern: `no\s+(experience|skills?)\s*(required|needed)`, Weight: 10},
			{Name: "get_rich_quick", Pattern: `get\s+rich\s+quick`, Weight: 15},
			{Name: "secret_method", Pattern: `secret\s+(method|trick|formula)`, Weight: 15},
			{Name: "limited_time_offer", Pattern: `limited\s+time\s+offer`, Weight: 10},
			{Name: "work_from_home_earnings", Pattern: `work\s+from\s+home\s+\d+\s*(lakh|k)`, Weight: 15},
			{Name: "passive_income", Pattern: `passive\s+income\s+\d+`, Weight: 15},
			{Name: "quit_your_job", Pattern: `quit\s+your\s+job`, Weight: 10},
			{Name: "financial_freedom", Pattern: `financial\s+freedom\s+in\s+\d+\s*(days|weeks|months)`, Weight: 15},
			{Name: "become_millionaire", Pattern: `become\s+a\s+millionaire`, Weight: 15},
			{Name: "free_course_worth", Pattern: `free\s+course.*worth\s+\d+`, Weight: 10},
			{Name: "extreme_discount", Pattern: `99%\s+discount`, Weight: 10},
			{Name: "scarcity_spots", Pattern: `only\s+\d+\s+spots?\s+left`, Weight: 10},
			{Name: "untraceable_payment", Pattern: `(gift\s+cards?|wire\s+transfer|crypto(currency)?\s+payment)`, Weight: 20},
		},
	}
}

// DefaultTrustedSources are sources whose flagged postings are not penalized further.
func DefaultTrustedSources() []string {
	return []string{
		"coursera", "edx", "udemy", "linkedin learning", "pluralsight",
		"mit", "stanford", "harvard", "google", "microsoft", "aws",
		"iiit", "iit", "nit", "bits", "university", "college",
	}
}

type compiledSignature struct {
	Signature
	re *regexp.Regexp
}

// compile validates the table and compiles every pattern.
func (t SignatureTable) compile() ([]compiledSignature, error) {
	if t.Version == "" {
		return nil, &types.ValidationError{Field: "signatures.version", Message: "version is required"}
	}
	if len(t.Signatures) == 0 {
		return nil, &types.ValidationError{Field: "signatures", Message: "at least one signature is required"}
	}

	seen := make(map[string]bool, len(t.Signatures))
	out := make([]compiledSignature, 0, len(t.Signatures))
	for i, sig := range t.Signatures {
		field := fmt.Sprintf("signatures[%d]", i)
		if sig.Name == "" {
			return nil, &types.ValidationError{Field: field + ".name", Message: "name is required"}
		}
		if sig.Name == UntrustedSourceFlag {
			return nil, &types.ValidationError{Field: field + ".name", Message: fmt.Sprintf("%q is reserved", sig.Name)}
		}
		if seen[sig.Name] {
			return nil, &types.ValidationError{Field: field + ".name", Message: fmt.Sprintf("duplicate signature %q", sig.Name)}
		}
		seen[sig.Name] = true
		if sig.Weight <= 0 {
			return nil, &types.ValidationError{Field: field + ".weight", Message: fmt.Sprintf("must be positive, got %v", sig.Weight)}
		}
		re, err := regexp.Compile("(?i)" + sig.Pattern)
		if err != nil {
			return nil, &types.ValidationError{Field: field + ".pattern", Message: err.Error()}
		}
		out = append(out, compiledSignature{Signature: sig, re: re})
	}
	return out, nil
}

// Validate checks names, weights and patterns without building a Detector.
func (t SignatureTable) Validate() error {
	_, err := t.compile()
	return err
}
