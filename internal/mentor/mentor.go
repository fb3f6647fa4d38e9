package mentor

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/prompts"
	"github.com/jonathan/career-compass/internal/types"
)

// maxPostingExcerpt bounds the posting text sent with an assessment
const maxPostingExcerpt = 2000

// maxActionItems caps the action items kept from a response
const maxActionItems = 5

// Advice is the mentoring service's answer.
type Advice struct {
	Answer            string   `json:"answer"`
	ActionItems       []string `json:"action_items"`
	CareersReferenced []string `json:"careers_referenced"`
	Model             string   `json:"model"`
}

// Options configures a Mentor.
type Options struct {
	Tier       llm.ModelTier
	MaxMatches int
	Logger     *zap.Logger
}

// Mentor asks the mentoring service questions grounded in analysis results.
type Mentor struct {
	client     llm.Client
	tier       llm.ModelTier
	maxMatches int
	logger     *zap.Logger
}

// New wraps client.
func New(client llm.Client, opts Options) (*Mentor, error) {
	if client == nil {
		return nil, fmt.Errorf("mentor: client is required")
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = DefaultMaxMatches
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Mentor{client: client, tier: opts.Tier, maxMatches: opts.MaxMatches, logger: opts.Logger}, nil
}

// Ask answers question from the report's matches. Referenced careers that are not among the
// described matches are dropped from the advice.
func (m *Mentor) Ask(ctx context.Context, report types.CareerReport, question string) (Advice, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Advice{}, &types.ValidationError{Field: "question", Message: "question is required"}
	}
	if len(report.Matches) == 0 {
		return Advice{}, &types.ValidationError{Field: "report", Message: "report has no matches to discuss"}
	}

	prompt, err := prompts.Render(prompts.Advise, map[string]string{
		"Context":  BuildContext(report, m.maxMatches),
		"Question": question,
	})
	if err != nil {
		return Advice{}, err
	}
	advice, err := m.generate(ctx, prompt)
	if err != nil {
		return Advice{}, err
	}

	known := make([]string, 0, m.maxMatches)
	for i, match := range report.Matches {
		if i == m.maxMatches {
			break
		}
		known = append(known, match.Match.CareerName)
	}
	advice.CareersReferenced = m.grounded(advice.CareersReferenced, known)

	m.logger.Info("mentor answered",
		zap.String("report_id", report.ID.String()),
		zap.String("model", advice.Model),
		zap.Int("action_items", len(advice.ActionItems)))
	return advice, nil
}

// ExplainPosting explains a scam assessment in plain language.
func (m *Mentor) ExplainPosting(ctx context.Context, posting types.JobPosting, assessment types.ScamAssessment) (Advice, error) {
	if strings.TrimSpace(posting.Text) == "" {
		return Advice{}, &types.ValidationError{Field: "posting.text", Message: "posting text is required"}
	}

	excerpt := posting.Text
	if len(excerpt) > maxPostingExcerpt {
		excerpt = strings.ToValidUTF8(excerpt[:maxPostingExcerpt], "")
	}
	prompt, err := prompts.Render(prompts.Posting, map[string]string{
		"Context": AssessmentContext(assessment),
		"Posting": excerpt,
	})
	if err != nil {
		return Advice{}, err
	}
	advice, err := m.generate(ctx, prompt)
	if err != nil {
		return Advice{}, err
	}
	advice.CareersReferenced = nil

	m.logger.Info("mentor explained posting", zap.String("verdict", string(assessment.Verdict)), zap.String("model", advice.Model))
	return advice, nil
}

func (m *Mentor) generate(ctx context.Context, prompt string) (Advice, error) {
	raw, err := m.client.GenerateJSON(ctx, prompt, m.tier)
	if err != nil {
		return Advice{}, fmt.Errorf("mentoring service failed: %w", err)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &advice); err != nil {
		m.logger.Debug("undecodable mentor response", zap.String("response", raw))
		return Advice{}, fmt.Errorf("failed to decode mentor response: %w", err)
	}
	advice.Answer = strings.TrimSpace(advice.Answer)
	if advice.Answer == "" {
		return Advice{}, fmt.Errorf("mentor response has no answer")
	}
	if len(advice.ActionItems) > maxActionItems {
		advice.ActionItems = advice.ActionItems[:maxActionItems]
	}
	advice.Model = m.client.GetModel(m.tier)
	return advice, nil
}

// grounded keeps the referenced names that match a known career, case-insensitively, using
// the known spelling.
func (m *Mentor) grounded(referenced, known []string) []string {
	out := make([]string, 0, len(referenced))
	for _, name := range referenced {
		idx := slices.IndexFunc(known, func(k string) bool { return strings.EqualFold(k, strings.TrimSpace(name)) })
		if idx < 0 {
			m.logger.Warn("dropping ungrounded career reference", zap.String("career", name))
			continue
		}
		if !slices.Contains(out, known[idx]) {
			out = append(out, known[idx])
		}
	}
	return out
}
