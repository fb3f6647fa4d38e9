package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/mentor"
	"github.com/jonathan/career-compass/internal/types"
)

// newLLMClient creates the mentoring service client; tests replace it
var newLLMClient = func(ctx context.Context, cfg config.LLMConfig) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model), cfg.APIKey)
}

// mentor returns a Mentor and a func releasing its client.
func (a *app) mentor(ctx context.Context) (*mentor.Mentor, func(), error) {
	if a.cfg.LLM.APIKey == "" {
		return nil, nil, fmt.Errorf("%w: set llm.api_key or CAREER_LLM_API_KEY", llm.ErrMissingAPIKey)
	}
	client, err := newLLMClient(ctx, a.cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			a.logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}
	m, err := mentor.New(client, mentor.Options{Logger: a.logger})
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return m, closeClient, nil
}

func newMentorCmd(root *rootOptions) *cobra.Command {
	var (
		reportPath string
		reportID   string
		question   string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Ask a follow-up question about a career report",
		Long: `Sends a question together with a summary of a career report to the mentoring
service. The report is read from --report, or loaded from the database archive with
--report-id. Only careers that appear in the report are kept in the answer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (reportPath == "") == (reportID == "") {
				return errors.New("exactly one of --report or --report-id is required")
			}
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				report, err := loadReport(ctx, a, reportPath, reportID)
				if err != nil {
					return err
				}
				m, closeClient, err := a.mentor(ctx)
				if err != nil {
					return err
				}
				defer closeClient()

				advice, err := m.Ask(ctx, *report, question)
				if err != nil {
					return err
				}
				if p := a.printer(); p != nil {
					p.PrintAdvice(advice)
				}
				return a.writeJSON(outPath, advice)
			})
		},
	}

	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Path to a report written by analyze")
	cmd.Flags().StringVar(&reportID, "report-id", "", "ID of an archived report")
	cmd.Flags().StringVarP(&question, "question", "q", "", "Question to ask")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the answer to this file instead of stdout")
	_ = cmd.MarkFlagRequired("question")
	return cmd
}

func loadReport(ctx context.Context, a *app, path, id string) (*types.CareerReport, error) {
	if id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, &types.ValidationError{Field: "report-id", Message: "must be a UUID"}
		}
		database, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return database.GetReport(ctx, parsed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var report types.CareerReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &report, nil
}
