package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/pipeline"
	"github.com/jonathan/career-compass/internal/profile"
	"github.com/jonathan/career-compass/internal/types"
)

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		answersPath string
		outPath     string
		topN        int
		horizon     int
		persist     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a student's questionnaire answers into a career report",
		Long: `Builds a student profile from questionnaire answers, ranks the catalog careers, and
produces a report with skill gaps, a learning roadmap, and salary and demand forecasts for
each of the top matches.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				req, err := readRequest(answersPath)
				if err != nil {
					return err
				}
				analyzer, err := a.analyzer(ctx)
				if err != nil {
					return err
				}

				report, err := analyzer.AnalyzeProfile(ctx, req, pipeline.AnalyzeOptions{TopN: topN, Horizon: horizon})
				if err != nil {
					return err
				}
				a.logger.Info("analysis complete",
					zap.String("report_id", report.ID.String()),
					zap.Int("matches", len(report.Matches)))

				if persist {
					database, err := a.database(ctx)
					if err != nil {
						return err
					}
					if err := database.SaveReport(ctx, report); err != nil {
						return err
					}
					a.logger.Info("report archived", zap.String("report_id", report.ID.String()))
				}

				if p := a.printer(); p != nil {
					p.PrintReport(report)
				}
				return a.writeJSON(outPath, report)
			})
		},
	}

	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Path to the analysis request JSON ({\"answers\": {...}})")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().IntVar(&topN, "top-n", 0, "Number of careers to report (default from config)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon in years (default from config)")
	cmd.Flags().BoolVar(&persist, "persist", false, "Archive the report in the database")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

// readRequest reads and validates an analysis request file.
func readRequest(path string) (types.AnalysisRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.AnalysisRequest{}, fmt.Errorf("failed to read answers: %w", err)
	}
	req, err := profile.DecodeRequest(data)
	if err != nil {
		return types.AnalysisRequest{}, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}
