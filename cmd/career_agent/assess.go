package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/fetch"
	"github.com/jonathan/career-compass/internal/ingestion"
	"github.com/jonathan/career-compass/internal/mentor"
	"github.com/jonathan/career-compass/internal/types"
)

// assessOutput is the assess-posting result
type assessOutput struct {
	AssessmentID *uuid.UUID           `json:"assessment_id,omitempty"`
	Posting      *ingestion.Metadata  `json:"posting"`
	Assessment   types.ScamAssessment `json:"assessment"`
	Explanation  *mentor.Advice       `json:"explanation,omitempty"`
}

func newAssessPostingCmd(root *rootOptions) *cobra.Command {
	var (
		filePath   string
		urlStr     string
		source     string
		outPath    string
		useBrowser bool
		persist    bool
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "assess-posting",
		Short: "Screen a job posting for scam patterns",
		Long: `Reads a job posting from --file, --url or stdin and scores it against the scam
signature table. URLs are fetched with platform-aware extraction and, with --use-browser,
re-rendered in headless Chrome when the static page has too little text.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if filePath != "" && urlStr != "" {
				return errors.New("--file and --url are mutually exclusive")
			}
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				posting, meta, err := readPosting(ctx, a, filePath, urlStr, source, useBrowser)
				if err != nil {
					return err
				}
				analyzer, err := a.analyzer(ctx)
				if err != nil {
					return err
				}

				out := assessOutput{Posting: meta, Assessment: analyzer.AnalyzeJobPosting(ctx, posting)}
				a.logger.Info("posting assessed",
					zap.String("verdict", string(out.Assessment.Verdict)),
					zap.Float64("risk_score", out.Assessment.RiskScore))

				if persist {
					database, err := a.database(ctx)
					if err != nil {
						return err
					}
					id, err := database.SaveAssessment(ctx, posting, out.Assessment)
					if err != nil {
						return err
					}
					out.AssessmentID = &id
				}

				if explain {
					m, closeClient, err := a.mentor(ctx)
					if err != nil {
						return err
					}
					defer closeClient()
					advice, err := m.ExplainPosting(ctx, posting, out.Assessment)
					if err != nil {
						return err
					}
					out.Explanation = &advice
				}

				if p := a.printer(); p != nil {
					p.PrintAssessment(out.Assessment)
					if out.Explanation != nil {
						p.PrintAdvice(*out.Explanation)
					}
				}
				return a.writeJSON(outPath, out)
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to a posting text file")
	cmd.Flags().StringVarP(&urlStr, "url", "u", "", "URL of a posting page")
	cmd.Flags().StringVar(&source, "source", "", "Posting source name (default: the URL host)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the assessment to this file instead of stdout")
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render JavaScript-heavy pages in headless Chrome")
	cmd.Flags().BoolVar(&persist, "persist", false, "Record the assessment in the database")
	cmd.Flags().BoolVar(&explain, "explain", false, "Ask the mentoring service to explain the verdict")
	return cmd
}

// readPosting ingests the posting from a file, a URL or stdin, in that order of preference.
func readPosting(ctx context.Context, a *app, filePath, urlStr, source string, useBrowser bool) (types.JobPosting, *ingestion.Metadata, error) {
	switch {
	case urlStr != "":
		store, err := a.cacheStore(ctx)
		if err != nil {
			return types.JobPosting{}, nil, err
		}
		opts := ingestion.URLOptions{
			Fetcher: fetch.NewCachedFetcher(store, fetch.CachedFetcherConfig{Logger: a.logger}),
			Source:  source,
			Logger:  a.logger,
		}
		if useBrowser {
			opts.Renderer = fetch.NewBrowser(a.logger)
		}
		return ingestion.FromURL(ctx, urlStr, opts)
	case filePath != "":
		posting, meta, err := ingestion.FromFile(filePath)
		if err == nil && source != "" {
			posting.Source, meta.Source = source, source
		}
		return posting, meta, err
	default:
		posting, meta, err := ingestion.FromReader(a.cmd.InOrStdin(), source)
		if err != nil {
			return types.JobPosting{}, nil, fmt.Errorf("failed to read posting from stdin: %w", err)
		}
		return posting, meta, nil
	}
}
