package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-compass/internal/pipeline"
)

const reportSuffix = ".report.json"

// batchFailure records one request file that could not be analyzed
type batchFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// batchSummary is printed after a batch run
type batchSummary struct {
	Processed int            `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Failed    []batchFailure `json:"failed"`
	OutDir    string         `json:"out_dir"`
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		dir         string
		outDir      string
		concurrency int
		topN        int
		horizon     int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze every request file in a directory",
		Long: `Analyzes each *.json request in --dir against one fitted bundle and writes
<name>.report.json files to --out-dir. A failing file does not stop the others; the command
exits with an error when any file failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", dir, err)
				}
				// reports from an earlier run are not requests
				files := slices.DeleteFunc(matches, func(f string) bool { return strings.HasSuffix(f, reportSuffix) })
				if len(files) == 0 {
					return fmt.Errorf("no request files found in %s", dir)
				}
				slices.Sort(files)

				if outDir == "" {
					outDir = dir
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}

				analyzer, err := a.analyzer(ctx)
				if err != nil {
					return err
				}

				var (
					mu       sync.Mutex
					failures []batchFailure
				)
				g, gctx := errgroup.WithContext(ctx)
				g.SetLimit(concurrency)
				for _, file := range files {
					g.Go(func() error {
						err := analyzeFile(gctx, a, analyzer, file, outDir, pipeline.AnalyzeOptions{TopN: topN, Horizon: horizon})
						if err != nil {
							a.logger.Warn("request failed", zap.String("file", file), zap.Error(err))
							mu.Lock()
							failures = append(failures, batchFailure{File: filepath.Base(file), Error: err.Error()})
							mu.Unlock()
						}
						// only cancellation stops the batch
						return gctx.Err()
					})
				}
				if err := g.Wait(); err != nil {
					return err
				}

				slices.SortFunc(failures, func(x, y batchFailure) int { return strings.Compare(x.File, y.File) })
				summary := batchSummary{
					Processed: len(files),
					Succeeded: len(files) - len(failures),
					Failed:    failures,
					OutDir:    outDir,
				}
				if summary.Failed == nil {
					summary.Failed = []batchFailure{}
				}
				if err := a.writeJSON("", summary); err != nil {
					return err
				}
				if len(failures) > 0 {
					return fmt.Errorf("%d of %d requests failed", len(failures), len(files))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of request JSON files")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for reports (default: --dir)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of requests analyzed at once")
	cmd.Flags().IntVar(&topN, "top-n", 0, "Number of careers per report (default from config)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon in years (default from config)")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func analyzeFile(ctx context.Context, a *app, analyzer *pipeline.Analyzer, file, outDir string, opts pipeline.AnalyzeOptions) error {
	req, err := readRequest(file)
	if err != nil {
		return err
	}
	report, err := analyzer.AnalyzeProfile(ctx, req, opts)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + reportSuffix
	return a.writeJSON(filepath.Join(outDir, name), report)
}
