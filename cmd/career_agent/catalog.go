package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/catalog"
)

// catalogSummary describes a validated catalog
type catalogSummary struct {
	Label      string   `json:"label"`
	Version    string   `json:"version"`
	Careers    int      `json:"careers"`
	Categories []string `json:"categories"`
}

func summarize(cat *catalog.Catalog) catalogSummary {
	return catalogSummary{
		Label:      cat.Label(),
		Version:    cat.Version(),
		Careers:    cat.Len(),
		Categories: cat.Categories(),
	}
}

// fileOrConfiguredSource reads path when set, and the configured catalog otherwise.
func fileOrConfiguredSource(ctx context.Context, a *app, path string) (catalog.Source, string, error) {
	if path != "" {
		return catalog.FileSource{Path: path}, path, nil
	}
	src, err := a.catalogSource(ctx)
	if err != nil {
		return nil, "", err
	}
	switch {
	case a.cfg.Catalog.Path != "":
		return src, a.cfg.Catalog.Path, nil
	case a.cfg.Catalog.DatabaseURL != "":
		return src, "database", nil
	default:
		return src, "embedded", nil
	}
}

func newValidateCatalogCmd(root *rootOptions) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "validate-catalog",
		Short: "Validate a career catalog",
		Long: `Checks a catalog against the catalog schema and the record rules (unique ids,
normalized vectors, salary ranges) and prints its content version and categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				src, label, err := fileOrConfiguredSource(ctx, a, catalogPath)
				if err != nil {
					return err
				}
				cat, err := catalog.Load(ctx, src, label)
				if err != nil {
					return err
				}
				a.logger.Info("catalog is valid", zap.String("label", label), zap.Int("careers", cat.Len()))
				return a.writeJSON("", summarize(cat))
			})
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to a catalog JSON file (default: the configured catalog)")
	return cmd
}

func newImportCatalogCmd(root *rootOptions) *cobra.Command {
	var (
		catalogPath string
		databaseURL string
	)

	cmd := &cobra.Command{
		Use:   "import-catalog",
		Short: "Import a career catalog into the database",
		Long: `Validates a catalog file, or the embedded sample catalog when --catalog is not
given, and upserts every career into the database in one transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				var src catalog.Source = catalog.EmbeddedSource{}
				label := "embedded"
				if catalogPath != "" {
					src, label = catalog.FileSource{Path: catalogPath}, catalogPath
				}
				cat, err := catalog.Load(ctx, src, label)
				if err != nil {
					return err
				}

				if databaseURL != "" {
					a.cfg.Catalog.DatabaseURL = databaseURL
				}
				database, err := a.database(ctx)
				if err != nil {
					return err
				}
				if err := database.ImportCareers(ctx, cat.All()); err != nil {
					return fmt.Errorf("failed to import catalog: %w", err)
				}
				a.logger.Info("catalog imported", zap.String("label", label), zap.Int("careers", cat.Len()))
				return a.writeJSON("", summarize(cat))
			})
		},
	}

	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Path to a catalog JSON file (default: the embedded sample)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default from config)")
	return cmd
}
