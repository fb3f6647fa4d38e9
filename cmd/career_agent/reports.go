package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newReportsCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List archived career reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				database, err := a.database(ctx)
				if err != nil {
					return err
				}
				summaries, err := database.ListReports(ctx, limit)
				if err != nil {
					return err
				}
				return a.writeJSON("", summaries)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports to list")
	return cmd
}
