package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newLookupCmd(root *rootOptions) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show one catalog career",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				analyzer, err := a.analyzer(ctx)
				if err != nil {
					return err
				}
				career, err := analyzer.LookupCareer(id)
				if err != nil {
					return err
				}
				return a.writeJSON("", career)
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Career ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newForecastCmd(root *rootOptions) *cobra.Command {
	var (
		id         int
		horizon    int
		experience string
		location   string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project salary and job-market demand for one career",
		Long: `Projects the yearly salary band and demand index of a career over the horizon for
the given experience level and location, together with its automation risk trajectory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app) error {
				analyzer, err := a.analyzer(ctx)
				if err != nil {
					return err
				}
				forecast, err := analyzer.ForecastCareer(ctx, id, horizon, experience, location)
				if err != nil {
					return err
				}
				if p := a.printer(); p != nil {
					p.PrintForecast(forecast)
				}
				return a.writeJSON(outPath, forecast)
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Career ID")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon in years (default from config)")
	cmd.Flags().StringVar(&experience, "experience", "", "Experience level: entry, mid, senior or lead (default entry)")
	cmd.Flags().StringVar(&location, "location", "", "Location used for the salary adjustment")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the forecast to this file instead of stdout")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
