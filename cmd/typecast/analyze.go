package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/typecast/internal/analysis"
	"github.com/MikeSquared-Agency/typecast/internal/chart"
	"github.com/MikeSquared-Agency/typecast/internal/config"
	"github.com/MikeSquared-Agency/typecast/internal/mbti"
	"github.com/MikeSquared-Agency/typecast/internal/router"
	"github.com/MikeSquared-Agency/typecast/internal/session"
)

func newAnalyzeCmd(cfg *config.Config) *cobra.Command {
	var speakers []string
	var chartPath string

	cmd := &cobra.Command{
		Use:   "analyze <chat-log>",
		Short: "Profile speakers of a chat log once and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, err := newCompleter(cfg)
			if err != nil {
				return err
			}
			logger := slog.Default()
			svc := session.NewService(
				analysis.New(completer, logger),
				router.New(completer, chart.PlotlyRenderer{}, logger),
				nil,
				logger,
			)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer f.Close()

			st := &session.State{ID: "cli"}
			found, err := svc.SubmitLog(st, f)
			if err != nil {
				return err
			}
			if len(speakers) == 0 {
				speakers = found
			}
			if err := svc.SelectSpeakers(st, speakers); err != nil {
				return err
			}
			ac, err := svc.RunAnalysis(cmd.Context(), st, cfg.APIKey)
			if err != nil {
				return err
			}

			printProfiles(cmd, ac.Profiles)

			if chartPath != "" {
				layout, err := chart.Build(ac.Profiles)
				if err != nil {
					return err
				}
				fig, err := chart.PlotlyRenderer{}.Render(cmd.Context(), layout)
				if err != nil {
					return err
				}
				if err := os.WriteFile(chartPath, fig, 0o644); err != nil {
					return fmt.Errorf("write chart: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", chartPath)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&speakers, "speaker", "s", nil, "speaker to analyze (repeatable; default all)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write a Plotly figure JSON to this path")
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "inference credential")
	cmd.Flags().Float64Var(&cfg.Temperature, "temperature", cfg.Temperature, "sampling temperature")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "inference timeout")
	return cmd
}

func printProfiles(cmd *cobra.Command, profiles []mbti.Profile) {
	out := cmd.OutOrStdout()
	for _, p := range profiles {
		scores := make([]string, len(p.Scores))
		for i, s := range p.Scores {
			scores[i] = fmt.Sprint(s)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", p.Name, p.Type, strings.Join(scores, ","))
	}
	if len(profiles) == 2 {
		fmt.Fprintf(out, "compatibility\t%d\n", mbti.Compatibility(profiles[0].Scores, profiles[1].Scores))
	}
}
