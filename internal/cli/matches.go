package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/kmnx-league/internal/services/league"
	"github.com/mcoot/kmnx-league/internal/services/results"
)

func newResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show live, upcoming and ended matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := resultsView(cmd.Context())
			if err != nil {
				return err
			}
			return out.Print(view)
		},
	}
}

func resultsView(ctx context.Context) (ResultsView, error) {
	buckets, err := app.LeagueController.Results(ctx)
	if err != nil {
		return ResultsView{}, err
	}
	return ResultsView{Buckets: buckets}, nil
}

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show every fixture in start order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.LeagueController.Schedule(cmd.Context())
			if err != nil {
				return err
			}
			return out.Print(ScheduleView{Matches: entries})
		},
	}

	cmd.AddCommand(newScheduleAddCmd())

	return cmd
}

func newScheduleAddCmd() *cobra.Command {
	var in league.NewMatch

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.TeamA == "" || in.TeamB == "" || in.Date == "" || in.Time == "" {
				return fmt.Errorf("--team1, --team2, --date, and --time are required")
			}

			m, err := app.LeagueController.ScheduleMatch(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to schedule match: %w", err)
			}
			return out.Print(MatchView{Match: m, State: app.Classifier.Classify(m, app.LeagueController.Now())})
		},
	}

	cmd.Flags().StringVar(&in.TeamA, "team1", "", "First team (required)")
	cmd.Flags().StringVar(&in.TeamB, "team2", "", "Second team (required)")
	cmd.Flags().StringVar(&in.Date, "date", "", "Match date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&in.Time, "time", "", "Start time, HH:MM (required)")
	cmd.Flags().StringVar(&in.Map, "map", "", "Map (default \""+league.DefaultMap+"\")")

	return cmd
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next match and the countdown to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := nextView(cmd.Context())
			if err != nil {
				return err
			}
			return out.Print(view)
		},
	}
}

func nextView(ctx context.Context) (NextView, error) {
	entry, ok, err := app.LeagueController.Next(ctx)
	if err != nil {
		return NextView{}, err
	}
	if !ok {
		return NextView{Countdown: "-"}, nil
	}

	countdown := "-"
	if entry.Scheduled() {
		countdown = results.Countdown(entry.Start, app.LeagueController.Now())
	}
	return NextView{Next: &entry, Countdown: countdown}, nil
}
