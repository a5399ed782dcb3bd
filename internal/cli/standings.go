package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/kmnx-league/internal/services/standings"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"table", "standings"},
		Short:   "Show the league table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := leaderboardView(cmd.Context())
			if err != nil {
				return err
			}
			return out.Print(view)
		},
	}
}

func leaderboardView(ctx context.Context) (LeaderboardView, error) {
	rows, err := app.LeagueController.Leaderboard(ctx)
	if err != nil {
		return LeaderboardView{}, err
	}
	return LeaderboardView{Leader: standings.Leader(rows), Rows: rows}, nil
}

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Show every team with its record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.LeagueController.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			return out.Print(TeamsView{Teams: rows})
		},
	}
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newTeamAddCmd())

	return cmd
}

func newTeamAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := app.LeagueController.AddTeam(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add team: %w", err)
			}
			return out.Print(TeamView{Team: team})
		},
	}
}
