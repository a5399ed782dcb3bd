package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/kmnx-league/internal/model"
)

func newScoreCmd() *cobra.Command {
	var score1, score2, kills1, kills2 string

	cmd := &cobra.Command{
		Use:   "score <match-id>",
		Short: "Record a match result",
		Long: `Record the score and kills of a match. The match may be given by a
unique prefix of its ID, as shown by "schedule" and "results".

Flags that are not given keep the match's current values. An empty value
clears the field, e.g. --score1= --score2= takes a result back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			current, err := app.LeagueController.Match(ctx, args[0])
			if err != nil {
				return err
			}

			update := model.ScoreUpdate{
				MatchID: current.ID,
				ScoreA:  current.ScoreA,
				ScoreB:  current.ScoreB,
				KillsA:  current.KillsA,
				KillsB:  current.KillsB,
			}
			fields := []struct {
				flag  string
				value string
				dst   *model.OptionalInt
			}{
				{"score1", score1, &update.ScoreA},
				{"score2", score2, &update.ScoreB},
				{"kills1", kills1, &update.KillsA},
				{"kills2", kills2, &update.KillsB},
			}
			for _, f := range fields {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				v := model.ParseOptionalInt(f.value)
				if !v.Valid() && strings.TrimSpace(f.value) != "" {
					return fmt.Errorf("--%s: %q is not a whole number", f.flag, f.value)
				}
				*f.dst = v
			}

			m, err := app.LeagueController.RecordScore(ctx, update)
			if err != nil {
				return fmt.Errorf("failed to record score: %w", err)
			}
			return out.Print(MatchView{Match: m, State: app.Classifier.Classify(m, app.LeagueController.Now())})
		},
	}

	cmd.Flags().StringVar(&score1, "score1", "", "Rounds won by the first team")
	cmd.Flags().StringVar(&score2, "score2", "", "Rounds won by the second team")
	cmd.Flags().StringVar(&kills1, "kills1", "", "Kills by the first team")
	cmd.Flags().StringVar(&kills2, "kills2", "", "Kills by the second team")

	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard stored edits and reload the league data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.LeagueController.Reset(cmd.Context()); err != nil {
				return err
			}
			out.PrintMessage("Stored edits discarded")
			return nil
		},
	}
}
