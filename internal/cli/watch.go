package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/kmnx-league/internal/refresh"
)

// watchViews are the pages watch can keep on screen
var watchViews = map[string]func(context.Context) (any, error){
	"leaderboard": func(ctx context.Context) (any, error) { return leaderboardView(ctx) },
	"results":     func(ctx context.Context) (any, error) { return resultsView(ctx) },
	"next":        func(ctx context.Context) (any, error) { return nextView(ctx) },
}

func newWatchCmd() *cobra.Command {
	var interval, limit time.Duration

	cmd := &cobra.Command{
		Use:       "watch [leaderboard|results|next]",
		Short:     "Re-render a view on an interval",
		ValidArgs: []string{"leaderboard", "results", "next"},
		Long: `Re-render the leaderboard, results or next match view every interval,
so live matches move to ended as their window closes. Defaults to next.

Press Ctrl+C to stop.`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "next"
			if len(args) == 1 {
				name = args[0]
			}
			if !cmd.Flags().Changed("interval") {
				interval = settings.Watch.Interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if limit > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, limit)
				defer cancel()
			}

			return watch(ctx, cmd, name, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (env: KMNX_WATCH_INTERVAL, default 10s)")
	cmd.Flags().DurationVar(&limit, "for", 0, "Stop after this long (default: until interrupted)")

	return cmd
}

func watch(ctx context.Context, cmd *cobra.Command, name string, interval time.Duration) error {
	render := watchViews[name]

	runner, err := refresh.New(app.Logger)
	if err != nil {
		return err
	}

	// A failed read ends the watch rather than leaving a stale view up
	failures := make(chan error, 1)
	_, err = runner.Every("watch-"+name, interval, func() {
		view, err := render(ctx)
		if err == nil {
			if cfg.Output == FormatText {
				fmt.Fprintf(cmd.OutOrStdout(), "\n== %s @ %s ==\n", name, app.LeagueController.Now().In(app.Classifier.Location()).Format("2006-01-02 15:04:05"))
			}
			err = out.Print(view)
		}
		if err != nil {
			select {
			case failures <- err:
			default:
			}
		}
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runner.Start()
		<-gctx.Done()
		return runner.Stop()
	})
	g.Go(func() error {
		select {
		case err := <-failures:
			return fmt.Errorf("failed to refresh %s: %w", name, err)
		case <-gctx.Done():
			return nil
		}
	})
	return g.Wait()
}
