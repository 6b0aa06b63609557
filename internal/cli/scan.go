package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SwarmHayes/swarm-trading-bot/internal/notify"
	"github.com/SwarmHayes/swarm-trading-bot/internal/scanner"
)

func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the swarm-score sweep",
		Long: `Run the swarm-score sweep over scanner output files and watched
tickers. By default the sweep runs on the configured schedule until
interrupted; --once runs a single sweep and exits.`,
		Example: `  swarm scan --once
  swarm scan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil || app.Dispatcher == nil {
				return fmt.Errorf("store not available")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if echo, _ := cmd.Flags().GetBool("echo"); echo {
				app.Registry.AddBroadcast(notify.NewTerminalChannelWithWriter(cmd.OutOrStdout()))
			}

			sweep := scanner.NewScanner(app.Config.Scanner, app.Scorer, app.Dispatcher, app.Store, app.Logger)

			once, _ := cmd.Flags().GetBool("once")
			if once {
				return sweep.Run(ctx)
			}

			sched := scanner.NewScheduler(ctx, app.Logger)
			if err := sched.AddJob(app.Config.Scanner.Schedule, sweep); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", app.Config.Scanner.Schedule, err)
			}
			sched.Start()
			output.Info("Scanning on schedule %q. Press Ctrl+C to stop.", app.Config.Scanner.Schedule)

			<-ctx.Done()
			sched.Stop()
			return nil
		},
	}
	cmd.Flags().Bool("once", false, "run a single sweep and exit")
	cmd.Flags().Bool("echo", false, "print every alert to the terminal as well")
	return cmd
}
