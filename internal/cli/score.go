package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/SwarmHayes/swarm-trading-bot/internal/alert"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

func newScoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "score <ticker>",
		Short: "Compute the swarm score for a ticker",
		Long: `Compute the full swarm score breakdown for a ticker.

The score combines four weighted components: SEC filing signals (40%),
technical setup (35%), balance-sheet strength (15%), and news urgency
(10%). Missing data zeroes a component rather than failing the score.`,
		Example: `  swarm score NVDA
  swarm score AAPL --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			symbol, err := models.ParseTicker(args[0])
			if err != nil {
				output.Error("Invalid ticker: %v", err)
				return err
			}

			score := app.Scorer.Score(ctx, symbol)

			if output.IsJSON() {
				return output.JSON(score)
			}
			output.Println(alert.FormatBreakdown(score))
			return nil
		},
	}
}
