package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

func newAlertsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show today's alerts",
		Example: `  swarm alerts
  swarm alerts --min-score 75`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not available")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			minScore, _ := cmd.Flags().GetInt("min-score")
			records, err := app.Store.GetTodaysAlerts(ctx, minScore)
			if err != nil {
				output.Error("Failed to load alerts: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Dim("No alerts today.")
				return nil
			}

			renderAlertTable(output, records)
			return nil
		},
	}
	cmd.Flags().Int("min-score", 0, "only show alerts at or above this total")
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <ticker>",
		Short: "Show alert history for a ticker",
		Example: `  swarm history NVDA
  swarm history PLTR --days 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not available")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			symbol, err := models.ParseTicker(args[0])
			if err != nil {
				output.Error("Invalid ticker: %v", err)
				return err
			}

			days, _ := cmd.Flags().GetInt("days")
			records, err := app.Store.GetTickerHistory(ctx, symbol, days)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			stats, err := app.Store.GetTickerStats(ctx, symbol)
			if err == nil && stats != nil {
				output.Bold("%s", symbol)
				output.Printf("  Alerts: %d | Last: %s | Avg: %.1f\n\n",
					stats.AlertCount, output.ScoreString(stats.LastScore), stats.AvgScore)
			}

			if len(records) == 0 {
				output.Dim("No alerts for %s in the last %d days.", symbol, days)
				return nil
			}

			renderAlertTable(output, records)
			return nil
		},
	}
	cmd.Flags().Int("days", 7, "trailing window in days")
	return cmd
}

func renderAlertTable(output *Output, records []models.AlertRecord) {
	table := NewTable(output, "TIME", "TICKER", "SCORE", "SEC", "TECH", "FIN", "NEWS", "TYPE", "CHANNEL")
	for _, r := range records {
		table.AddRow(
			r.CreatedAt.Format("01-02 15:04"),
			r.Symbol.String(),
			output.ScoreString(r.Total),
			fmt.Sprintf("%d", r.SECScore),
			fmt.Sprintf("%d", r.TechnicalScore),
			fmt.Sprintf("%d", r.FinancialScore),
			fmt.Sprintf("%d", r.NewsScore),
			r.AlertType,
			string(r.Channel),
		)
	}
	table.Render()
}
