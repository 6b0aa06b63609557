package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

const defaultUserID = "local"

func newWatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <ticker>",
		Short: "Add a ticker to your watchlist",
		Long: `Add a ticker to your watchlist. Watched tickers are scored on every
scheduled sweep. Adding a ticker you already watch is a no-op.`,
		Example: `  swarm watch NVDA
  swarm watch PLTR --notes "unusual volume friday"`,
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

			user, _ := cmd.Flags().GetString("user")
			notes, _ := cmd.Flags().GetString("notes")

			if err := app.Store.AddToWatchlist(ctx, user, symbol, notes); err != nil {
				output.Error("Failed to add %s: %v", symbol, err)
				return err
			}
			output.Success("✓ Watching %s", symbol)
			return nil
		},
	}
	cmd.Flags().String("user", defaultUserID, "watchlist owner")
	cmd.Flags().String("notes", "", "notes to attach to the entry")
	return cmd
}

func newUnwatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unwatch <ticker>",
		Short:   "Remove a ticker from your watchlist",
		Example: `  swarm unwatch NVDA`,
		Args:    cobra.ExactArgs(1),
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

			user, _ := cmd.Flags().GetString("user")
			if err := app.Store.RemoveFromWatchlist(ctx, user, symbol); err != nil {
				output.Error("Failed to remove %s: %v", symbol, err)
				return err
			}
			output.Success("✓ Stopped watching %s", symbol)
			return nil
		},
	}
	cmd.Flags().String("user", defaultUserID, "watchlist owner")
	return cmd
}

func newWatchlistCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Show your watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not available")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			user, _ := cmd.Flags().GetString("user")
			entries, err := app.Store.GetWatchlist(ctx, user)
			if err != nil {
				output.Error("Failed to load watchlist: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}
			if len(entries) == 0 {
				output.Dim("Watchlist is empty. Add tickers with 'swarm watch TICKER'.")
				return nil
			}

			table := NewTable(output, "TICKER", "ADDED", "NOTES")
			for _, e := range entries {
				table.AddRow(e.Symbol.String(), e.AddedAt.Format("2006-01-02"), e.Notes)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("user", defaultUserID, "watchlist owner")
	return cmd
}

func newTrendingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show the most-watched tickers this week",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not available")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			trending, err := app.Store.GetCommunityTrending(ctx, limit)
			if err != nil {
				output.Error("Failed to load trending tickers: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trending)
			}
			if len(trending) == 0 {
				output.Dim("No watch activity in the last 7 days.")
				return nil
			}

			table := NewTable(output, "TICKER", "WATCHERS", "LAST WATCHED")
			for _, t := range trending {
				table.AddRow(t.Symbol.String(),
					fmt.Sprintf("%d", t.WatchCount),
					t.LastWatched.Format("2006-01-02 15:04"))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Int("limit", 10, "maximum tickers to show")
	return cmd
}
