// Package cli provides the command-line interface for the swarm bot.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SwarmHayes/swarm-trading-bot/internal/alert"
	"github.com/SwarmHayes/swarm-trading-bot/internal/config"
	"github.com/SwarmHayes/swarm-trading-bot/internal/filings"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/marketdata"
	"github.com/SwarmHayes/swarm-trading-bot/internal/news"
	"github.com/SwarmHayes/swarm-trading-bot/internal/notify"
	"github.com/SwarmHayes/swarm-trading-bot/internal/scoring"
	"github.com/SwarmHayes/swarm-trading-bot/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Store      store.DataStore
	Provider   marketdata.Provider
	Scorer     *scoring.SwarmScorer
	Registry   *notify.TierRegistry
	Dispatcher *alert.Dispatcher
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Provider = marketdata.NewAlphaVantageClient(marketdata.AlphaVantageConfig{
		APIKey:   cfg.MarketData.APIKey,
		BaseURL:  cfg.MarketData.BaseURL,
		Timeout:  cfg.MarketData.Timeout,
		CacheTTL: cfg.MarketData.CacheTTL,
	}, logger)

	extractor := filings.NewExtractor(cfg.Filings.Dir, logger)
	feed := news.NewFileFeed(cfg.News.FeedPath)
	app.Scorer = scoring.NewSwarmScorer(app.Provider, extractor, feed, logger)

	dataStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, some features may be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	app.Registry = notify.NewTierRegistryFromConfig(cfg.Alerts.Webhooks)

	if app.Store != nil {
		router := alert.NewRouter(app.Store, alert.RouterConfig{
			MinScore:         cfg.Scanner.MinScore,
			DedupWindowHours: cfg.Alerts.DedupWindowHours,
			DedupDelta:       cfg.Alerts.DedupDelta,
		}, logger)
		app.Dispatcher = alert.NewDispatcher(router, app.Registry, app.Store, logger)
	}

	rootCmd := &cobra.Command{
		Use:   "swarm",
		Short: "Swarm bot - multi-factor stock opportunity scoring",
		Long: `Swarm bot scores stock opportunities by combining SEC filing signals,
technical setup, balance-sheet strength, and news urgency into a single
0-100 composite. High scores route to tiered alert channels.

Use 'swarm score TICKER' for an on-demand breakdown, or 'swarm scan'
to run the scheduled sweep over scanner output and watchlists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/swarm-bot)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newScoreCmd(app))
	rootCmd.AddCommand(newWatchCmd(app))
	rootCmd.AddCommand(newUnwatchCmd(app))
	rootCmd.AddCommand(newWatchlistCmd(app))
	rootCmd.AddCommand(newTrendingCmd(app))
	rootCmd.AddCommand(newAlertsCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newScanCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Swarm bot v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}
