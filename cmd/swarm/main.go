package main

import (
	"fmt"
	"os"

	"github.com/SwarmHayes/swarm-trading-bot/internal/cli"
	"github.com/SwarmHayes/swarm-trading-bot/internal/config"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
)

func main() {
	// The config flag is needed before cobra parses anything, since the
	// command tree is built from the loaded configuration.
	configDir := ""
	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			configDir = os.Args[i+1]
		}
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
