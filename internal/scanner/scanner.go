// Package scanner runs the periodic swarm-score sweep over candidate
// tickers.
package scanner

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/SwarmHayes/swarm-trading-bot/internal/alert"
	"github.com/SwarmHayes/swarm-trading-bot/internal/config"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

// Scorer computes a swarm score for a ticker.
type Scorer interface {
	Score(ctx context.Context, symbol models.Ticker) models.SwarmScore
}

// Scanner scores every candidate ticker and dispatches qualifying
// alerts. One run at a time: a tick that fires while the previous
// sweep is still going is skipped rather than stacked.
type Scanner struct {
	cfg        config.ScannerConfig
	scorer     Scorer
	dispatcher *alert.Dispatcher
	watched    WatchedTickerSource
	logger     zerolog.Logger

	group   singleflight.Group
	running atomic.Bool
}

// NewScanner creates a scanner.
func NewScanner(cfg config.ScannerConfig, scorer Scorer, dispatcher *alert.Dispatcher, watched WatchedTickerSource, logger zerolog.Logger) *Scanner {
	return &Scanner{
		cfg:        cfg,
		scorer:     scorer,
		dispatcher: dispatcher,
		watched:    watched,
		logger:     logging.WithComponent(logger, "scanner"),
	}
}

// Name implements Job.
func (s *Scanner) Name() string {
	return "swarm-scan"
}

// Run implements Job. It performs one full sweep.
func (s *Scanner) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn().Msg("Previous scan still running, skipping")
		return nil
	}
	defer s.running.Store(false)

	candidates := collectCandidates(ctx, s.cfg.WatchFiles, s.watched, s.logger)
	if len(candidates) == 0 {
		s.logger.Debug().Msg("No candidates to scan")
		return nil
	}

	s.logger.Info().Int("candidates", len(candidates)).Msg("Scan started")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	var sent, suppressed atomic.Int64
	for _, c := range candidates {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decision, err := s.scanOne(gctx, c)
			if err != nil {
				// A single ticker's failure should not abort the sweep.
				s.logger.Error().
					Err(err).
					Str("ticker", c.Symbol.String()).
					Msg("Scan failed for ticker")
				return nil
			}
			if decision != nil {
				if decision.Suppressed {
					suppressed.Add(1)
				} else {
					sent.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().
		Int("candidates", len(candidates)).
		Int64("alerts_sent", sent.Load()).
		Int64("suppressed", suppressed.Load()).
		Msg("Scan complete")
	return nil
}

// scanOne scores a candidate and dispatches the result. Scores for the
// same ticker coalesce through singleflight so a ticker nominated by
// several sources is fetched once per sweep.
func (s *Scanner) scanOne(ctx context.Context, c Candidate) (*alert.Decision, error) {
	v, err, _ := s.group.Do(c.Symbol.String(), func() (interface{}, error) {
		return s.scorer.Score(ctx, c.Symbol), nil
	})
	if err != nil {
		return nil, err
	}
	score := v.(models.SwarmScore)

	if score.Total < s.cfg.MinScore {
		s.logger.Debug().
			Str("ticker", c.Symbol.String()).
			Int("total", score.Total).
			Msg("Below minimum score")
		return nil, nil
	}

	return s.dispatcher.Dispatch(ctx, score, c.AlertType)
}
