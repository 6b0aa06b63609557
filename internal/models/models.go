// Package models provides domain models for the swarm scoring engine.
package models

import (
	"fmt"
	"time"
)

// Ticker is an uppercase alphanumeric stock symbol, 1-10 characters.
type Ticker string

// ParseTicker validates and normalizes a raw symbol into a Ticker.
func ParseTicker(raw string) (Ticker, error) {
	if len(raw) == 0 || len(raw) > 10 {
		return "", fmt.Errorf("invalid ticker %q: must be 1-10 characters", raw)
	}
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return "", fmt.Errorf("invalid ticker %q: non-alphanumeric character %q", raw, c)
		}
		out[i] = c
	}
	return Ticker(out), nil
}

func (t Ticker) String() string {
	return string(t)
}

// PricePoint represents OHLCV data for one trading session.
// Series are ordered most-recent-first throughout the engine.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Quote represents a market snapshot as of the last trade.
type Quote struct {
	Symbol        Ticker
	Price         float64
	Volume        int64
	ChangePercent float64
	Timestamp     time.Time
}

// Fundamentals holds company fundamental data. Nil fields are unknown,
// which is distinct from zero.
type Fundamentals struct {
	Symbol           Ticker
	MarketCap        *float64
	ProfitMargin     *float64
	RevenueGrowthYoY *float64
	TotalCash        *float64
	TotalDebt        *float64
}

// FilingType identifies a regulatory filing form.
type FilingType string

const (
	Filing8K  FilingType = "8-K"
	Filing10K FilingType = "10-K"
	Filing10Q FilingType = "10-Q"
	FilingS1  FilingType = "S-1"
)

// FilingTypes lists the filing forms the extractor scans.
var FilingTypes = []FilingType{Filing8K, Filing10K, Filing10Q, FilingS1}

// FilingDocument is a locally stored regulatory filing. Produced
// externally; read-only to the scoring engine.
type FilingDocument struct {
	Symbol     Ticker
	Type       FilingType
	Text       string
	ModifiedAt time.Time
}
