package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/logging"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
	"github.com/SwarmHayes/swarm-trading-bot/pkg/utils"
)

// AlphaVantageConfig holds client configuration.
type AlphaVantageConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration

	// BreakerThreshold is the number of consecutive transport failures
	// before the client fails fast; BreakerCooldown is how long it stays
	// that way before probing again. Zero values take defaults.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// AlphaVantageClient implements Provider against the Alpha Vantage query API.
type AlphaVantageClient struct {
	cfg     AlphaVantageConfig
	client  *http.Client
	logger  zerolog.Logger
	breaker *upstreamBreaker

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	payload   map[string]json.RawMessage
	expiresAt time.Time
}

// NewAlphaVantageClient creates a new Alpha Vantage client.
func NewAlphaVantageClient(cfg AlphaVantageConfig, logger zerolog.Logger) *AlphaVantageClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.alphavantage.co/query"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &AlphaVantageClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logging.WithComponent(logger, "marketdata"),
		breaker: newUpstreamBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
		cache:   make(map[string]cacheEntry),
	}
}

// request performs one API call and maps provider markers onto the
// failure taxonomy: "Note"/"Information" are rate limiting, "Error Message"
// means the provider had nothing, transport problems stay transport.
func (c *AlphaVantageClient) request(ctx context.Context, kind string, symbol models.Ticker, params url.Values) (map[string]json.RawMessage, error) {
	cacheKey := kind + ":" + symbol.String()
	if entry, ok := c.cached(cacheKey); ok {
		return entry, nil
	}

	if err := c.breaker.Allow(); err != nil {
		logging.LogDataFailure(c.logger, kind, symbol.String(), "breaker_open", err)
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrTransport, err)
	}

	params.Set("symbol", symbol.String())
	params.Set("apikey", c.cfg.APIKey)
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	retryCfg := utils.DefaultRetryConfig()
	retryCfg.Retryable = func(err error) bool {
		return swarmerrors.Is(err, swarmerrors.ErrTransport)
	}

	payload, err := utils.RetryWithResult(ctx, retryCfg, func() (map[string]json.RawMessage, error) {
		return c.fetch(ctx, kind, symbol, reqURL)
	})
	c.breaker.Record(err)
	if err != nil {
		return nil, err
	}

	c.store(cacheKey, payload)
	return payload, nil
}

func (c *AlphaVantageClient) fetch(ctx context.Context, kind string, symbol models.Ticker, reqURL string) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrTransport, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logging.LogDataFailure(c.logger, kind, symbol.String(), "transport", err)
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		logging.LogDataFailure(c.logger, kind, symbol.String(), "transport", err)
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrTransport, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.LogDataFailure(c.logger, kind, symbol.String(), "transport", err)
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrTransport, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		logging.LogDataFailure(c.logger, kind, symbol.String(), "malformed", err)
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrMalformedResponse, err)
	}

	// Rate-limit markers come back as 200s with an explanatory key.
	for _, marker := range []string{"Note", "Information"} {
		if raw, ok := payload[marker]; ok {
			logging.LogDataFailure(c.logger, kind, symbol.String(), "rate_limited", fmt.Errorf("%s", trimJSONString(raw)))
			return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrRateLimited, nil)
		}
	}
	if raw, ok := payload["Error Message"]; ok {
		logging.LogDataFailure(c.logger, kind, symbol.String(), "unavailable", fmt.Errorf("%s", trimJSONString(raw)))
		return nil, swarmerrors.NewDataError(kind, symbol.String(), swarmerrors.ErrDataUnavailable, nil)
	}

	return payload, nil
}

// GetQuote returns the latest quote snapshot.
func (c *AlphaVantageClient) GetQuote(ctx context.Context, symbol models.Ticker) (*models.Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")

	payload, err := c.request(ctx, "quote", symbol, params)
	if err != nil {
		return nil, err
	}

	raw, ok := payload["Global Quote"]
	if !ok {
		logging.LogDataFailure(c.logger, "quote", symbol.String(), "malformed", fmt.Errorf("missing Global Quote section"))
		return nil, swarmerrors.NewDataError("quote", symbol.String(), swarmerrors.ErrMalformedResponse, nil)
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, swarmerrors.NewDataError("quote", symbol.String(), swarmerrors.ErrMalformedResponse, err)
	}

	price, perr := strconv.ParseFloat(fields["05. price"], 64)
	volume, verr := strconv.ParseInt(fields["06. volume"], 10, 64)
	if perr != nil || verr != nil {
		return nil, swarmerrors.NewDataError("quote", symbol.String(), swarmerrors.ErrMalformedResponse, nil)
	}

	// "10. change percent" arrives as "1.2345%".
	changePct, _ := strconv.ParseFloat(strings.TrimSuffix(fields["10. change percent"], "%"), 64)

	return &models.Quote{
		Symbol:        symbol,
		Price:         price,
		Volume:        volume,
		ChangePercent: changePct,
		Timestamp:     time.Now(),
	}, nil
}

// GetDailySeries returns up to lookback daily sessions, most recent first.
func (c *AlphaVantageClient) GetDailySeries(ctx context.Context, symbol models.Ticker, lookback int) ([]models.PricePoint, error) {
	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	outputSize := "compact"
	if lookback > 100 {
		outputSize = "full"
	}
	params.Set("outputsize", outputSize)

	payload, err := c.request(ctx, "daily", symbol, params)
	if err != nil {
		return nil, err
	}

	raw, ok := payload["Time Series (Daily)"]
	if !ok {
		logging.LogDataFailure(c.logger, "daily", symbol.String(), "malformed", fmt.Errorf("missing Time Series (Daily) section"))
		return nil, swarmerrors.NewDataError("daily", symbol.String(), swarmerrors.ErrMalformedResponse, nil)
	}

	var series map[string]map[string]string
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, swarmerrors.NewDataError("daily", symbol.String(), swarmerrors.ErrMalformedResponse, err)
	}

	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if lookback > 0 && len(dates) > lookback {
		dates = dates[:lookback]
	}

	points := make([]models.PricePoint, 0, len(dates))
	for _, d := range dates {
		day := series[d]
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(day["1. open"], 64)
		high, _ := strconv.ParseFloat(day["2. high"], 64)
		low, _ := strconv.ParseFloat(day["3. low"], 64)
		cls, cerr := strconv.ParseFloat(day["4. close"], 64)
		vol, _ := strconv.ParseInt(day["5. volume"], 10, 64)
		if cerr != nil {
			// Sessions with an unparsable close degrade to partial data.
			continue
		}
		points = append(points, models.PricePoint{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: vol,
		})
	}

	if len(points) == 0 {
		return nil, swarmerrors.NewDataError("daily", symbol.String(), swarmerrors.ErrMalformedResponse, nil)
	}
	return points, nil
}

// GetFundamentals returns company fundamentals. Absent fields stay nil.
func (c *AlphaVantageClient) GetFundamentals(ctx context.Context, symbol models.Ticker) (*models.Fundamentals, error) {
	params := url.Values{}
	params.Set("function", "OVERVIEW")

	payload, err := c.request(ctx, "fundamentals", symbol, params)
	if err != nil {
		return nil, err
	}

	if _, ok := payload["Symbol"]; !ok {
		logging.LogDataFailure(c.logger, "fundamentals", symbol.String(), "unavailable", fmt.Errorf("empty overview"))
		return nil, swarmerrors.NewDataError("fundamentals", symbol.String(), swarmerrors.ErrDataUnavailable, nil)
	}

	f := &models.Fundamentals{Symbol: symbol}
	f.MarketCap = parseOptionalFloat(payload, "MarketCapitalization")
	f.ProfitMargin = parseOptionalFloat(payload, "ProfitMargin")
	f.RevenueGrowthYoY = parseOptionalFloat(payload, "QuarterlyRevenueGrowthYOY")
	f.TotalCash = parseOptionalFloat(payload, "TotalCash")
	f.TotalDebt = parseOptionalFloat(payload, "TotalDebt")
	return f, nil
}

// parseOptionalFloat reads a numeric overview field; "None", missing or
// unparsable values stay unknown rather than turning into zero.
func parseOptionalFloat(payload map[string]json.RawMessage, key string) *float64 {
	raw, ok := payload[key]
	if !ok {
		return nil
	}
	s := trimJSONString(raw)
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func trimJSONString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	return s
}

func (c *AlphaVantageClient) cached(key string) (map[string]json.RawMessage, bool) {
	if c.cfg.CacheTTL <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.payload, true
}

func (c *AlphaVantageClient) store(key string, payload map[string]json.RawMessage) {
	if c.cfg.CacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{payload: payload, expiresAt: time.Now().Add(c.cfg.CacheTTL)}
}
