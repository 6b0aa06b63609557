package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	swarmerrors "github.com/SwarmHayes/swarm-trading-bot/internal/errors"
	"github.com/SwarmHayes/swarm-trading-bot/internal/models"
)

type fakeHistory struct {
	recent  []models.AlertRecord
	saved   []*models.AlertRecord
	getErr  error
	saveErr error
}

func (f *fakeHistory) SaveAlert(_ context.Context, record *models.AlertRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeHistory) GetRecentAlerts(_ context.Context, _ models.Ticker, _ int) ([]models.AlertRecord, error) {
	return f.recent, f.getErr
}

func score(symbol models.Ticker, total int) models.SwarmScore {
	return models.SwarmScore{
		Symbol:     symbol,
		Total:      total,
		Confidence: models.ConfidenceModerate,
		SEC:        models.SubScore{Value: total * 40 / 100, Max: models.MaxSECScore},
		Technical:  models.SubScore{Value: total * 35 / 100, Max: models.MaxTechnicalScore},
		Financial:  models.SubScore{Value: total * 15 / 100, Max: models.MaxFinancialScore},
		News:       models.SubScore{Value: total * 10 / 100, Max: models.MaxNewsScore},
		Timestamp:  time.Now(),
	}
}

func TestTierForBoundaries(t *testing.T) {
	tests := []struct {
		total    int
		wantTier models.ChannelTier
		wantOK   bool
	}{
		{100, models.TierCritical, true},
		{90, models.TierCritical, true},
		{89, models.TierActive, true},
		{75, models.TierActive, true},
		{74, models.TierWatchlist, true},
		{60, models.TierWatchlist, true},
		{59, "", false},
		{0, "", false},
	}

	for _, tt := range tests {
		tier, ok := TierFor(tt.total)
		if tier != tt.wantTier || ok != tt.wantOK {
			t.Errorf("TierFor(%d) = (%s, %v), want (%s, %v)",
				tt.total, tier, ok, tt.wantTier, tt.wantOK)
		}
	}
}

func TestRouteBelowMinimum(t *testing.T) {
	store := &fakeHistory{}
	r := NewRouter(store, DefaultRouterConfig(), zerolog.Nop())

	decision, err := r.Route(context.Background(), score("TEST", 59))
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if !decision.Suppressed {
		t.Error("expected suppression below minimum")
	}
}

func TestRouteDeduplication(t *testing.T) {
	tests := []struct {
		name           string
		priorTotal     int
		newTotal       int
		wantSuppressed bool
	}{
		{"near-duplicate suppressed", 82, 85, true},
		{"large delta routes", 82, 90, false},
		{"exact delta of 5 routes", 82, 87, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeHistory{
				recent: []models.AlertRecord{{
					Symbol:    "X",
					Total:     tt.priorTotal,
					CreatedAt: time.Now().Add(-2 * time.Hour),
				}},
			}
			r := NewRouter(store, DefaultRouterConfig(), zerolog.Nop())

			decision, err := r.Route(context.Background(), score("X", tt.newTotal))
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			if decision.Suppressed != tt.wantSuppressed {
				t.Errorf("suppressed = %v, want %v (reason %q)",
					decision.Suppressed, tt.wantSuppressed, decision.Reason)
			}
		})
	}
}

func TestRouteOutsideWindowNotSuppressed(t *testing.T) {
	// The store only returns alerts inside the window; an empty result
	// must route regardless of what happened before it.
	store := &fakeHistory{}
	r := NewRouter(store, DefaultRouterConfig(), zerolog.Nop())

	decision, err := r.Route(context.Background(), score("X", 83))
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if decision.Suppressed {
		t.Error("expected routing with no in-window history")
	}
	if decision.Tier != models.TierActive {
		t.Errorf("tier = %s, want active", decision.Tier)
	}
}

func TestRouteSurfacesPersistenceError(t *testing.T) {
	store := &fakeHistory{getErr: errors.New("disk full")}
	r := NewRouter(store, DefaultRouterConfig(), zerolog.Nop())

	_, err := r.Route(context.Background(), score("X", 80))
	if err == nil {
		t.Fatal("expected error")
	}
	if !swarmerrors.Is(err, swarmerrors.ErrPersistence) {
		t.Errorf("error %v does not wrap ErrPersistence", err)
	}
}

func TestRouteMessagePerTier(t *testing.T) {
	store := &fakeHistory{}
	r := NewRouter(store, DefaultRouterConfig(), zerolog.Nop())

	decision, err := r.Route(context.Background(), score("NVDA", 92))
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if decision.Tier != models.TierCritical {
		t.Errorf("tier = %s, want critical", decision.Tier)
	}
	if decision.Message == "" {
		t.Error("expected formatted message")
	}
}

func TestNewRecordCarriesBreakdown(t *testing.T) {
	s := score("NVDA", 92)
	record := NewRecord(s, models.TierCritical, "momentum")

	if record.ID == "" {
		t.Error("expected generated ID")
	}
	if record.Symbol != "NVDA" || record.Total != 92 {
		t.Errorf("record %+v", record)
	}
	if record.SECScore != s.SEC.Value || record.TechnicalScore != s.Technical.Value {
		t.Error("sub-scores not carried over")
	}
	if record.Channel != models.TierCritical || record.AlertType != "momentum" {
		t.Errorf("channel/type = %s/%s", record.Channel, record.AlertType)
	}
}
