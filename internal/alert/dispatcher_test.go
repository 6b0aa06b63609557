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

type fakeSender struct {
	sent []struct {
		tier models.ChannelTier
		text string
	}
	err error
}

func (f *fakeSender) SendTier(_ context.Context, tier models.ChannelTier, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct {
		tier models.ChannelTier
		text string
	}{tier, text})
	return nil
}

func TestDispatchSendsAndPersists(t *testing.T) {
	store := &fakeHistory{}
	sender := &fakeSender{}
	d := NewDispatcher(NewRouter(store, DefaultRouterConfig(), zerolog.Nop()), sender, store, zerolog.Nop())

	decision, err := d.Dispatch(context.Background(), score("NVDA", 92), "momentum")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if decision.Suppressed {
		t.Fatal("unexpected suppression")
	}
	if len(sender.sent) != 1 || sender.sent[0].tier != models.TierCritical {
		t.Errorf("sent = %+v", sender.sent)
	}
	if len(store.saved) != 1 || store.saved[0].Total != 92 {
		t.Errorf("saved = %+v", store.saved)
	}
}

func TestDispatchSuppressedSkipsSendAndSave(t *testing.T) {
	store := &fakeHistory{
		recent: []models.AlertRecord{{Symbol: "NVDA", Total: 91, CreatedAt: time.Now().Add(-time.Hour)}},
	}
	sender := &fakeSender{}
	d := NewDispatcher(NewRouter(store, DefaultRouterConfig(), zerolog.Nop()), sender, store, zerolog.Nop())

	decision, err := d.Dispatch(context.Background(), score("NVDA", 92), "momentum")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !decision.Suppressed {
		t.Fatal("expected suppression")
	}
	if len(sender.sent) != 0 {
		t.Error("suppressed alert was sent")
	}
	if len(store.saved) != 0 {
		t.Error("suppressed alert was saved")
	}
}

func TestDispatchSendFailureSkipsSave(t *testing.T) {
	store := &fakeHistory{}
	sender := &fakeSender{err: errors.New("webhook down")}
	d := NewDispatcher(NewRouter(store, DefaultRouterConfig(), zerolog.Nop()), sender, store, zerolog.Nop())

	_, err := d.Dispatch(context.Background(), score("NVDA", 92), "momentum")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(store.saved) != 0 {
		t.Error("failed send still persisted a record")
	}
}

func TestDispatchSaveFailureSurfaces(t *testing.T) {
	store := &fakeHistory{saveErr: errors.New("disk full")}
	sender := &fakeSender{}
	d := NewDispatcher(NewRouter(store, DefaultRouterConfig(), zerolog.Nop()), sender, store, zerolog.Nop())

	_, err := d.Dispatch(context.Background(), score("NVDA", 92), "momentum")
	if err == nil {
		t.Fatal("expected error")
	}
	if !swarmerrors.Is(err, swarmerrors.ErrPersistence) {
		t.Errorf("error %v does not wrap ErrPersistence", err)
	}
	// At-least-once delivery: the alert did go out even though the
	// record was lost.
	if len(sender.sent) != 1 {
		t.Errorf("sent = %+v", sender.sent)
	}
}
