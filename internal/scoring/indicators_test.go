package scoring

import (
	"math"
	"testing"
)

func TestRSIInsufficientData(t *testing.T) {
	closes := []float64{100, 101, 102}
	if _, ok := rsi(closes, 14); ok {
		t.Error("expected undefined RSI for short series")
	}
	if _, ok := rsi(nil, 14); ok {
		t.Error("expected undefined RSI for empty series")
	}
	if _, ok := rsi(closes, 0); ok {
		t.Error("expected undefined RSI for zero period")
	}
}

func TestRSIAllGainsUndefined(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if _, ok := rsi(closes, 14); ok {
		t.Error("zero average loss must leave RSI undefined")
	}
}

func TestRSIAllLossesIsZero(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	value, ok := rsi(closes, 14)
	if !ok {
		t.Fatal("expected defined RSI")
	}
	if value != 0 {
		t.Errorf("all-loss RSI = %.2f, want 0", value)
	}
}

func TestRSIBalancedNearFifty(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		if i%2 == 0 {
			closes[i] = 100
		} else {
			closes[i] = 101
		}
	}
	value, ok := rsi(closes, 14)
	if !ok {
		t.Fatal("expected defined RSI")
	}
	if math.Abs(value-50) > 10 {
		t.Errorf("balanced RSI = %.2f, want near 50", value)
	}
}

func TestSMA(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	if got := sma(values, 2); got != 15 {
		t.Errorf("sma(2) = %.2f, want 15", got)
	}
	if got := sma(values, 4); got != 25 {
		t.Errorf("sma(4) = %.2f, want 25", got)
	}
	if got := sma(values, 5); got != 0 {
		t.Errorf("sma beyond length = %.2f, want 0", got)
	}
}
