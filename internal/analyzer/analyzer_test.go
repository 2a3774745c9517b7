package analyzer

import (
	"context"
	"errors"
	"math"
	"testing"

	"TradeScout/internal/collector"
	"TradeScout/internal/config"
	"TradeScout/internal/model"
	"TradeScout/internal/strategy"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("testdata/does-not-exist.yaml")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return cfg
}

func bullishSnapshot(rsi float64) *model.TimeframeSnapshot {
	return &model.TimeframeSnapshot{
		Open:    1990,
		High:    2005,
		Low:     1985,
		Close:   2000,
		RSI:     &rsi,
		ATR:     3.0,
		Summary: "BUY",
	}
}

func newAnalyzer(cfg *config.Config, fetcher collector.Fetcher) *PairAnalyzer {
	return NewPairAnalyzer(collector.NewCollector(fetcher, cfg.Timeframes, cfg.PrimaryTimeframe), cfg)
}

func TestAnalyze_BullishSetup(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: bullishSnapshot(62),
			model.Timeframe4H:    bullishSnapshot(60),
			model.Timeframe1H:    bullishSnapshot(58),
			model.Timeframe15M:   bullishSnapshot(57),
		},
	}

	setup, err := newAnalyzer(cfg, fetcher).Analyze(context.Background(), "XAUUSD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setup.Bias != model.BiasBullish {
		t.Fatalf("expected BULLISH, got %s", setup.Bias)
	}

	// stop distance = max(50*0.01, 3.0*1.5) = 4.5 below entry
	if math.Abs(setup.StopDistance-4.5) > 1e-9 {
		t.Errorf("expected stop distance 4.5, got %.4f", setup.StopDistance)
	}
	if math.Abs((setup.Entry-setup.StopLoss)-4.5) > 1e-9 {
		t.Errorf("expected stop 4.5 below entry, got entry=%.2f stop=%.2f", setup.Entry, setup.StopLoss)
	}

	// Minimum-pip invariant
	if setup.RiskPips() < 50 {
		t.Errorf("minimum-pip invariant violated: %.1f pips", setup.RiskPips())
	}
	// Volatility-floor invariant
	if math.Abs(setup.Entry-setup.StopLoss) < setup.ATR*cfg.Trade.ATRMultiplier-1e-9 {
		t.Errorf("volatility-floor invariant violated")
	}
	// Ordering
	if !(setup.StopLoss < setup.Entry && setup.Entry < setup.TakeProfit[0] &&
		setup.TakeProfit[0] < setup.TakeProfit[1] && setup.TakeProfit[1] < setup.TakeProfit[2]) {
		t.Errorf("bullish ordering violated: %+v", setup)
	}
	if setup.Verdict == nil || len(setup.Verdict.Votes) != 4 {
		t.Errorf("expected verdict with 4 votes")
	}
}

func TestAnalyze_MissingSecondaryTimeframe(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: bullishSnapshot(62),
			model.Timeframe4H:    bullishSnapshot(60),
			model.Timeframe1H:    bullishSnapshot(58),
		},
		Fail: map[model.Timeframe]bool{model.Timeframe15M: true},
	}

	setup, err := newAnalyzer(cfg, fetcher).Analyze(context.Background(), "XAUUSD")
	if err != nil {
		t.Fatalf("missing 15M data alone must not reject the pair: %v", err)
	}
	if setup.Bias != model.BiasBullish {
		t.Errorf("expected BULLISH from remaining timeframes, got %s", setup.Bias)
	}
}

func TestAnalyze_MissingPrimaryTimeframe(t *testing.T) {
	cfg := testConfig(t)
	fetcher := &collector.MockFetcher{
		Fail: map[model.Timeframe]bool{cfg.PrimaryTimeframe: true},
	}
	if _, err := newAnalyzer(cfg, fetcher).Analyze(context.Background(), "XAUUSD"); !errors.Is(err, collector.ErrPrimaryUnavailable) {
		t.Errorf("expected ErrPrimaryUnavailable, got %v", err)
	}
}

func TestAnalyze_NeutralMarket(t *testing.T) {
	cfg := testConfig(t)
	rsi := 50.0
	flat := &model.TimeframeSnapshot{Open: 2000, High: 2001, Low: 1999, Close: 2000, RSI: &rsi, ATR: 1}
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: flat,
			model.Timeframe4H:    flat,
			model.Timeframe1H:    flat,
			model.Timeframe15M:   flat,
		},
	}

	setup, err := newAnalyzer(cfg, fetcher).Analyze(context.Background(), "XAUUSD")
	if !errors.Is(err, strategy.ErrNoSignal) {
		t.Errorf("expected ErrNoSignal, got %v", err)
	}
	if setup != nil {
		t.Error("neutral market must not produce a setup")
	}
}

func TestAnalyze_ZeroATRFailsLevels(t *testing.T) {
	cfg := testConfig(t)
	bad := bullishSnapshot(62)
	bad.ATR = 0
	fetcher := &collector.MockFetcher{
		Snapshots: map[model.Timeframe]*model.TimeframeSnapshot{
			model.TimeframeDaily: bullishSnapshot(62),
			model.Timeframe4H:    bullishSnapshot(60),
			model.Timeframe1H:    bad,
			model.Timeframe15M:   bullishSnapshot(57),
		},
	}

	setup, err := newAnalyzer(cfg, fetcher).Analyze(context.Background(), "XAUUSD")
	if !errors.Is(err, strategy.ErrInvalidLevels) {
		t.Errorf("expected ErrInvalidLevels for zero ATR, got %v", err)
	}
	if setup != nil {
		t.Error("zero ATR must not produce a setup")
	}
}

func TestAnalyze_UnknownInstrument(t *testing.T) {
	cfg := testConfig(t)
	if _, err := newAnalyzer(cfg, &collector.MockFetcher{}).Analyze(context.Background(), "DOGEUSD"); err == nil {
		t.Error("expected error for unknown instrument")
	}
}
