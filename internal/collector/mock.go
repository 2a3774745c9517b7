package collector

import (
	"context"
	"fmt"
	"time"

	"TradeScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Snapshots maps timeframe labels to canned snapshots; Fail marks timeframes
// whose fetch should be reported as failed.
type MockFetcher struct {
	Snapshots map[model.Timeframe]*model.TimeframeSnapshot
	Fail      map[model.Timeframe]bool
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSnapshot(_ context.Context, inst model.InstrumentConfig, tf model.Timeframe) (*model.TimeframeSnapshot, error) {
	if m.Fail[tf] {
		return nil, fmt.Errorf("mock fetch %s %s: unavailable", inst.Name, tf)
	}
	if snap, ok := m.Snapshots[tf]; ok {
		return snap, nil
	}
	return GenerateMockSnapshot(100, 50), nil
}

// GenerateMockSnapshot builds a plausible bullish snapshot around basePrice.
func GenerateMockSnapshot(basePrice, rsi float64) *model.TimeframeSnapshot {
	return &model.TimeframeSnapshot{
		Open:      basePrice * 0.998,
		High:      basePrice * 1.006,
		Low:       basePrice * 0.994,
		Close:     basePrice,
		RSI:       &rsi,
		ATR:       basePrice * 0.012,
		Summary:   "NEUTRAL",
		FetchedAt: time.Now(),
	}
}
