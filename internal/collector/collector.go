package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"TradeScout/internal/model"
)

// ErrPrimaryUnavailable marks an aggregation whose primary timeframe (the
// one used for entry pricing) could not be fetched.
var ErrPrimaryUnavailable = errors.New("primary timeframe unavailable")

// Collector aggregates per-timeframe snapshots for one instrument.
type Collector struct {
	Fetcher    Fetcher
	Timeframes []model.Timeframe
	Primary    model.Timeframe
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, timeframes []model.Timeframe, primary model.Timeframe) *Collector {
	return &Collector{Fetcher: fetcher, Timeframes: timeframes, Primary: primary}
}

// Collect fetches every configured timeframe concurrently and assembles the
// results into a TimeframeSet. Individual failures only remove that
// timeframe from the set; a missing primary timeframe fails the whole
// aggregation. No retries happen within a pass, the next cycle tries again.
func (c *Collector) Collect(ctx context.Context, inst model.InstrumentConfig) (model.TimeframeSet, error) {
	set := make(model.TimeframeSet, len(c.Timeframes))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, tf := range c.Timeframes {
		wg.Add(1)
		go func(tf model.Timeframe) {
			defer wg.Done()
			snap, err := c.Fetcher.FetchSnapshot(ctx, inst, tf)
			if err != nil {
				log.Printf("[WARN] fetch %s %s: %v", inst.Name, tf, err)
				return
			}
			mu.Lock()
			set[tf] = snap
			mu.Unlock()
		}(tf)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := set[c.Primary]; !ok {
		return nil, fmt.Errorf("%s: %w", inst.Name, ErrPrimaryUnavailable)
	}
	return set, nil
}
