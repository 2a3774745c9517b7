package model

import "time"

// Timeframe is a provider interval label.
type Timeframe string

const (
	TimeframeDaily Timeframe = "DAILY"
	Timeframe4H    Timeframe = "4H"
	Timeframe1H    Timeframe = "1H"
	Timeframe15M   Timeframe = "15M"
)

// TimeframeSnapshot holds one instrument's indicator values at one timeframe.
// RSI is nil when the provider did not return it; ATR is always populated,
// via the single-period fallback if necessary. Fetched fresh every cycle,
// never cached.
type TimeframeSnapshot struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	RSI       *float64
	ATR       float64
	Summary   string // provider classification: STRONG_BUY..STRONG_SELL
	FetchedAt time.Time
}

// TimeframeSet maps timeframe labels to snapshots for one instrument.
// Partial by design: a timeframe whose fetch failed is simply absent.
type TimeframeSet map[Timeframe]*TimeframeSnapshot
