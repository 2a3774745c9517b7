package collector

import (
	"context"
	"errors"

	"TradeScout/internal/model"
)

// ErrInsufficientData marks a fetch whose response lacked one of the
// required open/high/low/close fields. A missing RSI alone is tolerated.
var ErrInsufficientData = errors.New("insufficient indicator data")

// Fetcher retrieves a single timeframe's indicator snapshot for one
// instrument. Implementations must either return a fully populated snapshot
// or an error, never a partial one.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, inst model.InstrumentConfig, tf model.Timeframe) (*model.TimeframeSnapshot, error)
	Name() string
}
