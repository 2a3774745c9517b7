package analyzer

import (
	"context"
	"fmt"
	"time"

	"TradeScout/internal/collector"
	"TradeScout/internal/config"
	"TradeScout/internal/model"
	"TradeScout/internal/strategy"
)

// PairAnalyzer runs the full derivation pipeline for one instrument:
// aggregation, structure classification, zone location and level
// calculation. Stateless across calls; every invocation works on freshly
// fetched data.
type PairAnalyzer struct {
	Collector *collector.Collector
	Cfg       *config.Config
}

// NewPairAnalyzer creates an analyzer bound to an immutable configuration.
func NewPairAnalyzer(col *collector.Collector, cfg *config.Config) *PairAnalyzer {
	return &PairAnalyzer{Collector: col, Cfg: cfg}
}

// Analyze derives a trade setup for the named instrument. It short-circuits
// at the first failing stage; the wrapped error identifies which one.
// A neutral market returns strategy.ErrNoSignal rather than a forced trade.
func (a *PairAnalyzer) Analyze(ctx context.Context, name string) (*model.TradeSetup, error) {
	inst, ok := a.Cfg.Instrument(name)
	if !ok {
		return nil, fmt.Errorf("unknown instrument %q", name)
	}

	set, err := a.Collector.Collect(ctx, inst)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	verdict := strategy.ClassifyStructure(set, a.Cfg.Trade.NeutralThreshold)
	if verdict.Bias == model.BiasNeutral {
		return nil, fmt.Errorf("classify: %w", strategy.ErrNoSignal)
	}

	primary := set[a.Cfg.PrimaryTimeframe]
	var higher *model.TimeframeSnapshot
	if tf := a.Cfg.ContextTimeframe(); tf != "" {
		higher = set[tf]
	}
	zones := strategy.LocateZones(primary, higher, a.Cfg.Trade.FibRatios)

	levels, err := strategy.CalculateLevels(strategy.LevelInputs{
		Bias:          verdict.Bias,
		Price:         primary.Close,
		ATR:           primary.ATR,
		PipValue:      inst.PipValue,
		MinPips:       inst.MinPips,
		ATRMultiplier: a.Cfg.Trade.ATRMultiplier,
		RiskRewards:   a.Cfg.Trade.RiskRewards,
		ZoneTolerance: a.Cfg.Trade.ZoneToleranceATR,
	}, zones)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	return &model.TradeSetup{
		Pair:         name,
		Price:        primary.Close,
		Bias:         verdict.Bias,
		Entry:        levels.Entry,
		StopLoss:     levels.StopLoss,
		TakeProfit:   levels.TakeProfits,
		StopDistance: levels.StopDistance,
		RSI:          primary.RSI,
		ATR:          primary.ATR,
		PipValue:     inst.PipValue,
		Verdict:      verdict,
		GeneratedAt:  time.Now(),
	}, nil
}
