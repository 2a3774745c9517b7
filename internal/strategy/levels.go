package strategy

import (
	"errors"
	"fmt"

	"TradeScout/internal/model"
)

// ErrNoSignal marks a neutral verdict: a defined "no setup" outcome, not a
// fault. No trade is fabricated for instruments without a directional signal.
var ErrNoSignal = errors.New("no directional signal")

// ErrInvalidLevels marks inputs from which no valid stop distance can be
// established (missing price, non-positive ATR or pip value).
var ErrInvalidLevels = errors.New("invalid trade levels")

// LevelInputs carries everything the level calculator needs.
type LevelInputs struct {
	Bias          model.Bias
	Price         float64
	ATR           float64
	PipValue      float64
	MinPips       float64
	ATRMultiplier float64
	RiskRewards   []float64
	// ZoneTolerance is the entry snap tolerance expressed in ATR units.
	ZoneTolerance float64
}

// Levels is the numeric outcome of level calculation.
type Levels struct {
	Entry        float64
	StopLoss     float64
	TakeProfits  [3]float64
	StopDistance float64
}

// CalculateLevels turns a bias plus zones into entry, stop-loss and three
// take-profit levels.
//
// The stop distance is max(MinPips*PipValue, ATR*ATRMultiplier): never
// tighter than the instrument's configured floor nor the volatility-scaled
// one. Take-profits sit at entry plus the bias-signed stop distance times
// each risk-reward ratio, so they are strictly ordered in the trade's favor.
func CalculateLevels(in LevelInputs, zones []model.LiquidityZone) (*Levels, error) {
	if in.Bias == model.BiasNeutral || in.Bias == "" {
		return nil, ErrNoSignal
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price missing", ErrInvalidLevels)
	}
	if in.ATR <= 0 {
		return nil, fmt.Errorf("%w: ATR must be positive", ErrInvalidLevels)
	}
	if in.PipValue <= 0 || in.MinPips <= 0 {
		return nil, fmt.Errorf("%w: pip configuration missing", ErrInvalidLevels)
	}
	if len(in.RiskRewards) != 3 {
		return nil, fmt.Errorf("%w: need exactly 3 risk-reward ratios", ErrInvalidLevels)
	}

	entry := snapEntry(in, zones)

	stopDistance := in.MinPips * in.PipValue
	if v := in.ATR * in.ATRMultiplier; v > stopDistance {
		stopDistance = v
	}
	if stopDistance <= 0 {
		return nil, fmt.Errorf("%w: non-positive stop distance", ErrInvalidLevels)
	}

	sign := 1.0
	if in.Bias == model.BiasBearish {
		sign = -1.0
	}

	lv := &Levels{
		Entry:        entry,
		StopLoss:     entry - sign*stopDistance,
		StopDistance: stopDistance,
	}
	for i, ratio := range in.RiskRewards {
		lv.TakeProfits[i] = entry + sign*ratio*stopDistance
	}
	return lv, nil
}

// snapEntry adjusts the entry toward the nearest favorable liquidity zone
// within tolerance: below price for longs, above price for shorts. Without a
// qualifying zone the current price is used unchanged.
func snapEntry(in LevelInputs, zones []model.LiquidityZone) float64 {
	tolerance := in.ZoneTolerance * in.ATR
	if tolerance <= 0 {
		return in.Price
	}

	entry := in.Price
	bestDist := tolerance
	for _, z := range zones {
		var dist float64
		if in.Bias == model.BiasBullish {
			dist = in.Price - z.Price
		} else {
			dist = z.Price - in.Price
		}
		if dist <= 0 || dist > bestDist {
			continue
		}
		bestDist = dist
		entry = z.Price
	}
	return entry
}
