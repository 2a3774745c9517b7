package strategy

import (
	"TradeScout/internal/calculator"
	"TradeScout/internal/model"
)

// Zone strengths: the swing extremes themselves outrank the interior
// Fibonacci levels.
const (
	swingStrength = 2.0
	fibStrength   = 1.0
)

// LocateZones derives candidate liquidity zones from the primary-timeframe
// snapshot, widened by the next-higher timeframe when available. The swing
// high and low become resistance/support zones and each configured Fibonacci
// ratio yields one interior zone. An empty result is valid; zones are
// advisory only.
func LocateZones(primary, higher *model.TimeframeSnapshot, fibRatios []float64) []model.LiquidityZone {
	if primary == nil {
		return nil
	}
	swingHigh, swingLow := primary.High, primary.Low
	if higher != nil {
		if higher.High > swingHigh {
			swingHigh = higher.High
		}
		if higher.Low < swingLow {
			swingLow = higher.Low
		}
	}

	levels, err := calculator.RetracementLevels(swingHigh, swingLow, fibRatios)
	if err != nil {
		// Degenerate swing, no structure to anchor zones on.
		return nil
	}

	zones := make([]model.LiquidityZone, 0, len(levels)+2)
	zones = append(zones,
		model.LiquidityZone{Price: swingHigh, Kind: model.ZoneResistance, Strength: swingStrength},
		model.LiquidityZone{Price: swingLow, Kind: model.ZoneSupport, Strength: swingStrength},
	)
	for _, lvl := range levels {
		zones = append(zones, model.LiquidityZone{Price: lvl, Kind: model.ZoneFib, Strength: fibStrength})
	}
	return zones
}
