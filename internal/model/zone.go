package model

// ZoneKind classifies a liquidity zone.
type ZoneKind string

const (
	ZoneSupport    ZoneKind = "SUPPORT"
	ZoneResistance ZoneKind = "RESISTANCE"
	ZoneFib        ZoneKind = "FIB"
)

// LiquidityZone is a price level where order concentration is inferred.
// Zones are advisory: level calculation may snap an entry to one within
// tolerance but never requires one.
type LiquidityZone struct {
	Price    float64
	Kind     ZoneKind
	Strength float64
}
