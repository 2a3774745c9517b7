package model

import (
	"time"

	"TradeScout/internal/calculator"
)

// TradeSetup is the final output of one pair analysis: a directional bias
// with numerically consistent entry, stop and target levels.
//
// Invariants: |Entry-StopLoss|/PipValue >= the instrument's minimum-pip
// floor, and each TakeProfit sits at Entry plus the bias-signed stop
// distance times its risk-reward ratio.
type TradeSetup struct {
	Pair         string
	Price        float64
	Bias         Bias
	Entry        float64
	StopLoss     float64
	TakeProfit   [3]float64
	StopDistance float64
	RSI          *float64
	ATR          float64
	PipValue     float64
	Verdict      *StructureVerdict
	GeneratedAt  time.Time
}

// RiskPips returns the stop distance expressed in pips, or zero when the
// pip value is not positive.
func (s *TradeSetup) RiskPips() float64 {
	pips, err := calculator.PipDistance(s.Entry, s.StopLoss, s.PipValue)
	if err != nil {
		return 0
	}
	return pips
}
