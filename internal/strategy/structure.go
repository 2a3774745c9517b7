package strategy

import (
	"fmt"
	"strings"

	"TradeScout/internal/model"
)

// Timeframe weights double per step up so a daily signal cannot be
// overridden by a 15-minute blip alone.
var timeframeWeights = map[model.Timeframe]float64{
	model.TimeframeDaily: 8,
	model.Timeframe4H:    4,
	model.Timeframe1H:    2,
	model.Timeframe15M:   1,
}

// voteOrder fixes the iteration order so identical inputs always yield the
// same verdict, including vote ordering.
var voteOrder = []model.Timeframe{
	model.TimeframeDaily,
	model.Timeframe4H,
	model.Timeframe1H,
	model.Timeframe15M,
}

// maxVote is the largest magnitude a single timeframe's raw vote can reach:
// candle direction ±1, RSI ±1, summary tie-break ±0.5.
const maxVote = 2.5

// RSI thresholds around the neutral 50 line.
const (
	rsiBullish = 55
	rsiBearish = 45
)

// ClassifyStructure derives a directional bias from the available
// timeframes. Each present timeframe votes from close-vs-open direction, RSI
// relative to neutral, and the provider summary as a tie-break; votes are
// weighted by timeframe and the normalized sum in [-1, 1] becomes the
// verdict score. A magnitude below threshold yields a neutral verdict.
func ClassifyStructure(set model.TimeframeSet, threshold float64) *model.StructureVerdict {
	verdict := &model.StructureVerdict{Bias: model.BiasNeutral}

	var weightedSum, totalWeight float64
	for _, tf := range voteOrder {
		snap, ok := set[tf]
		if !ok {
			continue
		}
		weight, ok := timeframeWeights[tf]
		if !ok {
			weight = 1
		}

		raw, commentary := voteSnapshot(snap)
		verdict.Votes = append(verdict.Votes, model.TimeframeVote{
			Timeframe:  tf,
			RawVote:    raw,
			Weight:     weight,
			Weighted:   raw * weight,
			Commentary: commentary,
		})
		weightedSum += raw * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return verdict
	}

	verdict.Score = weightedSum / (maxVote * totalWeight)
	switch {
	case verdict.Score >= threshold:
		verdict.Bias = model.BiasBullish
	case verdict.Score <= -threshold:
		verdict.Bias = model.BiasBearish
	}
	return verdict
}

// voteSnapshot scores a single timeframe snapshot.
func voteSnapshot(snap *model.TimeframeSnapshot) (float64, string) {
	var vote float64
	var parts []string

	switch {
	case snap.Close > snap.Open:
		vote++
		parts = append(parts, "candle up")
	case snap.Close < snap.Open:
		vote--
		parts = append(parts, "candle down")
	default:
		parts = append(parts, "candle flat")
	}

	if snap.RSI != nil {
		switch {
		case *snap.RSI > rsiBullish:
			vote++
			parts = append(parts, fmt.Sprintf("RSI %.0f bullish", *snap.RSI))
		case *snap.RSI < rsiBearish:
			vote--
			parts = append(parts, fmt.Sprintf("RSI %.0f bearish", *snap.RSI))
		default:
			parts = append(parts, fmt.Sprintf("RSI %.0f neutral", *snap.RSI))
		}
	} else {
		parts = append(parts, "RSI n/a")
	}

	switch snap.Summary {
	case "BUY", "STRONG_BUY":
		vote += 0.5
		parts = append(parts, "summary "+snap.Summary)
	case "SELL", "STRONG_SELL":
		vote -= 0.5
		parts = append(parts, "summary "+snap.Summary)
	}

	return vote, strings.Join(parts, ", ")
}
