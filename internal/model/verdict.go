package model

// Bias is the directional classification of market structure.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// TimeframeVote records one timeframe's contribution to the structure verdict.
type TimeframeVote struct {
	Timeframe  Timeframe
	RawVote    float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// StructureVerdict is the output of the market structure analyzer.
// Score is the weight-normalized vote sum in [-1, 1]; Bias is NEUTRAL when
// its magnitude falls below the configured threshold.
type StructureVerdict struct {
	Bias  Bias
	Score float64
	Votes []TimeframeVote
}
