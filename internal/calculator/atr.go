package calculator

import "math"

// FallbackATR approximates ATR from a single bar when the provider supplies
// none. With close context it is the one-period true range: the max of
// (high-low), |high-close| and |low-close|. Without close context it degrades
// to half the high-low range. This is a single-period proxy, not a rolling
// average; callers must not assume smoothing.
func FallbackATR(high, low float64, close *float64) float64 {
	if close == nil {
		return (high - low) * 0.5
	}
	tr := high - low
	if v := math.Abs(high - *close); v > tr {
		tr = v
	}
	if v := math.Abs(low - *close); v > tr {
		tr = v
	}
	return tr
}
