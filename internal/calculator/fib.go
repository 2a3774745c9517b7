package calculator

import "errors"

// RetracementLevels computes Fibonacci retracement prices between a swing
// high and swing low. Each ratio r produces high - (high-low)*r, so every
// level lies inside the swing.
func RetracementLevels(high, low float64, ratios []float64) ([]float64, error) {
	if high <= low {
		return nil, errors.New("swing high must exceed swing low")
	}
	levels := make([]float64, len(ratios))
	span := high - low
	for i, r := range ratios {
		levels[i] = high - span*r
	}
	return levels, nil
}
