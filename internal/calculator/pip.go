package calculator

import (
	"errors"
	"math"
)

// PipDistance converts the price distance between two levels into pips.
func PipDistance(a, b, pipValue float64) (float64, error) {
	if pipValue <= 0 {
		return 0, errors.New("pip value must be positive")
	}
	return math.Abs(a-b) / pipValue, nil
}
