package calculator

import (
	"math"
	"testing"
)

func TestFallbackATR_TrueRange(t *testing.T) {
	close := 101.0
	tests := []struct {
		name             string
		high, low, close float64
		want             float64
	}{
		{"range dominates", 105, 95, 101, 10},
		{"high-close dominates", 120, 100, 95, 25},
		{"low-close dominates", 105, 100, 110, 10},
	}
	for _, tt := range tests {
		c := tt.close
		got := FallbackATR(tt.high, tt.low, &c)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: expected %.4f, got %.4f", tt.name, tt.want, got)
		}
	}

	// Degraded estimate without close context
	got := FallbackATR(110, 90, nil)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("expected half range 10, got %.4f", got)
	}

	// Determinism: identical inputs always yield identical output
	first := FallbackATR(105, 95, &close)
	for i := 0; i < 5; i++ {
		if got := FallbackATR(105, 95, &close); got != first {
			t.Fatalf("fallback ATR not deterministic: %.10f vs %.10f", got, first)
		}
	}
}

func TestRetracementLevels(t *testing.T) {
	ratios := []float64{0.236, 0.382, 0.5, 0.618, 0.786, 0.886}
	levels, err := RetracementLevels(2000, 1900, ratios)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(levels) != len(ratios) {
		t.Fatalf("expected %d levels, got %d", len(ratios), len(levels))
	}
	for i, r := range ratios {
		want := 2000 - 100*r
		if math.Abs(levels[i]-want) > 1e-9 {
			t.Errorf("ratio %.3f: expected %.4f, got %.4f", r, want, levels[i])
		}
		if levels[i] <= 1900 || levels[i] >= 2000 {
			t.Errorf("ratio %.3f: level %.4f outside swing", r, levels[i])
		}
	}

	if _, err := RetracementLevels(1900, 2000, ratios); err == nil {
		t.Error("expected error for inverted swing")
	}
	if _, err := RetracementLevels(1900, 1900, ratios); err == nil {
		t.Error("expected error for degenerate swing")
	}
}

func TestPipDistance(t *testing.T) {
	d, err := PipDistance(2000.00, 1995.50, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-450) > 1e-6 {
		t.Errorf("expected 450 pips, got %.2f", d)
	}

	// Symmetric
	d2, _ := PipDistance(1995.50, 2000.00, 0.01)
	if d2 != d {
		t.Errorf("pip distance must be symmetric: %.2f vs %.2f", d, d2)
	}

	if _, err := PipDistance(1, 2, 0); err == nil {
		t.Error("expected error for zero pip value")
	}
}
