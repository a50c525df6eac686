package nav

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestProgressHelper(t *testing.T) {
	if got := Progress(0, 0); got != 0 {
		t.Errorf("Expected 0 for empty deck, got %f", got)
	}
	if got := Progress(3, 4); got != 1.0 {
		t.Errorf("Expected 1.0, got %f", got)
	}
	if got := Progress(99, 4); got != 1.0 {
		t.Errorf("Expected out-of-range index to clamp to 1.0, got %f", got)
	}
	if got := Progress(1, 4); got != 0.5 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}
