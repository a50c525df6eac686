package nav

// Clamp constrains v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Progress returns (index+1)/total. A non-positive total yields 0.
func Progress(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(Clamp(index, 0, total-1)+1) / float64(total)
}
