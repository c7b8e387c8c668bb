package compute

// Percentage returns positive/tested*100, or 0 when tested is 0.
func Percentage(tested, positive int64) float64 {
	if tested == 0 {
		return 0
	}
	return float64(positive) / float64(tested) * 100
}

// PercentageTruncated returns positive*100/tested with integer division,
// or 0 when tested is 0. The result is truncated toward zero.
func PercentageTruncated(tested, positive int64) int64 {
	if tested == 0 {
		return 0
	}
	return positive * 100 / tested
}

// Clamp restricts a percentage to the range [0, 100] for gauge rendering.
// Inputs with positive > tested would otherwise overflow a progress bar.
func Clamp(pct int64) int64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
