package indicators

// Momentum returns close[i] - close[i-n]. The first n positions are unknown,
// as is any difference involving a NaN close.
func Momentum(closes []float64, n int) []Value {
	out := make([]Value, len(closes))
	for i := range closes {
		if n < 1 || i < n {
			out[i] = Unknown()
			continue
		}
		out[i] = Known(closes[i] - closes[i-n])
	}
	return out
}
