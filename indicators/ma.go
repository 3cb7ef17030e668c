package indicators

// Rolling returns the trailing mean of values over period for every
// position. Positions before the window fills, and windows holding an
// unknown, are unknown.
func Rolling(values []Value, period int) []Value {
	out := make([]Value, len(values))
	m := NewRollingMean(period)
	for i, v := range values {
		m.Update(v)
		out[i] = m.Value()
	}
	return out
}

// unknownColumn returns n unknown values.
func unknownColumn(n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = Unknown()
	}
	return out
}

// knownColumn wraps a float column, mapping NaN to unknown.
func knownColumn(values []float64) []Value {
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = Known(v)
	}
	return out
}
