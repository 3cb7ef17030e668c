package indicators

import (
	"fmt"
	"math"
	"strconv"
)

// Feature column names, in output order.
const (
	ColPositiveVolatility = "positive_volatility"
	ColUpperSignal        = "upper_signal"
	ColVolumeGauge        = "volume_gauge"
	ColVolumeColor        = "volume_color"
	ColMomentum           = "momentum"
	ColMomOversold        = "mom_oversold"
	ColMomOverbought      = "mom_overbought"
)

var columns = []string{
	ColPositiveVolatility,
	ColUpperSignal,
	ColVolumeGauge,
	ColVolumeColor,
	ColMomentum,
	ColMomOversold,
	ColMomOverbought,
}

// FeatureRow is the set of features derived for one bar.
type FeatureRow struct {
	PositiveVolatility Value
	UpperSignal        Value
	VolumeGauge        Value
	VolumeColor        VolumeColor
	Momentum           Value
	MomOversold        float64
	MomOverbought      float64

	trueRange Value
}

// TrueRange returns the intermediate true range of the row.
func (r FeatureRow) TrueRange() Value {
	return r.trueRange
}

// FeatureTable is row-aligned with the bars it was computed from.
type FeatureTable struct {
	Rows []FeatureRow
}

func (t *FeatureTable) Len() int {
	return len(t.Rows)
}

// Columns returns the feature column names in stable order.
func (t *FeatureTable) Columns() []string {
	return append([]string(nil), columns...)
}

// Float64s returns one column as floats. Unknown values become NaN and
// volume_color uses its ordinal encoding.
func (t *FeatureTable) Float64s(col string) ([]float64, error) {
	get, err := accessor(col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = get(r)
	}
	return out, nil
}

// Record returns row i as strings in column order. Unknown values are empty.
func (t *FeatureTable) Record(i int) []string {
	r := t.Rows[i]
	return []string{
		formatValue(r.PositiveVolatility),
		formatValue(r.UpperSignal),
		formatValue(r.VolumeGauge),
		r.VolumeColor.String(),
		formatValue(r.Momentum),
		formatFloat(r.MomOversold),
		formatFloat(r.MomOverbought),
	}
}

func accessor(col string) (func(FeatureRow) float64, error) {
	switch col {
	case ColPositiveVolatility:
		return func(r FeatureRow) float64 { return Float64(r.PositiveVolatility) }, nil
	case ColUpperSignal:
		return func(r FeatureRow) float64 { return Float64(r.UpperSignal) }, nil
	case ColVolumeGauge:
		return func(r FeatureRow) float64 { return Float64(r.VolumeGauge) }, nil
	case ColVolumeColor:
		return func(r FeatureRow) float64 { return r.VolumeColor.Float64() }, nil
	case ColMomentum:
		return func(r FeatureRow) float64 { return Float64(r.Momentum) }, nil
	case ColMomOversold:
		return func(r FeatureRow) float64 { return r.MomOversold }, nil
	case ColMomOverbought:
		return func(r FeatureRow) float64 { return r.MomOverbought }, nil
	}
	return nil, fmt.Errorf("unknown feature column %q", col)
}

func formatValue(v Value) string {
	if v.IsNone() {
		return ""
	}
	return formatFloat(v.Unwrap())
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
