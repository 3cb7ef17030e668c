package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradegym/indicators"
	"github.com/rustyeddy/tradegym/market"
)

// FeatureHeader returns the header written by WriteFeaturesCSV.
func FeatureHeader(ft *indicators.FeatureTable) []string {
	return append([]string{"time"}, ft.Columns()...)
}

// WriteFeaturesCSV writes one row per bar: the bar time (or its position
// when the bars carry no time) followed by the feature columns. Unknown
// values are empty cells.
func WriteFeaturesCSV(w io.Writer, bars market.Bars, ft *indicators.FeatureTable) error {
	if len(bars) != ft.Len() {
		return fmt.Errorf("write features: %d bars, %d feature rows", len(bars), ft.Len())
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(FeatureHeader(ft)); err != nil {
		return err
	}
	for i := range ft.Rows {
		idx := strconv.Itoa(i)
		if !bars[i].Time.IsZero() {
			idx = bars[i].Time.UTC().Format(time.RFC3339)
		}
		if err := cw.Write(append([]string{idx}, ft.Record(i)...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
