package indicators

import "github.com/rustyeddy/tradegym/market"

// Compute derives the feature table for bars. The output has exactly one
// row per bar. A table shorter than a window leaves that window's column
// unknown for every row.
func Compute(bars market.Bars, cfg Config) (*FeatureTable, error) {
	if len(bars) == 0 {
		return nil, ErrEmptyTable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(bars)
	tr := knownColumn(TrueRanges(bars))

	upper := unknownColumn(n)
	if n >= cfg.ATRLength {
		upper = Rolling(tr, cfg.ATRLength)
		for i, v := range upper {
			if v.IsSome() {
				upper[i] = Known(v.Unwrap() * cfg.SignalThreshold)
			}
		}
	}

	volumes := bars.Volumes()
	gauge := unknownColumn(n)
	if n >= cfg.VolumeLookback {
		means := Rolling(knownColumn(volumes), cfg.VolumeLookback)
		for i := range gauge {
			gauge[i] = volumeGauge(volumes[i], means[i])
		}
	}

	mom := unknownColumn(n)
	if n >= cfg.MomLength {
		mom = Momentum(bars.Closes(), cfg.MomLength)
	}

	rows := make([]FeatureRow, n)
	for i := range rows {
		rows[i] = FeatureRow{
			PositiveVolatility: tr[i],
			UpperSignal:        upper[i],
			VolumeGauge:        gauge[i],
			VolumeColor:        classifyVolume(gauge[i], cfg.HighVolumeThreshold, cfg.LowVolumeThreshold),
			Momentum:           mom[i],
			MomOversold:        cfg.MomOversold,
			MomOverbought:      cfg.MomOverbought,
			trueRange:          tr[i],
		}
	}
	return &FeatureTable{Rows: rows}, nil
}
