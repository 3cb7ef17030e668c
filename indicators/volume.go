package indicators

import (
	"fmt"
	"strings"
)

// VolumeColor classifies a volume gauge against the high and low thresholds.
type VolumeColor int

const (
	VolumeLow VolumeColor = iota
	VolumeMedium
	VolumeHigh
)

func (c VolumeColor) String() string {
	switch c {
	case VolumeLow:
		return "Low"
	case VolumeMedium:
		return "Medium"
	case VolumeHigh:
		return "High"
	default:
		return fmt.Sprintf("VolumeColor(%d)", int(c))
	}
}

// Float64 is the ordinal encoding used in observation vectors.
func (c VolumeColor) Float64() float64 {
	return float64(c)
}

// ParseVolumeColor accepts "Low", "Medium" or "High" in any case.
func ParseVolumeColor(s string) (VolumeColor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return VolumeLow, nil
	case "medium":
		return VolumeMedium, nil
	case "high":
		return VolumeHigh, nil
	}
	return VolumeMedium, fmt.Errorf("unknown volume color %q", s)
}

func (c VolumeColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *VolumeColor) UnmarshalText(b []byte) error {
	v, err := ParseVolumeColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// classifyVolume checks High first, then Low. Unknown gauges are Medium.
func classifyVolume(gauge Value, high, low float64) VolumeColor {
	if gauge.IsNone() {
		return VolumeMedium
	}
	g := gauge.Unwrap()
	switch {
	case g > high:
		return VolumeHigh
	case g < low:
		return VolumeLow
	default:
		return VolumeMedium
	}
}

// volumeGauge is volume divided by its mean. A mean that is unknown or not
// positive leaves the gauge unknown.
func volumeGauge(volume float64, mean Value) Value {
	if mean.IsNone() || mean.Unwrap() <= 0 {
		return Unknown()
	}
	return Known(volume / mean.Unwrap())
}
