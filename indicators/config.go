package indicators

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config holds the window lengths and thresholds of the pipeline.
type Config struct {
	ATRLength           int     `yaml:"atr_length" json:"atr_length" default:"14" validate:"gt=0" jsonschema:"description=Window of the true range mean,minimum=1"`
	SignalThreshold     float64 `yaml:"signal_threshold" json:"signal_threshold" default:"1.5" jsonschema:"description=Multiplier applied to the true range mean"`
	MomLength           int     `yaml:"mom_length" json:"mom_length" default:"14" validate:"gt=0" jsonschema:"description=Lag of the momentum difference,minimum=1"`
	MomOversold         float64 `yaml:"mom_oversold" json:"mom_oversold" default:"-1" jsonschema:"description=Constant oversold reference"`
	MomOverbought       float64 `yaml:"mom_overbought" json:"mom_overbought" default:"1" jsonschema:"description=Constant overbought reference"`
	VolumeLookback      int     `yaml:"volume_lookback" json:"volume_lookback" default:"20" validate:"gt=0" jsonschema:"description=Window of the volume mean,minimum=1"`
	HighVolumeThreshold float64 `yaml:"high_volume_threshold" json:"high_volume_threshold" default:"1.2" jsonschema:"description=Gauge above which volume is High"`
	LowVolumeThreshold  float64 `yaml:"low_volume_threshold" json:"low_volume_threshold" default:"0.8" jsonschema:"description=Gauge below which volume is Low"`
}

var validate = validator.New()

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("indicators: bad default tags: %v", err))
	}
	return cfg
}

// Validate checks that every window length is positive.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid indicator config: %w", err)
	}
	return nil
}
