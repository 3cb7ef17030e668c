package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradegym/indicators"
)

// Config represents the complete tradegym configuration
type Config struct {
	Indicators indicators.Config `json:"indicators" yaml:"indicators"`
	Simulation SimulationConfig  `json:"simulation" yaml:"simulation"`
	Data       DataConfig        `json:"data" yaml:"data"`
	Journal    JournalConfig     `json:"journal" yaml:"journal"`
	Log        LogConfig         `json:"log" yaml:"log"`
	Metrics    MetricsConfig     `json:"metrics" yaml:"metrics"`
}

// SimulationConfig contains environment and policy parameters
type SimulationConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance" default:"10000" validate:"gte=0" jsonschema:"description=Cash at the start of every episode"`
	Episodes       int     `json:"episodes" yaml:"episodes" default:"1" validate:"gte=1"`
	Policy         string  `json:"policy" yaml:"policy" default:"signal" validate:"oneof=hold random signal" jsonschema:"enum=hold,enum=random,enum=signal"`
	Seed           int64   `json:"seed" yaml:"seed" default:"1" jsonschema:"description=Seed of the random policy"`
}

// DataConfig selects where bars come from
type DataConfig struct {
	Source   string `json:"source" yaml:"source" default:"file" validate:"oneof=file polygon binance synthetic" jsonschema:"enum=file,enum=polygon,enum=binance,enum=synthetic"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty" jsonschema:"description=CSV or Parquet file for the file source"`
	Symbol   string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Interval string `json:"interval" yaml:"interval" default:"1d" jsonschema:"description=Bar interval such as 1m or 4h or 1d"`
	Start    string `json:"start,omitempty" yaml:"start,omitempty" jsonschema:"description=First day (YYYY-MM-DD)"`
	End      string `json:"end,omitempty" yaml:"end,omitempty" jsonschema:"description=Last day (YYYY-MM-DD)"`
}

// Range parses Start and End.
func (d DataConfig) Range() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, d.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data.start: %w", err)
	}
	end, err := time.Parse(time.DateOnly, d.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data.end: %w", err)
	}
	return start, end, nil
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type      string `json:"type" yaml:"type" default:"csv" validate:"oneof=csv sqlite none" jsonschema:"enum=csv,enum=sqlite,enum=none"`
	RunsFile  string `json:"runs_file,omitempty" yaml:"runs_file,omitempty" default:"./runs.csv"`
	StepsFile string `json:"steps_file,omitempty" yaml:"steps_file,omitempty" default:"./steps.csv"`
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty" default:"./tradegym.sqlite"`
	OrgDir    string `json:"org_dir,omitempty" yaml:"org_dir,omitempty" jsonschema:"description=Directory for Org-mode run reports"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level" default:"info" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty" jsonschema:"description=Listen address of the Prometheus endpoint (empty disables it)"`
}

var validate = validator.New()

// Default returns a configuration with sensible defaults
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config: bad default tags: %v", err))
	}
	return cfg
}

// LoadFromFile loads configuration from a file (YAML, falling back to
// JSON). Fields the file omits keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Data.Source {
	case "file":
		if c.Data.Path == "" {
			return fmt.Errorf("data.path required for file source")
		}
	case "polygon", "binance":
		if c.Data.Symbol == "" {
			return fmt.Errorf("data.symbol required for %s source", c.Data.Source)
		}
		if _, _, err := c.Data.Range(); err != nil {
			return err
		}
	}

	if c.Journal.Type == "csv" && (c.Journal.RunsFile == "" || c.Journal.StepsFile == "") {
		return fmt.Errorf("journal runs_file and steps_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	s := r.Reflect(&Config{})
	return json.MarshalIndent(s, "", "  ")
}
