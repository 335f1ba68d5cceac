// Package config holds the fully resolved run configuration.
//
// The core pipeline only ever receives a populated, validated Config;
// building one from flags, a YAML file, environment and interactive
// prompting happens in the command adapters.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full configuration surface of one extraction run.
type Config struct {
	InputFile    string   `yaml:"input_file"`
	OutputFile   string   `yaml:"output_file"`
	UniqueField  string   `yaml:"unique_field"`
	Separator    string   `yaml:"separator"`
	ColumnName   string   `yaml:"column_name"`
	RowFormat    string   `yaml:"row_format"`
	OutputFormat string   `yaml:"output_format"`
	Delimiter    string   `yaml:"delimiter"`
	Filters      []string `yaml:"filters"`
	DropNA       bool     `yaml:"drop_na"`
	DryRun       bool     `yaml:"dry_run"`
	LogLevel     string   `yaml:"log_level"`
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config file: %v", ErrInvalid, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config file %s: %v", ErrInvalid, path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Separator == "" {
		c.Separator = ";"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.RowFormat == "" {
		c.RowFormat = "single"
	}
	if c.ColumnName == "" {
		c.ColumnName = c.UniqueField
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	// OutputFormat stays empty here; it may still be inferred from the
	// output file extension.
}

// Validate checks required fields and enum values.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("%w: input_file is required", ErrInvalid)
	}
	if c.OutputFile == "" && !c.DryRun {
		return fmt.Errorf("%w: output_file is required", ErrInvalid)
	}
	if c.UniqueField == "" {
		return fmt.Errorf("%w: unique_field is required", ErrInvalid)
	}
	switch c.RowFormat {
	case "single", "multi":
	default:
		return fmt.Errorf("%w: row_format must be single or multi, got %q", ErrInvalid, c.RowFormat)
	}
	switch c.OutputFormat {
	case "", "csv", "json", "yaml", "parquet":
	default:
		return fmt.Errorf("%w: output_format must be csv, json, yaml or parquet, got %q", ErrInvalid, c.OutputFormat)
	}
	return nil
}

// Template is the sample YAML configuration printed by
// -print-config-template.
const Template = `input_file: "input.csv"
output_file: "output.csv"
unique_field: "email"
filters:
  - "status=active"
separator: ";"
row_format: "single"
output_format: "csv"
delimiter: ","
drop_na: false
dry_run: false
log_level: "info"
`
