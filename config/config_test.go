package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestApplyDefaults(t *testing.T) {
	c := &Config{UniqueField: "email"}
	c.ApplyDefaults()

	if c.Separator != ";" || c.Delimiter != "," || c.RowFormat != "single" {
		t.Errorf("defaults = %+v", c)
	}
	if c.ColumnName != "email" {
		t.Errorf("ColumnName = %q, want unique field", c.ColumnName)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %q", c.LogLevel)
	}
}

func TestApplyDefaults_KeepsExplicit(t *testing.T) {
	c := &Config{UniqueField: "email", ColumnName: "addr", Separator: "|", RowFormat: "multi"}
	c.ApplyDefaults()
	if c.ColumnName != "addr" || c.Separator != "|" || c.RowFormat != "multi" {
		t.Errorf("explicit values overwritten: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		InputFile:   "in.csv",
		OutputFile:  "out.csv",
		UniqueField: "email",
		RowFormat:   "single",
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"missing input", func(c *Config) { c.InputFile = "" }, false},
		{"missing output", func(c *Config) { c.OutputFile = "" }, false},
		{"dry run needs no output", func(c *Config) { c.OutputFile = ""; c.DryRun = true }, true},
		{"missing unique field", func(c *Config) { c.UniqueField = "" }, false},
		{"bad row format", func(c *Config) { c.RowFormat = "both" }, false},
		{"multi row format", func(c *Config) { c.RowFormat = "multi" }, true},
		{"bad output format", func(c *Config) { c.OutputFormat = "xml" }, false},
		{"parquet output format", func(c *Config) { c.OutputFormat = "parquet" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `input_file: data.csv
output_file: out.json
unique_field: email
filters:
  - "status=active"
  - "age>=30"
row_format: multi
drop_na: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.InputFile != "data.csv" || cfg.RowFormat != "multi" || !cfg.DropNA {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Filters, []string{"status=active", "age>=30"}) {
		t.Errorf("Filters = %v", cfg.Filters)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestTemplateIsValid(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(Template), &cfg); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("template config invalid: %v", err)
	}
}
