// Command extract computes the distinct values of one field of a tabular
// input file, after applying filter expressions, and writes the result with
// run metadata in any of the supported formats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/thomas6m/Unique-Extractor/config"
	"github.com/thomas6m/Unique-Extractor/dataset"
	"github.com/thomas6m/Unique-Extractor/extract"
	"github.com/thomas6m/Unique-Extractor/filter"
	"github.com/thomas6m/Unique-Extractor/internal/prompt"
	"github.com/thomas6m/Unique-Extractor/logging"
	"github.com/thomas6m/Unique-Extractor/output"
	"github.com/thomas6m/Unique-Extractor/reader"
)

// Exit codes are distinct per failure class so calling scripts can branch
// on what went wrong.
const (
	exitOK         = 0
	exitUsage      = 1
	exitInput      = 2
	exitProcessing = 3
	exitOutput     = 4
	exitUnexpected = 99
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	inputFlag        = flag.String("input", "", "Input file path (.csv, .json, .yaml, .parquet)")
	outputFlag       = flag.String("output", "", "Output file path")
	uniqueFieldFlag  = flag.String("unique-field", "", "Field to extract unique values from")
	delimiterFlag    = flag.String("delimiter", "", "CSV field delimiter (default \",\")")
	separatorFlag    = flag.String("separator", "", "Separator for packed multi-values (default \";\")")
	columnNameFlag   = flag.String("column-name", "", "Override column name in output (default: unique field)")
	rowFormatFlag    = flag.String("row-format", "", "Output row format: single or multi (default single)")
	outputFormatFlag = flag.String("output-format", "", "Output format: csv, json, yaml, parquet (default: from output extension)")
	configFlag       = flag.String("config", "", "Load configuration from a YAML file")
	logLevelFlag     = flag.String("log-level", "", "Log level: debug, info, warn, error")
	dropNAFlag       = flag.Bool("drop-na", false, "Drop rows where the unique field is null")
	dryRunFlag       = flag.Bool("dry-run", false, "Run every step except the final write, printing a preview")
	noInputFlag      = flag.Bool("no-input", false, "Never prompt for missing options")
	templateFlag     = flag.Bool("print-config-template", false, "Print a sample YAML config and exit")

	filterFlags stringList
)

func main() {
	flag.Var(&filterFlags, "filter", "Filter expression field<op>value[,value...] (repeatable; op: >=, <=, !=, =, >, <, ~)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extract unique values of a field from tabular data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -input users.csv -output emails.csv -unique-field email\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input users.csv -output skills.json -unique-field skills -row-format multi -filter 'status=active'\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config extract.yaml -dry-run\n", os.Args[0])
	}

	// A .env next to the binary may provide LOG_DIR, LOG_LEVEL, SEQ_URL.
	_ = godotenv.Load()
	flag.Parse()

	if *templateFlag {
		fmt.Print(config.Template)
		os.Exit(exitOK)
	}

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}

	level := cfg.LogLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	logger, closeLog, err := logging.New(logging.ParseLevel(level), logDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUnexpected)
	}

	runErr := run(cfg, logger)
	closeLog()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}
	os.Exit(exitCode(runErr))
}

// resolveConfig builds the run configuration from the config file, flags
// and, when the terminal allows it, interactive prompting. Flags override
// the file; prompting only fills required fields that are still empty.
func resolveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := func(name string, dst *string, v string) {
		if set[name] {
			*dst = v
		}
	}
	override("input", &cfg.InputFile, *inputFlag)
	override("output", &cfg.OutputFile, *outputFlag)
	override("unique-field", &cfg.UniqueField, *uniqueFieldFlag)
	override("delimiter", &cfg.Delimiter, *delimiterFlag)
	override("separator", &cfg.Separator, *separatorFlag)
	override("column-name", &cfg.ColumnName, *columnNameFlag)
	override("row-format", &cfg.RowFormat, *rowFormatFlag)
	override("output-format", &cfg.OutputFormat, *outputFormatFlag)
	override("log-level", &cfg.LogLevel, *logLevelFlag)
	if set["filter"] {
		cfg.Filters = filterFlags
	}
	if set["drop-na"] {
		cfg.DropNA = *dropNAFlag
	}
	if set["dry-run"] {
		cfg.DryRun = *dryRunFlag
	}

	if err := promptMissing(cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptMissing interactively asks for required options that are still
// unset, unless prompting is disabled or stdin is not a terminal.
func promptMissing(cfg *config.Config) error {
	if *noInputFlag || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	var fields []prompt.Field
	if cfg.InputFile == "" {
		fields = append(fields, prompt.Field{Key: "input", Label: "Input file path"})
	}
	if cfg.OutputFile == "" && !cfg.DryRun {
		fields = append(fields, prompt.Field{Key: "output", Label: "Output file path"})
	}
	if cfg.UniqueField == "" {
		fields = append(fields, prompt.Field{Key: "unique-field", Label: "Field to extract unique values from"})
	}
	if len(fields) == 0 {
		return nil
	}

	answers, err := prompt.Missing(fields)
	if err != nil {
		return err
	}
	if v := answers["input"]; v != "" {
		cfg.InputFile = v
	}
	if v := answers["output"]; v != "" {
		cfg.OutputFile = v
	}
	if v := answers["unique-field"]; v != "" {
		cfg.UniqueField = v
	}
	return nil
}

// run executes the pipeline: read, filter, extract, serialize.
func run(cfg *config.Config, log *slog.Logger) error {
	start := time.Now()

	format, err := output.ResolveFormat(cfg.OutputFile, cfg.OutputFormat)
	if err != nil {
		return err
	}

	d, err := reader.Read(cfg.InputFile, cfg.Delimiter)
	if err != nil {
		log.Error("reading input failed", "file", cfg.InputFile, "err", err)
		return err
	}
	log.Info("loaded input", "file", cfg.InputFile, "rows", d.Len(), "columns", len(d.Columns))

	plan := filter.NewPlan(d)
	for _, c := range filter.Parse(cfg.Filters, log) {
		if err := plan.Apply(c); err != nil {
			log.Error("applying filter failed", "clause", c.String(), "err", err)
			return err
		}
	}
	if cfg.DropNA {
		if err := plan.DropNull(cfg.UniqueField); err != nil {
			return err
		}
	}
	filtered := plan.Materialize()
	log.Info("filters applied", "rows", filtered.Len())

	spec := extract.Spec{
		Field:      cfg.UniqueField,
		RowFormat:  extract.RowFormat(cfg.RowFormat),
		Separator:  cfg.Separator,
		ColumnName: cfg.ColumnName,
	}
	res, err := extract.Unique(filtered, spec, plan.Clauses())
	if err != nil {
		log.Error("extraction failed", "field", cfg.UniqueField, "err", err)
		return err
	}
	log.Info("extracted unique values", "field", cfg.UniqueField, "count", res.Meta.Count, "run", res.Meta.RunID)

	if cfg.DryRun {
		output.Preview(os.Stdout, res, spec)
	} else {
		if err := output.WriteResult(res, spec, cfg.OutputFile, format); err != nil {
			log.Error("writing output failed", "file", cfg.OutputFile, "err", err)
			return err
		}
		log.Info("output written", "file", cfg.OutputFile, "format", format)
	}

	fmt.Printf("%d unique values in %.2fs\n", res.Meta.Count, time.Since(start).Seconds())
	return nil
}

// exitCode maps the closed error taxonomy onto the exit-code classes. This
// is the only place errors terminate the process.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalid), errors.Is(err, prompt.ErrAborted):
		return exitUsage
	case errors.Is(err, reader.ErrFileAccess), errors.Is(err, reader.ErrUnsupportedFormat):
		return exitInput
	case errors.Is(err, dataset.ErrUnknownField), errors.Is(err, filter.ErrInvalidFilterValue):
		return exitProcessing
	case errors.Is(err, output.ErrUnsupportedFormat), errors.Is(err, output.ErrWrite):
		return exitOutput
	default:
		return exitUnexpected
	}
}
