package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ppiankov/fvreport/internal/analyzer"
	"github.com/ppiankov/fvreport/internal/config"
	"github.com/ppiankov/fvreport/internal/fvxml"
	"github.com/ppiankov/fvreport/internal/record"
	"github.com/ppiankov/fvreport/internal/report"
)

const (
	defaultFormat = "text"
	toolName      = "fvreport"
)

var summarizeFlags struct {
	format      string
	outputFile  string
	samples     int
	detailLimit int
}

// newExtractor is swapped in tests.
var newExtractor = func() record.Extractor {
	return fvxml.NewExtractor()
}

func init() {
	rootCmd.Flags().StringVar(&summarizeFlags.format, "format", defaultFormat, "Output format: text, json, markdown, sarif, pretty")
	rootCmd.Flags().StringVarP(&summarizeFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().IntVar(&summarizeFlags.samples, "samples", analyzer.DefaultMaxSamples, "Sample details retained per group")
	rootCmd.Flags().IntVar(&summarizeFlags.detailLimit, "detail-limit", report.DefaultDetailLimit, "Maximum rendered length of a sample detail")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	// Load config and apply defaults
	cfg, err := config.Load(".")
	if err != nil {
		slog.Warn("Failed to load config file", "error", err)
	}
	applyConfigDefaults(cmd.Flags(), cfg)
	if err := validateFormat(summarizeFlags.format); err != nil {
		return err
	}
	if err := validateLimits(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return &InputError{Reason: reasonNotFound, Path: path}
	}

	records, err := newExtractor().Extract(path)
	if err != nil {
		return enhanceError(&InputError{Reason: reasonParse, Path: path, Err: err})
	}
	slog.Info("Summarizing report", "path", path, "entries", len(records))

	result := analyzer.Analyze(records, analyzer.AnalyzerConfig{
		MaxSamples: summarizeFlags.samples,
	})

	data := report.Data{
		Tool:      toolName,
		Version:   version,
		Timestamp: time.Now().UTC(),
		Source:    path,
		Target: report.Target{
			Type:    "fontvalidator-xml",
			URIHash: computeTargetHash(path),
		},
		Config: report.ReportConfig{
			MaxSamples:  summarizeFlags.samples,
			DetailLimit: summarizeFlags.detailLimit,
		},
		Counts:   result.Counts,
		Total:    result.Total,
		Sections: report.BuildSections(result),
	}

	w, closeOutput, err := openOutput(cmd.OutOrStdout(), summarizeFlags.outputFile)
	if err != nil {
		return err
	}
	defer closeOutput()

	reporter, err := selectReporter(summarizeFlags.format, w)
	if err != nil {
		return err
	}
	return reporter.Generate(data)
}

// flagSet reports whether a flag was set on the command line.
type flagSet interface {
	Changed(name string) bool
}

// applyConfigDefaults fills flags the user did not pass from the config file.
func applyConfigDefaults(flags flagSet, cfg config.Config) {
	if !flags.Changed("format") && cfg.Format != "" {
		summarizeFlags.format = cfg.Format
	}
	if !flags.Changed("output") && cfg.Output != "" {
		summarizeFlags.outputFile = cfg.Output
	}
	if !flags.Changed("samples") && cfg.Samples > 0 {
		summarizeFlags.samples = cfg.Samples
	}
	if !flags.Changed("detail-limit") && cfg.DetailLimit > 0 {
		summarizeFlags.detailLimit = cfg.DetailLimit
	}
}

func validateLimits() error {
	if summarizeFlags.samples <= 0 {
		return fmt.Errorf("--samples must be positive, got %d", summarizeFlags.samples)
	}
	if summarizeFlags.detailLimit <= 0 {
		return fmt.Errorf("--detail-limit must be positive, got %d", summarizeFlags.detailLimit)
	}
	return nil
}

// openOutput returns the destination writer and a function releasing it.
func openOutput(stdout io.Writer, outputFile string) (io.Writer, func(), error) {
	if outputFile == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close output file", "path", outputFile, "error", err)
		}
	}, nil
}

var formats = []string{"text", "json", "markdown", "sarif", "pretty"}

func validateFormat(format string) error {
	if !slices.Contains(formats, format) {
		return fmt.Errorf("unsupported format: %s (use text, json, markdown, sarif, or pretty)", format)
	}
	return nil
}

func selectReporter(format string, w io.Writer) (report.Reporter, error) {
	switch format {
	case "text":
		return &report.TextReporter{Writer: w}, nil
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "markdown":
		return &report.MarkdownReporter{Writer: w}, nil
	case "sarif":
		return &report.SARIFReporter{Writer: w}, nil
	case "pretty":
		if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			slog.Debug("Output is not a terminal, using text format")
			return &report.TextReporter{Writer: w}, nil
		}
		return &report.PrettyReporter{Writer: w}, nil
	default:
		return nil, validateFormat(format)
	}
}
