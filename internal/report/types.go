package report

import (
	"io"
	"time"

	"github.com/ppiankov/fvreport/internal/analyzer"
	"github.com/ppiankov/fvreport/internal/record"
)

// DefaultDetailLimit is the maximum rendered length of a sample detail.
const DefaultDetailLimit = 200

// Reporter is the interface for output formatters.
type Reporter interface {
	Generate(data Data) error
}

// Data holds all information needed to generate a report.
type Data struct {
	Tool      string                  `json:"tool"`
	Version   string                  `json:"version"`
	Timestamp time.Time               `json:"timestamp"`
	Source    string                  `json:"source"`
	Target    Target                  `json:"target"`
	Config    ReportConfig            `json:"config"`
	Counts    analyzer.SeverityCounts `json:"counts"`
	Total     int                     `json:"total"`
	Sections  []Section               `json:"sections"`
}

// Target identifies the report being summarized.
type Target struct {
	Type    string `json:"type"`
	URIHash string `json:"uri_hash"`
}

// ReportConfig captures the settings used for the run.
type ReportConfig struct {
	MaxSamples  int `json:"max_samples"`
	DetailLimit int `json:"detail_limit"`
}

func (c ReportConfig) detailLimit() int {
	if c.DetailLimit <= 0 {
		return DefaultDetailLimit
	}
	return c.DetailLimit
}

// Section is the ranked group list of one grouped severity.
type Section struct {
	Severity record.Severity  `json:"severity"`
	Label    string           `json:"label"`
	Groups   []analyzer.Group `json:"groups"`
}

// BuildSections returns one section per grouped severity, in display order.
func BuildSections(result *analyzer.AnalysisResult) []Section {
	sections := make([]Section, 0, len(record.Grouped))
	for _, sev := range record.Grouped {
		groups := result.Ranked(sev)
		if groups == nil {
			groups = []analyzer.Group{}
		}
		sections = append(sections, Section{
			Severity: sev,
			Label:    sev.Label(),
			Groups:   groups,
		})
	}
	return sections
}

// TextReporter generates the plain-text digest.
type TextReporter struct {
	Writer io.Writer
}

// JSONReporter generates fvreport/v1 envelope JSON output.
type JSONReporter struct {
	Writer io.Writer
}

// MarkdownReporter generates a Markdown digest.
type MarkdownReporter struct {
	Writer io.Writer
}

// SARIFReporter generates SARIF v2.1.0 output.
type SARIFReporter struct {
	Writer io.Writer
}

// PrettyReporter generates the text digest styled for a terminal.
type PrettyReporter struct {
	Writer io.Writer
}
