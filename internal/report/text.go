package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/fvreport/internal/analyzer"
	"github.com/ppiankov/fvreport/internal/record"
)

const noEntries = "no Report entries found"

// Generate writes the plain-text digest.
func (r *TextReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}

	w.printf("FontValidator report: %s\n", data.Source)
	w.printf("Counts: %s\n", countsLine(data.Counts))

	for _, s := range data.Sections {
		if len(s.Groups) == 0 {
			w.printf("%s: none\n", s.Label)
			continue
		}
		w.printf("%s (%d groups):\n", s.Label, len(s.Groups))
		for _, g := range s.Groups {
			w.println(groupLine(g, data.Config.detailLimit()))
		}
	}
	return w.err
}

// countsLine lists non-zero counts in display order. Severities outside the
// display order are not shown.
func countsLine(counts analyzer.SeverityCounts) string {
	parts := make([]string, 0, len(record.DisplayOrder))
	for _, sev := range record.DisplayOrder {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", sev, n))
		}
	}
	if len(parts) == 0 {
		return noEntries
	}
	return strings.Join(parts, ", ")
}

func groupLine(g analyzer.Group, limit int) string {
	line := fmt.Sprintf("- %s x%d: %s", g.ErrorCode, g.Count, g.Message)
	if sample := g.FirstSample(); sample != "" {
		line += fmt.Sprintf(" (sample: %s)", Truncate(sample, limit))
	}
	return line
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
