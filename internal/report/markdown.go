package report

import (
	"fmt"
	"strings"

	"github.com/ppiankov/fvreport/internal/record"
)

// Generate writes a Markdown digest.
func (r *MarkdownReporter) Generate(data Data) error {
	w := &errWriter{w: r.Writer}
	limit := data.Config.detailLimit()

	w.println("# FontValidator Report")
	w.println("")
	w.printf("Source: `%s`\n\n", data.Source)

	w.println("## Summary")
	w.println("")
	if countsLine(data.Counts) == noEntries {
		w.printf("_%s_\n\n", noEntries)
	} else {
		w.println("| Severity | Count |")
		w.println("|----------|-------|")
		for _, sev := range record.DisplayOrder {
			if n := data.Counts[sev]; n > 0 {
				w.printf("| %s | %d |\n", markdownSeverity(sev), n)
			}
		}
		w.println("")
	}

	for _, s := range data.Sections {
		w.printf("## %s\n\n", s.Label)
		if len(s.Groups) == 0 {
			w.println("_none_")
			w.println("")
			continue
		}
		for _, g := range s.Groups {
			w.printf("- **%s** ×%d: %s\n", escapeMarkdown(g.ErrorCode), g.Count, escapeMarkdown(g.Message))
			if sample := g.FirstSample(); sample != "" {
				w.printf("  - sample: `%s`\n", strings.ReplaceAll(Truncate(sample, limit), "`", "'"))
			}
		}
		w.println("")
	}
	return w.err
}

func markdownSeverity(s record.Severity) string {
	if s == record.SeverityUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("%s (%s)", s.Label(), s)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
