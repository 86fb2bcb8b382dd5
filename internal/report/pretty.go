package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/fvreport/internal/record"
)

// Generate writes the text digest with terminal styling. Styles degrade to
// plain text when the writer has no color support.
func (r *PrettyReporter) Generate(data Data) error {
	re := lipgloss.NewRenderer(r.Writer)
	titleStyle := re.NewStyle().Bold(true)
	codeStyle := re.NewStyle().Bold(true)
	sampleStyle := re.NewStyle().Faint(true)
	sectionStyles := map[record.Severity]lipgloss.Style{
		record.SeverityError:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		record.SeverityWarning: re.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}

	w := &errWriter{w: r.Writer}
	limit := data.Config.detailLimit()

	w.println(titleStyle.Render("FontValidator report: " + data.Source))
	w.printf("Counts: %s\n", countsLine(data.Counts))

	for _, s := range data.Sections {
		style, ok := sectionStyles[s.Severity]
		if !ok {
			style = titleStyle
		}
		if len(s.Groups) == 0 {
			w.printf("%s: none\n", style.Render(s.Label))
			continue
		}
		w.printf("%s (%d groups):\n", style.Render(s.Label), len(s.Groups))
		for _, g := range s.Groups {
			line := fmt.Sprintf("- %s x%d: %s", codeStyle.Render(g.ErrorCode), g.Count, g.Message)
			if sample := g.FirstSample(); sample != "" {
				line += " " + sampleStyle.Render(fmt.Sprintf("(sample: %s)", Truncate(sample, limit)))
			}
			w.println(line)
		}
	}
	return w.err
}
