package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/fvreport/internal/analyzer"
	"github.com/ppiankov/fvreport/internal/record"
)

func rec(sev record.Severity, code, msg, details string) record.Record {
	return record.Record{Severity: sev, ErrorCode: code, Message: msg, Details: details}
}

func dataFor(records []record.Record) Data {
	result := analyzer.Analyze(records, analyzer.AnalyzerConfig{})
	return Data{
		Tool:      "fvreport",
		Version:   "0.1.0",
		Timestamp: time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC),
		Source:    "target/validate/out.ttf.report.xml",
		Target:    Target{Type: "fontvalidator-xml", URIHash: "sha256:abc123"},
		Config:    ReportConfig{MaxSamples: 3, DetailLimit: 200},
		Counts:    result.Counts,
		Total:     result.Total,
		Sections:  BuildSections(result),
	}
}

func sampleData() Data {
	return dataFor([]record.Record{
		rec("E", "E001", "Bad glyph", "glyph 12 has no contours"),
		rec("E", "E001", "Bad glyph", "glyph 13"),
		rec("E", "E002", "Bad table", ""),
		rec("W", "W100", "Odd metrics", ""),
		rec("P", "P001", "ok", ""),
		rec("I", "I001", "info", ""),
	})
}

func renderText(t *testing.T, data Data) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&TextReporter{Writer: &buf}).Generate(data))
	return buf.String()
}

func TestTextReporter(t *testing.T) {
	want := `FontValidator report: target/validate/out.ttf.report.xml
Counts: E=3, W=1, P=1, I=1
Errors (2 groups):
- E001 x2: Bad glyph (sample: glyph 12 has no contours)
- E002 x1: Bad table
Warnings (1 groups):
- W100 x1: Odd metrics
`
	assert.Equal(t, want, renderText(t, sampleData()))
}

func TestTextReporterEmpty(t *testing.T) {
	want := `FontValidator report: target/validate/out.ttf.report.xml
Counts: no Report entries found
Errors: none
Warnings: none
`
	assert.Equal(t, want, renderText(t, dataFor(nil)))
}

func TestTextReporterZeroValueData(t *testing.T) {
	out := renderText(t, Data{Source: "x.xml"})
	assert.Equal(t, "FontValidator report: x.xml\nCounts: no Report entries found\n", out)
}

func TestTextReporterFirstSampleOnly(t *testing.T) {
	out := renderText(t, dataFor([]record.Record{
		rec("E", "E001", "Bad glyph", "first"),
		rec("E", "E001", "Bad glyph", "second"),
		rec("E", "E001", "Bad glyph", "third"),
		rec("E", "E001", "Bad glyph", "fourth"),
	}))
	assert.Contains(t, out, "- E001 x4: Bad glyph (sample: first)\n")
	assert.NotContains(t, out, "second")
}

func TestTextReporterCountOrdering(t *testing.T) {
	var records []record.Record
	for i := 0; i < 2; i++ {
		records = append(records, rec("E", "A", "two", ""))
	}
	for i := 0; i < 5; i++ {
		records = append(records, rec("E", "B", "five", ""))
	}
	out := renderText(t, dataFor(records))
	assert.Less(t, strings.Index(out, "- B x5: five"), strings.Index(out, "- A x2: two"))
}

func TestTextReporterTieBreak(t *testing.T) {
	out := renderText(t, dataFor([]record.Record{
		rec("W", "B", "m", ""),
		rec("W", "A", "m", ""),
	}))
	assert.Contains(t, out, "Warnings (2 groups):\n- A x1: m\n- B x1: m\n")
	assert.Contains(t, out, "Errors: none\n")
}

func TestTextReporterUnknownSeverityHidden(t *testing.T) {
	data := dataFor([]record.Record{rec("X", "X1", "odd", "d")})
	out := renderText(t, data)

	assert.Equal(t, 1, data.Counts["X"])
	assert.Contains(t, out, "Counts: no Report entries found\n")
	assert.NotContains(t, out, "X1")
	assert.Contains(t, out, "Errors: none\nWarnings: none\n")
}

func TestTextReporterQuestionMarkShown(t *testing.T) {
	out := renderText(t, dataFor([]record.Record{{Severity: record.SeverityUnknown}, rec("E", "E1", "m", "")}))
	assert.Contains(t, out, "Counts: E=1, ?=1\n")
}

func TestTextReporterTruncatesSample(t *testing.T) {
	long := strings.Repeat("a", 250)
	out := renderText(t, dataFor([]record.Record{rec("E", "E1", "m", long)}))
	assert.Contains(t, out, "(sample: "+strings.Repeat("a", 197)+"...)")
}

func TestTextReporterCustomDetailLimit(t *testing.T) {
	data := dataFor([]record.Record{rec("E", "E1", "m", "abcdefghij")})
	data.Config.DetailLimit = 8
	assert.Contains(t, renderText(t, data), "(sample: abcde...)")
}

func TestTruncateLaw(t *testing.T) {
	for _, n := range []int{0, 1, 150, 199, 200, 201, 202, 500} {
		t.Run(fmt.Sprintf("len_%d", n), func(t *testing.T) {
			d := strings.Repeat("x", n)
			got := Truncate(d, 200)
			assert.LessOrEqual(t, len([]rune(got)), 200)
			if n <= 200 {
				assert.Equal(t, d, got)
			} else {
				assert.Equal(t, d[:197]+"...", got)
			}
		})
	}
}

func TestTruncateCountsCharacters(t *testing.T) {
	d := strings.Repeat("é", 201)
	got := Truncate(d, 200)
	assert.Equal(t, strings.Repeat("é", 197)+"...", got)

	fits := strings.Repeat("é", 200)
	assert.Equal(t, fits, Truncate(fits, 200))
}

func TestTruncateTinyLimit(t *testing.T) {
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abcdef", 0))
	assert.Equal(t, "...", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("abc", -1))
}

func TestBuildSectionsOrder(t *testing.T) {
	sections := BuildSections(analyzer.Analyze(nil, analyzer.AnalyzerConfig{}))
	require.Len(t, sections, 2)
	assert.Equal(t, record.SeverityError, sections[0].Severity)
	assert.Equal(t, "Errors", sections[0].Label)
	assert.Equal(t, record.SeverityWarning, sections[1].Severity)
	assert.NotNil(t, sections[1].Groups)
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{Writer: &buf}).Generate(sampleData()))

	output := buf.String()
	assert.Contains(t, output, `"$schema": "fvreport/v1"`)
	assert.Contains(t, output, `"tool": "fvreport"`)

	var parsed struct {
		Counts   map[string]int `json:"counts"`
		Sections []struct {
			Severity string `json:"severity"`
			Groups   []struct {
				ErrorCode string   `json:"error_code"`
				Message   string   `json:"message"`
				Count     int      `json:"count"`
				Samples   []string `json:"samples"`
			} `json:"groups"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, 3, parsed.Counts["E"])
	require.Len(t, parsed.Sections, 2)
	require.Len(t, parsed.Sections[0].Groups, 2)
	assert.Equal(t, "E001", parsed.Sections[0].Groups[0].ErrorCode)
	assert.Equal(t, 2, parsed.Sections[0].Groups[0].Count)
	assert.Equal(t, []string{"glyph 12 has no contours", "glyph 13"}, parsed.Sections[0].Groups[0].Samples)
}

func TestJSONReporterKeepsUnknownSeverities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{Writer: &buf}).Generate(dataFor([]record.Record{rec("X", "", "", "")})))
	assert.Contains(t, buf.String(), `"X": 1`)
}

func TestJSONReporterNoSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{Writer: &buf}).Generate(Data{}))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, []any{}, parsed["sections"])
}

func TestMarkdownReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownReporter{Writer: &buf}).Generate(sampleData()))

	output := buf.String()
	assert.Contains(t, output, "# FontValidator Report")
	assert.Contains(t, output, "| Errors (E) | 3 |")
	assert.Contains(t, output, "- **E001** ×2: Bad glyph")
	assert.Contains(t, output, "  - sample: `glyph 12 has no contours`")
	assert.Contains(t, output, "## Warnings")
}

func TestMarkdownReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownReporter{Writer: &buf}).Generate(dataFor(nil)))

	output := buf.String()
	assert.Contains(t, output, "_no Report entries found_")
	assert.Equal(t, 2, strings.Count(output, "_none_"))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\*b\_c\|d`, escapeMarkdown("a*b_c|d"))
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFReporter{Writer: &buf}).Generate(sampleData()))

	output := buf.String()
	assert.Contains(t, output, `"version": "2.1.0"`)
	assert.Contains(t, output, `"ruleId": "E001"`)
	assert.Contains(t, output, `"uri": "target/validate/out.ttf.report.xml"`)

	var parsed sarifReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed.Runs, 1)
	assert.Len(t, parsed.Runs[0].Results, 3)
	assert.Len(t, parsed.Runs[0].Tool.Driver.Rules, 3)
	assert.Equal(t, "warning", parsed.Runs[0].Results[2].Level)
}

func TestSARIFRulesDeduplicated(t *testing.T) {
	sections := BuildSections(analyzer.Analyze([]record.Record{
		rec("E", "C1", "one", ""),
		rec("E", "C1", "two", ""),
		rec("W", "", "", ""),
	}, analyzer.AnalyzerConfig{}))

	rules := buildSARIFRules(sections)
	require.Len(t, rules, 2)
	assert.Equal(t, "C1", rules[0].ID)
	assert.Equal(t, "UNKNOWN", rules[1].ID)
	assert.Equal(t, "(no message)", rules[1].ShortDescription.Text)
}

func TestSARIFLevelMapping(t *testing.T) {
	tests := []struct {
		sev  record.Severity
		want string
	}{
		{record.SeverityError, "error"},
		{record.SeverityWarning, "warning"},
		{record.SeverityInfo, "note"},
		{"X", "note"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sarifLevel(tt.sev), "severity %q", tt.sev)
	}
}

func TestPrettyReporterPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PrettyReporter{Writer: &buf}).Generate(sampleData()))

	output := buf.String()
	assert.Contains(t, output, "FontValidator report: target/validate/out.ttf.report.xml")
	assert.Contains(t, output, "Counts: E=3, W=1, P=1, I=1")
	assert.Contains(t, output, "(2 groups):")
	assert.Contains(t, output, "x2: Bad glyph")
	assert.Contains(t, output, "(sample: glyph 12 has no contours)")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("disk full")
}

func TestReportersPropagateWriteErrors(t *testing.T) {
	reporters := map[string]Reporter{
		"text":     &TextReporter{Writer: failWriter{}},
		"json":     &JSONReporter{Writer: failWriter{}},
		"markdown": &MarkdownReporter{Writer: failWriter{}},
		"sarif":    &SARIFReporter{Writer: failWriter{}},
		"pretty":   &PrettyReporter{Writer: failWriter{}},
	}
	for name, r := range reporters {
		assert.Error(t, r.Generate(sampleData()), name)
	}
}
