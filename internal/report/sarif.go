package report

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/fvreport/internal/record"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json"

// sarifReport is the top-level SARIF v2.1.0 structure.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifDefaultLevel `json:"defaultConfiguration"`
}

type sarifDefaultLevel struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string         `json:"ruleId"`
	Level     string         `json:"level"`
	Message   sarifMessage   `json:"message"`
	Locations []sarifLoc     `json:"locations,omitempty"`
	Props     map[string]any `json:"properties,omitempty"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

// Generate writes SARIF v2.1.0 output with one result per group.
func (r *SARIFReporter) Generate(data Data) error {
	rules := buildSARIFRules(data.Sections)
	results := make([]sarifResult, 0)

	for _, s := range data.Sections {
		for _, g := range s.Groups {
			results = append(results, sarifResult{
				RuleID:  sarifRuleID(g.ErrorCode),
				Level:   sarifLevel(s.Severity),
				Message: sarifMessage{Text: sarifText(g.Message)},
				Locations: []sarifLoc{
					{
						PhysicalLocation: sarifPhysical{
							ArtifactLocation: sarifArtifact{URI: data.Source},
						},
					},
				},
				Props: map[string]any{
					"count":   g.Count,
					"samples": g.Samples,
				},
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    data.Tool,
						Version: data.Version,
						Rules:   rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode SARIF report: %w", err)
	}
	return nil
}

func sarifLevel(s record.Severity) string {
	switch s {
	case record.SeverityError:
		return "error"
	case record.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// sarifRuleID substitutes a placeholder for entries without an error code.
func sarifRuleID(code string) string {
	if code == "" {
		return "UNKNOWN"
	}
	return code
}

// SARIF requires a non-empty message text.
func sarifText(msg string) string {
	if msg == "" {
		return "(no message)"
	}
	return msg
}

// buildSARIFRules returns one rule per distinct error code, first seen wins.
func buildSARIFRules(sections []Section) []sarifRule {
	seen := make(map[string]bool)
	rules := make([]sarifRule, 0)
	for _, s := range sections {
		for _, g := range s.Groups {
			id := sarifRuleID(g.ErrorCode)
			if seen[id] {
				continue
			}
			seen[id] = true
			rules = append(rules, sarifRule{
				ID:               id,
				ShortDescription: sarifMessage{Text: sarifText(g.Message)},
				DefaultConfig:    sarifDefaultLevel{Level: sarifLevel(s.Severity)},
			})
		}
	}
	return rules
}
