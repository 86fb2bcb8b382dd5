package analyzer

import (
	"github.com/ppiankov/fvreport/internal/record"
)

// DefaultMaxSamples is the number of details retained per group.
const DefaultMaxSamples = 3

// SeverityCounts maps every severity seen to its number of records.
type SeverityCounts map[record.Severity]int

// GroupInfo is the aggregated state of one group.
type GroupInfo struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples,omitempty"`
}

// addSample appends detail unless it is empty or the group already holds
// limit samples.
func (g *GroupInfo) addSample(detail string, limit int) {
	if detail == "" || len(g.Samples) >= limit {
		return
	}
	g.Samples = append(g.Samples, detail)
}

// FirstSample returns the first retained detail, or "" if none was kept.
func (g GroupInfo) FirstSample() string {
	if len(g.Samples) == 0 {
		return ""
	}
	return g.Samples[0]
}

// Group is a ranked, read-only view of one group.
type Group struct {
	Severity record.Severity `json:"severity"`
	record.GroupKey
	GroupInfo
}

// groupID is the compound key of the group map.
type groupID struct {
	severity record.Severity
	key      record.GroupKey
}

// AnalysisResult holds the completed aggregate state of one run.
type AnalysisResult struct {
	Counts SeverityCounts `json:"counts"`
	Total  int            `json:"total"`

	groups map[groupID]*GroupInfo
}

// AnalyzerConfig controls analysis behavior.
type AnalyzerConfig struct {
	MaxSamples int
}

func (c AnalyzerConfig) maxSamples() int {
	if c.MaxSamples <= 0 {
		return DefaultMaxSamples
	}
	return c.MaxSamples
}
