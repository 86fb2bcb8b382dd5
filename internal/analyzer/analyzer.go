package analyzer

import (
	"sort"

	"github.com/ppiankov/fvreport/internal/record"
)

// Aggregator folds records into severity counts and per-severity groups.
// It is not safe for concurrent use.
type Aggregator struct {
	maxSamples int
	result     *AnalysisResult
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(cfg AnalyzerConfig) *Aggregator {
	return &Aggregator{
		maxSamples: cfg.maxSamples(),
		result: &AnalysisResult{
			Counts: make(SeverityCounts),
			groups: make(map[groupID]*GroupInfo),
		},
	}
}

// Add counts r under its raw severity and, for grouped severities, folds it
// into its group.
func (a *Aggregator) Add(r record.Record) {
	a.result.Total++
	a.result.Counts[r.Severity]++

	if !record.IsGrouped(r.Severity) {
		return
	}

	id := groupID{severity: r.Severity, key: r.Key()}
	info, ok := a.result.groups[id]
	if !ok {
		info = &GroupInfo{}
		a.result.groups[id] = info
	}
	info.Count++
	info.addSample(r.Details, a.maxSamples)
}

// Result returns the aggregate state built so far.
func (a *Aggregator) Result() *AnalysisResult {
	return a.result
}

// Analyze consumes records in a single pass and returns the aggregate state.
func Analyze(records []record.Record, cfg AnalyzerConfig) *AnalysisResult {
	agg := NewAggregator(cfg)
	for _, r := range records {
		agg.Add(r)
	}
	return agg.Result()
}

// Count returns the number of records seen with severity s.
func (r *AnalysisResult) Count(s record.Severity) int {
	return r.Counts[s]
}

// Lookup returns the group for (s, key), if any.
func (r *AnalysisResult) Lookup(s record.Severity, key record.GroupKey) (GroupInfo, bool) {
	info, ok := r.groups[groupID{severity: s, key: key}]
	if !ok {
		return GroupInfo{}, false
	}
	return *info, true
}

// Ranked returns the groups of severity s ordered by descending count, then
// ascending error code, then ascending message.
func (r *AnalysisResult) Ranked(s record.Severity) []Group {
	var groups []Group
	for id, info := range r.groups {
		if id.severity != s {
			continue
		}
		groups = append(groups, Group{
			Severity: s,
			GroupKey: id.key,
			GroupInfo: GroupInfo{
				Count:   info.Count,
				Samples: append([]string(nil), info.Samples...),
			},
		})
	}
	SortGroups(groups)
	return groups
}

// SortGroups orders groups by (-count, error code, message).
func SortGroups(groups []Group) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		if groups[i].ErrorCode != groups[j].ErrorCode {
			return groups[i].ErrorCode < groups[j].ErrorCode
		}
		return groups[i].Message < groups[j].Message
	})
}
