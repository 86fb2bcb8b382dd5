package record

// Severity is the raw ErrorType code attached to a validator entry.
// Codes outside the known set are kept as-is.
type Severity string

const (
	SeverityError   Severity = "E"
	SeverityWarning Severity = "W"
	SeverityPass    Severity = "P"
	SeverityInfo    Severity = "I"
	SeverityUnknown Severity = "?"
)

// DisplayOrder is the fixed order of the severity summary line.
var DisplayOrder = []Severity{
	SeverityError,
	SeverityWarning,
	SeverityPass,
	SeverityInfo,
	SeverityUnknown,
}

// Grouped lists the severities whose records are collapsed into groups,
// in section order.
var Grouped = []Severity{
	SeverityError,
	SeverityWarning,
}

// IsGrouped reports whether records of severity s are grouped.
func IsGrouped(s Severity) bool {
	return s == SeverityError || s == SeverityWarning
}

// Label returns the section label for a grouped severity.
func (s Severity) Label() string {
	switch s {
	case SeverityError:
		return "Errors"
	case SeverityWarning:
		return "Warnings"
	case SeverityPass:
		return "Passes"
	case SeverityInfo:
		return "Info"
	case SeverityUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// Record is one finding from a validator report. Absent attributes are
// empty strings.
type Record struct {
	Severity  Severity `json:"severity"`
	ErrorCode string   `json:"error_code"`
	Message   string   `json:"message"`
	Details   string   `json:"details,omitempty"`
}

// GroupKey identifies a group within a single severity.
type GroupKey struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Key returns the grouping key of r.
func (r Record) Key() GroupKey {
	return GroupKey{ErrorCode: r.ErrorCode, Message: r.Message}
}

// Extractor turns a source document into a flat, ordered record sequence.
// A document that cannot be parsed yields an error and no records.
type Extractor interface {
	Extract(path string) ([]Record, error)
}
