package commands

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Exit codes returned by the fvreport binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInput   = 2
)

const (
	reasonNotFound = "report not found"
	reasonParse    = "failed to parse XML"
)

// InputError reports that the input report is missing or unparseable.
// No aggregation happens once it is returned.
type InputError struct {
	Reason string
	Path   string
	Err    error
	Hint   string
}

func (e *InputError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Reason, e.Path)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (hint: %s)", msg, e.Hint)
	}
	return msg
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return ExitInput
	}
	return ExitFailure
}

// enhanceError attaches a hint for common report parsing problems.
func enhanceError(e *InputError) *InputError {
	if e.Err == nil {
		return e
	}
	msg := e.Err.Error()

	switch {
	case strings.Contains(msg, "no element found"):
		e.Hint = "the report is empty; check that FontValidator finished writing it"
	case strings.Contains(msg, "unexpected EOF"):
		e.Hint = "the report looks truncated; re-run the validator"
	case strings.Contains(msg, "junk after document element"), strings.Contains(msg, "text outside document element"):
		e.Hint = "the file holds more than one XML document; was it concatenated?"
	case strings.Contains(msg, "is a directory"):
		e.Hint = "pass the .report.xml file, not its directory"
	case strings.Contains(msg, "permission denied"):
		e.Hint = "check read permissions on the report file"
	}
	return e
}

// computeTargetHash generates a SHA256 hash identifying the report path.
func computeTargetHash(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	h := sha256.Sum256([]byte("report:" + filepath.ToSlash(abs)))
	return fmt.Sprintf("sha256:%x", h)
}
