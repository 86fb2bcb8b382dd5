package fvxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ppiankov/fvreport/internal/record"
)

// ReportElement is the element name of a single validator entry.
const ReportElement = "Report"

// Attribute names read from each entry.
const (
	attrErrorType = "ErrorType"
	attrErrorCode = "ErrorCode"
	attrMessage   = "Message"
	attrDetails   = "Details"
)

// ParseError reports that the source document could not be parsed at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extractor reads FontValidator XML reports from disk.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements record.Extractor.
func (e *Extractor) Extract(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(f)
	if err != nil {
		return nil, err
	}

	slog.Debug("Extracted report entries", "path", path, "count", len(records))
	return records, nil
}

// Parse returns one record per Report element found anywhere in the
// document, in document order. Any syntax error fails the whole document.
// A leading byte-order mark selects the input encoding.
func Parse(r io.Reader) ([]record.Record, error) {
	dec := xml.NewDecoder(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	dec.CharsetReader = charsetReader

	var (
		records    []record.Record
		depth      int
		sawRoot    bool
		closedRoot bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if closedRoot {
				line, _ := dec.InputPos()
				return nil, &ParseError{Err: fmt.Errorf("line %d: junk after document element", line)}
			}
			if name, dup := duplicateAttr(t.Attr); dup {
				line, _ := dec.InputPos()
				return nil, &ParseError{Err: fmt.Errorf("line %d: duplicate attribute %s", line, name)}
			}
			sawRoot = true
			depth++
			if t.Name.Local == ReportElement {
				records = append(records, fromAttrs(t.Attr))
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				closedRoot = true
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return nil, &ParseError{Err: fmt.Errorf("line %d: text outside document element", line)}
			}
		}
	}

	if !sawRoot {
		return nil, &ParseError{Err: errors.New("no element found")}
	}
	return records, nil
}

// charsetReader decodes declared non-UTF-8 encodings. A document that
// declares UTF-16 has already been transcoded by its byte-order mark, since
// the decoder cannot read the declaration otherwise.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "utf-16") {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

func duplicateAttr(attrs []xml.Attr) (string, bool) {
	if len(attrs) < 2 {
		return "", false
	}
	seen := make(map[xml.Name]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.Name]; ok {
			if a.Name.Space != "" {
				return a.Name.Space + ":" + a.Name.Local, true
			}
			return a.Name.Local, true
		}
		seen[a.Name] = struct{}{}
	}
	return "", false
}

// attrNormalizer maps literal whitespace in attribute values to spaces.
var attrNormalizer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ")

func fromAttrs(attrs []xml.Attr) record.Record {
	rec := record.Record{Severity: record.SeverityUnknown}
	for _, a := range attrs {
		if a.Name.Space != "" {
			continue
		}
		value := attrNormalizer.Replace(a.Value)
		switch a.Name.Local {
		case attrErrorType:
			rec.Severity = record.Severity(value)
		case attrErrorCode:
			rec.ErrorCode = value
		case attrMessage:
			rec.Message = value
		case attrDetails:
			rec.Details = value
		}
	}
	return rec
}
