package report

import (
	"encoding/json"
	"fmt"
)

const jsonSchema = "fvreport/v1"

type jsonEnvelope struct {
	Schema string `json:"$schema"`
	Data
}

// Generate writes fvreport/v1 JSON output. Unlike the text digest, counts
// include every severity seen.
func (r *JSONReporter) Generate(data Data) error {
	if data.Sections == nil {
		data.Sections = []Section{}
	}
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonEnvelope{Schema: jsonSchema, Data: data}); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
