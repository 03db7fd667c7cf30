package recon

import "fmt"

// SchemaError reports that mandatory columns could not be detected in a file.
// Headers and SampleRow carry diagnostic context so a caller can pick an
// explicit column override.
type SchemaError struct {
	Message   string                 `json:"error"`
	Headers   []string               `json:"detected_headers,omitempty"`
	SampleRow map[string]interface{} `json:"sample_row,omitempty"`
}

func (e *SchemaError) Error() string {
	if len(e.Headers) > 0 {
		return fmt.Sprintf("%s (detected headers: %v)", e.Message, e.Headers)
	}
	return e.Message
}

// NewSchemaError builds a SchemaError with diagnostic context from the first
// available data row.
func NewSchemaError(message string, headers []string, sample Row) *SchemaError {
	err := &SchemaError{Message: message, Headers: headers}
	if sample != nil {
		err.SampleRow = make(map[string]interface{}, len(sample))
		for k, v := range sample {
			err.SampleRow[k] = v
		}
	}
	return err
}
