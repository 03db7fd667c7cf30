package api

import "meterrecon/domain/recon"

// ErrorResponse is the structured error payload. DetectedHeaders and
// SampleRow are populated on schema-detection failures so a human can pick
// the right override value.
type ErrorResponse struct {
	Error           string                 `json:"error"`
	DetectedHeaders []string               `json:"detected_headers,omitempty"`
	SampleRow       map[string]interface{} `json:"sample_row,omitempty"`
}

// RunsResponse wraps the run history listing.
type RunsResponse struct {
	Runs []*recon.RunRecord `json:"runs"`
}
