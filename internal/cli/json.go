package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count,omitempty"`
}

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Meta: meta})
}

// isJSONOutput returns true if JSON output is enabled.
func isJSONOutput() bool {
	return jsonOutput
}

// handleError handles an error appropriately based on output mode. In
// JSON mode it emits a JSON error envelope; in text mode the error is
// returned for Cobra to print.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputJSON(Response{
			OK: false,
			Error: &ErrorInfo{
				Code:       code,
				Message:    err.Error(),
				Suggestion: suggestion,
			},
		})
		return nil
	}
	return err
}

// handleErrorMsg is handleError for message strings.
func handleErrorMsg(code, message, suggestion string) error {
	if jsonOutput {
		outputJSON(Response{
			OK:    false,
			Error: &ErrorInfo{Code: code, Message: message, Suggestion: suggestion},
		})
		return nil
	}
	return fmt.Errorf("%s", message)
}
