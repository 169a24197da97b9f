package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

var jsonOutput bool

// Response is the JSON envelope every command emits in --json mode.
type Response struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
	Meta  *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries a stable code alongside the human message.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Meta carries response metadata.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func isJSONOutput() bool {
	return jsonOutput
}

func emit(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess emits a successful JSON response.
func outputSuccess(data interface{}, meta *Meta) {
	emit(Response{OK: true, Data: data, Meta: meta})
}

// outputError emits an error JSON response.
func outputError(code, message, suggestion string) {
	emit(Response{OK: false, Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}})
}

// handleError routes an error by output mode: JSON mode emits the envelope
// and swallows the Go error so cobra does not print it a second time; text
// mode returns it.
func handleError(code string, err error, suggestion string) error {
	if jsonOutput {
		outputError(code, err.Error(), suggestion)
		return nil
	}
	return err
}

// handleErrorMsg is handleError for message strings.
func handleErrorMsg(code, message, suggestion string) error {
	if jsonOutput {
		outputError(code, message, suggestion)
		return nil
	}
	return fmt.Errorf("%s", message)
}
