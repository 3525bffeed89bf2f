package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a backend rejection normalized to {message, details?}.
// Details, when the backend sends an array, are joined for display.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return strings.Join(e.Details, ", ")
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// ParseError builds an APIError from a failure response body. Non-JSON
// bodies degrade to the raw text, empty bodies to the status text.
func ParseError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var payload struct {
		Message string   `json:"message"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && (payload.Message != "" || len(payload.Details) > 0) {
		apiErr.Message = payload.Message
		apiErr.Details = payload.Details
		return apiErr
	}

	text := string(bytes.TrimSpace(body))
	if text == "" {
		text = http.StatusText(status)
	}
	apiErr.Message = text
	return apiErr
}
