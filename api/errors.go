package api

import (
	"encoding/json"
	"fmt"

	"github.com/raushankrgupta/harvesthub-seeder/models"
)

// AuthenticationFailure is returned when login does not yield a token
type AuthenticationFailure struct {
	StatusCode int    // 0 when no response was received
	Body       string // raw response body
	Err        error  // underlying cause, if any
}

func (e *AuthenticationFailure) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("authentication failed: status %d: %s", e.StatusCode, e.Describe())
	}
}

func (e *AuthenticationFailure) Unwrap() error { return e.Err }

// Describe returns the backend's error message when the body is a JSON error
// response, else the raw body.
func (e *AuthenticationFailure) Describe() string {
	if s := errorSummary(e.Body); s != "" {
		return s
	}
	return e.Body
}

// SubmissionFailure is returned when the product could not be created
type SubmissionFailure struct {
	StatusCode int
	Body       string
	// Detail is the decoded JSON error body, nil when the body was not JSON
	Detail map[string]interface{}
	Err    error
}

func (e *SubmissionFailure) Error() string {
	switch {
	case e.Err != nil && e.StatusCode == 0:
		return fmt.Sprintf("product submission failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("product submission failed: status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("product submission failed: status %d: %s", e.StatusCode, e.Describe())
	}
}

func (e *SubmissionFailure) Unwrap() error { return e.Err }

// Describe renders the most useful diagnostic available: the backend's error
// fields, then any other JSON body, then the raw response text.
func (e *SubmissionFailure) Describe() string {
	if s := errorSummary(e.Body); s != "" {
		return s
	}
	if e.Detail != nil {
		if b, err := json.Marshal(e.Detail); err == nil {
			return string(b)
		}
	}
	return e.Body
}

func newSubmissionFailure(status int, body []byte) *SubmissionFailure {
	f := &SubmissionFailure{StatusCode: status, Body: string(body)}
	var detail map[string]interface{}
	if err := json.Unmarshal(body, &detail); err == nil {
		f.Detail = detail
	}
	return f
}

func errorSummary(body string) string {
	var resp models.ErrorResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return ""
	}
	return resp.Summary()
}
