package api

import (
	"fmt"
	"strings"
)

// RequestError is returned when the backend answers with a non-2xx status.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("HTTP error! status: %d %s", e.StatusCode, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ", body: " + body
	}
	return msg
}

// StatusError is returned when a response decodes fine but its status field
// is anything other than "success".
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status == "" {
		return fmt.Sprintf("%s: response has no status", e.Endpoint)
	}
	return fmt.Sprintf("%s failed with status %q", e.Endpoint, e.Status)
}

// MissingFieldError is returned when a success response lacks a field the
// client cannot do without.
type MissingFieldError struct {
	Endpoint string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: response is missing %q", e.Endpoint, e.Field)
}
