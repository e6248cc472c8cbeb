package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is wrapped by StatusError for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is wrapped by StatusError for 401 responses and
	// returned directly when an authenticated call has no session.
	ErrUnauthorized = errors.New("not authenticated")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status int
	Detail string // server-provided message, if any
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API returned status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("API returned status %d", e.Status)
}

// Unwrap maps well-known statuses to sentinel errors.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// IsStatus reports whether err is a StatusError with one of the given codes.
func IsStatus(err error, codes ...int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	for _, code := range codes {
		if se.Status == code {
			return true
		}
	}
	return false
}

const maxErrorBody = 4 << 10

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Status: resp.StatusCode, Detail: parseDetail(body)}
}

// parseDetail extracts the "detail" field of an error payload. Validation
// errors carry a list; those are kept as compact JSON.
func parseDetail(body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return string(body)
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}
