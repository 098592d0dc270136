package postgrest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx answer from the endpoint.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("postgrest %d (%s): %s: %s", e.Status, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("postgrest %d (%s): %s", e.Status, e.Code, e.Message)
}

// IsNotFound reports whether err is a PostgREST "no rows" answer.
func IsNotFound(err error) bool {
	var pgErr *Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Status == http.StatusNotFound || pgErr.Code == "PGRST116"
}

func decodeError(status int, raw []byte) error {
	e := &Error{Status: status}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
		Hint    string `json:"hint"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Code = body.Code
		e.Message = body.Message
		e.Details = body.Details
		e.Hint = body.Hint
		if e.Message == "" {
			e.Message = body.Err
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if e.Code == "" {
		e.Code = fmt.Sprint(status)
	}
	return e
}
