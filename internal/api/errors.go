package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrAuthRequired is returned before any request is issued when an operation
// needs a session and none exists.
var ErrAuthRequired = errors.New("authentication required")

// TransportError wraps a network-level failure: the request never produced an
// HTTP response (or the response body could not be read/decoded).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError carries the server's field-level rejection of signup or
// login input, verbatim, so callers can show it to the user.
type ValidationError struct {
	Op     string
	Status int
	Detail json.RawMessage
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: rejected by server (status %d): %s", e.Op, e.Status, e.Detail)
}

// ServerError is a non-success status on an otherwise valid authenticated
// request. Detail holds the decoded error payload when the server sent one.
type ServerError struct {
	Op     string
	Status int
	Detail json.RawMessage
}

func (e *ServerError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("%s: server returned status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}
