package apperrors

import (
	"errors"
	"fmt"
)

// FetchKind classifies why a dashboard poll produced no usable data.
type FetchKind string

const (
	// KindTransport covers unreachable hosts, timeouts and non-2xx responses.
	KindTransport FetchKind = "transport"
	// KindStatus means the envelope parsed but status was not "ok".
	KindStatus FetchKind = "status"
	// KindMalformed means the body could not be decoded.
	KindMalformed FetchKind = "malformed"
)

// FetchError is returned by the dashboard client for every failed poll.
type FetchError struct {
	Kind     FetchKind
	Endpoint string
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Kind, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Endpoint, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFetchError(kind FetchKind, endpoint, message string, err error) *FetchError {
	return &FetchError{Kind: kind, Endpoint: endpoint, Message: message, Err: err}
}

// KindOf returns the fetch kind of err, or "" if err is not a FetchError.
func KindOf(err error) FetchKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
