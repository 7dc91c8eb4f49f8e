package client

import (
	"fmt"
	"net/http"
)

// ConfigError is returned if the base URL or proxy URL is missing or invalid. It is raised before any
// network I/O happens.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: %s missing", e.Field)
	}
	return fmt.Sprintf("config: invalid %s %q: %s", e.Field, e.Value, e.Err.Error())
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// AddressError is returned if a token or filename cannot be turned into a URL below the base URL
type AddressError struct {
	Key    string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address: cannot resolve %q: %s", e.Key, e.Reason)
}

// TransportError is returned if a request could not be sent, or if the response could not be read
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %s", e.Op, e.URL, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is returned if the server answered a submission (or a download) with a non-2xx status.
// Body is the response body, verbatim.
type RemoteError struct {
	Code   int
	Status string
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http: %s", e.Status)
	}
	return fmt.Sprintf("http: %s: %s", e.Status, e.Body)
}

// NotFoundError is returned by Download if the server reports a content length of zero
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s (%s)", e.URL, http.StatusText(http.StatusNotFound))
}

// IOError is returned if a local file cannot be created, read or written
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io: cannot %s %s: %s", e.Op, e.Path, e.Err.Error())
}

func (e *IOError) Unwrap() error {
	return e.Err
}
