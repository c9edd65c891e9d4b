package transport

import "fmt"

// HTTPError is a non-2xx response from the server. Message is extracted
// from the JSON "message" or "error" field when present, the raw body
// otherwise.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// NetworkError means the request never produced a server response:
// timeout, DNS failure, connection refused.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
