// Package api provides the Datadog API client and its error types.
package api

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the upstream returned HTTP 200 with a
// body that is not well-formed JSON.
var ErrMalformedResponse = errors.New("malformed JSON response")

// UpstreamError carries the HTTP status of a failed request. It is
// recorded per category and never aborts the batch.
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("GET %s: status %d", e.Endpoint, e.StatusCode)
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
