package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v66/github"
)

// ErrorKind distinguishes how an upstream failure message was obtained.
type ErrorKind string

const (
	// ErrorKindParsed means the upstream JSON error body carried a usable message.
	ErrorKindParsed ErrorKind = "parsed"
	// ErrorKindStatusOnly means the body was missing or unparseable and only the
	// HTTP status code is available.
	ErrorKindStatusOnly ErrorKind = "statusOnly"
)

// ErrorDetail is the two-step fallback result for an upstream failure: the
// parsed message when one exists, otherwise just the numeric status.
type ErrorDetail struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message,omitempty"`
	StatusCode int       `json:"status_code"`
}

func (d ErrorDetail) String() string {
	if d.Kind == ErrorKindParsed {
		return d.Message
	}
	return fmt.Sprintf("status %d", d.StatusCode)
}

// UpstreamError reports a non-success response from the GitHub API. Resource
// names what was being fetched or created, e.g. "repository acme/widget".
type UpstreamError struct {
	Resource string
	Detail   ErrorDetail
	err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("github: %s: %s", e.Resource, e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return e.err
}

// normalize maps go-github error values onto UpstreamError. Transport-level
// failures (DNS, TLS, timeout) are returned unchanged.
func normalize(err error, resource string) error {
	if err == nil {
		return nil
	}

	var er *github.ErrorResponse
	if errors.As(err, &er) {
		return &UpstreamError{Resource: resource, Detail: detailFrom(er.Message, statusOf(er.Response)), err: err}
	}

	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return &UpstreamError{Resource: resource, Detail: detailFrom(rle.Message, statusOf(rle.Response)), err: err}
	}

	var arle *github.AbuseRateLimitError
	if errors.As(err, &arle) {
		return &UpstreamError{Resource: resource, Detail: detailFrom(arle.Message, statusOf(arle.Response)), err: err}
	}

	return err
}

func detailFrom(message string, status int) ErrorDetail {
	if message == "" {
		return ErrorDetail{Kind: ErrorKindStatusOnly, StatusCode: status}
	}
	return ErrorDetail{Kind: ErrorKindParsed, Message: message, StatusCode: status}
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
