package client

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/microcosm-cc/bluemonday"
)

// markup strips tags from error pages served by proxies in front of the backend
var markup = bluemonday.StrictPolicy()

// ResponseError is returned when the server answers with a non-2xx status
type ResponseError struct {
	StatusCode int
	StatusText string
	Body       []byte
	// Message is the "error" member of a JSON body, when present
	Message string
}

func newResponseError(status int, body []byte) *ResponseError {
	e := &ResponseError{
		StatusCode: status,
		StatusText: http.StatusText(status),
		Body:       body,
	}

	var payload struct {
		Error string `json:"error"`
	}
	if len(body) > 0 && sonic.Unmarshal(body, &payload) == nil {
		e.Message = payload.Error
	}
	return e
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.UserMessage())
}

// UserMessage picks the text shown to users: the body's error member,
// then the raw body, then the status text.
func (e *ResponseError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if body := plainText(e.Body); body != "" {
		return body
	}
	return e.StatusText
}

// PayloadError is returned when a successful answer does not match the
// expected schema
type PayloadError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid payload from %s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid payload from %s: %s", e.Endpoint, e.Reason)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func plainText(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	text := html.UnescapeString(markup.Sanitize(string(body)))
	return strings.Join(strings.Fields(text), " ")
}

// callerAbort marks a failure caused by the caller's context ending, not by
// the remote side
type callerAbort struct {
	err error
}

func (e *callerAbort) Error() string { return e.err.Error() }

func (e *callerAbort) Unwrap() error { return e.err }

// abortedBy wraps err when ctx has already ended
func abortedBy(ctx context.Context, err error) error {
	if err == nil || ctx.Err() == nil {
		return err
	}
	return &callerAbort{err: err}
}
