package coursesync

import (
	"fmt"
	"net/http"
	"strings"
)

// TranslationError reports a failed translation into Lang.
type TranslationError struct {
	Lang    string
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	var b strings.Builder
	b.WriteString("translate")
	if e.Lang != "" {
		b.WriteString(" [" + e.Lang + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *TranslationError) Unwrap() error { return e.Cause }

// ProviderError is returned by AIProvider implementations. StatusCode is
// the backend HTTP status when one was received.
type ProviderError struct {
	Message    string
	StatusCode int
	Cause      error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	msg := "provider: " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// RetryableStatus reports whether a backend HTTP status is worth retrying.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// CacheError reports a cache backend failure. Path names the file, table
// or key prefix involved.
type CacheError struct {
	Message string
	Path    string
	Cause   error
}

func (e *CacheError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", msg)
}

func (e *CacheError) Unwrap() error { return e.Cause }

// NormalizeError reports a failed step of the HTML to Markdown pipeline.
// Stage is "convert" or the name of the failing rule.
type NormalizeError struct {
	Stage string
	Cause error
}

func (e *NormalizeError) Error() string {
	if e.Cause == nil {
		return "normalize: " + e.Stage
	}
	return fmt.Sprintf("normalize: %s: %v", e.Stage, e.Cause)
}

func (e *NormalizeError) Unwrap() error { return e.Cause }
