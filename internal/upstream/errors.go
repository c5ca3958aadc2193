package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"plagrelay/internal/domain"
	"plagrelay/internal/payload"
)

// NewUpstreamError builds a domain.UpstreamError from a rejected response,
// preferring the provider's own message over the raw body.
func NewUpstreamError(backend domain.Backend, statusCode int, body []byte) *domain.UpstreamError {
	return &domain.UpstreamError{
		Backend:    backend,
		StatusCode: statusCode,
		Message:    extractMessage(statusCode, body),
	}
}

// NewUnreachableError marks a transport-level failure. The URL already
// sits in Endpoint, so a *url.Error is unwrapped to keep it out of the
// client-facing reason.
func NewUnreachableError(backend domain.Backend, method, endpoint string, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &domain.UnreachableError{
		Backend:  backend,
		Endpoint: method + " " + endpoint,
		Cause:    err,
	}
}

func extractMessage(statusCode int, body []byte) string {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		for _, key := range []string{"error", "message", "detail", "errors"} {
			v := payload.Lookup(doc, key)
			if !payload.Present(v) {
				continue
			}
			if s, ok := payload.String(v); ok && s != "" {
				return s
			}
			if s, ok := payload.String(payload.Lookup(v, "message")); ok && s != "" {
				return s
			}
			return truncate(v.Raw, 500)
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "<") {
		if st := http.StatusText(statusCode); st != "" {
			return st
		}
		return fmt.Sprintf("unexpected status %d", statusCode)
	}
	return truncate(text, 500)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
