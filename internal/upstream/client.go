package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"plagrelay/internal/domain"
	"plagrelay/internal/payload"
	"plagrelay/internal/port"
)

// maxResponseBytes bounds how much of an upstream body is buffered.
const maxResponseBytes = 16 << 20

// Field is an ordered form field.
type Field struct {
	Name  string
	Value string
}

// Client executes calls against one upstream API and classifies failures
// into domain errors. It holds no per-request state.
type Client struct {
	backend domain.Backend
	http    *http.Client
}

// NewClient wraps httpClient for the given backend.
func NewClient(backend domain.Backend, httpClient *http.Client) *Client {
	return &Client{backend: backend, http: httpClient}
}

// Backend returns the backend this client talks to.
func (c *Client) Backend() domain.Backend {
	return c.backend
}

// Get issues a GET with the given headers.
func (c *Client) Get(ctx context.Context, endpoint string, headers http.Header) (*port.RawPayload, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, "", headers)
}

// PostForm issues a url-encoded POST.
func (c *Client) PostForm(ctx context.Context, endpoint string, fields []Field, headers http.Header) (*port.RawPayload, error) {
	form := url.Values{}
	for _, f := range fields {
		form.Add(f.Name, f.Value)
	}
	return c.do(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", headers)
}

// PostMultipart issues a multipart/form-data POST with an optional file part.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields []Field, file *domain.FilePayload, headers http.Header) (*port.RawPayload, error) {
	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return nil, fmt.Errorf("encoding multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, body, contentType, headers)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, headers http.Header) (*port.RawPayload, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).
			Str("backend", string(c.backend)).
			Str("method", method).
			Str("url", endpoint).
			Msg("upstream.Client: transport failure")
		return nil, NewUnreachableError(c.backend, method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewUnreachableError(c.backend, method, endpoint, fmt.Errorf("reading response: %w", err))
	}

	log.Debug().
		Str("backend", string(c.backend)).
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("upstream.Client: call completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUpstreamError(c.backend, resp.StatusCode, respBody)
	}

	if !gjson.ValidBytes(respBody) {
		return nil, &domain.UpstreamError{
			Backend:    c.backend,
			StatusCode: resp.StatusCode,
			Message:    "upstream returned a non-JSON body: " + truncate(strings.TrimSpace(string(respBody)), 200),
		}
	}

	// Some endpoints answer 200 with {"success": false, "message": ...}.
	if gjson.GetBytes(respBody, "success").Type == gjson.False {
		return nil, NewUpstreamError(c.backend, resp.StatusCode, respBody)
	}

	return &port.RawPayload{HTTPStatus: resp.StatusCode, Body: respBody}, nil
}

func encodeMultipart(fields []Field, file *domain.FilePayload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// JoinPath appends escaped path segments to base. A trailing slash is kept
// when the last segment is empty.
func JoinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// SubmitOutputFrom extracts the submission identifier and native state from
// a submission response, trying each candidate path in order. Paths are
// resolved under the "data" wrapper first, then at the top level.
func SubmitOutputFrom(backend domain.Backend, raw *port.RawPayload, idPaths, statePaths []string) (*port.SubmitOutput, error) {
	idRaw := payload.First(raw.Body, idPaths...)
	if !payload.Present(idRaw) {
		return nil, &domain.UpstreamError{
			Backend:    backend,
			StatusCode: raw.HTTPStatus,
			Message:    "submission response carries no identifier",
		}
	}
	id, ok := payload.ID(idRaw)
	if !ok {
		return nil, &domain.UpstreamError{
			Backend:    backend,
			StatusCode: raw.HTTPStatus,
			Message:    "submission identifier has an unexpected type: " + truncate(idRaw.Raw, 100),
		}
	}
	out := &port.SubmitOutput{Identifier: id, Raw: raw.Body}
	if state := payload.First(raw.Body, statePaths...); payload.Present(state) {
		out.NativeState = json.RawMessage(state.Raw)
	}
	return out, nil
}
