package organization_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plagrelay/internal/config"
	"plagrelay/internal/domain"
	"plagrelay/internal/upstream/organization"
)

func newTestAdapter(serverURL string) *organization.Adapter {
	cfg := &config.UpstreamConfig{
		APIToken:    "test-token",
		GroupToken:  "group-token",
		AuthorEmail: "author@example.com",
		BaseURL:     serverURL,
	}
	return organization.NewAdapter(cfg, nil)
}

func TestAdapter_SubmitText(t *testing.T) {
	text := strings.Repeat("b", 90)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/org/text/check/", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-API-TOKEN"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "group-token", r.FormValue("group_token"))
		assert.Equal(t, "author@example.com", r.FormValue("author"))
		assert.Equal(t, text, r.FormValue("text"))

		_, _ = io.WriteString(w, `{"success":true,"data":{"text":{"id":2345678,"state":0}}}`)
	}))
	defer server.Close()

	out, err := newTestAdapter(server.URL).Submit(context.Background(), &domain.Submission{
		CheckKind: domain.CheckKindPlagiarism,
		Text:      text,
	})

	require.NoError(t, err)
	assert.Equal(t, "2345678", out.Identifier)
}

func TestAdapter_SubmitFileForAIDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/org/chat-gpt/", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Empty(t, r.FormValue("text"))
		f, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "essay.docx", header.Filename)

		_, _ = io.WriteString(w, `{"id":3456789,"status":1}`)
	}))
	defer server.Close()

	out, err := newTestAdapter(server.URL).Submit(context.Background(), &domain.Submission{
		CheckKind: domain.CheckKindAIDetection,
		File:      &domain.FilePayload{Name: "essay.docx", Data: []byte("PK\x03\x04")},
	})

	require.NoError(t, err)
	assert.Equal(t, "3456789", out.Identifier)
	assert.Equal(t, "1", string(out.NativeState))
}

func TestAdapter_SubmitWithoutCredentials(t *testing.T) {
	a := organization.NewAdapter(&config.UpstreamConfig{BaseURL: "http://127.0.0.1:1"}, nil)
	_, err := a.Submit(context.Background(), &domain.Submission{CheckKind: domain.CheckKindPlagiarism, Text: "x"})
	assert.True(t, domain.IsValidation(err))
}

func TestAdapter_StatusAndReportPostGroupToken(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "group-token", r.PostForm.Get("group_token"))
		paths = append(paths, r.URL.Path)
		_, _ = io.WriteString(w, `{"status":"completed"}`)
	}))
	defer server.Close()

	a := newTestAdapter(server.URL)
	ctx := context.Background()

	_, err := a.QueryStatus(ctx, domain.CheckKindPlagiarism, "2345678")
	require.NoError(t, err)
	_, err = a.FetchReport(ctx, domain.CheckKindPlagiarism, "2345678")
	require.NoError(t, err)
	_, err = a.QueryStatus(ctx, domain.CheckKindAIDetection, "3456789")
	require.NoError(t, err)
	_, err = a.FetchReport(ctx, domain.CheckKindAIDetection, "3456789")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/org/text/status/2345678/",
		"/api/org/text/report/2345678/",
		"/api/org/chat-gpt/3456789/",
		"/api/org/chat-gpt/3456789/",
	}, paths)
}
