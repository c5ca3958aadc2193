package singleuser

import (
	"context"
	"fmt"
	"net/http"

	"plagrelay/internal/config"
	"plagrelay/internal/domain"
	"plagrelay/internal/port"
	"plagrelay/internal/upstream"
)

const tokenHeader = "X-API-TOKEN"

// Adapter implements port.BackendAdapter for the token-authenticated API.
type Adapter struct {
	baseURL  string
	token    string
	language string
	client   *upstream.Client
}

// NewAdapter creates a single-user adapter. A nil httpClient gets a client
// with the configured upstream timeout.
func NewAdapter(cfg *config.UpstreamConfig, httpClient *http.Client) *Adapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	language := cfg.Language
	if language == "" {
		language = domain.DefaultLanguage
	}
	return &Adapter{
		baseURL:  cfg.SingleUserURL(),
		token:    cfg.APIToken,
		language: language,
		client:   upstream.NewClient(domain.BackendSingleUser, httpClient),
	}
}

func (a *Adapter) Name() domain.Backend {
	return domain.BackendSingleUser
}

func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*port.SubmitOutput, error) {
	if sub.File != nil {
		return nil, domain.NewValidationError("file upload not supported with single-user API")
	}

	switch sub.CheckKind {
	case domain.CheckKindPlagiarism:
		language := sub.Language
		if language == "" {
			language = a.language
		}
		raw, err := a.client.PostForm(ctx, upstream.JoinPath(a.baseURL, "text"),
			[]upstream.Field{{Name: "text", Value: sub.Text}, {Name: "language", Value: language}},
			a.headers())
		if err != nil {
			return nil, err
		}
		return upstream.SubmitOutputFrom(domain.BackendSingleUser, raw,
			[]string{"text.id", "id"},
			[]string{"text.state", "state"})

	case domain.CheckKindAIDetection:
		fields := []upstream.Field{{Name: "text", Value: sub.Text}}
		if sub.GroupID != "" {
			fields = append(fields, upstream.Field{Name: "group_id", Value: sub.GroupID})
		}
		raw, err := a.client.PostMultipart(ctx, upstream.JoinPath(a.baseURL, "chat-gpt", ""), fields, nil, a.headers())
		if err != nil {
			return nil, err
		}
		return upstream.SubmitOutputFrom(domain.BackendSingleUser, raw,
			[]string{"id", "text.id"},
			[]string{"status"})
	}
	return nil, domain.NewValidationError("unsupported check kind %q", sub.CheckKind)
}

func (a *Adapter) QueryStatus(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	endpoint, err := a.resourceURL(kind, id, false)
	if err != nil {
		return nil, err
	}
	return a.client.Get(ctx, endpoint, a.headers())
}

func (a *Adapter) FetchReport(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	endpoint, err := a.resourceURL(kind, id, true)
	if err != nil {
		return nil, err
	}
	return a.client.Get(ctx, endpoint, a.headers())
}

// resourceURL maps a check kind to its status or report resource. The AI
// detection result lives on the detection resource itself.
func (a *Adapter) resourceURL(kind domain.CheckKind, id string, report bool) (string, error) {
	switch kind {
	case domain.CheckKindPlagiarism:
		if report {
			return upstream.JoinPath(a.baseURL, "text", "report", id), nil
		}
		return upstream.JoinPath(a.baseURL, "text", id), nil
	case domain.CheckKindAIDetection:
		return upstream.JoinPath(a.baseURL, "chat-gpt", id), nil
	}
	return "", fmt.Errorf("single-user adapter: %w", domain.NewValidationError("unsupported check kind %q", kind))
}

func (a *Adapter) headers() http.Header {
	h := http.Header{}
	h.Set(tokenHeader, a.token)
	return h
}
