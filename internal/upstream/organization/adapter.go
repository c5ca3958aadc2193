package organization

import (
	"context"
	"fmt"
	"net/http"

	"plagrelay/internal/config"
	"plagrelay/internal/domain"
	"plagrelay/internal/port"
	"plagrelay/internal/upstream"
)

// Adapter implements port.BackendAdapter for the group-token API. Every
// call carries the group token as a form field instead of a header.
type Adapter struct {
	baseURL    string
	groupToken string
	author     string
	client     *upstream.Client
}

// NewAdapter creates an organization adapter. A nil httpClient gets a client
// with the configured upstream timeout.
func NewAdapter(cfg *config.UpstreamConfig, httpClient *http.Client) *Adapter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Adapter{
		baseURL:    cfg.OrganizationURL(),
		groupToken: cfg.GroupToken,
		author:     cfg.AuthorEmail,
		client:     upstream.NewClient(domain.BackendOrganization, httpClient),
	}
}

func (a *Adapter) Name() domain.Backend {
	return domain.BackendOrganization
}

func (a *Adapter) Submit(ctx context.Context, sub *domain.Submission) (*port.SubmitOutput, error) {
	if a.groupToken == "" || a.author == "" {
		return nil, domain.NewValidationError("organization API credentials are not configured")
	}

	fields := []upstream.Field{
		{Name: "group_token", Value: a.groupToken},
		{Name: "author", Value: a.author},
	}
	if sub.File == nil {
		fields = append(fields, upstream.Field{Name: "text", Value: sub.Text})
	}

	var endpoint string
	switch sub.CheckKind {
	case domain.CheckKindPlagiarism:
		endpoint = upstream.JoinPath(a.baseURL, "text", "check", "")
	case domain.CheckKindAIDetection:
		endpoint = upstream.JoinPath(a.baseURL, "chat-gpt", "")
	default:
		return nil, domain.NewValidationError("unsupported check kind %q", sub.CheckKind)
	}

	raw, err := a.client.PostMultipart(ctx, endpoint, fields, sub.File, nil)
	if err != nil {
		return nil, err
	}
	return upstream.SubmitOutputFrom(domain.BackendOrganization, raw,
		[]string{"text.id", "id"},
		[]string{"text.state", "status", "state"})
}

func (a *Adapter) QueryStatus(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	endpoint, err := a.resourceURL(kind, id, false)
	if err != nil {
		return nil, err
	}
	return a.client.PostForm(ctx, endpoint, a.tokenFields(), nil)
}

func (a *Adapter) FetchReport(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	endpoint, err := a.resourceURL(kind, id, true)
	if err != nil {
		return nil, err
	}
	return a.client.PostForm(ctx, endpoint, a.tokenFields(), nil)
}

func (a *Adapter) resourceURL(kind domain.CheckKind, id string, report bool) (string, error) {
	switch kind {
	case domain.CheckKindPlagiarism:
		if report {
			return upstream.JoinPath(a.baseURL, "text", "report", id, ""), nil
		}
		return upstream.JoinPath(a.baseURL, "text", "status", id, ""), nil
	case domain.CheckKindAIDetection:
		return upstream.JoinPath(a.baseURL, "chat-gpt", id, ""), nil
	}
	return "", fmt.Errorf("organization adapter: %w", domain.NewValidationError("unsupported check kind %q", kind))
}

func (a *Adapter) tokenFields() []upstream.Field {
	return []upstream.Field{{Name: "group_token", Value: a.groupToken}}
}
