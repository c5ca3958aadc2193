package port

import (
	"context"
	"encoding/json"

	"plagrelay/internal/domain"
)

// SubmitOutput is what an adapter extracts from a successful submission.
type SubmitOutput struct {
	Identifier  string
	NativeState json.RawMessage
	Raw         json.RawMessage
}

// RawPayload is an upstream response body passed through untouched.
type RawPayload struct {
	HTTPStatus int
	Body       json.RawMessage
}

// BackendAdapter abstracts one upstream API flavor. Adapters shape requests
// and return native payloads; normalization happens in the caller.
type BackendAdapter interface {
	Name() domain.Backend
	Submit(ctx context.Context, sub *domain.Submission) (*SubmitOutput, error)
	QueryStatus(ctx context.Context, kind domain.CheckKind, id string) (*RawPayload, error)
	FetchReport(ctx context.Context, kind domain.CheckKind, id string) (*RawPayload, error)
}
