package reconcile

import (
	"encoding/json"

	"plagrelay/internal/domain"
	"plagrelay/internal/payload"
)

// Single-user plagiarism state codes that mean the report exists.
const (
	plagStateChecked  = 3
	plagStateReported = 5
)

// aiStatusDone is the AI-detection status code for a finished result.
const aiStatusDone = 4

// StatusFields are the backend-independent values lifted from a status payload.
type StatusFields struct {
	ReportID   string
	NativeCode *int
	NativeText string
}

// Normalize maps a raw status payload onto the canonical lifecycle. A payload
// without any recognizable state field yields domain.StateUnknown.
func Normalize(kind domain.CheckKind, backend domain.Backend, body json.RawMessage) (domain.LifecycleState, StatusFields) {
	data := []byte(body)
	fields := StatusFields{ReportID: reportID(data)}

	switch kind {
	case domain.CheckKindPlagiarism:
		if backend == domain.BackendOrganization {
			return normalizeOrgPlagiarism(data, &fields), fields
		}
		return normalizeSingleUserPlagiarism(data, &fields), fields
	case domain.CheckKindAIDetection:
		return normalizeAIDetection(data, &fields), fields
	}
	return domain.StateUnknown, fields
}

func normalizeSingleUserPlagiarism(data []byte, fields *StatusFields) domain.LifecycleState {
	state, ok := intField(data, "state")
	if !ok {
		return domain.StateUnknown
	}
	fields.NativeCode = &state
	switch {
	case state == plagStateChecked || state == plagStateReported:
		return domain.StateCompleted
	case state < plagStateChecked:
		return domain.StateProcessing
	default:
		return domain.StateFailed
	}
}

func normalizeOrgPlagiarism(data []byte, fields *StatusFields) domain.LifecycleState {
	recognized := false
	if raw := payload.Get(data, "status"); payload.Present(raw) {
		recognized = true
		if s, ok := payload.String(raw); ok {
			fields.NativeText = s
			if s == string(domain.StateCompleted) {
				return domain.StateCompleted
			}
		}
	}
	if state, ok := intField(data, "state"); ok {
		recognized = true
		fields.NativeCode = &state
		if state == plagStateReported {
			return domain.StateCompleted
		}
	}
	if !recognized {
		return domain.StateUnknown
	}
	return domain.StateProcessing
}

func normalizeAIDetection(data []byte, fields *StatusFields) domain.LifecycleState {
	status, ok := intField(data, "status")
	if !ok {
		return domain.StateUnknown
	}
	fields.NativeCode = &status
	if status == aiStatusDone {
		return domain.StateCompleted
	}
	return domain.StateProcessing
}

func intField(data []byte, key string) (int, bool) {
	return payload.Int(payload.Get(data, key))
}

func reportID(data []byte) string {
	id, _ := payload.ID(payload.First(data, "report_id", "report.id"))
	return id
}
