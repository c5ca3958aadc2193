package domain

import (
	"encoding/json"
	"unicode/utf8"
)

// FilePayload is an uploaded document forwarded to the organization API.
type FilePayload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload length in bytes.
func (f *FilePayload) Size() int64 {
	return int64(len(f.Data))
}

// Submission is the unit of work sent upstream.
type Submission struct {
	CheckKind       CheckKind
	Text            string
	File            *FilePayload
	Language        string
	GroupID         string
	UseOrganization bool
}

// ContentMode derives the payload mode. Callers must validate that exactly
// one payload is set before relying on it.
func (s *Submission) ContentMode() ContentMode {
	if s.File != nil {
		return ContentModeFile
	}
	return ContentModeText
}

// TextLength counts characters rather than bytes.
func (s *Submission) TextLength() int {
	return utf8.RuneCountInString(s.Text)
}

// SubmitResult is returned to the client after a successful submission.
type SubmitResult struct {
	Identifier  string          `json:"identifier"`
	CheckKind   CheckKind       `json:"check_kind"`
	Backend     Backend         `json:"backend"`
	NativeState json.RawMessage `json:"native_state,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// StatusResult is the normalized answer to a status query. ReportID is
// informational only; all follow-up calls are keyed on Identifier.
type StatusResult struct {
	Status                  LifecycleState  `json:"status"`
	Identifier              string          `json:"identifier"`
	TextID                  string          `json:"text_id"`
	ReportID                *string         `json:"report_id"`
	UseThisIDForReport      string          `json:"use_this_id_for_report"`
	DoNotUseReportIDForAPIs bool            `json:"do_not_use_report_id_for_api_calls"`
	Message                 string          `json:"message,omitempty"`
	Attempts                int             `json:"attempts"`
	Raw                     json.RawMessage `json:"raw,omitempty"`
}

// MatchedSource is one plagiarism match.
type MatchedSource struct {
	Percent     float64 `json:"percent"`
	ContentType string  `json:"content_type"`
	URL         string  `json:"url"`
}

// ChunkPosition is a character offset range in the submitted text.
type ChunkPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FlaggedChunk is one span the AI detector flagged.
type FlaggedChunk struct {
	Reliability float64       `json:"reliability"`
	Position    ChunkPosition `json:"position"`
}

// ReconciledReport is the backend-independent report shape.
type ReconciledReport struct {
	CheckKind  CheckKind       `json:"check_kind"`
	Identifier string          `json:"identifier"`
	Backend    Backend         `json:"backend"`
	Percent    float64         `json:"percent"`
	Sources    []MatchedSource `json:"sources,omitempty"`
	Chunks     []FlaggedChunk  `json:"chunks,omitempty"`
	Comment    string          `json:"comment,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}
