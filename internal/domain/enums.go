package domain

// CheckKind selects which detection the upstream provider runs.
type CheckKind string

const (
	CheckKindPlagiarism  CheckKind = "plagiarism"
	CheckKindAIDetection CheckKind = "ai-detection"
)

// Valid reports whether k is a known check kind.
func (k CheckKind) Valid() bool {
	return k == CheckKindPlagiarism || k == CheckKindAIDetection
}

// ContentMode describes which payload a submission carries.
type ContentMode string

const (
	ContentModeText ContentMode = "text"
	ContentModeFile ContentMode = "file"
)

// Backend identifies one of the two upstream API flavors.
type Backend string

const (
	BackendSingleUser   Backend = "single-user"
	BackendOrganization Backend = "organization"
)

// LifecycleState is the normalized status vocabulary returned to clients.
type LifecycleState string

const (
	StateProcessing LifecycleState = "processing"
	StateCompleted  LifecycleState = "completed"
	StateFailed     LifecycleState = "failed"
	StateUnknown    LifecycleState = "unknown"
)

// Terminal reports whether no further transition is expected from s.
func (s LifecycleState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Submission limits mirrored at the boundary.
const (
	MinTextLength    = 80
	MaxFileSizeBytes = 10 * 1024 * 1024
	MinIdentifierLen = 6
	MaxIdentifierLen = 10
)

// DefaultLanguage is sent to the single-user plagiarism API when the client omits one.
const DefaultLanguage = "en"
