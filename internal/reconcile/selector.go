// Package reconcile holds the pure decision logic that sits between the
// HTTP handlers and the upstream adapters: backend selection, status
// normalization, report shaping and the retry loop.
package reconcile

import (
	"unicode/utf8"

	"plagrelay/internal/domain"
)

// SelectBackend validates a submission and picks the adapter that can carry
// it. It never touches the network. maxFileBytes <= 0 uses the provider limit.
func SelectBackend(sub *domain.Submission, hasOrgCredentials bool, maxFileBytes int64) (domain.Backend, error) {
	if !sub.CheckKind.Valid() {
		return "", domain.NewValidationError("unsupported check kind %q", sub.CheckKind)
	}

	hasText := sub.Text != ""
	hasFile := sub.File != nil
	if !hasText && !hasFile {
		return "", domain.NewValidationError("Either text or file must be provided")
	}
	if hasText && hasFile {
		return "", domain.NewValidationError("Provide either text or file, not both")
	}

	if hasText && sub.TextLength() < domain.MinTextLength {
		return "", domain.NewValidationError("Text must be at least %d characters long", domain.MinTextLength)
	}

	if hasFile {
		if maxFileBytes <= 0 || maxFileBytes > domain.MaxFileSizeBytes {
			maxFileBytes = domain.MaxFileSizeBytes
		}
		if sub.File.Size() == 0 {
			return "", domain.NewValidationError("Uploaded file is empty")
		}
		if sub.File.Size() > maxFileBytes {
			return "", domain.ErrFileTooLarge
		}
		if !sub.UseOrganization || !hasOrgCredentials {
			return "", domain.NewValidationError("File upload not supported with single-user API. " +
				"Please extract text first or configure organization API.")
		}
	}

	if sub.UseOrganization && hasOrgCredentials {
		return domain.BackendOrganization, nil
	}
	return domain.BackendSingleUser, nil
}

// SelectQueryBackend picks the adapter for status and report queries.
// Queries only need the group token, not the author identity.
func SelectQueryBackend(useOrganization, hasGroupToken bool) domain.Backend {
	if useOrganization && hasGroupToken {
		return domain.BackendOrganization
	}
	return domain.BackendSingleUser
}

// ValidateIdentifier rejects identifiers whose length cannot be a submission
// id. Report ids are longer, so this catches the common mix-up before any
// upstream call is made.
func ValidateIdentifier(id string) error {
	n := utf8.RuneCountInString(id)
	if n < domain.MinIdentifierLen || n > domain.MaxIdentifierLen {
		return domain.NewValidationError("Invalid ID format. Please use the original text ID " +
			"from the submission response, not the report ID.")
	}
	return nil
}
