package reconcile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plagrelay/internal/domain"
	"plagrelay/internal/reconcile"
)

var longText = strings.Repeat("A", domain.MinTextLength)

func TestSelectBackend_TextSingleUser(t *testing.T) {
	sub := &domain.Submission{CheckKind: domain.CheckKindPlagiarism, Text: longText}
	backend, err := reconcile.SelectBackend(sub, true, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.BackendSingleUser, backend)
}

func TestSelectBackend_TextOrganization(t *testing.T) {
	sub := &domain.Submission{CheckKind: domain.CheckKindAIDetection, Text: longText, UseOrganization: true}
	backend, err := reconcile.SelectBackend(sub, true, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.BackendOrganization, backend)
}

func TestSelectBackend_OrganizationFlagWithoutCredentialsFallsBack(t *testing.T) {
	sub := &domain.Submission{CheckKind: domain.CheckKindPlagiarism, Text: longText, UseOrganization: true}
	backend, err := reconcile.SelectBackend(sub, false, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.BackendSingleUser, backend)
}

func TestSelectBackend_ShortTextRejected(t *testing.T) {
	for _, n := range []int{1, 40, domain.MinTextLength - 1} {
		sub := &domain.Submission{CheckKind: domain.CheckKindPlagiarism, Text: strings.Repeat("x", n)}
		_, err := reconcile.SelectBackend(sub, true, 0)
		assert.True(t, domain.IsValidation(err), "length %d", n)
	}
}

func TestSelectBackend_CountsCharactersNotBytes(t *testing.T) {
	// 80 two-byte characters
	sub := &domain.Submission{CheckKind: domain.CheckKindPlagiarism, Text: strings.Repeat("é", domain.MinTextLength)}
	_, err := reconcile.SelectBackend(sub, false, 0)
	assert.NoError(t, err)

	sub.Text = strings.Repeat("é", domain.MinTextLength-1)
	_, err = reconcile.SelectBackend(sub, false, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectBackend_FileRequiresOrganization(t *testing.T) {
	file := &domain.FilePayload{Name: "essay.pdf", Data: []byte("%PDF-1.4")}
	for _, kind := range []domain.CheckKind{domain.CheckKindPlagiarism, domain.CheckKindAIDetection} {
		sub := &domain.Submission{CheckKind: kind, File: file}
		_, err := reconcile.SelectBackend(sub, true, 0)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "File upload not supported with single-user API")

		sub.UseOrganization = true
		_, err = reconcile.SelectBackend(sub, false, 0)
		assert.True(t, domain.IsValidation(err), "flag without credentials")

		backend, err := reconcile.SelectBackend(sub, true, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.BackendOrganization, backend)
	}
}

func TestSelectBackend_FileTooLarge(t *testing.T) {
	sub := &domain.Submission{
		CheckKind:       domain.CheckKindPlagiarism,
		File:            &domain.FilePayload{Name: "big.bin", Data: make([]byte, 2048)},
		UseOrganization: true,
	}
	_, err := reconcile.SelectBackend(sub, true, 1024)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestSelectBackend_EmptyFile(t *testing.T) {
	sub := &domain.Submission{
		CheckKind:       domain.CheckKindPlagiarism,
		File:            &domain.FilePayload{Name: "empty.txt"},
		UseOrganization: true,
	}
	_, err := reconcile.SelectBackend(sub, true, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectBackend_PayloadCardinality(t *testing.T) {
	_, err := reconcile.SelectBackend(&domain.Submission{CheckKind: domain.CheckKindPlagiarism}, true, 0)
	require.Error(t, err)
	assert.Equal(t, "Either text or file must be provided", err.Error())

	both := &domain.Submission{
		CheckKind:       domain.CheckKindPlagiarism,
		Text:            longText,
		File:            &domain.FilePayload{Name: "a.txt", Data: []byte("a")},
		UseOrganization: true,
	}
	_, err = reconcile.SelectBackend(both, true, 0)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectBackend_UnknownKind(t *testing.T) {
	_, err := reconcile.SelectBackend(&domain.Submission{CheckKind: "grammar", Text: longText}, true, 0)
	assert.True(t, domain.IsValidation(err))
}

func TestSelectQueryBackend(t *testing.T) {
	assert.Equal(t, domain.BackendOrganization, reconcile.SelectQueryBackend(true, true))
	assert.Equal(t, domain.BackendSingleUser, reconcile.SelectQueryBackend(true, false))
	assert.Equal(t, domain.BackendSingleUser, reconcile.SelectQueryBackend(false, true))
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"abc", false},
		{"1234", false},
		{"123456", true},
		{"1234567", true},
		{"1234567890", true},
		{"123456789012", false},
		{"", false},
	}
	for _, tt := range tests {
		err := reconcile.ValidateIdentifier(tt.id)
		if tt.valid {
			assert.NoError(t, err, tt.id)
			continue
		}
		require.Error(t, err, tt.id)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "Invalid ID format")
	}
}
