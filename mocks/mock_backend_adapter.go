package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plagrelay/internal/domain"
	"plagrelay/internal/port"
)

// MockBackendAdapter is a mock implementation of port.BackendAdapter.
type MockBackendAdapter struct {
	mock.Mock
	Backend domain.Backend
}

func (m *MockBackendAdapter) Name() domain.Backend {
	return m.Backend
}

func (m *MockBackendAdapter) Submit(ctx context.Context, sub *domain.Submission) (*port.SubmitOutput, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.SubmitOutput), args.Error(1)
}

func (m *MockBackendAdapter) QueryStatus(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RawPayload), args.Error(1)
}

func (m *MockBackendAdapter) FetchReport(ctx context.Context, kind domain.CheckKind, id string) (*port.RawPayload, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.RawPayload), args.Error(1)
}
