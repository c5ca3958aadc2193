package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plagrelay/internal/domain"
	"plagrelay/internal/service"
)

// MockCheckService is a mock implementation of service.CheckService.
type MockCheckService struct {
	mock.Mock
}

func (m *MockCheckService) Submit(ctx context.Context, input *service.SubmitInput) (*domain.SubmitResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmitResult), args.Error(1)
}

func (m *MockCheckService) GetStatus(ctx context.Context, input *service.StatusInput) (*domain.StatusResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusResult), args.Error(1)
}

func (m *MockCheckService) GetReport(ctx context.Context, input *service.ReportInput) (*domain.ReconciledReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciledReport), args.Error(1)
}
