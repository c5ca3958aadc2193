package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"plagrelay/internal/config"
	"plagrelay/internal/domain"
	"plagrelay/internal/metrics"
	"plagrelay/internal/port"
	"plagrelay/internal/reconcile"
)

const (
	msgReportReady = "Report ready. Use the text_id (not report_id) to fetch the report."
	msgProcessing  = "Check is still processing. Poll the status again with the same text_id."
)

// SubmitInput is the DTO for submitting content for a check.
type SubmitInput struct {
	CheckKind       domain.CheckKind
	Text            string
	File            *domain.FilePayload
	Language        string
	GroupID         string
	UseOrganization bool
}

// StatusInput is the DTO for a status query. Zero MaxAttempts and a nil
// Delay fall back to the configured retry policy.
type StatusInput struct {
	CheckKind       domain.CheckKind
	ID              string
	UseOrganization bool
	MaxAttempts     int
	Delay           *time.Duration
	// Wait keeps polling while the check is processing.
	Wait bool
}

// ReportInput is the DTO for a report fetch.
type ReportInput struct {
	CheckKind       domain.CheckKind
	ID              string
	UseOrganization bool
	MaxAttempts     int
	Delay           *time.Duration
}

// CheckService defines the submission and report reconciliation contract.
type CheckService interface {
	Submit(ctx context.Context, input *SubmitInput) (*domain.SubmitResult, error)
	GetStatus(ctx context.Context, input *StatusInput) (*domain.StatusResult, error)
	GetReport(ctx context.Context, input *ReportInput) (*domain.ReconciledReport, error)
}

type checkService struct {
	cfg      *config.Config
	adapters map[domain.Backend]port.BackendAdapter
	metrics  *metrics.Metrics
}

// NewCheckService creates a new CheckService. m may be nil.
func NewCheckService(cfg *config.Config, adapters []port.BackendAdapter, m *metrics.Metrics) CheckService {
	byName := make(map[domain.Backend]port.BackendAdapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &checkService{cfg: cfg, adapters: byName, metrics: m}
}

func (s *checkService) Submit(ctx context.Context, input *SubmitInput) (*domain.SubmitResult, error) {
	if err := s.cfg.Upstream.CheckCredentials(); err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		CheckKind:       input.CheckKind,
		Text:            input.Text,
		File:            input.File,
		Language:        input.Language,
		GroupID:         input.GroupID,
		UseOrganization: input.UseOrganization,
	}
	backend, err := reconcile.SelectBackend(sub, s.cfg.Upstream.HasOrganizationCredentials(), s.cfg.Upload.MaxBytes())
	if err != nil {
		return nil, err
	}
	adapter, err := s.adapter(backend)
	if err != nil {
		return nil, err
	}

	out, err := adapter.Submit(ctx, sub)
	if err != nil {
		log.Warn().Err(err).
			Str("check_kind", string(input.CheckKind)).
			Str("backend", string(backend)).
			Msg("checkService.Submit: upstream rejected submission")
		return nil, err
	}

	log.Info().
		Str("check_kind", string(input.CheckKind)).
		Str("backend", string(backend)).
		Str("content_mode", string(sub.ContentMode())).
		Str("identifier", out.Identifier).
		Msg("checkService.Submit: submission accepted")

	return &domain.SubmitResult{
		Identifier:  out.Identifier,
		CheckKind:   input.CheckKind,
		Backend:     backend,
		NativeState: out.NativeState,
		Raw:         out.Raw,
	}, nil
}

func (s *checkService) GetStatus(ctx context.Context, input *StatusInput) (*domain.StatusResult, error) {
	if err := s.precheck(input.CheckKind, input.ID); err != nil {
		return nil, err
	}
	backend := reconcile.SelectQueryBackend(input.UseOrganization, s.cfg.Upstream.HasGroupToken())
	adapter, err := s.adapter(backend)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	attempts := 0
	policy := s.policy("status", backend, input.MaxAttempts, input.Delay)
	result, err := reconcile.Retry(ctx, policy, func(ctx context.Context, attempt int) (*domain.StatusResult, error) {
		attempts = attempt
		raw, err := adapter.QueryStatus(ctx, input.CheckKind, input.ID)
		if err != nil {
			return nil, err
		}
		state, fields := reconcile.Normalize(input.CheckKind, backend, raw.Body)
		s.metrics.ObserveStatus(input.CheckKind, backend, state)

		switch state {
		case domain.StateFailed:
			return nil, fmt.Errorf("%w: native state %s", domain.ErrSubmissionFailed, nativeDescription(fields))
		case domain.StateUnknown:
			return nil, domain.ErrUnrecognizedStatus
		}
		if input.Wait && !state.Terminal() {
			return nil, fmt.Errorf("%w: native state %s", domain.ErrNotReady, nativeDescription(fields))
		}
		return statusResult(input.ID, state, fields, raw), nil
	})
	if err != nil {
		log.Warn().Err(err).
			Str("check_kind", string(input.CheckKind)).
			Str("backend", string(backend)).
			Str("identifier", input.ID).
			Int("attempts", attempts).
			Msg("checkService.GetStatus: status query failed")
		return nil, err
	}
	result.Attempts = attempts
	return result, nil
}

func (s *checkService) GetReport(ctx context.Context, input *ReportInput) (*domain.ReconciledReport, error) {
	if err := s.precheck(input.CheckKind, input.ID); err != nil {
		return nil, err
	}
	backend := reconcile.SelectQueryBackend(input.UseOrganization, s.cfg.Upstream.HasGroupToken())
	adapter, err := s.adapter(backend)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	policy := s.policy("report", backend, input.MaxAttempts, input.Delay)
	raw, err := reconcile.Retry(ctx, policy, func(ctx context.Context, _ int) (*port.RawPayload, error) {
		return adapter.FetchReport(ctx, input.CheckKind, input.ID)
	})
	if err != nil {
		log.Warn().Err(err).
			Str("check_kind", string(input.CheckKind)).
			Str("backend", string(backend)).
			Str("identifier", input.ID).
			Msg("checkService.GetReport: report fetch failed")
		return nil, err
	}
	return reconcile.ShapeReport(input.CheckKind, backend, input.ID, raw.Body), nil
}

func (s *checkService) precheck(kind domain.CheckKind, id string) error {
	if err := s.cfg.Upstream.CheckCredentials(); err != nil {
		return err
	}
	if !kind.Valid() {
		return domain.NewValidationError("unsupported check kind %q", kind)
	}
	return reconcile.ValidateIdentifier(id)
}

func (s *checkService) adapter(backend domain.Backend) (port.BackendAdapter, error) {
	a, ok := s.adapters[backend]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for backend %q: %w", backend, domain.ErrConfiguration)
	}
	return a, nil
}

// withBudget bounds a retried upstream call so the caller always gets an
// answer before the server's write timeout cuts the connection.
func (s *checkService) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Retry.Budget <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Retry.Budget)
}

// policy applies client overrides to the configured retry settings, clamped
// to the configured ceilings.
func (s *checkService) policy(operation string, backend domain.Backend, maxAttempts int, delay *time.Duration) reconcile.Policy {
	rc := s.cfg.Retry
	attempts := rc.MaxAttempts
	if maxAttempts > 0 {
		attempts = maxAttempts
	}
	if rc.MaxAttemptsCeiling > 0 && attempts > rc.MaxAttemptsCeiling {
		attempts = rc.MaxAttemptsCeiling
	}
	wait := rc.Delay
	if delay != nil && *delay >= 0 {
		wait = *delay
	}
	if rc.MaxDelay > 0 && wait > rc.MaxDelay {
		wait = rc.MaxDelay
	}

	return reconcile.Policy{
		MaxAttempts: attempts,
		Delay:       wait,
		Retryable:   reconcile.Retryable,
		OnRetry: func(attempt int, err error) {
			s.metrics.ObserveRetry(operation, backend)
			ev := log.Debug()
			if !errors.Is(err, domain.ErrNotReady) {
				ev = log.Warn()
			}
			ev.Err(err).
				Str("operation", operation).
				Str("backend", string(backend)).
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Dur("delay", wait).
				Msg("checkService: retrying upstream call")
		},
	}
}

func statusResult(id string, state domain.LifecycleState, fields reconcile.StatusFields, raw *port.RawPayload) *domain.StatusResult {
	res := &domain.StatusResult{
		Status:                  state,
		Identifier:              id,
		TextID:                  id,
		UseThisIDForReport:      id,
		DoNotUseReportIDForAPIs: true,
		Message:                 msgProcessing,
		Raw:                     raw.Body,
	}
	if state == domain.StateCompleted {
		res.Message = msgReportReady
		if fields.ReportID != "" {
			reportID := fields.ReportID
			res.ReportID = &reportID
		}
	}
	return res
}

func nativeDescription(fields reconcile.StatusFields) string {
	switch {
	case fields.NativeCode != nil:
		return fmt.Sprintf("%d", *fields.NativeCode)
	case fields.NativeText != "":
		return fmt.Sprintf("%q", fields.NativeText)
	}
	return "unset"
}
