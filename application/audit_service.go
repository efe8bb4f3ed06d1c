package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ndisaudit/domain/audit"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/events"
	"ndisaudit/domain/findings"
	"ndisaudit/domain/scoring"
	"ndisaudit/logging"
)

// ErrInvalidRating occurs when a response carries an unknown rating value.
var ErrInvalidRating = errors.New("invalid indicator rating")

// AuditScores bundles the overall score summary with the per-standard
// averages for one audit.
type AuditScores struct {
	Summary   scoring.ScoreSummary     `json:"summary"`
	Standards []*scoring.StandardScore `json:"standards"`
}

// AuditService defines the audit lifecycle operations used by the handler layer.
type AuditService interface {
	CreateAudit(ctx context.Context, a *audit.Audit) error
	GetAudit(ctx context.Context, auditID int64) (*audit.Audit, error)
	LockScope(ctx context.Context, auditID int64) error
	UpdateExecutiveSummary(ctx context.Context, auditID int64, summary string) error

	// RecordIndicatorResponse upserts a rating and auto-raises a finding
	// for non-conforming ratings with no open finding on the indicator.
	RecordIndicatorResponse(ctx context.Context, auditID, templateIndicatorID int64, indicatorText string, rating audit.Rating, comment, performedBy string) (*audit.IndicatorResponse, error)
	ListIndicatorResponses(ctx context.Context, auditID int64) ([]*audit.IndicatorResponse, error)
	GetScores(ctx context.Context, auditID int64) (*AuditScores, error)

	UpdateRegistrationGroupItem(ctx context.Context, item *audit.RegistrationGroupItem) error
	ListRegistrationGroupItems(ctx context.Context, auditID int64) ([]*audit.RegistrationGroupItem, error)

	UpsertConclusion(ctx context.Context, conclusion *audit.ConclusionData) error
}

// AuditServiceImpl is the production implementation of AuditService.
type AuditServiceImpl struct {
	audits    contracts.AuditRepository
	findings  contracts.FindingRepository
	publisher events.FindingEventPublisher
	logger    *logging.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(
	audits contracts.AuditRepository,
	findingRepo contracts.FindingRepository,
	publisher events.FindingEventPublisher,
) AuditService {
	return &AuditServiceImpl{
		audits:    audits,
		findings:  findingRepo,
		publisher: publisher,
		logger:    logging.Default().WithComponent("audit_service"),
	}
}

// CreateAudit persists a new audit engagement.
func (s *AuditServiceImpl) CreateAudit(ctx context.Context, a *audit.Audit) error {
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("audit title is required")
	}

	if err := s.audits.CreateAudit(ctx, a); err != nil {
		return err
	}

	s.logger.Audit("Audit created", a.ID)
	return nil
}

// GetAudit fetches a single audit.
func (s *AuditServiceImpl) GetAudit(ctx context.Context, auditID int64) (*audit.Audit, error) {
	return s.audits.GetAudit(ctx, auditID)
}

// LockScope freezes the audit scope. Registration-group changes are rejected
// once the scope is locked.
func (s *AuditServiceImpl) LockScope(ctx context.Context, auditID int64) error {
	if err := s.audits.SetScopeLocked(ctx, auditID, true); err != nil {
		return err
	}

	s.logger.Audit("Audit scope locked", auditID)
	return nil
}

// UpdateExecutiveSummary replaces the executive summary text.
func (s *AuditServiceImpl) UpdateExecutiveSummary(ctx context.Context, auditID int64, summary string) error {
	return s.audits.UpdateExecutiveSummary(ctx, auditID, summary)
}

// RecordIndicatorResponse upserts the rating for a template indicator. When
// the rating is non-conforming and the indicator has no open finding, a new
// finding is raised and a FindingOpened event published.
func (s *AuditServiceImpl) RecordIndicatorResponse(
	ctx context.Context,
	auditID, templateIndicatorID int64,
	indicatorText string,
	rating audit.Rating,
	comment, performedBy string,
) (*audit.IndicatorResponse, error) {
	if !rating.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRating, string(rating))
	}

	if _, err := s.audits.GetAudit(ctx, auditID); err != nil {
		return nil, err
	}

	response := audit.NewIndicatorResponse(auditID, templateIndicatorID, indicatorText, rating, comment)
	if err := s.audits.UpsertIndicatorResponse(ctx, response); err != nil {
		return nil, err
	}

	s.logger.Audit("Indicator response recorded", auditID,
		slog.Int64("template_indicator_id", templateIndicatorID),
		slog.String("rating", string(rating)))

	if err := s.raiseFindingIfNeeded(ctx, response, performedBy); err != nil {
		return nil, err
	}

	return response, nil
}

// raiseFindingIfNeeded opens a finding for a non-conforming response unless
// one is already open for the same indicator.
func (s *AuditServiceImpl) raiseFindingIfNeeded(ctx context.Context, response *audit.IndicatorResponse, performedBy string) error {
	severity, nonConforming := findings.SeverityForRating(response.Rating)
	if !nonConforming {
		return nil
	}

	_, err := s.findings.GetOpenForIndicator(ctx, response.AuditID, response.TemplateIndicatorID)
	if err == nil {
		// A finding is already open for this indicator
		return nil
	}
	if !errors.Is(err, contracts.ErrNotFound) {
		return err
	}

	finding := findings.NewFinding(response.AuditID, response.TemplateIndicatorID, response.IndicatorText, severity)
	if err := s.findings.Create(ctx, finding); err != nil {
		return fmt.Errorf("failed to raise finding for indicator %d: %w", response.TemplateIndicatorID, err)
	}

	s.logger.Workflow("Finding raised from non-conforming response",
		"audit_id", response.AuditID,
		"finding_id", finding.ID,
		"severity", string(severity))

	s.publisher.PublishFindingOpened(events.FindingOpenedEvent{
		Finding:     finding,
		PerformedBy: performedBy,
		OccurredAt:  time.Now(),
	})

	return nil
}

// ListIndicatorResponses returns all recorded responses for an audit.
func (s *AuditServiceImpl) ListIndicatorResponses(ctx context.Context, auditID int64) ([]*audit.IndicatorResponse, error) {
	return s.audits.ListIndicatorResponses(ctx, auditID)
}

// GetScores computes the score summary and per-standard averages for an audit.
func (s *AuditServiceImpl) GetScores(ctx context.Context, auditID int64) (*AuditScores, error) {
	if _, err := s.audits.GetAudit(ctx, auditID); err != nil {
		return nil, err
	}

	responses, err := s.audits.ListIndicatorResponses(ctx, auditID)
	if err != nil {
		return nil, err
	}

	return &AuditScores{
		Summary:   scoring.CalculateScores(responses),
		Standards: scoring.AverageByStandard(responses),
	}, nil
}

// UpdateRegistrationGroupItem records a witnessing decision for a scope line
// item. Rejected with contracts.ErrScopeLocked once the scope is locked.
func (s *AuditServiceImpl) UpdateRegistrationGroupItem(ctx context.Context, item *audit.RegistrationGroupItem) error {
	a, err := s.audits.GetAudit(ctx, item.AuditID)
	if err != nil {
		return err
	}
	if a.ScopeLocked {
		return contracts.ErrScopeLocked
	}

	return s.audits.UpsertRegistrationGroupItem(ctx, item)
}

// ListRegistrationGroupItems returns the witnessing records for an audit.
func (s *AuditServiceImpl) ListRegistrationGroupItems(ctx context.Context, auditID int64) ([]*audit.RegistrationGroupItem, error) {
	return s.audits.ListRegistrationGroupItems(ctx, auditID)
}

// UpsertConclusion stores the sign-off block.
func (s *AuditServiceImpl) UpsertConclusion(ctx context.Context, conclusion *audit.ConclusionData) error {
	if err := s.audits.UpsertConclusion(ctx, conclusion); err != nil {
		return err
	}

	s.logger.Audit("Conclusion updated", conclusion.AuditID)
	return nil
}
