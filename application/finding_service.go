package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ndisaudit/domain/contracts"
	"ndisaudit/domain/events"
	"ndisaudit/domain/findings"
	"ndisaudit/logging"
)

// FindingService defines the corrective-action workflow operations.
type FindingService interface {
	GetFinding(ctx context.Context, findingID int64) (*findings.Finding, error)
	ListFindings(ctx context.Context, auditID int64) ([]*findings.Finding, error)
	ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error)

	CloseFinding(ctx context.Context, findingID int64, closureNote, performedBy string) error
	ReopenFinding(ctx context.Context, findingID int64, performedBy string) error

	RequestEvidence(ctx context.Context, findingID int64, evidenceType findings.EvidenceType, requestNote, performedBy string) (*findings.EvidenceRequest, error)
	SubmitEvidence(ctx context.Context, requestID int64, fileName, note, performedBy string) (*findings.EvidenceItem, error)
	ReviewEvidence(ctx context.Context, requestID int64, accepted bool, performedBy string) error
}

// FindingServiceImpl is the production implementation of FindingService.
type FindingServiceImpl struct {
	findings  contracts.FindingRepository
	publisher events.FindingEventPublisher
	logger    *logging.Logger
}

// NewFindingService creates a new finding workflow service.
func NewFindingService(
	findingRepo contracts.FindingRepository,
	publisher events.FindingEventPublisher,
) FindingService {
	return &FindingServiceImpl{
		findings:  findingRepo,
		publisher: publisher,
		logger:    logging.Default().WithComponent("finding_service"),
	}
}

// GetFinding fetches one finding with its evidence requests.
func (s *FindingServiceImpl) GetFinding(ctx context.Context, findingID int64) (*findings.Finding, error) {
	return s.findings.GetByID(ctx, findingID)
}

// ListFindings returns all findings for an audit.
func (s *FindingServiceImpl) ListFindings(ctx context.Context, auditID int64) ([]*findings.Finding, error) {
	return s.findings.ListByAudit(ctx, auditID)
}

// ListActivities returns a finding's append-only timeline.
func (s *FindingServiceImpl) ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error) {
	return s.findings.ListActivities(ctx, findingID)
}

// CloseFinding closes a finding. The closure note must satisfy the domain
// minimum length; validation errors surface unchanged for the handler layer.
func (s *FindingServiceImpl) CloseFinding(ctx context.Context, findingID int64, closureNote, performedBy string) error {
	finding, err := s.findings.GetByID(ctx, findingID)
	if err != nil {
		return err
	}

	previousStatus := finding.Status
	if err := finding.Close(closureNote); err != nil {
		return err
	}

	if err := s.findings.UpdateStatus(ctx, finding); err != nil {
		return err
	}

	s.logger.Workflow("Finding closed",
		"finding_id", finding.ID,
		"audit_id", finding.AuditID)

	s.publisher.PublishFindingClosed(events.FindingClosedEvent{
		Finding:        finding,
		PreviousStatus: previousStatus,
		ClosureNote:    finding.ClosureNote,
		PerformedBy:    performedBy,
		OccurredAt:     time.Now(),
	})

	return nil
}

// ReopenFinding returns a closed finding to the open state.
func (s *FindingServiceImpl) ReopenFinding(ctx context.Context, findingID int64, performedBy string) error {
	finding, err := s.findings.GetByID(ctx, findingID)
	if err != nil {
		return err
	}

	previousStatus := finding.Status
	if err := finding.Reopen(); err != nil {
		return err
	}

	if err := s.findings.UpdateStatus(ctx, finding); err != nil {
		return err
	}

	s.logger.Workflow("Finding reopened",
		"finding_id", finding.ID,
		"audit_id", finding.AuditID)

	s.publisher.PublishFindingReopened(events.FindingReopenedEvent{
		Finding:        finding,
		PreviousStatus: previousStatus,
		PerformedBy:    performedBy,
		OccurredAt:     time.Now(),
	})

	return nil
}

// RequestEvidence creates an evidence request for a finding with a freshly
// minted public upload token.
func (s *FindingServiceImpl) RequestEvidence(
	ctx context.Context,
	findingID int64,
	evidenceType findings.EvidenceType,
	requestNote, performedBy string,
) (*findings.EvidenceRequest, error) {
	finding, err := s.findings.GetByID(ctx, findingID)
	if err != nil {
		return nil, err
	}

	request := findings.NewEvidenceRequest(findingID, evidenceType, requestNote, uuid.NewString())
	if err := s.findings.CreateEvidenceRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Workflow("Evidence requested",
		"finding_id", findingID,
		"request_id", request.ID,
		"evidence_type", string(evidenceType))

	s.publisher.PublishEvidenceRequested(events.EvidenceRequestedEvent{
		Finding:     finding,
		Request:     request,
		PerformedBy: performedBy,
		OccurredAt:  time.Now(),
	})

	return request, nil
}

// SubmitEvidence records a document against a request and moves the request
// to SUBMITTED. The owning finding moves under review while the evidence is
// assessed.
func (s *FindingServiceImpl) SubmitEvidence(ctx context.Context, requestID int64, fileName, note, performedBy string) (*findings.EvidenceItem, error) {
	request, err := s.findings.GetEvidenceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	item := &findings.EvidenceItem{
		EvidenceRequestID: request.ID,
		FileName:          fileName,
		Note:              note,
		SubmittedAt:       time.Now(),
	}
	if err := s.findings.RecordEvidenceSubmission(ctx, item, findings.EvidenceSubmitted); err != nil {
		return nil, err
	}
	request.Status = findings.EvidenceSubmitted

	if err := s.markFindingUnderReview(ctx, request.FindingID); err != nil {
		return nil, err
	}

	s.logger.Workflow("Evidence submitted",
		"finding_id", request.FindingID,
		"request_id", request.ID,
		"file_name", fileName)

	s.publisher.PublishEvidenceSubmitted(events.EvidenceSubmittedEvent{
		Request:     request,
		Item:        item,
		PerformedBy: performedBy,
		OccurredAt:  time.Now(),
	})

	return item, nil
}

// markFindingUnderReview transitions an open finding into review. Closed
// findings are left untouched; late evidence on a closed finding is legal.
func (s *FindingServiceImpl) markFindingUnderReview(ctx context.Context, findingID int64) error {
	finding, err := s.findings.GetByID(ctx, findingID)
	if err != nil {
		return err
	}
	if finding.Status != findings.StatusOpen {
		return nil
	}

	if err := finding.MarkUnderReview(); err != nil {
		return err
	}
	return s.findings.UpdateStatus(ctx, finding)
}

// ReviewEvidence resolves an evidence request as accepted or rejected and
// records the review on the finding's timeline.
func (s *FindingServiceImpl) ReviewEvidence(ctx context.Context, requestID int64, accepted bool, performedBy string) error {
	request, err := s.findings.GetEvidenceRequest(ctx, requestID)
	if err != nil {
		return err
	}

	status := findings.EvidenceRejected
	if accepted {
		status = findings.EvidenceAccepted
	}

	if err := s.findings.UpdateEvidenceRequestStatus(ctx, request.ID, status); err != nil {
		return err
	}

	activity := findings.NewActivity(
		request.FindingID,
		findings.ActivityEvidenceReviewed,
		string(request.Status),
		string(status),
		"",
		performedBy,
	)
	if err := s.findings.AppendActivity(ctx, activity); err != nil {
		return err
	}

	s.logger.Workflow("Evidence reviewed",
		"finding_id", request.FindingID,
		"request_id", request.ID,
		"status", string(status))

	return nil
}
