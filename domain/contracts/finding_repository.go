package contracts

import (
	"context"

	"ndisaudit/domain/findings"
)

// FindingRepository persists findings, their append-only activity timelines
// and evidence requests.
type FindingRepository interface {
	Create(ctx context.Context, finding *findings.Finding) error
	GetByID(ctx context.Context, findingID int64) (*findings.Finding, error)
	ListByAudit(ctx context.Context, auditID int64) ([]*findings.Finding, error)
	GetOpenForIndicator(ctx context.Context, auditID, templateIndicatorID int64) (*findings.Finding, error)
	UpdateStatus(ctx context.Context, finding *findings.Finding) error

	// Activities are append-only; there is deliberately no update or delete.
	AppendActivity(ctx context.Context, activity *findings.Activity) error
	ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error)

	CreateEvidenceRequest(ctx context.Context, request *findings.EvidenceRequest) error
	GetEvidenceRequest(ctx context.Context, requestID int64) (*findings.EvidenceRequest, error)
	UpdateEvidenceRequestStatus(ctx context.Context, requestID int64, status findings.EvidenceStatus) error
	// RecordEvidenceSubmission inserts the submitted document and advances
	// its request to the given status atomically.
	RecordEvidenceSubmission(ctx context.Context, item *findings.EvidenceItem, status findings.EvidenceStatus) error
	ListEvidenceRequests(ctx context.Context, findingID int64) ([]*findings.EvidenceRequest, error)
}
