package contracts

import (
	"context"

	"ndisaudit/domain/audit"
)

// AuditRepository persists audits and the records captured while running them.
type AuditRepository interface {
	// Audits
	CreateAudit(ctx context.Context, a *audit.Audit) error
	GetAudit(ctx context.Context, auditID int64) (*audit.Audit, error)
	SetScopeLocked(ctx context.Context, auditID int64, locked bool) error
	UpdateExecutiveSummary(ctx context.Context, auditID int64, summary string) error

	// Companies
	GetCompany(ctx context.Context, companyID int64) (*audit.Company, error)

	// Indicator responses (one response per template indicator per audit)
	UpsertIndicatorResponse(ctx context.Context, response *audit.IndicatorResponse) error
	ListIndicatorResponses(ctx context.Context, auditID int64) ([]*audit.IndicatorResponse, error)

	// Registration group witnessing
	UpsertRegistrationGroupItem(ctx context.Context, item *audit.RegistrationGroupItem) error
	ListRegistrationGroupItems(ctx context.Context, auditID int64) ([]*audit.RegistrationGroupItem, error)

	// Conclusion & sign-off
	UpsertConclusion(ctx context.Context, conclusion *audit.ConclusionData) error
	GetConclusion(ctx context.Context, auditID int64) (*audit.ConclusionData, error)
}
