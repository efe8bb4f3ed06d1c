package contracts

import (
	"context"

	"ndisaudit/domain/report"
)

// ReportDataRepository assembles the complete immutable snapshot one report
// generation pass consumes.
type ReportDataRepository interface {
	GetReportData(ctx context.Context, auditID int64) (*report.Data, error)
}
