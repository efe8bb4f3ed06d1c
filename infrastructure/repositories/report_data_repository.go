package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ndisaudit/database"
	"ndisaudit/domain/audit"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/report"
	"ndisaudit/logging"
)

// ReportDataRepository assembles the complete report.Data snapshot for one
// audit. It composes the audit and finding repositories for the records they
// already own and queries the remaining collections directly.
type ReportDataRepository struct {
	*BaseRepository
	audits   contracts.AuditRepository
	findings contracts.FindingRepository
}

// NewReportDataRepository creates a report data repository
func NewReportDataRepository(
	db *database.Database,
	logger *logging.Logger,
	audits contracts.AuditRepository,
	findingRepo contracts.FindingRepository,
) contracts.ReportDataRepository {
	return &ReportDataRepository{
		BaseRepository: NewBaseRepository(db, logger.WithComponent("report_data_repository")),
		audits:         audits,
		findings:       findingRepo,
	}
}

// GetReportData loads everything a report generation pass needs for an audit.
// Optional collections come back empty rather than failing the snapshot; only
// the audit and company records are mandatory.
func (r *ReportDataRepository) GetReportData(ctx context.Context, auditID int64) (*report.Data, error) {
	a, err := r.audits.GetAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	company, err := r.audits.GetCompany(ctx, a.CompanyID)
	if err != nil {
		return nil, err
	}

	sites, err := r.listSites(ctx, auditID)
	if err != nil {
		return nil, err
	}

	interviews, err := r.listInterviews(ctx, auditID)
	if err != nil {
		return nil, err
	}

	visits, err := r.listSiteVisits(ctx, auditID)
	if err != nil {
		return nil, err
	}

	responses, err := r.audits.ListIndicatorResponses(ctx, auditID)
	if err != nil {
		return nil, err
	}

	auditFindings, err := r.findings.ListByAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	groups, err := r.audits.ListRegistrationGroupItems(ctx, auditID)
	if err != nil {
		return nil, err
	}

	conclusion, err := r.audits.GetConclusion(ctx, auditID)
	if err != nil && !errors.Is(err, contracts.ErrNotFound) {
		return nil, err
	}

	return &report.Data{
		Audit:              a,
		Company:            company,
		Sites:              sites,
		Interviews:         interviews,
		SiteVisits:         visits,
		IndicatorResponses: responses,
		Findings:           auditFindings,
		RegistrationGroups: groups,
		Conclusion:         conclusion,
	}, nil
}

// listSites returns the service locations in the audit scope
func (r *ReportDataRepository) listSites(ctx context.Context, auditID int64) ([]*audit.Site, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT site_id, audit_id, name, address
		FROM sites WHERE audit_id = ? ORDER BY site_id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var sites []*audit.Site
	for rows.Next() {
		var s audit.Site
		if err := rows.Scan(&s.ID, &s.AuditID, &s.Name, &s.Address); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, &s)
	}

	return sites, rows.Err()
}

// listInterviews returns the interviews held during the audit
func (r *ReportDataRepository) listInterviews(ctx context.Context, auditID int64) ([]*audit.Interview, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT interview_id, audit_id, name, role, type, method, held_at, summary
		FROM interviews WHERE audit_id = ? ORDER BY interview_id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var interviews []*audit.Interview
	for rows.Next() {
		var (
			iv     audit.Interview
			heldAt sql.NullTime
		)
		if err := rows.Scan(&iv.ID, &iv.AuditID, &iv.Name, &iv.Role, &iv.Type, &iv.Method, &heldAt, &iv.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		iv.HeldAt = fromNullTime(heldAt)
		interviews = append(interviews, &iv)
	}

	return interviews, rows.Err()
}

// listSiteVisits returns the recorded attendances at service locations
func (r *ReportDataRepository) listSiteVisits(ctx context.Context, auditID int64) ([]*audit.SiteVisit, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT site_visit_id, audit_id, site_name, address, visited_at, notes
		FROM site_visits WHERE audit_id = ? ORDER BY site_visit_id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list site visits for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var visits []*audit.SiteVisit
	for rows.Next() {
		var (
			v         audit.SiteVisit
			visitedAt sql.NullTime
		)
		if err := rows.Scan(&v.ID, &v.AuditID, &v.SiteName, &v.Address, &visitedAt, &v.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan site visit: %w", err)
		}
		v.VisitedAt = fromNullTime(visitedAt)
		visits = append(visits, &v)
	}

	return visits, rows.Err()
}
