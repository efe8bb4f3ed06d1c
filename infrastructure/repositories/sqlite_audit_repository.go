package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ndisaudit/database"
	"ndisaudit/domain/audit"
	"ndisaudit/domain/contracts"
	"ndisaudit/logging"
)

// SqliteAuditRepository implements contracts.AuditRepository over SQLite.
type SqliteAuditRepository struct {
	*BaseRepository
}

// NewSqliteAuditRepository creates an audit repository
func NewSqliteAuditRepository(db *database.Database, logger *logging.Logger) contracts.AuditRepository {
	return &SqliteAuditRepository{
		BaseRepository: NewBaseRepository(db, logger.WithComponent("audit_repository")),
	}
}

// CreateAudit inserts a new audit and populates its generated ID
func (r *SqliteAuditRepository) CreateAudit(ctx context.Context, a *audit.Audit) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO audits (
			company_id, title, audit_type, audit_purpose, methodology,
			scope_time_from, scope_time_to, scope_locked, executive_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.CompanyID, a.Title, string(a.AuditType), string(a.AuditPurpose), string(a.Methodology),
		toNullTime(a.ScopeTimeFrom), toNullTime(a.ScopeTimeTo), a.ScopeLocked, a.ExecutiveSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get audit id: %w", err)
	}
	a.ID = id

	return nil
}

// GetAudit fetches a single audit by ID
func (r *SqliteAuditRepository) GetAudit(ctx context.Context, auditID int64) (*audit.Audit, error) {
	var (
		a        audit.Audit
		from, to sql.NullTime
	)

	err := r.read().QueryRowContext(ctx, `
		SELECT audit_id, company_id, title, audit_type, audit_purpose, methodology,
		       scope_time_from, scope_time_to, scope_locked, executive_summary,
		       created_at, updated_at
		FROM audits WHERE audit_id = ?`, auditID,
	).Scan(
		&a.ID, &a.CompanyID, &a.Title, &a.AuditType, &a.AuditPurpose, &a.Methodology,
		&from, &to, &a.ScopeLocked, &a.ExecutiveSummary,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit %d: %w", auditID, err)
	}

	a.ScopeTimeFrom = fromNullTime(from)
	a.ScopeTimeTo = fromNullTime(to)

	return &a, nil
}

// SetScopeLocked toggles the scope lock flag for an audit
func (r *SqliteAuditRepository) SetScopeLocked(ctx context.Context, auditID int64, locked bool) error {
	result, err := r.write().ExecContext(ctx, `
		UPDATE audits SET scope_locked = ?, updated_at = CURRENT_TIMESTAMP
		WHERE audit_id = ?`, locked, auditID)
	if err != nil {
		return fmt.Errorf("failed to set scope lock for audit %d: %w", auditID, err)
	}

	return requireRowAffected(result, auditID)
}

// UpdateExecutiveSummary replaces the executive summary text of an audit
func (r *SqliteAuditRepository) UpdateExecutiveSummary(ctx context.Context, auditID int64, summary string) error {
	result, err := r.write().ExecContext(ctx, `
		UPDATE audits SET executive_summary = ?, updated_at = CURRENT_TIMESTAMP
		WHERE audit_id = ?`, summary, auditID)
	if err != nil {
		return fmt.Errorf("failed to update executive summary for audit %d: %w", auditID, err)
	}

	return requireRowAffected(result, auditID)
}

// GetCompany fetches the provider organisation under audit
func (r *SqliteAuditRepository) GetCompany(ctx context.Context, companyID int64) (*audit.Company, error) {
	var c audit.Company

	err := r.read().QueryRowContext(ctx, `
		SELECT company_id, name, abn, registration_number, contact_name, contact_email, address
		FROM companies WHERE company_id = ?`, companyID,
	).Scan(&c.ID, &c.Name, &c.ABN, &c.RegistrationNumber, &c.ContactName, &c.ContactEmail, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company %d: %w", companyID, err)
	}

	return &c, nil
}

// UpsertIndicatorResponse records a rating for a template indicator. A second
// rating for the same indicator replaces the first.
func (r *SqliteAuditRepository) UpsertIndicatorResponse(ctx context.Context, response *audit.IndicatorResponse) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO indicator_responses (
			audit_id, template_indicator_id, indicator_text, rating, comment, score_points
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (audit_id, template_indicator_id) DO UPDATE SET
			indicator_text = excluded.indicator_text,
			rating         = excluded.rating,
			comment        = excluded.comment,
			score_points   = excluded.score_points,
			recorded_at    = CURRENT_TIMESTAMP`,
		response.AuditID, response.TemplateIndicatorID, response.IndicatorText,
		string(response.Rating), response.Comment, response.ScorePoints,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert indicator response: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil && response.ID == 0 {
		response.ID = id
	}

	return nil
}

// ListIndicatorResponses returns all recorded responses for an audit in
// template indicator order
func (r *SqliteAuditRepository) ListIndicatorResponses(ctx context.Context, auditID int64) ([]*audit.IndicatorResponse, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT response_id, audit_id, template_indicator_id, indicator_text,
		       rating, comment, score_points, recorded_at
		FROM indicator_responses
		WHERE audit_id = ?
		ORDER BY template_indicator_id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list indicator responses for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var responses []*audit.IndicatorResponse
	for rows.Next() {
		var resp audit.IndicatorResponse
		if err := rows.Scan(
			&resp.ID, &resp.AuditID, &resp.TemplateIndicatorID, &resp.IndicatorText,
			&resp.Rating, &resp.Comment, &resp.ScorePoints, &resp.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan indicator response: %w", err)
		}
		responses = append(responses, &resp)
	}

	return responses, rows.Err()
}

// UpsertRegistrationGroupItem records a witnessing decision for one scope line item
func (r *SqliteAuditRepository) UpsertRegistrationGroupItem(ctx context.Context, item *audit.RegistrationGroupItem) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO registration_group_items (
			audit_id, item_code, item_label, recommended, status, witnessed
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (audit_id, item_code) DO UPDATE SET
			item_label  = excluded.item_label,
			recommended = excluded.recommended,
			status      = excluded.status,
			witnessed   = excluded.witnessed`,
		item.AuditID, item.ItemCode, item.ItemLabel, item.Recommended,
		string(item.Status), string(item.Witnessed),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert registration group item: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil && item.ID == 0 {
		item.ID = id
	}

	return nil
}

// ListRegistrationGroupItems returns the witnessing records for an audit
func (r *SqliteAuditRepository) ListRegistrationGroupItems(ctx context.Context, auditID int64) ([]*audit.RegistrationGroupItem, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT item_id, audit_id, item_code, item_label, recommended, status, witnessed
		FROM registration_group_items
		WHERE audit_id = ?
		ORDER BY item_code`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registration group items for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var items []*audit.RegistrationGroupItem
	for rows.Next() {
		var item audit.RegistrationGroupItem
		if err := rows.Scan(
			&item.ID, &item.AuditID, &item.ItemCode, &item.ItemLabel,
			&item.Recommended, &item.Status, &item.Witnessed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration group item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// UpsertConclusion stores the sign-off block for an audit
func (r *SqliteAuditRepository) UpsertConclusion(ctx context.Context, conclusion *audit.ConclusionData) error {
	_, err := r.write().ExecContext(ctx, `
		INSERT INTO conclusions (
			audit_id, conclusion_text, reviewers_note,
			endorsed_by_lead_auditor, endorsed_by_reviewer, endorsed_by_provider,
			follow_up_required, lead_auditor_name, lead_auditor_signature, signature_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (audit_id) DO UPDATE SET
			conclusion_text          = excluded.conclusion_text,
			reviewers_note           = excluded.reviewers_note,
			endorsed_by_lead_auditor = excluded.endorsed_by_lead_auditor,
			endorsed_by_reviewer     = excluded.endorsed_by_reviewer,
			endorsed_by_provider     = excluded.endorsed_by_provider,
			follow_up_required       = excluded.follow_up_required,
			lead_auditor_name        = excluded.lead_auditor_name,
			lead_auditor_signature   = excluded.lead_auditor_signature,
			signature_date           = excluded.signature_date`,
		conclusion.AuditID, conclusion.ConclusionText, conclusion.ReviewersNote,
		conclusion.EndorsedByLeadAuditor, conclusion.EndorsedByReviewer, conclusion.EndorsedByProvider,
		conclusion.FollowUpRequired, conclusion.LeadAuditorName, conclusion.LeadAuditorSignature,
		toNullTime(conclusion.SignatureDate),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert conclusion for audit %d: %w", conclusion.AuditID, err)
	}

	return nil
}

// GetConclusion fetches the sign-off block for an audit
func (r *SqliteAuditRepository) GetConclusion(ctx context.Context, auditID int64) (*audit.ConclusionData, error) {
	var (
		c        audit.ConclusionData
		signedAt sql.NullTime
	)

	err := r.read().QueryRowContext(ctx, `
		SELECT audit_id, conclusion_text, reviewers_note,
		       endorsed_by_lead_auditor, endorsed_by_reviewer, endorsed_by_provider,
		       follow_up_required, lead_auditor_name, lead_auditor_signature, signature_date
		FROM conclusions WHERE audit_id = ?`, auditID,
	).Scan(
		&c.AuditID, &c.ConclusionText, &c.ReviewersNote,
		&c.EndorsedByLeadAuditor, &c.EndorsedByReviewer, &c.EndorsedByProvider,
		&c.FollowUpRequired, &c.LeadAuditorName, &c.LeadAuditorSignature, &signedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conclusion for audit %d: %w", auditID, err)
	}

	c.SignatureDate = fromNullTime(signedAt)

	return &c, nil
}

// requireRowAffected maps zero-row updates to contracts.ErrNotFound
func requireRowAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for id %d: %w", id, err)
	}
	if affected == 0 {
		return contracts.ErrNotFound
	}
	return nil
}
