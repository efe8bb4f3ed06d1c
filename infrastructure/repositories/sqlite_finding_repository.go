package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ndisaudit/database"
	"ndisaudit/domain/contracts"
	"ndisaudit/domain/findings"
	"ndisaudit/logging"
)

// SqliteFindingRepository implements contracts.FindingRepository over SQLite.
type SqliteFindingRepository struct {
	*BaseRepository
}

// NewSqliteFindingRepository creates a finding repository
func NewSqliteFindingRepository(db *database.Database, logger *logging.Logger) contracts.FindingRepository {
	return &SqliteFindingRepository{
		BaseRepository: NewBaseRepository(db, logger.WithComponent("finding_repository")),
	}
}

const findingColumns = `
	finding_id, audit_id, template_indicator_id, finding_text, severity,
	status, closure_note, owner_name, due_date, created_at, updated_at`

// Create inserts a finding and populates its generated ID
func (r *SqliteFindingRepository) Create(ctx context.Context, finding *findings.Finding) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO findings (
			audit_id, template_indicator_id, finding_text, severity,
			status, closure_note, owner_name, due_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		finding.AuditID, finding.TemplateIndicatorID, finding.FindingText, string(finding.Severity),
		string(finding.Status), finding.ClosureNote, finding.OwnerName, toNullTimePtr(finding.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create finding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get finding id: %w", err)
	}
	finding.ID = id

	return nil
}

// scanFinding reads one finding row
func scanFinding(row interface{ Scan(...any) error }) (*findings.Finding, error) {
	var (
		f       findings.Finding
		dueDate sql.NullTime
	)

	err := row.Scan(
		&f.ID, &f.AuditID, &f.TemplateIndicatorID, &f.FindingText, &f.Severity,
		&f.Status, &f.ClosureNote, &f.OwnerName, &dueDate, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.DueDate = fromNullTimePtr(dueDate)

	return &f, nil
}

// GetByID fetches a finding with its evidence requests attached
func (r *SqliteFindingRepository) GetByID(ctx context.Context, findingID int64) (*findings.Finding, error) {
	row := r.read().QueryRowContext(ctx,
		`SELECT `+findingColumns+` FROM findings WHERE finding_id = ?`, findingID)

	f, err := scanFinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finding %d: %w", findingID, err)
	}

	requests, err := r.ListEvidenceRequests(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	f.EvidenceRequests = requests

	return f, nil
}

// ListByAudit returns all findings for an audit, newest first
func (r *SqliteFindingRepository) ListByAudit(ctx context.Context, auditID int64) ([]*findings.Finding, error) {
	rows, err := r.read().QueryContext(ctx,
		`SELECT `+findingColumns+` FROM findings WHERE audit_id = ? ORDER BY finding_id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings for audit %d: %w", auditID, err)
	}
	defer rows.Close()

	var results []*findings.Finding
	for rows.Next() {
		f, err := scanFinding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		results = append(results, f)
	}

	return results, rows.Err()
}

// GetOpenForIndicator returns the open finding for a template indicator, if any.
// At most one finding per indicator can be open at a time.
func (r *SqliteFindingRepository) GetOpenForIndicator(ctx context.Context, auditID, templateIndicatorID int64) (*findings.Finding, error) {
	row := r.read().QueryRowContext(ctx,
		`SELECT `+findingColumns+` FROM findings
		 WHERE audit_id = ? AND template_indicator_id = ? AND status != ?
		 ORDER BY finding_id DESC LIMIT 1`,
		auditID, templateIndicatorID, string(findings.StatusClosed))

	f, err := scanFinding(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open finding for indicator %d: %w", templateIndicatorID, err)
	}

	return f, nil
}

// UpdateStatus persists the mutable workflow fields of a finding
func (r *SqliteFindingRepository) UpdateStatus(ctx context.Context, finding *findings.Finding) error {
	result, err := r.write().ExecContext(ctx, `
		UPDATE findings SET
			status       = ?,
			closure_note = ?,
			owner_name   = ?,
			due_date     = ?,
			updated_at   = CURRENT_TIMESTAMP
		WHERE finding_id = ?`,
		string(finding.Status), finding.ClosureNote, finding.OwnerName,
		toNullTimePtr(finding.DueDate), finding.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update finding %d: %w", finding.ID, err)
	}

	return requireRowAffected(result, finding.ID)
}

// AppendActivity adds a timeline entry. Activities are append-only.
func (r *SqliteFindingRepository) AppendActivity(ctx context.Context, activity *findings.Activity) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO finding_activities (
			finding_id, activity_type, previous_value, new_value, comment, performed_by_user
		) VALUES (?, ?, ?, ?, ?, ?)`,
		activity.FindingID, string(activity.ActivityType), activity.PreviousValue,
		activity.NewValue, activity.Comment, activity.PerformedByUser,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity for finding %d: %w", activity.FindingID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get activity id: %w", err)
	}
	activity.ID = id

	return nil
}

// ListActivities returns a finding's timeline in chronological order
func (r *SqliteFindingRepository) ListActivities(ctx context.Context, findingID int64) ([]*findings.Activity, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT activity_id, finding_id, activity_type, previous_value, new_value,
		       comment, performed_by_user, created_at
		FROM finding_activities
		WHERE finding_id = ?
		ORDER BY activity_id`, findingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for finding %d: %w", findingID, err)
	}
	defer rows.Close()

	var activities []*findings.Activity
	for rows.Next() {
		var a findings.Activity
		if err := rows.Scan(
			&a.ID, &a.FindingID, &a.ActivityType, &a.PreviousValue, &a.NewValue,
			&a.Comment, &a.PerformedByUser, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &a)
	}

	return activities, rows.Err()
}

// CreateEvidenceRequest inserts an evidence request and populates its ID
func (r *SqliteFindingRepository) CreateEvidenceRequest(ctx context.Context, request *findings.EvidenceRequest) error {
	result, err := r.write().ExecContext(ctx, `
		INSERT INTO evidence_requests (
			finding_id, evidence_type, request_note, status, public_token
		) VALUES (?, ?, ?, ?, ?)`,
		request.FindingID, string(request.EvidenceType), request.RequestNote,
		string(request.Status), request.PublicToken,
	)
	if err != nil {
		return fmt.Errorf("failed to create evidence request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get evidence request id: %w", err)
	}
	request.ID = id

	return nil
}

// GetEvidenceRequest fetches one evidence request with its submitted items
func (r *SqliteFindingRepository) GetEvidenceRequest(ctx context.Context, requestID int64) (*findings.EvidenceRequest, error) {
	var req findings.EvidenceRequest

	err := r.read().QueryRowContext(ctx, `
		SELECT evidence_request_id, finding_id, evidence_type, request_note,
		       status, public_token, created_at, updated_at
		FROM evidence_requests WHERE evidence_request_id = ?`, requestID,
	).Scan(
		&req.ID, &req.FindingID, &req.EvidenceType, &req.RequestNote,
		&req.Status, &req.PublicToken, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence request %d: %w", requestID, err)
	}

	items, err := r.listEvidenceItems(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Items = items

	return &req, nil
}

// UpdateEvidenceRequestStatus moves a request through the review lifecycle
func (r *SqliteFindingRepository) UpdateEvidenceRequestStatus(ctx context.Context, requestID int64, status findings.EvidenceStatus) error {
	result, err := r.write().ExecContext(ctx, `
		UPDATE evidence_requests SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE evidence_request_id = ?`, string(status), requestID)
	if err != nil {
		return fmt.Errorf("failed to update evidence request %d: %w", requestID, err)
	}

	return requireRowAffected(result, requestID)
}

// RecordEvidenceSubmission inserts a submitted document and advances its
// request in one transaction, so a failed status update cannot leave an
// orphaned item behind.
func (r *SqliteFindingRepository) RecordEvidenceSubmission(ctx context.Context, item *findings.EvidenceItem, status findings.EvidenceStatus) error {
	return r.withTx(func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO evidence_items (evidence_request_id, file_name, note)
			VALUES (?, ?, ?)`,
			item.EvidenceRequestID, item.FileName, item.Note,
		)
		if err != nil {
			return fmt.Errorf("failed to add evidence item: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get evidence item id: %w", err)
		}
		item.ID = id

		result, err = tx.ExecContext(ctx, `
			UPDATE evidence_requests SET status = ?, updated_at = CURRENT_TIMESTAMP
			WHERE evidence_request_id = ?`, string(status), item.EvidenceRequestID)
		if err != nil {
			return fmt.Errorf("failed to update evidence request %d: %w", item.EvidenceRequestID, err)
		}

		return requireRowAffected(result, item.EvidenceRequestID)
	})
}

// ListEvidenceRequests returns all evidence requests for a finding with items attached
func (r *SqliteFindingRepository) ListEvidenceRequests(ctx context.Context, findingID int64) ([]*findings.EvidenceRequest, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT evidence_request_id, finding_id, evidence_type, request_note,
		       status, public_token, created_at, updated_at
		FROM evidence_requests
		WHERE finding_id = ?
		ORDER BY evidence_request_id`, findingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence requests for finding %d: %w", findingID, err)
	}
	defer rows.Close()

	var requests []*findings.EvidenceRequest
	for rows.Next() {
		var req findings.EvidenceRequest
		if err := rows.Scan(
			&req.ID, &req.FindingID, &req.EvidenceType, &req.RequestNote,
			&req.Status, &req.PublicToken, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan evidence request: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, req := range requests {
		items, err := r.listEvidenceItems(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		req.Items = items
	}

	return requests, nil
}

// listEvidenceItems returns the submitted documents for an evidence request
func (r *SqliteFindingRepository) listEvidenceItems(ctx context.Context, requestID int64) ([]*findings.EvidenceItem, error) {
	rows, err := r.read().QueryContext(ctx, `
		SELECT evidence_item_id, evidence_request_id, file_name, note, submitted_at
		FROM evidence_items
		WHERE evidence_request_id = ?
		ORDER BY evidence_item_id`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence items for request %d: %w", requestID, err)
	}
	defer rows.Close()

	var items []*findings.EvidenceItem
	for rows.Next() {
		var item findings.EvidenceItem
		if err := rows.Scan(&item.ID, &item.EvidenceRequestID, &item.FileName, &item.Note, &item.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evidence item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
