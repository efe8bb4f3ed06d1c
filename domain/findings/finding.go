package findings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ndisaudit/domain/audit"
)

// MinClosureNoteLength is the shortest closure note accepted when closing a finding.
const MinClosureNoteLength = 10

// Status is the corrective-action state of a finding.
type Status string

const (
	StatusOpen        Status = "OPEN"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusClosed      Status = "CLOSED"
)

// Severity is the non-conformity grade of a finding. Only non-conforming
// ratings produce findings.
type Severity string

const (
	SeverityMinorNC Severity = "MINOR_NC"
	SeverityMajorNC Severity = "MAJOR_NC"
)

// DisplayName returns the human-readable severity label used in reports.
func (s Severity) DisplayName() string {
	switch s {
	case SeverityMinorNC:
		return "Minor Non-Conformity"
	case SeverityMajorNC:
		return "Major Non-Conformity"
	default:
		return string(s)
	}
}

var (
	// ErrClosureNoteTooShort occurs when a finding is closed without a meaningful note.
	ErrClosureNoteTooShort = fmt.Errorf("closure note must be at least %d characters", MinClosureNoteLength)

	// ErrAlreadyClosed occurs when closing a finding that is already closed.
	ErrAlreadyClosed = errors.New("finding is already closed")

	// ErrNotClosed occurs when reopening a finding that is not closed.
	ErrNotClosed = errors.New("finding is not closed")
)

// Finding is a recorded non-conformance requiring corrective action.
type Finding struct {
	ID                  int64
	AuditID             int64
	TemplateIndicatorID int64
	FindingText         string
	Severity            Severity
	Status              Status
	ClosureNote         string
	OwnerName           string
	DueDate             *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Activities       []*Activity
	EvidenceRequests []*EvidenceRequest
	ClosureEvidence  []*EvidenceItem
}

// SeverityForRating maps a non-conforming indicator rating to a finding
// severity. ok is false for conforming ratings, which never raise findings.
func SeverityForRating(r audit.Rating) (Severity, bool) {
	switch r {
	case audit.RatingMinorNC:
		return SeverityMinorNC, true
	case audit.RatingMajorNC:
		return SeverityMajorNC, true
	default:
		return "", false
	}
}

// NewFinding creates an open finding for a non-conforming indicator response.
func NewFinding(auditID, templateIndicatorID int64, findingText string, severity Severity) *Finding {
	now := time.Now()
	return &Finding{
		AuditID:             auditID,
		TemplateIndicatorID: templateIndicatorID,
		FindingText:         findingText,
		Severity:            severity,
		Status:              StatusOpen,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsOpen reports whether the finding still requires corrective action.
func (f *Finding) IsOpen() bool {
	return f.Status == StatusOpen || f.Status == StatusUnderReview
}

// Close marks the finding closed. The closure note must carry at least
// MinClosureNoteLength characters after trimming.
func (f *Finding) Close(closureNote string) error {
	if f.Status == StatusClosed {
		return ErrAlreadyClosed
	}
	if len(strings.TrimSpace(closureNote)) < MinClosureNoteLength {
		return ErrClosureNoteTooShort
	}
	f.Status = StatusClosed
	f.ClosureNote = strings.TrimSpace(closureNote)
	f.UpdatedAt = time.Now()
	return nil
}

// Reopen returns a closed finding to the open state. The closure note is
// retained so the history of the earlier closure stays visible.
func (f *Finding) Reopen() error {
	if f.Status != StatusClosed {
		return ErrNotClosed
	}
	f.Status = StatusOpen
	f.UpdatedAt = time.Now()
	return nil
}

// MarkUnderReview moves an open finding into review while submitted evidence
// is assessed.
func (f *Finding) MarkUnderReview() error {
	if f.Status == StatusClosed {
		return ErrAlreadyClosed
	}
	f.Status = StatusUnderReview
	f.UpdatedAt = time.Now()
	return nil
}
