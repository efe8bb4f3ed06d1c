package findings

import "time"

// ActivityType classifies an entry on a finding's timeline.
type ActivityType string

const (
	ActivityCreated           ActivityType = "CREATED"
	ActivityStatusChanged     ActivityType = "STATUS_CHANGED"
	ActivityOwnerAssigned     ActivityType = "OWNER_ASSIGNED"
	ActivityDueDateSet        ActivityType = "DUE_DATE_SET"
	ActivityCommentAdded      ActivityType = "COMMENT_ADDED"
	ActivityEvidenceRequested ActivityType = "EVIDENCE_REQUESTED"
	ActivityEvidenceSubmitted ActivityType = "EVIDENCE_SUBMITTED"
	ActivityEvidenceReviewed  ActivityType = "EVIDENCE_REVIEWED"
	ActivityClosureInitiated  ActivityType = "CLOSURE_INITIATED"
	ActivityClosed            ActivityType = "CLOSED"
	ActivityReopened          ActivityType = "REOPENED"
)

// Activity is an immutable entry on a finding's corrective-action timeline.
// Activities are append-only: they are never updated or deleted, forming the
// audit trail for the finding.
type Activity struct {
	ID              int64
	FindingID       int64
	ActivityType    ActivityType
	PreviousValue   string
	NewValue        string
	Comment         string
	PerformedByUser string
	CreatedAt       time.Time
}

// NewActivity builds a timeline entry for a finding.
func NewActivity(findingID int64, activityType ActivityType, previousValue, newValue, comment, performedBy string) *Activity {
	return &Activity{
		FindingID:       findingID,
		ActivityType:    activityType,
		PreviousValue:   previousValue,
		NewValue:        newValue,
		Comment:         comment,
		PerformedByUser: performedBy,
		CreatedAt:       time.Now(),
	}
}
