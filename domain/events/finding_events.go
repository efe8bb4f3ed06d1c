package events

import (
	"time"

	"ndisaudit/domain/findings"
)

// FindingOpenedEvent is published when a non-conforming indicator response
// raises a new finding.
type FindingOpenedEvent struct {
	Finding     *findings.Finding
	PerformedBy string
	OccurredAt  time.Time
}

// FindingClosedEvent is published when a finding is closed with a closure note.
type FindingClosedEvent struct {
	Finding        *findings.Finding
	PreviousStatus findings.Status
	ClosureNote    string
	PerformedBy    string
	OccurredAt     time.Time
}

// FindingReopenedEvent is published when a closed finding is reopened.
type FindingReopenedEvent struct {
	Finding        *findings.Finding
	PreviousStatus findings.Status
	PerformedBy    string
	OccurredAt     time.Time
}

// EvidenceRequestedEvent is published when evidence is requested for a finding.
type EvidenceRequestedEvent struct {
	Finding     *findings.Finding
	Request     *findings.EvidenceRequest
	PerformedBy string
	OccurredAt  time.Time
}

// EvidenceSubmittedEvent is published when a document is submitted against an
// evidence request.
type EvidenceSubmittedEvent struct {
	Request     *findings.EvidenceRequest
	Item        *findings.EvidenceItem
	PerformedBy string
	OccurredAt  time.Time
}
