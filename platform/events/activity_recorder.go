package events

import (
	"context"
	"time"

	"ndisaudit/domain/contracts"
	"ndisaudit/domain/events"
	"ndisaudit/domain/findings"
	"ndisaudit/logging"
)

// appendTimeout bounds how long a timeline write may take once the
// originating request has already returned.
const appendTimeout = 10 * time.Second

// ActivityRecorder subscribes to finding lifecycle events and appends the
// corresponding timeline entries. Recording happens off the request path, so
// a failed append is logged rather than surfaced to the caller.
type ActivityRecorder struct {
	findings contracts.FindingRepository
	logger   *logging.Logger
}

// NewActivityRecorder creates the timeline subscriber
func NewActivityRecorder(findingRepo contracts.FindingRepository) *ActivityRecorder {
	return &ActivityRecorder{
		findings: findingRepo,
		logger:   logging.Default().WithComponent("activity_recorder"),
	}
}

// RegisterHandlers registers all timeline handlers with the event bus
func (r *ActivityRecorder) RegisterHandlers(eventBus *FindingEventBus) {
	eventBus.OnFindingOpened(r.handleFindingOpened)
	eventBus.OnFindingClosed(r.handleFindingClosed)
	eventBus.OnFindingReopened(r.handleFindingReopened)
	eventBus.OnEvidenceRequested(r.handleEvidenceRequested)
	eventBus.OnEvidenceSubmitted(r.handleEvidenceSubmitted)
}

// append writes one timeline entry, logging on failure
func (r *ActivityRecorder) append(activity *findings.Activity) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := r.findings.AppendActivity(ctx, activity); err != nil {
		r.logger.Error("Failed to record finding activity",
			"finding_id", activity.FindingID,
			"activity_type", string(activity.ActivityType),
			"error", err.Error())
	}
}

// Event handler implementations

func (r *ActivityRecorder) handleFindingOpened(event events.FindingOpenedEvent) {
	r.append(findings.NewActivity(
		event.Finding.ID,
		findings.ActivityCreated,
		"",
		string(findings.StatusOpen),
		event.Finding.FindingText,
		event.PerformedBy,
	))
}

func (r *ActivityRecorder) handleFindingClosed(event events.FindingClosedEvent) {
	r.append(findings.NewActivity(
		event.Finding.ID,
		findings.ActivityClosed,
		string(event.PreviousStatus),
		string(findings.StatusClosed),
		event.ClosureNote,
		event.PerformedBy,
	))
}

func (r *ActivityRecorder) handleFindingReopened(event events.FindingReopenedEvent) {
	r.append(findings.NewActivity(
		event.Finding.ID,
		findings.ActivityReopened,
		string(event.PreviousStatus),
		string(findings.StatusOpen),
		"",
		event.PerformedBy,
	))
}

func (r *ActivityRecorder) handleEvidenceRequested(event events.EvidenceRequestedEvent) {
	r.append(findings.NewActivity(
		event.Finding.ID,
		findings.ActivityEvidenceRequested,
		"",
		string(event.Request.EvidenceType),
		event.Request.RequestNote,
		event.PerformedBy,
	))
}

func (r *ActivityRecorder) handleEvidenceSubmitted(event events.EvidenceSubmittedEvent) {
	r.append(findings.NewActivity(
		event.Request.FindingID,
		findings.ActivityEvidenceSubmitted,
		"",
		event.Item.FileName,
		event.Item.Note,
		event.PerformedBy,
	))
}
