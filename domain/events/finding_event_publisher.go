package events

// FindingEventPublisher publishes finding lifecycle events to interested
// subscribers. Implemented by the platform event bus; mocked in tests.
type FindingEventPublisher interface {
	PublishFindingOpened(event FindingOpenedEvent)
	PublishFindingClosed(event FindingClosedEvent)
	PublishFindingReopened(event FindingReopenedEvent)
	PublishEvidenceRequested(event EvidenceRequestedEvent)
	PublishEvidenceSubmitted(event EvidenceSubmittedEvent)
}
