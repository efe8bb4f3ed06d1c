package mocks

import (
	"github.com/stretchr/testify/mock"

	"ndisaudit/domain/events"
)

// MockFindingEventPublisher is a mock implementation of FindingEventPublisher for testing
type MockFindingEventPublisher struct {
	mock.Mock
}

func (m *MockFindingEventPublisher) PublishFindingOpened(event events.FindingOpenedEvent) {
	m.Called(event)
}

func (m *MockFindingEventPublisher) PublishFindingClosed(event events.FindingClosedEvent) {
	m.Called(event)
}

func (m *MockFindingEventPublisher) PublishFindingReopened(event events.FindingReopenedEvent) {
	m.Called(event)
}

func (m *MockFindingEventPublisher) PublishEvidenceRequested(event events.EvidenceRequestedEvent) {
	m.Called(event)
}

func (m *MockFindingEventPublisher) PublishEvidenceSubmitted(event events.EvidenceSubmittedEvent) {
	m.Called(event)
}
