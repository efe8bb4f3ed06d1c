// Package events provides the in-process typed event bus connecting the
// finding workflow to its subscribers.
package events

import (
	"sync"

	"ndisaudit/domain/events"
	"ndisaudit/logging"
)

// FindingEventBus provides type-safe event publishing and subscription for
// finding lifecycle events. It implements events.FindingEventPublisher.
type FindingEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	// Event handler slices for each event type
	findingOpenedHandlers     []func(events.FindingOpenedEvent)
	findingClosedHandlers     []func(events.FindingClosedEvent)
	findingReopenedHandlers   []func(events.FindingReopenedEvent)
	evidenceRequestedHandlers []func(events.EvidenceRequestedEvent)
	evidenceSubmittedHandlers []func(events.EvidenceSubmittedEvent)
}

// NewFindingEventBus creates a new typed finding event bus
func NewFindingEventBus() *FindingEventBus {
	return &FindingEventBus{
		logger:                    logging.Default().WithComponent("finding_event_bus"),
		findingOpenedHandlers:     make([]func(events.FindingOpenedEvent), 0),
		findingClosedHandlers:     make([]func(events.FindingClosedEvent), 0),
		findingReopenedHandlers:   make([]func(events.FindingReopenedEvent), 0),
		evidenceRequestedHandlers: make([]func(events.EvidenceRequestedEvent), 0),
		evidenceSubmittedHandlers: make([]func(events.EvidenceSubmittedEvent), 0),
	}
}

// Subscribe methods for each event type

func (bus *FindingEventBus) OnFindingOpened(handler func(events.FindingOpenedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.findingOpenedHandlers = append(bus.findingOpenedHandlers, handler)
}

func (bus *FindingEventBus) OnFindingClosed(handler func(events.FindingClosedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.findingClosedHandlers = append(bus.findingClosedHandlers, handler)
}

func (bus *FindingEventBus) OnFindingReopened(handler func(events.FindingReopenedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.findingReopenedHandlers = append(bus.findingReopenedHandlers, handler)
}

func (bus *FindingEventBus) OnEvidenceRequested(handler func(events.EvidenceRequestedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.evidenceRequestedHandlers = append(bus.evidenceRequestedHandlers, handler)
}

func (bus *FindingEventBus) OnEvidenceSubmitted(handler func(events.EvidenceSubmittedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.evidenceSubmittedHandlers = append(bus.evidenceSubmittedHandlers, handler)
}

// Publish methods for each event type

func (bus *FindingEventBus) PublishFindingOpened(event events.FindingOpenedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.FindingOpenedEvent), len(bus.findingOpenedHandlers))
	copy(handlers, bus.findingOpenedHandlers)
	bus.mu.RUnlock()

	// Execute handlers asynchronously to avoid blocking the publisher
	for _, handler := range handlers {
		go func(h func(events.FindingOpenedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in FindingOpened",
						"finding_id", event.Finding.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *FindingEventBus) PublishFindingClosed(event events.FindingClosedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.FindingClosedEvent), len(bus.findingClosedHandlers))
	copy(handlers, bus.findingClosedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.FindingClosedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in FindingClosed",
						"finding_id", event.Finding.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *FindingEventBus) PublishFindingReopened(event events.FindingReopenedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.FindingReopenedEvent), len(bus.findingReopenedHandlers))
	copy(handlers, bus.findingReopenedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.FindingReopenedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in FindingReopened",
						"finding_id", event.Finding.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *FindingEventBus) PublishEvidenceRequested(event events.EvidenceRequestedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.EvidenceRequestedEvent), len(bus.evidenceRequestedHandlers))
	copy(handlers, bus.evidenceRequestedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.EvidenceRequestedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in EvidenceRequested",
						"finding_id", event.Finding.ID,
						"request_id", event.Request.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *FindingEventBus) PublishEvidenceSubmitted(event events.EvidenceSubmittedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.EvidenceSubmittedEvent), len(bus.evidenceSubmittedHandlers))
	copy(handlers, bus.evidenceSubmittedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.EvidenceSubmittedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in EvidenceSubmitted",
						"request_id", event.Request.ID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
