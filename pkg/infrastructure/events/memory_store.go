package events

import (
	"sync"

	"github.com/rs/zerolog"
)

type subscriber struct {
	id      Subscription
	types   map[string]bool
	handler EventHandler
}

// InMemoryEventStore keeps every stream in memory for the lifetime of the
// process. Subscribers are notified synchronously, in subscription order,
// after the event is stored.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers []subscriber
	nextID      Subscription
	mutex       sync.RWMutex
	logger      zerolog.Logger
}

// NewInMemoryEventStore creates an empty store. Handler failures are logged
// through logger and never reach the appender.
func NewInMemoryEventStore(logger zerolog.Logger) *InMemoryEventStore {
	return &InMemoryEventStore{
		streams: make(map[string][]Event),
		logger:  logger.With().Str("component", "event_store").Logger(),
	}
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	versioned := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	handlers := s.handlersFor(versioned.EventType)
	s.mutex.Unlock()

	for _, h := range handlers {
		if !h.CanHandle(versioned.EventType) {
			continue
		}
		if err := h.Handle(versioned); err != nil {
			s.logger.Error().Err(err).
				Str("event_type", versioned.EventType).
				Str("stream", streamID).
				Msg("event handler failed")
		}
	}

	return nil
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	out := make([]Event, len(events)-fromVersion+1)
	copy(out, events[fromVersion-1:])
	return out, nil
}

// Subscribe registers handler for eventTypes. An empty list subscribes to
// every event type.
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) (Subscription, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextID++
	sub := subscriber{id: s.nextID, handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = true
		}
	}
	s.subscribers = append(s.subscribers, sub)

	return sub.id, nil
}

// Unsubscribe removes a subscription; unknown ids are ignored
func (s *InMemoryEventStore) Unsubscribe(id Subscription) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	kept := s.subscribers[:0]
	for _, sub := range s.subscribers {
		if sub.id != id {
			kept = append(kept, sub)
		}
	}
	s.subscribers = kept
}

// handlersFor must be called with the mutex held
func (s *InMemoryEventStore) handlersFor(eventType string) []EventHandler {
	var handlers []EventHandler
	for _, sub := range s.subscribers {
		if sub.types == nil || sub.types[eventType] {
			handlers = append(handlers, sub.handler)
		}
	}
	return handlers
}
