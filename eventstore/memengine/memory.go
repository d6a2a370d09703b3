package memengine

import (
	"context"
	"errors"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/bookswap-hub/bookswap/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// ErrUndecodablePayload is returned by Append for payloads that are not JSON objects.
var ErrUndecodablePayload = errors.New("payload is not a json object")

type storedEvent struct {
	event   eventstore.StorableEvent
	strings map[string]string
}

// EventStore keeps all events in a slice guarded by a RWMutex.
// Sequence numbers start at 1 and are never reused.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.ContextualLogger
}

// Option configures the EventStore.
type Option func(*EventStore)

// WithLogger sets a context-aware logger (a *slog.Logger works).
func WithLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns the matching events in sequence order and the max sequence number of the stream.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	result := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !matches(filter, stored) {
			continue
		}

		result = append(result, cloneEvent(stored.event))
		maxSequenceNumber = stored.event.SequenceNumber
	}

	if es.logger != nil {
		es.logger.DebugContext(ctx, logMsgQueryCompleted, logAttrEventCount, len(result))
	}

	return result, maxSequenceNumber, nil
}

// Append stores all events if the stream selected by filter still has expectedMaxSequenceNumber
// as its max sequence number. Otherwise it stores nothing and returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events ...eventstore.StorableEvent,
) error {

	if len(events) == 0 {
		return eventstore.ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	decoded := make([]map[string]string, 0, len(events))
	for _, event := range events {
		stringProps, err := stringProperties(event.PayloadJSON)
		if err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}

		decoded = append(decoded, stringProps)
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := eventstore.MaxSequenceNumberUint(0)
	for _, stored := range es.events {
		if matches(filter, stored) {
			actualMaxSequenceNumber = stored.event.SequenceNumber
		}
	}

	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.InfoContext(ctx, logMsgConcurrencyConflict,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
				logAttrActualSequence, actualMaxSequenceNumber,
			)
		}

		return eventstore.ErrConcurrencyConflict
	}

	nextSequenceNumber := eventstore.MaxSequenceNumberUint(len(es.events))
	for i, event := range events {
		nextSequenceNumber++
		es.events = append(es.events, storedEvent{
			event:   cloneEvent(event).WithSequenceNumber(nextSequenceNumber),
			strings: decoded[i],
		})
	}

	if es.logger != nil {
		es.logger.InfoContext(ctx, logMsgEventsAppended, logAttrEventCount, len(events))
	}

	return nil
}

func matches(filter eventstore.Filter, stored storedEvent) bool {
	if filter.MatchesAnyEvent() {
		return true
	}

	for _, item := range filter.Items() {
		if matchesItem(item, stored) {
			return true
		}
	}

	return false
}

func matchesItem(item eventstore.FilterItem, stored storedEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), stored.event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	matchesPredicate := func(p eventstore.FilterPredicate) bool {
		val, ok := stored.strings[p.Key()]
		return ok && val == p.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, p := range item.Predicates() {
			if !matchesPredicate(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(item.Predicates(), matchesPredicate)
}

// stringProperties extracts the top-level string properties, the only ones predicates can match.
func stringProperties(payloadJSON []byte) (map[string]string, error) {
	var raw map[string]any
	if err := jsoniter.Unmarshal(payloadJSON, &raw); err != nil || raw == nil {
		return nil, ErrUndecodablePayload
	}

	props := make(map[string]string, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			props[key] = s
		}
	}

	return props, nil
}

func cloneEvent(e eventstore.StorableEvent) eventstore.StorableEvent {
	e.PayloadJSON = slices.Clone(e.PayloadJSON)
	e.MetadataJSON = slices.Clone(e.MetadataJSON)

	return e
}
