package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.UserRegisteredEventType:
		return unmarshalPayload[core.UserRegistered](payload)
	case core.UserProfileRevisedEventType:
		return unmarshalPayload[core.UserProfileRevised](payload)
	case core.BookListedEventType:
		return unmarshalPayload[core.BookListed](payload)
	case core.BookDetailsRevisedEventType:
		return unmarshalPayload[core.BookDetailsRevised](payload)
	case core.BookCoverReplacedEventType:
		return unmarshalPayload[core.BookCoverReplaced](payload)
	case core.BookStatusChangedEventType:
		return unmarshalPayload[core.BookStatusChanged](payload)
	case core.BookDelistedEventType:
		return unmarshalPayload[core.BookDelisted](payload)
	case core.SwapProposedEventType:
		return unmarshalPayload[core.SwapProposed](payload)
	case core.SwapAcceptedEventType:
		return unmarshalPayload[core.SwapAccepted](payload)
	case core.SwapRejectedEventType:
		return unmarshalPayload[core.SwapRejected](payload)
	case core.SwapWithdrawnEventType:
		return unmarshalPayload[core.SwapWithdrawn](payload)
	case core.RegisteringUserFailedEventType:
		return unmarshalPayload[core.RegisteringUserFailed](payload)
	case core.RevisingProfileFailedEventType:
		return unmarshalPayload[core.RevisingProfileFailed](payload)
	case core.RevisingBookFailedEventType:
		return unmarshalPayload[core.RevisingBookFailed](payload)
	case core.ChangingBookStatusFailedEventType:
		return unmarshalPayload[core.ChangingBookStatusFailed](payload)
	case core.DelistingBookFailedEventType:
		return unmarshalPayload[core.DelistingBookFailed](payload)
	case core.ProposingSwapFailedEventType:
		return unmarshalPayload[core.ProposingSwapFailed](payload)
	case core.DecidingSwapFailedEventType:
		return unmarshalPayload[core.DecidingSwapFailed](payload)
	case core.WithdrawingSwapFailedEventType:
		return unmarshalPayload[core.WithdrawingSwapFailed](payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
