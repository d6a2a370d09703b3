package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookswap-hub/bookswap/eventstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, f eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.MatchesAnyEvent())
			},
		},
		{
			name: "event_types_only",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("SwapProposed", "BookListed").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookListed", "SwapProposed"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
				assert.False(t, f.MatchesAnyEvent())
			},
		},
		{
			name: "event_types_and_any_predicate",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookListed").
					AndAnyPredicateOf(eventstore.P("OwnerID", "u-2"), eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				item := f.Items()[0]
				assert.False(t, item.AllPredicatesMustMatch())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1"), eventstore.P("OwnerID", "u-2")}, item.Predicates())
			},
		},
		{
			name: "event_types_and_all_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("SwapProposed").
					AndAllPredicatesOf(eventstore.P("OfferedBy", "u-1"), eventstore.P("RequestedFrom", "u-2")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				item := f.Items()[0]
				assert.True(t, item.AllPredicatesMustMatch())
				assert.Len(t, item.Predicates(), 2)
			},
		},
		{
			name: "predicates_then_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("SwapID", "s-1")).
					AndAnyEventTypeOf("SwapAccepted", "SwapRejected").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				item := f.Items()[0]
				assert.Equal(t, []string{"SwapAccepted", "SwapRejected"}, item.EventTypes())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("SwapID", "s-1")}, item.Predicates())
			},
		},
		{
			name: "multiple_items_with_or_matching",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("SwapProposed").
					AndAnyPredicateOf(eventstore.P("SwapID", "s-1")).
					OrMatching().
					AnyEventTypeOf("BookListed", "BookStatusChanged").
					AndAnyPredicateOf(eventstore.P("BookID", "b-1"), eventstore.P("BookID", "b-2")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"SwapProposed"}, f.Items()[0].EventTypes())
				assert.Equal(t, []string{"BookListed", "BookStatusChanged"}, f.Items()[1].EventTypes())
				assert.Len(t, f.Items()[1].Predicates(), 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_SanitizesInput(t *testing.T) {
	// act
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("SwapRejected", "", "SwapAccepted", "SwapRejected").
		AndAnyPredicateOf(
			eventstore.P("SwapID", "s-2"),
			eventstore.P("", "s-3"),
			eventstore.P("SwapID", ""),
			eventstore.P("SwapID", "s-1"),
			eventstore.P("SwapID", "s-2"),
		).
		Finalize()

	// assert
	item := filter.Items()[0]
	assert.Equal(t, []string{"SwapAccepted", "SwapRejected"}, item.EventTypes())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("SwapID", "s-1"), eventstore.P("SwapID", "s-2")}, item.Predicates())
}

func Test_FilterBuilder_IsImmutableAcrossBranches(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("BookListed")

	// act
	first := base.AndAnyPredicateOf(eventstore.P("BookID", "b-1")).Finalize()
	second := base.AndAnyPredicateOf(eventstore.P("BookID", "b-2")).Finalize()

	// assert
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1")}, first.Items()[0].Predicates())
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-2")}, second.Items()[0].Predicates())
}
