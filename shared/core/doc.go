// Package core contains the domain events and pure business rules of the book swapping marketplace.
//
// Events describe what happened, e.g. BookListed, SwapProposed or SwapAccepted, instead of
// generic create/update operations. Failure events such as ProposingSwapFailed record commands
// that a business rule rejected.
//
// BookState and SwapState are folded from event histories; the Decide functions of the
// command slices make their decisions on them. IsOwner and IsParticipant are the shared
// authorization predicates.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
