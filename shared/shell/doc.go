// Package shell contains the infrastructure glue shared by all feature slices:
// mapping domain events to and from storable events, event metadata, the retry loop
// for optimistic concurrency conflicts, handler results and observability helpers.
//
// In Hexagonal Architecture terminology, this would be the 'adapters' layer.
package shell
