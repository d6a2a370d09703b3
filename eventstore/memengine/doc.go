// Package memengine is an in-process event store with the same Query and Append semantics
// as the postgres engine. It backs the handler tests and the "memory" adapter of the server.
//
// Payload predicates match top-level string properties of the JSON payload by equality,
// which is what a jsonb containment check against {"key":"value"} does for those documents.
package memengine
