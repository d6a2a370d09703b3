// Package telemetry implements the observability interfaces of the event store and the shell
// with Prometheus metrics, OpenTelemetry tracing and log/slog.
//
// The same collectors are handed to the postgres engine and to the observable command
// and query wrappers, so a single /metrics endpoint and a single trace cover both layers.
package telemetry
