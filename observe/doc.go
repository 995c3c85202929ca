// Package observe provides telemetry for guarded dependency calls.
//
// It provides an Observer with OpenTelemetry tracing and metrics, a JSON
// structured logger with sensitive-field redaction, and hooks that feed
// cache and resilience events into the logger.
package observe
