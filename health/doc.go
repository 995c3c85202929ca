// Package health derives health status from guarded dependencies.
//
// It provides a Checker interface with checkers built on circuit breaker
// state and cache effectiveness, and an Aggregator that combines them
// into one composite result for a service health endpoint.
package health
