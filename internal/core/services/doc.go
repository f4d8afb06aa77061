// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The question answering pipeline is linear: a document is normalised,
// chunked, embedded, and indexed once; questions are then answered
// repeatedly against the built index. Index builds are all-or-nothing,
// and a built index is never mutated - re-indexing constructs a fresh
// DocumentIndex.
//
// Services are pure Go; the only external dependency is the rate limiter.
package services
