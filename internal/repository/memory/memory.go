// Package memory provides in-memory implementations of the domain
// repository contracts for tests and local development. All repositories
// are safe for concurrent use and enforce the same invariants as the
// PostgreSQL implementations.
package memory
