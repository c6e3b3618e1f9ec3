// Package logging provides a unified logging interface for gridsmoke.
// It abstracts the underlying zerolog implementation, allowing consistent
// structured logging across components while keeping tests backend-free.
package logging
