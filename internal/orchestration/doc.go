// Package orchestration coordinates the concurrent execution of session
// tasks and aggregates their outcomes into the run summary.
package orchestration
