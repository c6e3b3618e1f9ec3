// Package apperrors defines the error taxonomy and process exit codes for
// gridsmoke. Configuration errors abort the run before any session opens;
// session and step errors are terminal for a single session only and are
// aggregated by the orchestrator into the final exit code.
package apperrors
