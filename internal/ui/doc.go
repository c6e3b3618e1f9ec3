// Package ui centralizes terminal color themes for the CLI report lines and
// the TUI dashboard.
package ui
