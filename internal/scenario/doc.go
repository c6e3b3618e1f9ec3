// Package scenario implements the scripted interaction: a fixed ordered
// sequence of navigate/locate/assert/mutate steps executed against one open
// session, with explicit bounded polling for asynchronously rendered page
// state and a best-effort telemetry side channel.
package scenario
