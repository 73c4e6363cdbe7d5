// Package dashboard renders the health registry as an HTML table.
//
// A Table is reconciled against registry snapshots: one row per host, keyed by
// the host identifier, reused across renders. The page embeds the table inside
// the element with id "host-health-table" and carries the button that triggers
// a new batch of probes.
package dashboard
