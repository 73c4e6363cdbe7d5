// Package health defines the outcome recorded for a monitored host: one of the
// named probe states, or the JSON body a healthy host returned.
package health
