// Package monitor ties the registry, the prober and the table together. A
// trigger launches one probe per host, renders immediately and hands back a
// Batch that closes once every probe has settled.
package monitor
