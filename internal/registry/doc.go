// Package registry holds the latest known health value of every monitored
// host. The set of hosts is fixed when the store is created; probes only
// replace values.
package registry
