// Package healthcheck probes a host's /healthy endpoint and records the
// outcome in the health registry. Each probe is bounded by a fixed
// four-second deadline; failures are classified and stored, never returned.
package healthcheck
