// Package config loads the dashboard configuration from a YAML file, an
// optional .env file and environment variables. It covers the listen address,
// environment, log level and the optional periodic refresh of the probes.
// The monitored hosts are fixed and not configurable.
package config
