// Package handler implements the dashboard's HTTP surface on gin: the page,
// the batch trigger, the registry and stats views, and request logging.
package handler
