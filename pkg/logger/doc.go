// Package logger builds the application's slog logger: JSON records in
// production, text records otherwise, filtered by a configured level.
package logger
