// Package logging builds the process-wide slog logger from configuration.
//
// The logger writes JSON or text records to the configured writer. The level
// is held in a slog.LevelVar so a configuration reload can change it without
// replacing handlers already captured by component loggers.
package logging
