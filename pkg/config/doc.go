// Package config defines and loads the Daybook configuration.
//
// Configuration is a YAML file with one section per concern (server,
// storage, auth, assets, telemetry). Loading applies defaults, then optional
// DAYBOOK_* environment overrides, then validation. A fsnotify-backed
// Watcher can reload the file at runtime for settings that are safe to
// change live (currently the log level).
package config
