// Package logging builds the slog loggers used across audioheal.
//
// Two formats are supported: a human-oriented console format that folds a
// component attribute into the message prefix, and standard JSON. Loggers
// write to stdout and, when a log directory is configured, to a shared
// audioheal.log file.
package logging
