// Package cliutil holds the user-facing error surface shared by the
// driver's subcommands (§7's CliError kind).
package cliutil

import "fmt"

// CliError is a user-facing failure: one line, prefixed with the
// originating subsystem tag so the driver's output stays greppable.
type CliError struct {
	Subsystem string
	Message   string
}

func (e *CliError) Error() string {
	return fmt.Sprintf("%s: %s", e.Subsystem, e.Message)
}

// Errorf builds a CliError with a formatted message.
func Errorf(subsystem, format string, args ...interface{}) *CliError {
	return &CliError{Subsystem: subsystem, Message: fmt.Sprintf(format, args...)}
}
