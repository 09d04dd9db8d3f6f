package wasmvm

import "fmt"

// ParseError is §7's canonical parser error kind: always fatal for the
// input, message-only.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return "wasm parse: " + e.Message }

func parseErr(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// ExecutionError is §7's test-VM error kind: trap messages and
// hook-not-found, always fatal for the run.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string { return "wasm exec: " + e.Message }

func execErr(format string, args ...interface{}) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}
