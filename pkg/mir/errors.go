package mir

import "fmt"

// CodegenError is the canonical "Codegen" error kind from §7: always fatal
// for the current module, carrying enough context (function, and an
// optional projection/operand detail) to reproduce the failure.
type CodegenError struct {
	Function string
	Detail   string
}

func (e *CodegenError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("codegen: %s", e.Detail)
	}
	return fmt.Sprintf("codegen: in %s: %s", e.Function, e.Detail)
}

// NewCodegenError builds a CodegenError with a formatted detail message.
func NewCodegenError(function, format string, args ...interface{}) *CodegenError {
	return &CodegenError{Function: function, Detail: fmt.Sprintf(format, args...)}
}
