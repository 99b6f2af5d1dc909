package compiler

import "fmt"

// CompileError is one reported parse error: a line number, the formatted
// "at" clause (empty, " at end", or " at '<lexeme>'") and the message. Its
// Error() reproduces the exact stable string the compiler also writes to
// stderr at report time.
type CompileError struct {
	Line    int
	At      string
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.At, e.Message)
}
