package vm

import "fmt"

// RuntimeError is the last runtime failure the VM raised: a message plus
// the source line of the instruction that triggered it. VM.LastError holds
// this after an Interpret call returns InterpretRuntimeError, so an
// embedding caller can inspect the failure without re-parsing stderr.
type RuntimeError struct {
	Line    int
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s\n [line %d] in script", e.Message, e.Line)
}
