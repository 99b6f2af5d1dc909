package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, source string) (stdout string, result InterpretResult) {
	t.Helper()
	var out bytes.Buffer
	machine := New()
	machine.Stdout = &out
	defer machine.Free()
	result = machine.Interpret(source)
	return out.String(), result
}

func TestInterpretArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		stdout string
	}{
		{"addition", "1 + 2", "3\n"},
		{"grouping and negation", "(-1 + 2) * 3 - -4", "7\n"},
		{"mixed comparison", "!(5 - 4 > 3 * 2 == !nil)", "true\n"},
		{"string concat", `"st" + "ri" + "ng"`, "string\n"},
		{"left-associative subtraction", "1 - 2 - 3", "-4\n"},
		{"precedence factor over term", "1 + 2 * 3", "7\n"},
		{"precedence grouping", "(1 + 2) * 3", "9\n"},
		{"not binds tighter than equal", "!true == false", "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, result := run(t, tt.source)
			assert.Equal(t, InterpretOK, result)
			assert.Equal(t, tt.stdout, stdout)
		})
	}
}

func TestInterpretCompileError(t *testing.T) {
	_, result := run(t, "1 +")
	if result != InterpretCompileError {
		t.Fatalf("got %s, want COMPILE_ERROR", result)
	}
}

func TestInterpretRuntimeErrorNegateString(t *testing.T) {
	machine := New()
	defer machine.Free()
	result := machine.Interpret(`-"a"`)
	if result != InterpretRuntimeError {
		t.Fatalf("got %s, want RUNTIME_ERROR", result)
	}
	if machine.LastError == nil || machine.LastError.Message != "Operand must be a number" {
		t.Fatalf("LastError = %+v, want message 'Operand must be a number'", machine.LastError)
	}
}

func TestInterpretRuntimeErrorMixedAdd(t *testing.T) {
	_, result := run(t, `"a" + 1`)
	if result != InterpretRuntimeError {
		t.Fatalf("got %s, want RUNTIME_ERROR", result)
	}
}

func TestLastErrorClearedOnNextInterpret(t *testing.T) {
	machine := New()
	defer machine.Free()
	machine.Interpret(`-"a"`)
	if machine.LastError == nil {
		t.Fatal("expected LastError to be set after a runtime error")
	}
	machine.Interpret("1 + 1")
	if machine.LastError != nil {
		t.Fatalf("LastError = %+v, want nil after a successful interpret", machine.LastError)
	}
}

func TestDoubleNotTruthinessLaw(t *testing.T) {
	stdout, result := run(t, "!!nil")
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "false\n", stdout)

	stdout, result = run(t, "!!0")
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "true\n", stdout)
}

func TestStackResetsAfterRuntimeError(t *testing.T) {
	machine := New()
	defer machine.Free()
	var out bytes.Buffer
	machine.Stdout = &out

	machine.Interpret(`-"a"`)
	if machine.stack.top != 0 {
		t.Fatalf("stack not reset after runtime error, top=%d", machine.stack.top)
	}

	// A fresh interpret call on the same VM still works afterward.
	out.Reset()
	result := machine.Interpret("1 + 1")
	assert.Equal(t, InterpretOK, result)
	assert.True(t, strings.HasSuffix(out.String(), "2\n"))
}
