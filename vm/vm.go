// Package vm implements the stack-based interpreter loop: it executes a
// compiled Chunk over a fixed operand stack of tagged Values, dispatches
// the fourteen opcodes, and reports runtime errors with the offending
// source line.
package vm

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"lox/compiler"
	"lox/value"

	"github.com/sirupsen/logrus"
)

// InterpretResult is the outcome of one Interpret call, used by the CLI
// driver to choose an exit code.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case InterpretOK:
		return "OK"
	case InterpretCompileError:
		return "COMPILE_ERROR"
	case InterpretRuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// VM is the runtime environment a chunk executes in: a pointer to the
// chunk currently running, an instruction pointer into its code, a fixed
// operand stack, and the heap that outlives any single chunk.
type VM struct {
	chunk *compiler.Chunk
	ip    int
	stack stack
	heap  *value.Heap

	// Stdout receives OP_RETURN's printed result and anything else the
	// running program writes. Defaults to os.Stdout; tests substitute a
	// buffer.
	Stdout io.Writer

	// DebugTrace gates the execution debug-trace dump (stack contents plus
	// disassembled instruction before each dispatch), logged through
	// Logger at Debug level -- the VM-side half of the debug-trace
	// facility whose compile-side half lives in compiler.CompileTraced.
	DebugTrace bool
	Logger *logrus.Logger

	// LastError holds the most recent runtime failure after Interpret
	// returns InterpretRuntimeError. Nil otherwise.
	LastError *RuntimeError
}

// New returns a VM with a fresh, empty heap.
func New() *VM {
	return &VM{
		heap:   value.NewHeap(),
		Stdout: os.Stdout,
		Logger: logrus.StandardLogger(),
	}
}

// Free releases every object the VM's heap has accumulated. Call once the
// VM is no longer needed.
func (vm *VM) Free() {
	vm.heap.Free()
}

// Interpret compiles source and, if compilation succeeds, runs the
// resulting chunk to completion. The chunk is scoped to this call; the
// heap persists across calls on the same VM.
func (vm *VM) Interpret(source string) InterpretResult {
	vm.LastError = nil
	chunk := compiler.NewChunk()

	var ok bool
	if vm.DebugTrace {
		ok = compiler.CompileTraced(source, chunk, vm.heap, vm.Logger)
	} else {
		ok = compiler.Compile(source, chunk, vm.heap)
	}
	if !ok {
		return InterpretCompileError
	}

	vm.chunk = chunk
	vm.ip = 0
	vm.stack.reset()
	return vm.run()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) run() InterpretResult {
	for {
		if vm.DebugTrace {
			vm.traceStep()
		}

		op := compiler.OpCode(vm.readByte())
		switch op {
		case compiler.OpConstant:
			if res, ok := vm.push(vm.readConstant()); !ok {
				return res
			}

		case compiler.OpNil:
			if res, ok := vm.push(value.NilValue); !ok {
				return res
			}
		case compiler.OpTrue:
			if res, ok := vm.push(value.BoolValue(true)); !ok {
				return res
			}
		case compiler.OpFalse:
			if res, ok := vm.push(value.BoolValue(false)); !ok {
				return res
			}

		case compiler.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			if res, ok := vm.push(value.BoolValue(value.Equal(a, b))); !ok {
				return res
			}

		case compiler.OpGreater:
			if res, ok := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolValue(a > b) }); !ok {
				return res
			}
		case compiler.OpLess:
			if res, ok := vm.binaryNumberOp(func(a, b float64) value.Value { return value.BoolValue(a < b) }); !ok {
				return res
			}

		case compiler.OpAdd:
			if res, ok := vm.add(); !ok {
				return res
			}
		case compiler.OpSubtract:
			if res, ok := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a - b) }); !ok {
				return res
			}
		case compiler.OpMultiply:
			if res, ok := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a * b) }); !ok {
				return res
			}
		case compiler.OpDivide:
			if res, ok := vm.binaryNumberOp(func(a, b float64) value.Value { return value.NumberValue(a / b) }); !ok {
				return res
			}

		case compiler.OpNot:
			if res, ok := vm.push(value.BoolValue(value.IsFalsey(vm.stack.pop()))); !ok {
				return res
			}

		case compiler.OpNegate:
			if !vm.stack.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number")
			}
			if res, ok := vm.push(value.NumberValue(-vm.stack.pop().AsNumber())); !ok {
				return res
			}

		case compiler.OpReturn:
			result := vm.stack.pop()
			fmt.Fprintf(vm.Stdout, "%s\n", result.String())
			return InterpretOK

		default:
			return vm.runtimeError(fmt.Sprintf("Unknown opcode %d", op))
		}
	}
}

// push reports a runtime error on overflow instead of growing the stack --
// the array is fixed at stackMax slots by design. The bool result is false
// exactly when the caller must unwind immediately with the returned result.
func (vm *VM) push(v value.Value) (InterpretResult, bool) {
	if !vm.stack.push(v) {
		return vm.runtimeError("Stack overflow"), false
	}
	return InterpretOK, true
}

func (vm *VM) binaryNumberOp(f func(a, b float64) value.Value) (InterpretResult, bool) {
	if !vm.stack.peek(0).IsNumber() || !vm.stack.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers."), false
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	return vm.push(f(a.AsNumber(), b.AsNumber()))
}

func (vm *VM) add() (InterpretResult, bool) {
	top, under := vm.stack.peek(0), vm.stack.peek(1)
	switch {
	case top.IsString() && under.IsString():
		b := vm.stack.pop()
		a := vm.stack.pop()
		s := vm.heap.ConcatStrings(a.AsString(), b.AsString())
		return vm.push(value.StringValue(s))
	case top.IsNumber() && under.IsNumber():
		b := vm.stack.pop()
		a := vm.stack.pop()
		return vm.push(value.NumberValue(a.AsNumber() + b.AsNumber()))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings"), false
	}
}

// runtimeError formats message to stderr with the offending source line,
// resets the stack, and returns InterpretRuntimeError. The line reported is
// the one attached to the byte just consumed, i.e. vm.ip-1, since readByte
// always advances past the opcode before dispatch.
func (vm *VM) runtimeError(format string, args ...any) InterpretResult {
	message := fmt.Sprintf(format, args...)
	line := vm.chunk.Lines[vm.ip-1]
	err := RuntimeError{Line: line, Message: message}
	vm.LastError = &err
	fmt.Fprintf(os.Stderr, "%s\n", err.Error())
	vm.stack.reset()
	return InterpretRuntimeError
}

func (vm *VM) traceStep() {
	var buf bytes.Buffer
	buf.WriteString("          ")
	for i := 0; i < vm.stack.top; i++ {
		fmt.Fprintf(&buf, "[ %s ]", vm.stack.slots[i].String())
	}
	buf.WriteByte('\n')
	compiler.DisassembleInstruction(&buf, vm.chunk, vm.ip)
	vm.Logger.Debug(buf.String())
}
