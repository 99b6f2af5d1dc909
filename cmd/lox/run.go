package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lox/vm"

	"github.com/google/subcommands"
)

// runCmd reads an entire source file and interprets it as one expression.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and run a source file" }
func (*runCmd) Usage() string {
	return `run <path>:
  Read the file at <path>, compile it as a single expression, and execute it.
`
}
func (*runCmd) SetFlags(f *flag.FlagSet) {}

func (*runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lox run <path>\n")
		return subcommands.ExitStatus(64)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %q: %v\n", args[0], err)
		return subcommands.ExitStatus(74)
	}

	machine := vm.New()
	defer machine.Free()

	switch machine.Interpret(string(data)) {
	case vm.InterpretOK:
		return subcommands.ExitSuccess
	case vm.InterpretCompileError:
		return subcommands.ExitStatus(65)
	default:
		return subcommands.ExitStatus(70)
	}
}
