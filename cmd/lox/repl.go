package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"lox/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// replLineMax bounds how much of one entered line is fed to the compiler,
// matching a line-buffered read of a fixed-size input buffer.
const replLineMax = 1024

// replCmd is the interactive read-eval-print loop: print "> ", read one
// line, interpret it, repeat until EOF.
type replCmd struct {
	disassemble bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive session" }
func (*replCmd) Usage() string {
	return `repl:
  Read expressions one line at a time and print their results.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.disassemble, "disassemble", false, "log each compiled chunk's disassembly and the VM's execution trace")
}

func (r *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "> ",
		Stdout:                 os.Stdout,
		Stderr:                 os.Stderr,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start REPL: %v\n", err)
		return subcommands.ExitStatus(74)
	}
	defer rl.Close()

	machine := vm.New()
	machine.DebugTrace = r.disassemble
	if r.disassemble {
		machine.Logger.SetLevel(logrus.DebugLevel)
	}
	defer machine.Free()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return subcommands.ExitSuccess
		}
		if err != nil {
			return subcommands.ExitSuccess
		}

		if len(line) > replLineMax {
			line = line[:replLineMax]
		}
		machine.Interpret(line)
	}
}
