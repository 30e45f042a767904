package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"riau/compiler"
	"riau/diagnostics"
	"riau/lexer"
	"riau/parser"
	"riau/semantic"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// emitBytecodeCmd batch-compiles a source file and writes its bytecode
// artifacts to disk without executing anything: a hex-encoded `.nic`
// dump and a human-readable `.dnic` disassembly.
type emitBytecodeCmd struct {
	log          *logrus.Logger
	disassemble  bool
	dumpBytecode bool
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation of a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit <file>:
  Compile a Riau source file and write .nic/.dnic bytecode artifacts.
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", true, "disassemble the bytecode and write it to a .dnic file")
	f.BoolVar(&cmd.dumpBytecode, "dumpBytecode", true, "write the encoded bytecode as hexadecimal to a .nic file")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Could not read file %q: %v\n", filename, err)
		return exitIOErr
	}
	source := string(data)
	reporter := diagnostics.New(filename, source)

	tokens, err := lexer.New(source).Scan()
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}

	program, err := parser.New(tokens).Parse()
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}

	if err := semantic.New().Analyze(program); err != nil {
		reporter.Report(err)
		return exitDataErr
	}

	chunk, err := compiler.New(cmd.log).Compile(program)
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}

	base := strings.TrimSuffix(filename, ".riau")

	if cmd.dumpBytecode {
		if err := chunk.WriteHexDump(base); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump bytecode error: %v\n", err)
			return exitIOErr
		}
	}

	if cmd.disassemble {
		if _, err := chunk.WriteDisassembly(base); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Bytecode disassemble error: %v\n", err)
			return exitIOErr
		}
	}

	return exitOK
}
