package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"riau/compiler"
	"riau/diagnostics"
	"riau/interpreter"
	"riau/lexer"
	"riau/parser"
	"riau/semantic"
	"riau/vm"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Process exit codes, following the sysexits convention: 65 for any
// front-end (parse/semantic/compile) failure, 70 for a runtime failure,
// 74 for an I/O failure reading the input file.
const (
	exitOK       = subcommands.ExitStatus(0)
	exitDataErr  = subcommands.ExitStatus(65)
	exitSoftware = subcommands.ExitStatus(70)
	exitIOErr    = subcommands.ExitStatus(74)
)

// runCmd executes a Riau source file through the full pipeline.
type runCmd struct {
	log  *logrus.Logger
	walk bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Riau source file" }
func (*runCmd) Usage() string {
	return `run [-walk] <file>:
  Lex, parse, analyze, compile and execute a Riau source file.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.walk, "walk", false, "execute with the tree-walking interpreter instead of the bytecode VM")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	return executeSource(filename, string(data), r.log, r.walk)
}

// executeSource runs source through the pipeline and maps each stage's
// failure to the corresponding process exit code. Each stage refuses to
// proceed when the previous one reported errors.
func executeSource(filename, source string, log *logrus.Logger, walk bool) subcommands.ExitStatus {
	reporter := diagnostics.New(filename, source)

	tokens, err := lexer.New(source).Scan()
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}
	log.WithField("tokens", len(tokens)).Debug("lexer: done")

	program, err := parser.New(tokens).Parse()
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}
	log.WithField("statements", len(program.Statements)).Debug("parser: done")

	if err := semantic.New().Analyze(program); err != nil {
		reporter.Report(err)
		return exitDataErr
	}
	log.Debug("semantic: passed")

	if walk {
		if err := interpreter.Make().Interpret(program); err != nil {
			reporter.Report(err)
			return exitSoftware
		}
		return exitOK
	}

	chunk, err := compiler.New(log).Compile(program)
	if err != nil {
		reporter.Report(err)
		return exitDataErr
	}

	if err := vm.New(log).Run(chunk); err != nil {
		reporter.Report(err)
		return exitSoftware
	}
	return exitOK
}
