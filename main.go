package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

const version = "0.1.0"

// newLogger builds the logger every pipeline stage shares. Stage
// transitions log at Debug, so the logger stays silent unless -d raises
// the level.
func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func main() {
	showVersion := flag.Bool("v", false, "show version information")
	flag.BoolVar(showVersion, "version", false, "show version information")
	debug := flag.Bool("d", false, "enable debug output")
	flag.BoolVar(debug, "debug", false, "enable debug output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: riau [options] [command | file]\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nIf no command or file is specified, starts REPL mode\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("Riau v%s\n", version)
		return
	}

	log := newLogger(*debug)
	ctx := context.Background()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{log: log}, "")
	subcommands.Register(&replCmd{log: log}, "")
	subcommands.Register(&emitBytecodeCmd{log: log}, "")

	args := flag.Args()
	if len(args) == 0 {
		repl := &replCmd{log: log}
		f := flag.NewFlagSet("repl", flag.ExitOnError)
		repl.SetFlags(f)
		os.Exit(int(repl.Execute(ctx, f)))
	}

	// `riau file.riau` without a subcommand keyword behaves as `riau run file.riau`.
	switch args[0] {
	case "run", "repl", "emit", "help", "flags", "commands":
	default:
		run := &runCmd{log: log}
		f := flag.NewFlagSet("run", flag.ExitOnError)
		run.SetFlags(f)
		f.Parse(args)
		os.Exit(int(run.Execute(ctx, f)))
	}

	os.Exit(int(subcommands.Execute(ctx)))
}
