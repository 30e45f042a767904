package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"riau/compiler"
	"riau/diagnostics"
	"riau/lexer"
	"riau/parser"
	"riau/semantic"
	"riau/token"
	"riau/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// replCmd is the interactive session: read a chunk of input (waiting for
// more lines while it is visibly incomplete), run it through the full
// pipeline, and keep globals alive across inputs.
type replCmd struct {
	log         *logrus.Logger
	disassemble bool
	dumpAST     bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", false, "print the disassembled bytecode of every compiled input")
	f.BoolVar(&cmd.dumpAST, "dumpAST", false, "print the AST of every parsed input as JSON")
	f.BoolVar(&cmd.disassemble, "di", false, "shorthand for disassemble")
	f.BoolVar(&cmd.dumpAST, "da", false, "shorthand for dumpAST")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("Riau Programming Language v%s\n", version)
	fmt.Println("Type 'exit' to quit")
	fmt.Println()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: filepath.Join(os.TempDir(), ".riau_history"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Could not initialise the terminal: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	// The session replays previously accepted source through a fresh
	// compiler on every input: identical prefixes compile to identical
	// bytecode, so execution resumes at the byte offset where the prior
	// chunk's HALT sat while the VM's globals persist.
	machine := vm.New(cmd.log)
	var accepted strings.Builder
	acceptedLen := 0
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt("> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "" && buffer.Len() == 0 {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if (trimmed == "exit" || trimmed == "quit") && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := accepted.String() + buffer.String()

		tokens, err := lexer.New(source).Scan()
		if err != nil {
			diagnostics.New("<repl>", source).Report(err)
			buffer.Reset()
			continue
		}

		if !isInputReady(tokens) {
			continue
		}

		program, parseErr := parser.New(tokens).Parse()
		if parseErr != nil {
			// Parse errors sitting exactly at the EOF token mean the user
			// has not finished typing yet; wait for more input instead of
			// reporting them.
			if allParseErrorsAtEOF(parseErr, tokens[len(tokens)-1]) {
				continue
			}
			diagnostics.New("<repl>", source).Report(parseErr)
			buffer.Reset()
			continue
		}

		if cmd.dumpAST {
			if _, err := parser.PrintASTJSON(program); err != nil {
				fmt.Fprintf(os.Stderr, "💥 Dump AST error: %v\n", err)
			}
		}

		if err := semantic.New().Analyze(program); err != nil {
			diagnostics.New("<repl>", source).Report(err)
			buffer.Reset()
			continue
		}

		chunk, err := compiler.New(cmd.log).Compile(program)
		if err != nil {
			diagnostics.New("<repl>", source).Report(err)
			buffer.Reset()
			continue
		}

		if cmd.disassemble {
			fmt.Print(chunk.Disassemble())
		}

		if err := machine.RunFrom(chunk, acceptedLen); err != nil {
			diagnostics.New("<repl>", source).Report(err)
			buffer.Reset()
			continue
		}

		accepted.WriteString(buffer.String())
		accepted.WriteString("\n")
		// Strip the trailing HALT: the next input's code starts where it sat.
		acceptedLen = len(chunk.Code) - 1
		buffer.Reset()
	}
}

// continuationTokens are token kinds that cannot legally end a complete
// input: an input whose last meaningful token is one of these is still
// being typed, so the REPL waits for more lines.
var continuationTokens = map[token.TokenType]bool{
	token.ASSIGN: true, token.PLUS: true, token.MINUS: true, token.STAR: true,
	token.SLASH: true, token.PERCENT: true, token.BANG: true,
	token.EQUAL_EQUAL: true, token.NOT_EQUAL: true,
	token.LESS: true, token.LESS_EQUAL: true,
	token.GREATER: true, token.GREATER_EQUAL: true,
	token.AND_AND: true, token.OR_OR: true, token.ARROW: true,
	token.COMMA: true, token.DOT: true, token.COLON: true,
	token.LPA: true, token.LBRACKET: true, token.LCUR: true,
	token.LET: true, token.FN: true, token.IF: true, token.ELSE: true,
	token.FOR: true, token.IN: true, token.RETURN: true,
	token.TRY: true, token.CATCH: true, token.AS: true,
	token.ENTITY: true, token.USE: true, token.SPAWN: true,
}

// isInputReady checks whether the accumulated input can be parsed as a
// complete chunk: braces must balance and the last meaningful token must
// not demand a continuation. `if x > 5 {` waits for the closing `}`.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}
	return !continuationTokens[last.TokenType]
}

// lastNonEOF returns the last non-EOF token, or nil when only EOF remains.
func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// allParseErrorsAtEOF checks whether every accumulated parse error sits
// at the position of the EOF token, i.e. the parser only ran out of input.
func allParseErrorsAtEOF(parseErr error, eof token.Token) bool {
	var errs []error
	if merr, ok := parseErr.(*multierror.Error); ok {
		errs = merr.Errors
	} else {
		errs = []error{parseErr}
	}
	for _, e := range errs {
		syntaxErr, ok := e.(parser.SyntaxError)
		if !ok {
			return false
		}
		if syntaxErr.Line != eof.Line || syntaxErr.Column != eof.Column {
			return false
		}
	}
	return len(errs) > 0
}
