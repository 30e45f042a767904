package parser

import (
	"testing"

	"riau/lexer"

	"github.com/google/go-cmp/cmp"
)

// Parsing the same source twice must yield structurally equal ASTs —
// allocation identity aside, there is nothing nondeterministic in the
// front end.
func TestParseTwiceYieldsStructurallyEqualASTs(t *testing.T) {
	sources := []string{
		"let x = 10 + 20 * 2\nprint(x)",
		`if 1 < 2 { print("yes") } else { print("no") }`,
		"for item in [1, 2, 3] { print(item) }",
		"fn add(a: int, b: int): int => a + b",
		"entity Point { x: int = 0 y: int = 0 }",
		"try { print(1) } catch err as Error { print(err) }",
		"use std.math",
		"spawn { print(1) }",
		`let obj = a.b[0](1, 2)`,
	}
	for _, src := range sources {
		tokens, err := lexer.New(src).Scan()
		if err != nil {
			t.Fatalf("lexer error for %q: %v", src, err)
		}
		first, err := New(tokens).Parse()
		if err != nil {
			t.Fatalf("first parse of %q: %v", src, err)
		}
		second, err := New(tokens).Parse()
		if err != nil {
			t.Fatalf("second parse of %q: %v", src, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("parses of %q differ (-first +second):\n%s", src, diff)
		}
	}
}

// Every top-level statement a successful parse produces must carry a
// 1-based position.
func TestTopLevelStatementsCarryOneBasedPositions(t *testing.T) {
	src := "let x = 1\nif x > 0 { print(x + 2) }"
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	for _, stmt := range program.Statements {
		line, column := stmt.Pos()
		if line < 1 || column < 1 {
			t.Errorf("statement %T has position %d:%d, want both >= 1", stmt, line, column)
		}
	}
}
