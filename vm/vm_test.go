package vm

import (
	"testing"

	"riau/compiler"
	"riau/lexer"
	"riau/parser"
	"riau/semantic"
)

// run lexes, parses, analyzes, compiles, and executes src, returning any
// stage's error.
func run(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	if err := semantic.New().Analyze(program); err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	chunk, err := compiler.New(nil).Compile(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return New(nil).Run(chunk)
}

func TestEmptyProgramHaltsSuccessfully(t *testing.T) {
	if err := run(t, ""); err != nil {
		t.Fatalf("empty program should succeed, got %v", err)
	}
}

func TestArithmeticScenarioOne(t *testing.T) {
	if err := run(t, "let x = 10 + 20 * 2\nprint(x)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStringConcatScenarioTwo(t *testing.T) {
	if err := run(t, `print("Hello" + " World")`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComparisonScenarioThree(t *testing.T) {
	if err := run(t, `print(1 < 2)`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDivideByZeroIsRuntimeError(t *testing.T) {
	err := run(t, `print(10 / 0)`)
	if err == nil {
		t.Fatal("expected a division-by-zero runtime error")
	}
	if _, ok := err.(RuntimeError); !ok {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
}

func TestModuloByZeroIsRuntimeError(t *testing.T) {
	if err := run(t, `print(10 % 0)`); err == nil {
		t.Fatal("expected a modulo-by-zero runtime error")
	}
}

func TestIfElseBranching(t *testing.T) {
	if err := run(t, `if 1 < 2 { print("yes") } else { print("no") }`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogicalShortCircuitDoesNotEvaluateRight(t *testing.T) {
	// A right-hand side that would itself error (division by zero) must never
	// execute once the left side already decides the result.
	if err := run(t, `print(false && (1 / 0 == 0))`); err != nil {
		t.Fatalf("expected short-circuit to skip the divide, got %v", err)
	}
}

func TestArrayIndexRoundTrip(t *testing.T) {
	if err := run(t, "let a = [1, 2, 3]\nprint(a[1])"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestForInOverArray(t *testing.T) {
	if err := run(t, `for n in [1, 2, 3] { print(n) }`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignmentUpdatesGlobal(t *testing.T) {
	if err := run(t, "let x = 1\nx = 2\nprint(x)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObjectLiteralFieldAccess(t *testing.T) {
	if err := run(t, "let p = { x: 1, y: 2 }\nprint(p.x)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStoreThenLoadGlobalRoundTrips(t *testing.T) {
	tokens, _ := lexer.New("let x = 5\nlet y = x").Scan()
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	if err := semantic.New().Analyze(program); err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	chunk, err := compiler.New(nil).Compile(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	machine := New(nil)
	if err := machine.Run(chunk); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if machine.globals[1].Number != 5 {
		t.Errorf("globals[1] = %v, want 5", machine.globals[1])
	}
}

func TestUnknownOpcodeIsRuntimeError(t *testing.T) {
	chunk := compiler.NewChunk()
	chunk.Code = []byte{255}
	chunk.Lines = []int{1}
	if err := New(nil).Run(chunk); err == nil {
		t.Fatal("expected an unknown-opcode runtime error")
	}
}

func TestValueEqualityEpsilon(t *testing.T) {
	a := NumberValue(0.1 + 0.2)
	b := NumberValue(0.3)
	if !equal(a, b) {
		t.Errorf("expected %v == %v within epsilon", a.Number, b.Number)
	}
}

func TestValueEqualityDifferentTagsNeverEqual(t *testing.T) {
	if equal(NullValue(), NumberValue(0)) {
		t.Error("Null and Number(0) must not be equal")
	}
}

func TestTruthyRule(t *testing.T) {
	if truthy(NullValue()) {
		t.Error("Null must not be truthy")
	}
	if truthy(BoolValue(false)) {
		t.Error("Bool(false) must not be truthy")
	}
	if !truthy(NumberValue(0)) {
		t.Error("Number(0) must be truthy (only Null/Bool(false) are falsy)")
	}
}
