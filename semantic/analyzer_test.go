package semantic

import (
	"testing"

	"riau/ast"
	"riau/lexer"
	"riau/parser"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return New().Analyze(program)
}

func TestUndefinedVariableIsError(t *testing.T) {
	if err := analyze(t, `print(y)`); err == nil {
		t.Fatal("expected an undefined-variable error")
	}
}

func TestRedeclarationInSameScopeIsError(t *testing.T) {
	err := analyze(t, "let x = 7\nlet x = 8")
	if err == nil {
		t.Fatal("expected an 'already defined' error")
	}
}

func TestShadowingAcrossScopesAllowed(t *testing.T) {
	err := analyze(t, "let x = 7\nif true { let x = 8 }")
	if err != nil {
		t.Fatalf("shadowing in a nested scope should be allowed, got %v", err)
	}
}

func TestArithmeticOnStringIsError(t *testing.T) {
	err := analyze(t, `let x = "a" - "b"`)
	if err == nil {
		t.Fatal("expected an arithmetic type error")
	}
}

func TestStringConcatenationAllowed(t *testing.T) {
	err := analyze(t, `print("Hello" + " World")`)
	if err != nil {
		t.Fatalf("string concatenation via '+' should be allowed, got %v", err)
	}
}

func TestPossiblyNullVariableIsError(t *testing.T) {
	err := analyze(t, "let x: string?\nprint(x)")
	if err == nil {
		t.Fatal("expected a possibly-null error")
	}
}

func TestSuggestSimilarName(t *testing.T) {
	got := suggestSimilarName("coutn", []string{"count", "other"})
	if got != "count" {
		t.Errorf("suggestSimilarName() = %q, want %q", got, "count")
	}
}

func TestDidYouMeanSuggestionInMessage(t *testing.T) {
	tokens, err := lexer.New("let count = 1\nprint(coutn)").Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	analyzeErr := New().Analyze(program)
	if analyzeErr == nil {
		t.Fatal("expected an undefined-variable error")
	}
	if !contains(analyzeErr.Error(), "did you mean 'count'") {
		t.Errorf("error %q missing did-you-mean suggestion", analyzeErr.Error())
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestLiteralTypeInference(t *testing.T) {
	if typ := literalType(float64(1)); typ.Kind != ast.Int {
		t.Errorf("literalType(float64) = %v, want Int", typ.Kind)
	}
	if typ := literalType("s"); typ.Kind != ast.StringType {
		t.Errorf("literalType(string) = %v, want StringType", typ.Kind)
	}
	if typ := literalType(nil); typ.Kind != ast.Null || !typ.IsOptional {
		t.Errorf("literalType(nil) = %+v, want Null/optional", typ)
	}
}
