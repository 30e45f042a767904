package lexer

import (
	"testing"

	"riau/token"

	"github.com/hashicorp/go-multierror"
)

func kinds(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.TokenType
	}
	return out
}

func assertKinds(t *testing.T, got []token.TokenType, want []token.TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestOperators(t *testing.T) {
	tokens, err := New("== != <= >= && || => + - * / % < > = !").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := []token.TokenType{
		token.EQUAL_EQUAL, token.NOT_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.AND_AND, token.OR_OR, token.ARROW, token.PLUS, token.MINUS, token.STAR,
		token.SLASH, token.PERCENT, token.LESS, token.GREATER, token.ASSIGN, token.BANG,
		token.EOF,
	}
	assertKinds(t, kinds(tokens), want)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens, err := New("let fn if else for in return try catch as entity use spawn true false myVar").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := []token.TokenType{
		token.LET, token.FN, token.IF, token.ELSE, token.FOR, token.IN, token.RETURN,
		token.TRY, token.CATCH, token.AS, token.ENTITY, token.USE, token.SPAWN,
		token.TRUE, token.FALSE, token.IDENTIFIER, token.EOF,
	}
	assertKinds(t, kinds(tokens), want)
}

func TestNumberLiteral(t *testing.T) {
	tokens, err := New("10 3.14").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if tokens[0].Literal.(float64) != 10 {
		t.Errorf("tokens[0].Literal = %v, want 10", tokens[0].Literal)
	}
	if tokens[1].Literal.(float64) != 3.14 {
		t.Errorf("tokens[1].Literal = %v, want 3.14", tokens[1].Literal)
	}
}

func TestStringLiteralNoEscapes(t *testing.T) {
	tokens, err := New(`"hello\nworld"`).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if tokens[0].Literal.(string) != `hello\nworld` {
		t.Errorf("Literal = %q, want literal backslash-n preserved", tokens[0].Literal)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	_, err := New(`"abc`).Scan()
	if err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestLexErrorCarriesPosition(t *testing.T) {
	_, err := New("let x = 1 & 2").Scan()
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("Scan() error is %T, want *multierror.Error", err)
	}
	lexErr, ok := merr.Errors[0].(LexError)
	if !ok {
		t.Fatalf("collected error is %T, want LexError", merr.Errors[0])
	}
	if lexErr.Line != 1 || lexErr.Column != 11 {
		t.Errorf("position = %d:%d, want 1:11", lexErr.Line, lexErr.Column)
	}
}

func TestMultipleLexErrorsCollected(t *testing.T) {
	tokens, err := New("let a = 1 & 2\nlet b = 3 | 4").Scan()
	if err == nil {
		t.Fatal("expected lexical errors for lone '&' and '|'")
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("Scan() error is %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 2 {
		t.Fatalf("collected %d errors, want 2: %v", len(merr.Errors), merr.Errors)
	}
	// Scanning continues past each bad character: both declarations' tokens
	// survive and the stream still ends in exactly one EOF.
	assertKinds(t, kinds(tokens), []token.TokenType{
		token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.NUMBER,
		token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.NUMBER,
		token.EOF,
	})
}

func TestShebangSkipped(t *testing.T) {
	tokens, err := New("#!/usr/bin/env riau\nlet x = 1").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.EOF})
}

func TestLineCommentSkipped(t *testing.T) {
	tokens, err := New("let x = 1 // a comment\nlet y = 2").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	assertKinds(t, kinds(tokens), []token.TokenType{
		token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER,
		token.LET, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.EOF,
	})
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens, err := New("let x\nlet y").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("tokens[0] position = %d:%d, want 1:1", tokens[0].Line, tokens[0].Column)
	}
	if tokens[2].Line != 2 || tokens[2].Column != 1 {
		t.Errorf("tokens[2] position = %d:%d, want 2:1", tokens[2].Line, tokens[2].Column)
	}
}

func TestEOFExactlyOnce(t *testing.T) {
	tokens, err := New("").Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(tokens) != 1 || tokens[0].TokenType != token.EOF {
		t.Fatalf("empty source should scan to exactly one EOF, got %v", tokens)
	}
}
