package token

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		tokenType TokenType
		lexeme    string
		want      Token
	}{
		{
			name:      "assign token",
			tokenType: ASSIGN,
			lexeme:    "=",
			want:      Token{TokenType: ASSIGN, Lexeme: "=", Line: 1, Column: 1},
		},
		{
			name:      "identifier token",
			tokenType: IDENTIFIER,
			lexeme:    "myVar",
			want:      Token{TokenType: IDENTIFIER, Lexeme: "myVar", Line: 1, Column: 1},
		},
		{
			name:      "arrow token",
			tokenType: ARROW,
			lexeme:    "=>",
			want:      Token{TokenType: ARROW, Lexeme: "=>", Line: 1, Column: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.tokenType, tt.lexeme, 1, 1)
			if got != tt.want {
				t.Errorf("New() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordTable(t *testing.T) {
	want := map[string]TokenType{
		"let": LET, "fn": FN, "if": IF, "else": ELSE, "for": FOR, "in": IN,
		"return": RETURN, "try": TRY, "catch": CATCH, "as": AS, "entity": ENTITY,
		"use": USE, "spawn": SPAWN, "true": TRUE, "false": FALSE,
	}
	if len(KeyWords) != len(want) {
		t.Fatalf("KeyWords has %d entries, want %d", len(KeyWords), len(want))
	}
	for lexeme, tt := range want {
		got, ok := KeyWords[lexeme]
		if !ok {
			t.Errorf("missing keyword %q", lexeme)
			continue
		}
		if got != tt {
			t.Errorf("KeyWords[%q] = %v, want %v", lexeme, got, tt)
		}
	}
}

func TestNewLiteral(t *testing.T) {
	tok := NewLiteral(NUMBER, 42.0, "42", 3, 10)
	if tok.Literal != 42.0 || tok.Lexeme != "42" || tok.Line != 3 || tok.Column != 10 {
		t.Errorf("NewLiteral() = %+v", tok)
	}
}
