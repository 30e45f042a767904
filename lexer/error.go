package lexer

import "fmt"

// LexError is the error type raised for every scanning-stage failure: an
// unexpected character, a lone '&' or '|', or an unterminated string.
// The diagnostics package renders these with source snippets and carets on
// top of the plain Error() text.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func NewLexError(line, column int, message string) LexError {
	return LexError{Line: line, Column: column, Message: message}
}

func (e LexError) Error() string {
	return fmt.Sprintf("💥 Riau Lex error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
