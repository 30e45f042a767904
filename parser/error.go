package parser

import "fmt"

// SyntaxError is the error type raised for every parse-stage failure;
// scanning failures are lexer.LexError.
// The diagnostics package renders these with source snippets and carets on
// top of the plain Error() text.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func NewSyntaxError(line, column int, message string) SyntaxError {
	return SyntaxError{Line: line, Column: column, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 Riau Syntax error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
