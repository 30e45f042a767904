package interpreter

import "fmt"

// RuntimeError is the tree-walker's own runtime error type, kept separate
// from vm.RuntimeError since the two execution paths are independent.
type RuntimeError struct {
	Line    int
	Column  int
	Message string
}

func CreateRuntimeError(line int, column int, message string) RuntimeError {
	return RuntimeError{Line: line, Column: column, Message: message}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
