package interpreter

import (
	"fmt"

	"riau/token"
)

// Environment holds the bindings that associate variable names to values.
// Nested environments chain to their parent, giving block-scoped lookup.
type Environment struct {
	values map[string]any
	parent *Environment
}

func MakeEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

// MakeNestedEnvironment creates a child environment whose lookups fall
// back to parent when a name is not bound locally.
func MakeNestedEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]any), parent: parent}
}

// set binds name to value in this environment, shadowing any binding of
// the same name in an enclosing scope.
func (env *Environment) set(name string, value any) {
	env.values[name] = value
}

// get resolves name against this environment and its ancestors, returning
// a RuntimeError when the variable was never declared.
func (env *Environment) get(name token.Token) (any, error) {
	for e := env; e != nil; e = e.parent {
		if value, ok := e.values[name.Lexeme]; ok {
			return value, nil
		}
	}
	msg := fmt.Sprintf("Undefined variable: %s", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}

// assign rebinds an existing variable in the nearest scope that declared
// it; assigning an undeclared name is a RuntimeError.
func (env *Environment) assign(name token.Token, value any) error {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name.Lexeme]; ok {
			e.values[name.Lexeme] = value
			return nil
		}
	}
	msg := fmt.Sprintf("Undefined variable: %s", name.Lexeme)
	return CreateRuntimeError(name.Line, name.Column, msg)
}
