package main

import (
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
)

func exitCode(t *testing.T, source string, walk bool) subcommands.ExitStatus {
	t.Helper()
	return executeSource("test.riau", source, newLogger(false), walk)
}

func TestExitCodeSuccessfulProgram(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(t, "let x = 10 + 20 * 2\nprint(x)", false))
}

func TestExitCodeParseError(t *testing.T) {
	assert.Equal(t, exitDataErr, exitCode(t, "let = 1", false))
}

func TestExitCodeSemanticErrorUndefinedVariable(t *testing.T) {
	assert.Equal(t, exitDataErr, exitCode(t, "print(y)", false))
}

func TestExitCodeSemanticErrorRedefinition(t *testing.T) {
	assert.Equal(t, exitDataErr, exitCode(t, "let x = 7\nlet x = 8", false))
}

func TestExitCodeRuntimeError(t *testing.T) {
	assert.Equal(t, exitSoftware, exitCode(t, "print(10 / 0)", false))
}

func TestExitCodeIfElseRunsCleanly(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(t, `if 1 < 2 { print("yes") } else { print("no") }`, false))
}

func TestExitCodeEmptyProgram(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(t, "", false))
}

func TestWalkModeMatchesVMOnExitCodes(t *testing.T) {
	sources := []string{
		"let x = 1\nprint(x)",
		"print(10 / 0)",
		"print(y)",
	}
	for _, src := range sources {
		assert.Equal(t, exitCode(t, src, false), exitCode(t, src, true), "source: %s", src)
	}
}
