package compiler

import (
	"strings"
	"testing"
)

func TestDisassembleDecodesOperands(t *testing.T) {
	chunk, err := compileSource(t, `let x = 42`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	text := chunk.Disassemble()
	if !strings.Contains(text, "PUSH_CONST 0, value: 42") {
		t.Errorf("disassembly missing decoded constant:\n%s", text)
	}
	if !strings.Contains(text, "STORE_GLOBAL 0") {
		t.Errorf("disassembly missing STORE_GLOBAL:\n%s", text)
	}
	if !strings.Contains(text, "HALT") {
		t.Errorf("disassembly missing trailing HALT:\n%s", text)
	}
}

func TestDisassembleJumpShowsAbsoluteTarget(t *testing.T) {
	chunk, err := compileSource(t, `if true { print(1) }`)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	text := chunk.Disassemble()
	if !strings.Contains(text, "JUMP_IF_FALSE") || !strings.Contains(text, "byte index in instruction array") {
		t.Errorf("disassembly missing decoded jump target:\n%s", text)
	}
}

func TestHexDumpMatchesInstructionBytes(t *testing.T) {
	chunk := NewChunk()
	chunk.writeByte(byte(PUSH_NULL), 1)
	chunk.writeByte(byte(HALT), 0)
	if got := chunk.HexDump(); got != "0200" {
		t.Errorf("HexDump() = %q, want %q", got, "0200")
	}
}
