package compiler

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// Disassemble renders the chunk's instruction stream in a human readable
// format: one instruction per line with its byte offset, source line, and
// a decoded operand where the opcode takes one.
func (c *Chunk) Disassemble() string {
	var builder strings.Builder
	ip := 0
	for ip < len(c.Code) {
		op := Opcode(c.Code[ip])
		width := OperandWidth(op)
		if width > 0 && ip+width >= len(c.Code) {
			builder.WriteString(fmt.Sprintf("%04d [line %d] %s <truncated operand>\n", ip, c.Lines[ip], op))
			break
		}
		switch width {
		case 0:
			builder.WriteString(fmt.Sprintf("%04d [line %d] %s\n", ip, c.Lines[ip], op))
		case 1:
			operand := int(c.Code[ip+1])
			switch op {
			case PUSH_CONST:
				builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d, value: %s\n", ip, c.Lines[ip], op, operand, c.constantString(operand)))
			case LOAD_VAR, STORE_VAR:
				builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d, vm stack index: %d\n", ip, c.Lines[ip], op, operand, operand))
			case LOAD_GLOBAL, STORE_GLOBAL:
				builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d, globals slot: %d\n", ip, c.Lines[ip], op, operand, operand))
			case CALL:
				builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d, argument count: %d\n", ip, c.Lines[ip], op, operand, operand))
			default:
				builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d\n", ip, c.Lines[ip], op, operand))
			}
		case 2:
			operand := int(binary.BigEndian.Uint16(c.Code[ip+1 : ip+3]))
			builder.WriteString(fmt.Sprintf("%04d [line %d] %s %d, byte index in instruction array: %d\n", ip, c.Lines[ip], op, operand, operand))
		}
		ip += 1 + width
	}
	return builder.String()
}

func (c *Chunk) constantString(idx int) string {
	if idx < 0 || idx >= len(c.Constants) {
		return "<out of range>"
	}
	constant := c.Constants[idx]
	if constant.IsStr {
		return fmt.Sprintf("%q", constant.Str)
	}
	return fmt.Sprintf("%g", constant.Number)
}

// HexDump encodes the raw instruction bytes as hexadecimal so the chunk
// can be viewed in a text editor.
func (c *Chunk) HexDump() string {
	return fmt.Sprintf("%x", c.Code)
}

// WriteDisassembly writes the disassembled chunk to filePath with a
// `.dnic` extension appended, falling back to `bytecode.dnic` when no
// path is given. Returns the disassembly it wrote.
func (c *Chunk) WriteDisassembly(filePath string) (string, error) {
	if filePath == "" {
		filePath = "bytecode"
	}
	text := c.Disassemble()
	if err := os.WriteFile(filePath+".dnic", []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("error creating disassembled bytecode file: %w", err)
	}
	return text, nil
}

// WriteHexDump writes the hex-encoded chunk to filePath with a `.nic`
// extension appended, falling back to `bytecode.nic` when no path is
// given.
func (c *Chunk) WriteHexDump(filePath string) error {
	if filePath == "" {
		filePath = "bytecode"
	}
	if err := os.WriteFile(filePath+".nic", []byte(c.HexDump()), 0o644); err != nil {
		return fmt.Errorf("error creating bytecode file: %w", err)
	}
	return nil
}
