// vm.go implements the VM, the runtime environment where compiled
// bytecode is executed.
package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"riau/compiler"

	"github.com/sirupsen/logrus"
)

const (
	// GLOBALS_MAX is kept equal to compiler.GLOBALS_MAX, as STACK_MAX is
	// to compiler.STACK_MAX — see stack.go.
	GLOBALS_MAX = 256
	// maxInputBytes caps how much the INPUT opcode will read from stdin.
	maxInputBytes = 1 << 20
)

// State is one of the VM's observable states: Ready after construction,
// Running inside RunFrom, then Halted with success or error.
type State int

const (
	StateReady State = iota
	StateRunning
	StateHaltedSuccess
	StateHaltedError
)

// VM is a stack-based virtual machine: the runtime environment where
// compiled bytecode is executed.
type VM struct {
	stack       Stack
	globals     [GLOBALS_MAX]Value
	globalCount int
	ip          int
	state       State
	log         *logrus.Logger
	stdin       io.Reader
	stderr      io.Writer
}

// New constructs a VM in the Ready state.
func New(log *logrus.Logger) *VM {
	if log == nil {
		log = logrus.New()
	}
	return &VM{state: StateReady, log: log, stdin: os.Stdin, stderr: os.Stderr}
}

// State returns the VM's current observable state.
func (vm *VM) State() State { return vm.state }

// Run executes chunk from instruction 0. It fetches and decodes each
// instruction, dispatches on its opcode, and advances the instruction
// pointer by 1 plus the opcode's operand width. Execution stops at HALT
// or the first runtime error.
func (vm *VM) Run(chunk *compiler.Chunk) error {
	return vm.RunFrom(chunk, 0)
}

// RunFrom executes chunk starting at the given byte offset. Jump operands
// are absolute byte indexes into the instruction stream, so resuming
// mid-chunk is well defined; a REPL session uses this to execute only the
// instructions its latest input appended while globals persist.
func (vm *VM) RunFrom(chunk *compiler.Chunk, start int) (err error) {
	vm.log.WithFields(logrus.Fields{"instructions": len(chunk.Code), "start": start}).Debug("vm: execute start")
	vm.state = StateRunning
	vm.ip = start

	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(RuntimeError)
			if !ok {
				panic(r)
			}
			if rtErr.Line == 0 && vm.ip < len(chunk.Lines) {
				rtErr.Line = chunk.Lines[vm.ip]
			}
			vm.state = StateHaltedError
			vm.stack.Reset()
			fmt.Fprintf(vm.stderr, "[line %d] in script\n", rtErr.Line)
			err = rtErr
		}
		vm.log.WithFields(logrus.Fields{"state": vm.state, "err": err}).Debug("vm: execute end")
	}()

	for {
		if vm.ip >= len(chunk.Code) {
			panic(RuntimeError{Message: "instruction stream ended without HALT"})
		}
		op := compiler.Opcode(chunk.Code[vm.ip])
		width := compiler.OperandWidth(op)

		switch op {
		case compiler.HALT:
			vm.state = StateHaltedSuccess
			return nil

		case compiler.PUSH_CONST:
			idx := vm.operand1(chunk)
			constant := chunk.Constants[idx]
			if constant.IsStr {
				vm.stack.Push(StringValue(constant.Str))
			} else {
				vm.stack.Push(NumberValue(constant.Number))
			}
		case compiler.PUSH_NULL:
			vm.stack.Push(NullValue())
		case compiler.PUSH_TRUE:
			vm.stack.Push(BoolValue(true))
		case compiler.PUSH_FALSE:
			vm.stack.Push(BoolValue(false))
		case compiler.POP:
			release(vm.stack.Pop())

		case compiler.LOAD_VAR:
			slot := vm.operand1(chunk)
			vm.stack.Push(retain(vm.stack.Get(slot)))
		case compiler.STORE_VAR:
			slot := vm.operand1(chunk)
			v := vm.stack.Peek(0)
			release(vm.stack.Get(slot))
			vm.stack.Set(slot, retain(v))

		case compiler.LOAD_GLOBAL:
			slot := vm.operand1(chunk)
			if slot >= vm.globalCount {
				panic(RuntimeError{Message: fmt.Sprintf("undefined global slot %d", slot)})
			}
			vm.stack.Push(retain(vm.globals[slot]))
		case compiler.STORE_GLOBAL:
			slot := vm.operand1(chunk)
			v := vm.stack.Peek(0)
			release(vm.globals[slot])
			vm.globals[slot] = retain(v)
			if slot+1 > vm.globalCount {
				vm.globalCount = slot + 1
			}

		case compiler.ADD:
			vm.execAdd()
		case compiler.SUB:
			vm.execArith(op, func(a, b float64) float64 { return a - b })
		case compiler.MUL:
			vm.execArith(op, func(a, b float64) float64 { return a * b })
		case compiler.DIV:
			b := vm.stack.Peek(0)
			if b.Kind == KindNumber && b.Number == 0 {
				panic(RuntimeError{Message: "division by zero"})
			}
			vm.execArith(op, func(a, b float64) float64 { return a / b })
		case compiler.MOD:
			b := vm.stack.Peek(0)
			if b.Kind == KindNumber && b.Number == 0 {
				panic(RuntimeError{Message: "modulo by zero"})
			}
			vm.execArith(op, math.Mod)

		case compiler.NEGATE:
			v := vm.stack.Pop()
			if v.Kind != KindNumber {
				panic(RuntimeError{Message: "operand of unary '-' must be Number"})
			}
			vm.stack.Push(NumberValue(-v.Number))
		case compiler.NOT:
			v := vm.stack.Pop()
			vm.stack.Push(BoolValue(!truthy(v)))

		case compiler.EQUAL:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(BoolValue(equal(a, b)))
		case compiler.NOT_EQUAL:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(BoolValue(!equal(a, b)))
		case compiler.GREATER:
			vm.execCompare(func(a, b float64) bool { return a > b })
		case compiler.GREATER_EQUAL:
			vm.execCompare(func(a, b float64) bool { return a >= b })
		case compiler.LESS:
			vm.execCompare(func(a, b float64) bool { return a < b })
		case compiler.LESS_EQUAL:
			vm.execCompare(func(a, b float64) bool { return a <= b })

		case compiler.AND:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(BoolValue(truthy(a) && truthy(b)))
		case compiler.OR:
			b, a := vm.stack.Pop(), vm.stack.Pop()
			vm.stack.Push(BoolValue(truthy(a) || truthy(b)))

		case compiler.JUMP:
			vm.ip = vm.operand2(chunk)
			continue
		case compiler.JUMP_IF_FALSE:
			target := vm.operand2(chunk)
			if !truthy(vm.stack.Peek(0)) {
				vm.ip = target
				continue
			}
		case compiler.JUMP_IF_TRUE:
			target := vm.operand2(chunk)
			if truthy(vm.stack.Peek(0)) {
				vm.ip = target
				continue
			}

		case compiler.ARRAY_NEW:
			vm.stack.Push(newArray())
		case compiler.ARRAY_GET:
			vm.execArrayGet()
		case compiler.ARRAY_SET:
			vm.execArraySet()

		case compiler.OBJECT_NEW:
			vm.stack.Push(newObject())
		case compiler.OBJECT_GET:
			vm.execObjectGet()
		case compiler.OBJECT_SET:
			vm.execObjectSet()

		case compiler.CHECK_NULL:
			if vm.stack.Peek(0).Kind == KindNull {
				panic(RuntimeError{Message: "null dereference"})
			}

		case compiler.ENV:
			name := vm.stack.Pop()
			if name.Kind != KindString {
				panic(RuntimeError{Message: "env() argument must be a String"})
			}
			if val, ok := os.LookupEnv(name.Str); ok {
				vm.stack.Push(StringValue(val))
			} else {
				vm.stack.Push(NullValue())
			}
		case compiler.INPUT:
			vm.execInput()

		case compiler.PRINT:
			v := vm.stack.Pop()
			fmt.Println(vm.render(v))
			release(v)

		default:
			panic(RuntimeError{Message: fmt.Sprintf("unknown opcode %v at ip %d", op, vm.ip)})
		}

		vm.ip += 1 + width
	}
}

func (vm *VM) operand1(chunk *compiler.Chunk) int {
	return int(chunk.Code[vm.ip+1])
}

func (vm *VM) operand2(chunk *compiler.Chunk) int {
	return int(binary.BigEndian.Uint16(chunk.Code[vm.ip+1 : vm.ip+3]))
}

func (vm *VM) execAdd() {
	b, a := vm.stack.Pop(), vm.stack.Pop()
	switch {
	case a.Kind == KindNumber && b.Kind == KindNumber:
		vm.stack.Push(NumberValue(a.Number + b.Number))
	case a.Kind == KindString && b.Kind == KindString:
		vm.stack.Push(StringValue(a.Str + b.Str))
	default:
		panic(RuntimeError{Message: fmt.Sprintf("'+' requires both Number or both String, got %s and %s", a.Kind, b.Kind)})
	}
}

func (vm *VM) execArith(op compiler.Opcode, fn func(a, b float64) float64) {
	b, a := vm.stack.Pop(), vm.stack.Pop()
	if a.Kind != KindNumber || b.Kind != KindNumber {
		panic(RuntimeError{Message: fmt.Sprintf("%s requires both operands be Number", op)})
	}
	vm.stack.Push(NumberValue(fn(a.Number, b.Number)))
}

func (vm *VM) execCompare(fn func(a, b float64) bool) {
	b, a := vm.stack.Pop(), vm.stack.Pop()
	if a.Kind != KindNumber || b.Kind != KindNumber {
		panic(RuntimeError{Message: "comparison requires both operands be Number"})
	}
	vm.stack.Push(BoolValue(fn(a.Number, b.Number)))
}

func (vm *VM) execArrayGet() {
	idxV, arrV := vm.stack.Pop(), vm.stack.Pop()
	if arrV.Kind != KindArray {
		panic(RuntimeError{Message: "index target must be an Array"})
	}
	if idxV.Kind != KindNumber {
		panic(RuntimeError{Message: "array index must be a Number"})
	}
	elements := arrV.array().Elements
	idx := int(idxV.Number)
	if idx < 0 || idx >= len(elements) {
		vm.stack.Push(NullValue())
	} else {
		vm.stack.Push(retain(elements[idx]))
	}
	release(arrV)
}

// execArraySet implements ARRAY_SET: [array, index, value] -> [array],
// auto-expanding with Null-fill. The array is left on the stack
// (non-popping) so literal construction can chain further SETs against
// the same reference.
func (vm *VM) execArraySet() {
	valV, idxV := vm.stack.Pop(), vm.stack.Pop()
	arrV := vm.stack.Peek(0)
	if arrV.Kind != KindArray {
		panic(RuntimeError{Message: "index-assign target must be an Array"})
	}
	if idxV.Kind != KindNumber {
		panic(RuntimeError{Message: "array index must be a Number"})
	}
	idx := int(idxV.Number)
	if idx < 0 {
		panic(RuntimeError{Message: "array index must be non-negative"})
	}
	arr := arrV.array()
	for len(arr.Elements) <= idx {
		arr.Elements = append(arr.Elements, NullValue())
	}
	release(arr.Elements[idx])
	arr.Elements[idx] = retain(valV)
}

func (vm *VM) execObjectGet() {
	keyV, objV := vm.stack.Pop(), vm.stack.Pop()
	if objV.Kind != KindObject {
		panic(RuntimeError{Message: "member access target must be an Object"})
	}
	if keyV.Kind != KindString {
		panic(RuntimeError{Message: "object key must be a String"})
	}
	obj := objV.object()
	for i, k := range obj.Keys {
		if k == keyV.Str {
			vm.stack.Push(retain(obj.Values[i]))
			release(objV)
			return
		}
	}
	vm.stack.Push(NullValue())
	release(objV)
}

func (vm *VM) execObjectSet() {
	valV, keyV := vm.stack.Pop(), vm.stack.Pop()
	objV := vm.stack.Peek(0)
	if objV.Kind != KindObject {
		panic(RuntimeError{Message: "member-assign target must be an Object"})
	}
	if keyV.Kind != KindString {
		panic(RuntimeError{Message: "object key must be a String"})
	}
	obj := objV.object()
	for i, k := range obj.Keys {
		if k == keyV.Str {
			release(obj.Values[i])
			obj.Values[i] = retain(valV)
			return
		}
	}
	obj.Keys = append(obj.Keys, keyV.Str)
	obj.Values = append(obj.Values, retain(valV))
}

// execInput implements the INPUT opcode: read exactly CONTENT_LENGTH
// (host env var) bytes from stdin, capped at 1 MiB.
func (vm *VM) execInput() {
	n, err := strconv.Atoi(os.Getenv("CONTENT_LENGTH"))
	if err != nil || n <= 0 || n > maxInputBytes {
		vm.stack.Push(StringValue(""))
		return
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(vm.stdin, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		vm.stack.Push(StringValue(""))
		return
	}
	vm.stack.Push(StringValue(string(buf[:read])))
}

// render formats a Value for PRINT. Numbers drop trailing zeros
// (FormatFloat's -1 precision) so whole-valued floats print without a
// decimal point.
func (vm *VM) render(v Value) string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindArray:
		elements := v.array().Elements
		s := "["
		for i, el := range elements {
			if i > 0 {
				s += ", "
			}
			s += vm.render(el)
		}
		return s + "]"
	case KindObject:
		obj := v.object()
		s := "{"
		for i, k := range obj.Keys {
			if i > 0 {
				s += ", "
			}
			s += k + ": " + vm.render(obj.Values[i])
		}
		return s + "}"
	default:
		return "<function>"
	}
}
