// compiler.go implements the ASTCompiler, which walks a validated AST and
// emits bytecode directly, without an intermediate IR.
package compiler

import (
	"encoding/binary"
	"fmt"

	"riau/ast"

	"github.com/sirupsen/logrus"
)

// STACK_MAX and GLOBALS_MAX mirror the VM's own fixed-capacity arrays. The
// compiler rejects a program with more than GLOBALS_MAX globals or more than
// STACK_MAX live locals; it does not track the stack depth reached by
// temporaries or by the values declarations leave on the stack, so the VM
// can still report a stack overflow at run time.
const (
	STACK_MAX   = 256
	GLOBALS_MAX = 256
)

// Local represents one block/function-scoped variable. Slots are assigned
// densely in declaration order and resolved back-to-front.
type Local struct {
	name        string
	depth       int
	initialized bool
	slot        int
}

// ASTCompiler walks an ast.Program and emits into a Chunk. It tracks
// locals and globals separately on the instance, never in package-level
// state, so independent compilations cannot leak slots into each other.
type ASTCompiler struct {
	chunk      *Chunk
	locals     []Local
	scopeDepth int
	globals    map[string]int
	err        error
	log        *logrus.Logger
}

// New constructs a compiler with an empty chunk, ready to compile one
// program. A fresh instance should be used per compilation; an instance
// reused across Compile calls appends to the same chunk (the trailing
// HALT of the prior compile is trimmed first) with its slot tables
// intact.
func New(log *logrus.Logger) *ASTCompiler {
	if log == nil {
		log = logrus.New()
	}
	return &ASTCompiler{
		chunk:   NewChunk(),
		globals: make(map[string]int),
		log:     log,
	}
}

// Compile lowers program into the compiler's Chunk and returns it. Returns
// the first compile error encountered, if any. An unresolved name is
// recorded without stopping the walk, so the returned Chunk is still
// well-formed (it always ends in HALT) and disassembly tooling can inspect
// it; a static limit or a local redefinition aborts the compile, and the
// returned Chunk is then nil.
func (c *ASTCompiler) Compile(program ast.Program) (chunk *Chunk, err error) {
	c.log.WithField("statements", len(program.Statements)).Debug("compile: start")
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case CompileError:
				err = v
			case DeveloperError:
				err = v
			default:
				panic(r)
			}
		}
		if err == nil {
			err = c.err
		}
		c.log.WithFields(logrus.Fields{"instructions": len(c.chunk.Code), "err": err}).Debug("compile: end")
	}()

	if n := len(c.chunk.Code); n > 0 && Opcode(c.chunk.Code[n-1]) == HALT {
		c.chunk.Code = c.chunk.Code[:n-1]
		c.chunk.Lines = c.chunk.Lines[:n-1]
	}

	for _, stmt := range program.Statements {
		c.compileStmt(stmt)
	}
	c.emit(HALT, 0)
	return c.chunk, nil
}

func (c *ASTCompiler) fail(line, column int, format string, args ...any) {
	if c.err == nil {
		c.err = newError(line, column, fmt.Sprintf(format, args...))
	}
}

// compileStmt dispatches on the concrete statement type. A plain type
// switch keeps the statement-wrapper's "emit POP only for ExpressionStmt"
// rule visible in one place instead of split across eleven Visit methods.
func (c *ASTCompiler) compileStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.ExpressionStmt:
		c.compileExpr(s.Expression)
		c.emit(POP, s.Line)
	case ast.VarStmt:
		c.compileVarStmt(s)
	case ast.BlockStmt:
		c.beginScope()
		for _, inner := range s.Statements {
			c.compileStmt(inner)
		}
		for range c.endScope() {
			c.emit(POP, s.Line)
		}
	case ast.IfStmt:
		c.compileIfStmt(s)
	case ast.ForInStmt:
		c.compileForInStmt(s)
	case ast.ReturnStmt:
		if s.Value != nil {
			c.compileExpr(s.Value)
		} else {
			c.emit(PUSH_NULL, s.Line)
		}
		c.emit(RETURN, s.Line)
	case ast.FunctionStmt, ast.EntityStmt, ast.TryCatchStmt, ast.UseStmt, ast.SpawnStmt:
		// Parsed and semantically walked, but not lowered to runtime
		// behavior.
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled statement type %T", stmt)})
	}
}

func (c *ASTCompiler) compileVarStmt(s ast.VarStmt) {
	line := s.Line
	if s.Initializer != nil {
		c.compileExpr(s.Initializer)
	} else {
		c.emit(PUSH_NULL, line)
	}

	if c.scopeDepth == 0 {
		slot := c.declareGlobal(s.Name.Lexeme, line)
		c.emit1(STORE_GLOBAL, slot, line)
		return
	}
	slot := c.declareLocal(s.Name.Lexeme, line)
	c.locals[slot].initialized = true
	c.emit1(STORE_VAR, c.locals[slot].slot, line)
}

func (c *ASTCompiler) compileIfStmt(s ast.IfStmt) {
	line := s.Line
	c.compileExpr(s.Condition)

	jumpIfFalse := c.emitJumpPlaceholder(JUMP_IF_FALSE, line)
	c.compileStmt(s.Then)

	if s.Else != nil {
		jumpEnd := c.emitJumpPlaceholder(JUMP, line)
		c.patchJump(jumpIfFalse)
		c.compileStmt(s.Else)
		c.patchJump(jumpEnd)
	} else {
		c.patchJump(jumpIfFalse)
	}
	c.emit(POP, line)
}

// compileForInStmt lowers `for name in iterable { body }` into a counted
// loop over the iterable's ARRAY_GET sequence (arrays only in the
// executable subset). Two hidden locals hold the array and a running
// index; both live on the value stack exactly like any other local,
// addressed relative to the active frame. Since ARRAY_GET returns Null
// past the end of the array and there is no LENGTH opcode, the loop
// condition is "element at index is not Null" rather than an explicit
// bounds compare.
func (c *ASTCompiler) compileForInStmt(s ast.ForInStmt) {
	line := s.Line
	c.beginScope()

	c.compileExpr(s.Iterable)
	arrayIdx := c.declareLocal("@for-array", line)
	c.locals[arrayIdx].initialized = true
	arraySlot := c.locals[arrayIdx].slot
	c.emit1(STORE_VAR, arraySlot, line)

	zeroIdx := c.addConstant(NumberConstant(0))
	c.emit1(PUSH_CONST, zeroIdx, line)
	indexLocalIdx := c.declareLocal("@for-index", line)
	c.locals[indexLocalIdx].initialized = true
	indexSlot := c.locals[indexLocalIdx].slot
	c.emit1(STORE_VAR, indexSlot, line)

	// The loop variable: declared once here (establishing its stack slot),
	// reassigned on every iteration below.
	c.emit(PUSH_NULL, line)
	loopVarIdx := c.declareLocal(s.Name.Lexeme, line)
	c.locals[loopVarIdx].initialized = true
	loopSlot := c.locals[loopVarIdx].slot
	c.emit1(STORE_VAR, loopSlot, line)

	loopStart := len(c.chunk.Code)
	c.emit1(LOAD_VAR, arraySlot, line)
	c.emit1(LOAD_VAR, indexSlot, line)
	c.emit(ARRAY_GET, line)
	c.emit(PUSH_NULL, line)
	c.emit(EQUAL, line)
	c.emit(NOT, line)
	jumpExit := c.emitJumpPlaceholder(JUMP_IF_FALSE, line)
	c.emit(POP, line)

	c.emit1(LOAD_VAR, arraySlot, line)
	c.emit1(LOAD_VAR, indexSlot, line)
	c.emit(ARRAY_GET, line)
	c.emit1(STORE_VAR, loopSlot, line)
	c.emit(POP, line)

	c.compileStmt(s.Body)

	c.emit1(LOAD_VAR, indexSlot, line)
	oneIdx := c.addConstant(NumberConstant(1))
	c.emit1(PUSH_CONST, oneIdx, line)
	c.emit(ADD, line)
	c.emit1(STORE_VAR, indexSlot, line)
	c.emit(POP, line)
	c.emitLoop(loopStart, line)

	c.patchJump(jumpExit)
	c.emit(POP, line)

	for range c.endScope() {
		c.emit(POP, line)
	}
}

func (c *ASTCompiler) compileExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case ast.Literal:
		c.compileLiteral(e)
	case ast.Grouping:
		c.compileExpr(e.Expression)
	case ast.Variable:
		c.compileVariable(e.Name.Lexeme, e.Line, e.Column)
	case ast.Assign:
		c.compileExpr(e.Value)
		c.compileStore(e.Name.Lexeme, e.Line, e.Column)
	case ast.Unary:
		c.compileExpr(e.Right)
		switch e.Operator {
		case "-":
			c.emit(NEGATE, e.Line)
		case "!":
			c.emit(NOT, e.Line)
		}
	case ast.Logical:
		c.compileLogical(e)
	case ast.Binary:
		c.compileBinary(e)
	case ast.Call:
		c.compileCall(e)
	case ast.Get:
		// `object.name` is lowered as sugar for `object["name"]`, reusing
		// the fully-implemented OBJECT_GET opcode rather than the reserved
		// LOAD_FIELD, which has no runtime semantics and stays "unknown
		// opcode" if ever reached.
		c.compileExpr(e.Object)
		idx := c.addConstant(StringConstant(e.Name.Lexeme))
		c.emit1(PUSH_CONST, idx, e.Line)
		c.emit(OBJECT_GET, e.Line)
	case ast.Index:
		c.compileExpr(e.Object)
		c.compileExpr(e.Key)
		c.emit(ARRAY_GET, e.Line)
	case ast.ArrayLiteral:
		// ARRAY_SET takes [array, index, value] and auto-expands with
		// Null-fill, so literal construction pushes an explicit position
		// for each element rather than relying on an implicit append.
		c.emit(ARRAY_NEW, e.Line)
		for i, el := range e.Elements {
			idx := c.addConstant(NumberConstant(float64(i)))
			c.emit1(PUSH_CONST, idx, e.Line)
			c.compileExpr(el)
			c.emit(ARRAY_SET, e.Line)
		}
	case ast.ObjectLiteral:
		c.emit(OBJECT_NEW, e.Line)
		for i, key := range e.Keys {
			idx := c.addConstant(StringConstant(key.Lexeme))
			c.emit1(PUSH_CONST, idx, e.Line)
			c.compileExpr(e.Values[i])
			c.emit(OBJECT_SET, e.Line)
		}
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled expression type %T", expr)})
	}
}

func (c *ASTCompiler) compileLiteral(l ast.Literal) {
	switch v := l.Value.(type) {
	case nil:
		c.emit(PUSH_NULL, l.Line)
	case bool:
		if v {
			c.emit(PUSH_TRUE, l.Line)
		} else {
			c.emit(PUSH_FALSE, l.Line)
		}
	case float64:
		idx := c.addConstant(NumberConstant(v))
		c.emit1(PUSH_CONST, idx, l.Line)
	case string:
		idx := c.addConstant(StringConstant(v))
		c.emit1(PUSH_CONST, idx, l.Line)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled literal value type %T", v)})
	}
}

// compileVariable resolves name as a local first, then a global. An
// unresolved name is recorded as a compile error but
// still emits PUSH_NULL so the stack shape downstream code expects is
// preserved — this path should be unreachable once the semantic analyzer
// has already rejected the program, but the compiler does not rely on
// that for its own correctness.
func (c *ASTCompiler) compileVariable(name string, line, column int) {
	if slot, ok := c.resolveLocal(name); ok {
		c.emit1(LOAD_VAR, slot, line)
		return
	}
	if slot, ok := c.globals[name]; ok {
		c.emit1(LOAD_GLOBAL, slot, line)
		return
	}
	c.fail(line, column, "Undefined variable '%s'", name)
	c.emit(PUSH_NULL, line)
}

func (c *ASTCompiler) compileStore(name string, line, column int) {
	if slot, ok := c.resolveLocal(name); ok {
		c.emit1(STORE_VAR, slot, line)
		return
	}
	if slot, ok := c.globals[name]; ok {
		c.emit1(STORE_GLOBAL, slot, line)
		return
	}
	c.fail(line, column, "Undefined variable '%s'", name)
}

func (c *ASTCompiler) compileBinary(e ast.Binary) {
	c.compileExpr(e.Left)
	c.compileExpr(e.Right)
	switch e.Operator {
	case "+":
		c.emit(ADD, e.Line)
	case "-":
		c.emit(SUB, e.Line)
	case "*":
		c.emit(MUL, e.Line)
	case "/":
		c.emit(DIV, e.Line)
	case "%":
		c.emit(MOD, e.Line)
	case "==":
		c.emit(EQUAL, e.Line)
	case "!=":
		c.emit(NOT_EQUAL, e.Line)
	case "<":
		c.emit(LESS, e.Line)
	case "<=":
		c.emit(LESS_EQUAL, e.Line)
	case ">":
		c.emit(GREATER, e.Line)
	case ">=":
		c.emit(GREATER_EQUAL, e.Line)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled binary operator %q", e.Operator)})
	}
}

// compileLogical implements short-circuiting via JUMP_IF_FALSE/JUMP_IF_TRUE
// placeholder-then-backpatch. The VM-level AND/OR opcodes remain eager
// primitives the compiler no longer needs to reach for.
func (c *ASTCompiler) compileLogical(e ast.Logical) {
	c.compileExpr(e.Left)
	switch e.Operator {
	case "||":
		jumpIfFalse := c.emitJumpPlaceholder(JUMP_IF_FALSE, e.Line)
		jumpEnd := c.emitJumpPlaceholder(JUMP, e.Line)
		c.patchJump(jumpIfFalse)
		c.emit(POP, e.Line)
		c.compileExpr(e.Right)
		c.patchJump(jumpEnd)
	case "&&":
		jumpIfFalse := c.emitJumpPlaceholder(JUMP_IF_FALSE, e.Line)
		c.emit(POP, e.Line)
		c.compileExpr(e.Right)
		c.patchJump(jumpIfFalse)
	default:
		panic(DeveloperError{Message: fmt.Sprintf("unhandled logical operator %q", e.Operator)})
	}
}

// compileCall special-cases the three recognised built-ins; anything else
// compiles its arguments and callee and emits the reserved CALL opcode,
// which the VM treats as an unknown-opcode runtime error since the
// executable subset has no user-defined call frames.
func (c *ASTCompiler) compileCall(e ast.Call) {
	if name, ok := calleeName(e.Callee); ok {
		switch name {
		case "print":
			if len(e.Arguments) > 0 {
				c.compileExpr(e.Arguments[0])
			} else {
				c.emit(PUSH_NULL, e.Line)
			}
			c.emit(PRINT, e.Line)
			// PRINT consumes its operand without producing one; a call
			// expression must still leave exactly one value behind, so the
			// result of print(...) is null.
			c.emit(PUSH_NULL, e.Line)
			return
		case "env":
			if len(e.Arguments) > 0 {
				c.compileExpr(e.Arguments[0])
			} else {
				c.emit(PUSH_NULL, e.Line)
			}
			c.emit(ENV, e.Line)
			return
		case "input":
			c.emit(INPUT, e.Line)
			return
		}
	}

	for _, arg := range e.Arguments {
		c.compileExpr(arg)
	}
	c.compileExpr(e.Callee)
	c.emit1(CALL, len(e.Arguments), e.Line)
}

func calleeName(expr ast.Expression) (string, bool) {
	if v, ok := expr.(ast.Variable); ok {
		return v.Name.Lexeme, true
	}
	return "", false
}

// declareGlobal assigns name a dense slot in declaration order. Redeclaring
// an existing global reuses its slot rather than erroring — the semantic
// analyzer is the authority on "already defined" within one compile pass,
// and a compiler instance reused across Compile calls keeps its global
// slots, so a later `let x = 1` lands on the same slot.
func (c *ASTCompiler) declareGlobal(name string, line int) int {
	if slot, ok := c.globals[name]; ok {
		return slot
	}
	if len(c.globals) >= GLOBALS_MAX {
		panic(newError(line, 0, "Too many variables: globals limited to 256"))
	}
	slot := len(c.globals)
	c.globals[name] = slot
	return slot
}

// declareLocal adds a local, panicking on a same-scope redefinition (a
// condition the semantic analyzer has already rejected by the time the
// compiler runs, so this is a defensive invariant check, not a user-facing
// diagnostic path). Returns the index into c.locals (not the slot number).
func (c *ASTCompiler) declareLocal(name string, line int) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].depth < c.scopeDepth {
			break
		}
		if c.locals[i].name == name {
			panic(newError(line, 0, fmt.Sprintf("'%s' is already defined", name)))
		}
	}
	if len(c.locals) >= STACK_MAX {
		panic(newError(line, 0, "Too many variables: stack limited to 256 slots"))
	}
	slot := len(c.locals)
	c.locals = append(c.locals, Local{name: name, depth: c.scopeDepth, slot: slot})
	return len(c.locals) - 1
}

func (c *ASTCompiler) resolveLocal(name string) (int, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if c.locals[i].name == name {
			return c.locals[i].slot, true
		}
	}
	return 0, false
}

func (c *ASTCompiler) beginScope() { c.scopeDepth++ }

// endScope decrements the scope depth and truncates locals that just went
// out of scope, returning one element per local that needs popping off the
// VM's value stack.
func (c *ASTCompiler) endScope() []struct{} {
	c.scopeDepth--
	var popped []struct{}
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.locals = c.locals[:len(c.locals)-1]
		popped = append(popped, struct{}{})
	}
	return popped
}

func (c *ASTCompiler) addConstant(value Constant) int {
	return c.chunk.addConstant(value)
}

func (c *ASTCompiler) emit(op Opcode, line int) {
	c.chunk.writeByte(byte(op), line)
}

func (c *ASTCompiler) emit1(op Opcode, operand int, line int) {
	c.chunk.writeByte(byte(op), line)
	c.chunk.writeByte(byte(operand), line)
}

// emitJumpPlaceholder emits op followed by a two-byte placeholder operand
// and returns the byte offset of the opcode, for later use with patchJump.
func (c *ASTCompiler) emitJumpPlaceholder(op Opcode, line int) int {
	pos := len(c.chunk.Code)
	c.chunk.writeByte(byte(op), line)
	c.chunk.writeByte(0, line)
	c.chunk.writeByte(0, line)
	return pos
}

// patchJump overwrites the two-byte operand of the jump instruction at
// jumpPos with the current instruction-stream length, so it lands exactly
// after itself once the intervening code has been emitted.
func (c *ASTCompiler) patchJump(jumpPos int) {
	target := len(c.chunk.Code)
	operand := make([]byte, 2)
	binary.BigEndian.PutUint16(operand, uint16(target))
	c.chunk.Code[jumpPos+1] = operand[0]
	c.chunk.Code[jumpPos+2] = operand[1]
}

// emitLoop emits an unconditional JUMP back to loopStart.
func (c *ASTCompiler) emitLoop(loopStart int, line int) {
	pos := len(c.chunk.Code)
	c.chunk.writeByte(byte(JUMP), line)
	c.chunk.writeByte(0, line)
	c.chunk.writeByte(0, line)
	operand := make([]byte, 2)
	binary.BigEndian.PutUint16(operand, uint16(loopStart))
	c.chunk.Code[pos+1] = operand[0]
	c.chunk.Code[pos+2] = operand[1]
}
