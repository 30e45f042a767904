// Package interpreter is a tree-walking evaluator for the same executable
// subset the bytecode VM covers: expressions, variables, blocks, if/else,
// for-in over arrays, and the print/env built-ins (input() is a runtime
// error here). It exists as a
// second, independent execution path for cross-checking the compiler and
// VM against each other (the `run --walk` mode).
package interpreter

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"riau/ast"
)

// TreeWalkInterpreter executes parsed statements and evaluates
// expressions directly against the AST, without compiling first.
type TreeWalkInterpreter struct {
	environment *Environment
	stdout      io.Writer
}

// Make creates a tree-walk interpreter with a fresh global environment.
func Make() *TreeWalkInterpreter {
	return &TreeWalkInterpreter{
		environment: MakeEnvironment(),
		stdout:      os.Stdout,
	}
}

// Interpret executes a program, returning the first runtime error
// encountered (the tree-walker stops at the first failure, like the VM).
func (i *TreeWalkInterpreter) Interpret(program ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(RuntimeError)
			if !ok {
				panic(r)
			}
			err = rtErr
		}
	}()
	for _, s := range program.Statements {
		s.Accept(i)
	}
	return nil
}

func (i *TreeWalkInterpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

func (i *TreeWalkInterpreter) evaluate(expression ast.Expression) any {
	return expression.Accept(i)
}

func (i *TreeWalkInterpreter) VisitExpressionStmt(exprStatement ast.ExpressionStmt) any {
	i.evaluate(exprStatement.Expression)
	return nil
}

func (i *TreeWalkInterpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value any
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.environment.set(varStmt.Name.Lexeme, value)
	return nil
}

// VisitBlockStmt executes the block's statements in a new environment
// nested inside the current one, restoring the previous environment when
// the block exits (normally or via a runtime-error panic).
func (i *TreeWalkInterpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = MakeNestedEnvironment(previous)
	defer func() { i.environment = previous }()

	for _, s := range blockStmt.Statements {
		i.executeStmt(s)
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if isTruthy(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitForInStmt(stmt ast.ForInStmt) any {
	iterable := i.evaluate(stmt.Iterable)
	elements, ok := iterable.([]any)
	if !ok {
		panic(CreateRuntimeError(stmt.Line, stmt.Column, "for-in iterable must be an array"))
	}
	previous := i.environment
	i.environment = MakeNestedEnvironment(previous)
	defer func() { i.environment = previous }()

	for _, element := range elements {
		i.environment.set(stmt.Name.Lexeme, element)
		i.executeStmt(stmt.Body)
	}
	return nil
}

func (i *TreeWalkInterpreter) VisitReturnStmt(stmt ast.ReturnStmt) any {
	// No user-defined call frames exist in the executable subset; a return
	// at script level mirrors the VM's treatment of its reserved RETURN
	// opcode and fails at runtime.
	panic(CreateRuntimeError(stmt.Line, stmt.Column, "'return' outside a callable function is not supported"))
}

func (i *TreeWalkInterpreter) VisitFunctionStmt(stmt ast.FunctionStmt) any { return nil }
func (i *TreeWalkInterpreter) VisitEntityStmt(stmt ast.EntityStmt) any    { return nil }
func (i *TreeWalkInterpreter) VisitTryCatchStmt(stmt ast.TryCatchStmt) any {
	return nil
}
func (i *TreeWalkInterpreter) VisitUseStmt(stmt ast.UseStmt) any     { return nil }
func (i *TreeWalkInterpreter) VisitSpawnStmt(stmt ast.SpawnStmt) any { return nil }

func (i *TreeWalkInterpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

func (i *TreeWalkInterpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

func (i *TreeWalkInterpreter) VisitVariableExpression(expression ast.Variable) any {
	value, err := i.environment.get(expression.Name)
	if err != nil {
		panic(err.(RuntimeError))
	}
	return value
}

func (i *TreeWalkInterpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)
	if err := i.environment.assign(assign.Name, value); err != nil {
		panic(err.(RuntimeError))
	}
	return value
}

// VisitLogicalExpression evaluates `&&`/`||` with short-circuiting: the
// right operand only runs when the left side has not already decided the
// result. The expression yields the deciding operand's value, matching
// the bytecode path's jump-based lowering.
func (i *TreeWalkInterpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)
	if logical.Operator == "||" {
		if isTruthy(left) {
			return left
		}
		return i.evaluate(logical.Right)
	}
	if !isTruthy(left) {
		return left
	}
	return i.evaluate(logical.Right)
}

func (i *TreeWalkInterpreter) VisitBinary(binary ast.Binary) any {
	left := i.evaluate(binary.Left)
	right := i.evaluate(binary.Right)
	line, column := binary.Pos()

	switch binary.Operator {
	case "+":
		if l, lok := left.(float64); lok {
			if r, rok := right.(float64); rok {
				return l + r
			}
		}
		if l, lok := left.(string); lok {
			if r, rok := right.(string); rok {
				return l + r
			}
		}
		panic(CreateRuntimeError(line, column, "'+' requires both Number or both String operands"))
	case "-":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l - r
	case "*":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l * r
	case "/":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		if r == 0 {
			panic(CreateRuntimeError(line, column, "Division by zero"))
		}
		return l / r
	case "%":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		if r == 0 {
			panic(CreateRuntimeError(line, column, "Modulo by zero"))
		}
		return math.Mod(l, r)
	case "==":
		return valuesEqual(left, right)
	case "!=":
		return !valuesEqual(left, right)
	case "<":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l < r
	case "<=":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l <= r
	case ">":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l > r
	case ">=":
		l, r := i.numericOperands(binary.Operator, left, right, line, column)
		return l >= r
	default:
		panic(CreateRuntimeError(line, column, fmt.Sprintf("operator '%s' not supported", binary.Operator)))
	}
}

func (i *TreeWalkInterpreter) VisitUnary(unary ast.Unary) any {
	right := i.evaluate(unary.Right)
	line, column := unary.Pos()
	switch unary.Operator {
	case "-":
		value, ok := right.(float64)
		if !ok {
			panic(CreateRuntimeError(line, column, "operand of unary '-' must be a numeric value"))
		}
		return -value
	case "!":
		return !isTruthy(right)
	default:
		panic(CreateRuntimeError(line, column, fmt.Sprintf("operator '%s' not supported for unary operations", unary.Operator)))
	}
}

// VisitCallExpression dispatches the built-in functions; user-defined
// calls have no frames in the executable subset and fail at runtime,
// mirroring the VM's reserved CALL opcode.
func (i *TreeWalkInterpreter) VisitCallExpression(call ast.Call) any {
	line, column := call.Pos()
	if callee, ok := call.Callee.(ast.Variable); ok {
		switch callee.Name.Lexeme {
		case "print":
			var value any
			if len(call.Arguments) > 0 {
				value = i.evaluate(call.Arguments[0])
			}
			fmt.Fprintln(i.stdout, render(value))
			return nil
		case "env":
			if len(call.Arguments) == 0 {
				panic(CreateRuntimeError(line, column, "env() requires one argument"))
			}
			name, ok := i.evaluate(call.Arguments[0]).(string)
			if !ok {
				panic(CreateRuntimeError(line, column, "env() argument must be a String"))
			}
			if value, set := os.LookupEnv(name); set {
				return value
			}
			return nil
		case "input":
			panic(CreateRuntimeError(line, column, "input() is only available on the bytecode path"))
		}
	}
	panic(CreateRuntimeError(line, column, "user-defined function calls are not supported"))
}

func (i *TreeWalkInterpreter) VisitGetExpression(get ast.Get) any {
	object := i.evaluate(get.Object)
	fields, ok := object.(map[string]any)
	if !ok {
		panic(CreateRuntimeError(get.Name.Line, get.Name.Column, "member access target must be an Object"))
	}
	return fields[get.Name.Lexeme]
}

func (i *TreeWalkInterpreter) VisitIndexExpression(index ast.Index) any {
	line, column := index.Pos()
	object := i.evaluate(index.Object)
	key := i.evaluate(index.Key)

	switch target := object.(type) {
	case []any:
		idx, ok := key.(float64)
		if !ok {
			panic(CreateRuntimeError(line, column, "array index must be a Number"))
		}
		at := int(idx)
		if at < 0 || at >= len(target) {
			return nil
		}
		return target[at]
	case map[string]any:
		name, ok := key.(string)
		if !ok {
			panic(CreateRuntimeError(line, column, "object key must be a String"))
		}
		return target[name]
	default:
		panic(CreateRuntimeError(line, column, "index target must be an Array or Object"))
	}
}

func (i *TreeWalkInterpreter) VisitArrayLiteral(array ast.ArrayLiteral) any {
	elements := make([]any, 0, len(array.Elements))
	for _, element := range array.Elements {
		elements = append(elements, i.evaluate(element))
	}
	return elements
}

func (i *TreeWalkInterpreter) VisitObjectLiteral(object ast.ObjectLiteral) any {
	fields := make(map[string]any, len(object.Keys))
	for idx, key := range object.Keys {
		fields[key.Lexeme] = i.evaluate(object.Values[idx])
	}
	return fields
}

func (i *TreeWalkInterpreter) numericOperands(operator string, left, right any, line, column int) (float64, float64) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		msg := fmt.Sprintf("operands must be numeric values. '%v %s %v' is not allowed", left, operator, right)
		panic(CreateRuntimeError(line, column, msg))
	}
	return l, r
}

// isTruthy mirrors the VM's truthy rule: anything other than null and
// false is true.
func isTruthy(object any) bool {
	if object == nil {
		return false
	}
	if value, ok := object.(bool); ok {
		return value
	}
	return true
}

// valuesEqual mirrors the VM's value equality: different dynamic types
// are never equal and numbers compare within a 1e-10 epsilon.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch l := a.(type) {
	case float64:
		r, ok := b.(float64)
		return ok && math.Abs(l-r) < 1e-10
	case string:
		r, ok := b.(string)
		return ok && l == r
	case bool:
		r, ok := b.(bool)
		return ok && l == r
	default:
		// arrays and objects compare by identity on the bytecode path;
		// the tree-walker has no stable handle for them, so they are
		// never equal here.
		return false
	}
}

// render formats a value the way the VM's PRINT opcode does, except that
// object fields come out in Go map iteration order rather than the
// insertion order the VM prints.
func render(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case []any:
		out := "["
		for idx, element := range v {
			if idx > 0 {
				out += ", "
			}
			out += render(element)
		}
		return out + "]"
	case map[string]any:
		out := "{"
		first := true
		for key, element := range v {
			if !first {
				out += ", "
			}
			first = false
			out += key + ": " + render(element)
		}
		return out + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
