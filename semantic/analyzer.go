package semantic

import (
	"fmt"

	"riau/ast"

	"github.com/hashicorp/go-multierror"
)

// SemanticError is the error type every check in this package raises.
type SemanticError struct {
	Line, Column int
	Message      string
}

func newError(line, column int, message string) SemanticError {
	return SemanticError{Line: line, Column: column, Message: message}
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("💥 SemanticError:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

var numberLikeOps = map[string]bool{"-": true, "*": true, "/": true, "%": true}

// Analyzer walks an ast.Program with a single shared scoped symbol table.
// Diagnostics accumulate into a *multierror.Error so one pass reports
// every error it finds, matching the parser's behaviour.
type Analyzer struct {
	table  *symbolTable
	errors *multierror.Error
}

// builtins are the callable names the compiler recognises and lowers to
// dedicated opcodes. They are seeded into the global scope so `print(x)`
// resolves without the user declaring anything.
var builtins = []string{"print", "env", "input"}

// New constructs an Analyzer whose global-scope symbol table is seeded
// with the built-in functions.
func New() *Analyzer {
	a := &Analyzer{table: newSymbolTable()}
	for _, name := range builtins {
		a.table.define(Symbol{Name: name, Type: ast.TypeInfo{Kind: ast.Function, Name: name}, IsInitialized: true})
	}
	return a
}

// Analyze walks program in declaration order. Program is the implicit
// global scope; it is never pushed/popped itself, only nested Blocks and
// the for-in, catch and function scopes are.
// Diagnostics are reported per call while the symbol table persists, so a
// REPL session can reuse one Analyzer across inputs without old errors
// resurfacing.
func (a *Analyzer) Analyze(program ast.Program) error {
	a.errors = nil
	for _, stmt := range program.Statements {
		a.analyzeStmt(stmt)
	}
	return a.errors.ErrorOrNil()
}

func (a *Analyzer) fail(line, column int, format string, args ...any) {
	a.errors = multierror.Append(a.errors, newError(line, column, fmt.Sprintf(format, args...)))
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.ExpressionStmt:
		a.analyzeExpr(s.Expression)
	case ast.VarStmt:
		a.analyzeVarStmt(s)
	case ast.BlockStmt:
		a.table.beginScope()
		for _, inner := range s.Statements {
			a.analyzeStmt(inner)
		}
		a.table.endScope()
	case ast.IfStmt:
		a.analyzeExpr(s.Condition)
		a.analyzeStmt(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}
	case ast.ForInStmt:
		a.analyzeExpr(s.Iterable)
		a.table.beginScope()
		a.table.define(Symbol{Name: s.Name.Lexeme, Type: ast.TypeInfo{Kind: ast.Unknown}, IsInitialized: true})
		a.analyzeStmt(s.Body)
		a.table.endScope()
	case ast.ReturnStmt:
		if s.Value != nil {
			a.analyzeExpr(s.Value)
		}
	case ast.FunctionStmt:
		a.analyzeFunctionStmt(s)
	case ast.EntityStmt:
		for _, field := range s.Fields {
			if field.Default != nil {
				a.analyzeExpr(field.Default)
			}
		}
		a.table.define(Symbol{Name: s.Name.Lexeme, Type: ast.TypeInfo{Kind: ast.Object, Name: s.Name.Lexeme}, IsInitialized: true})
	case ast.TryCatchStmt:
		a.analyzeStmt(s.Try)
		a.table.beginScope()
		a.table.define(Symbol{Name: s.ErrorName.Lexeme, Type: ast.TypeInfo{Kind: ast.Unknown, Name: s.ErrorType.Lexeme}, IsInitialized: true})
		a.analyzeStmt(s.CatchBlock)
		a.table.endScope()
	case ast.UseStmt:
		// No module loader exists yet; nothing to resolve.
	case ast.SpawnStmt:
		a.analyzeStmt(s.Body)
	default:
		// Unsupported statement kinds are silently skipped.
	}
}

func (a *Analyzer) analyzeVarStmt(s ast.VarStmt) {
	var inferred ast.TypeInfo
	if s.Initializer != nil {
		inferred = a.analyzeExpr(s.Initializer)
	} else {
		inferred = ast.TypeInfo{Kind: ast.Unknown}
	}

	declType := inferred
	if s.Type != nil {
		declType = *s.Type
	}

	if a.table.definedAtCurrentDepth(s.Name.Lexeme) {
		a.fail(s.Name.Line, s.Name.Column, "'%s' is already defined", s.Name.Lexeme)
	}
	a.table.define(Symbol{
		Name:          s.Name.Lexeme,
		Type:          declType,
		IsInitialized: s.Initializer != nil,
		IsOptional:    declType.IsOptional,
	})
}

func (a *Analyzer) analyzeFunctionStmt(s ast.FunctionStmt) {
	if a.table.definedAtCurrentDepth(s.Name.Lexeme) {
		a.fail(s.Name.Line, s.Name.Column, "'%s' is already defined", s.Name.Lexeme)
	}
	a.table.define(Symbol{Name: s.Name.Lexeme, Type: ast.TypeInfo{Kind: ast.Function}, IsInitialized: true})

	a.table.beginScope()
	for _, param := range s.Params {
		pType := ast.TypeInfo{Kind: ast.Unknown}
		if param.Type != nil {
			pType = *param.Type
		}
		a.table.define(Symbol{Name: param.Name, Type: pType, IsInitialized: true, IsOptional: pType.IsOptional})
	}
	a.analyzeStmt(s.Body)
	a.table.endScope()
}

// analyzeExpr returns the inferred TypeInfo of expr, recording any
// diagnostics it finds along the way.
func (a *Analyzer) analyzeExpr(expr ast.Expression) ast.TypeInfo {
	switch e := expr.(type) {
	case ast.Literal:
		return literalType(e.Value)
	case ast.Grouping:
		return a.analyzeExpr(e.Expression)
	case ast.Variable:
		return a.analyzeVariable(e)
	case ast.Assign:
		a.analyzeExpr(e.Value)
		return a.analyzeVariable(ast.Variable{Position: e.Position, Name: e.Name})
	case ast.Unary:
		right := a.analyzeExpr(e.Right)
		if e.Operator == "-" && !isNumeric(right) {
			line, col := e.Pos()
			a.fail(line, col, "operand of unary '-' must be Int or Float")
		}
		return right
	case ast.Logical:
		a.analyzeExpr(e.Left)
		a.analyzeExpr(e.Right)
		return ast.TypeInfo{Kind: ast.Bool}
	case ast.Binary:
		return a.analyzeBinary(e)
	case ast.Call:
		a.analyzeExpr(e.Callee)
		for _, arg := range e.Arguments {
			a.analyzeExpr(arg)
		}
		return ast.TypeInfo{Kind: ast.Unknown}
	case ast.Get:
		a.analyzeExpr(e.Object)
		return ast.TypeInfo{Kind: ast.Unknown}
	case ast.Index:
		a.analyzeExpr(e.Object)
		a.analyzeExpr(e.Key)
		return ast.TypeInfo{Kind: ast.Unknown}
	case ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.analyzeExpr(el)
		}
		return ast.TypeInfo{Kind: ast.Array}
	case ast.ObjectLiteral:
		for _, v := range e.Values {
			a.analyzeExpr(v)
		}
		return ast.TypeInfo{Kind: ast.Object}
	default:
		return ast.TypeInfo{Kind: ast.Unknown}
	}
}

func (a *Analyzer) analyzeVariable(e ast.Variable) ast.TypeInfo {
	sym, ok := a.table.resolve(e.Name.Lexeme)
	if !ok {
		msg := fmt.Sprintf("Undefined variable '%s'", e.Name.Lexeme)
		if suggestion := suggestSimilarName(e.Name.Lexeme, a.table.names()); suggestion != "" {
			msg += fmt.Sprintf("; did you mean '%s'?", suggestion)
		}
		a.fail(e.Name.Line, e.Name.Column, "%s", msg)
		return ast.TypeInfo{Kind: ast.Unknown}
	}
	if sym.IsOptional && !sym.IsInitialized {
		a.fail(e.Name.Line, e.Name.Column, "Variable '%s' may be null", e.Name.Lexeme)
	}
	return sym.Type
}

func (a *Analyzer) analyzeBinary(e ast.Binary) ast.TypeInfo {
	left := a.analyzeExpr(e.Left)
	right := a.analyzeExpr(e.Right)

	if e.Operator == "+" {
		if isNumeric(left) && isNumeric(right) {
			return ast.TypeInfo{Kind: ast.Int}
		}
		if left.Kind == ast.StringType && right.Kind == ast.StringType {
			return ast.TypeInfo{Kind: ast.StringType}
		}
		// one side Unknown (e.g. from an undefined identifier already
		// reported): don't pile on a second, redundant diagnostic.
		if left.Kind == ast.Unknown || right.Kind == ast.Unknown {
			return ast.TypeInfo{Kind: ast.Unknown}
		}
		line, col := e.Pos()
		a.fail(line, col, "operands of '+' must both be Int/Float or both be String")
		return ast.TypeInfo{Kind: ast.Unknown}
	}

	if numberLikeOps[e.Operator] {
		if (isNumeric(left) || left.Kind == ast.Unknown) && (isNumeric(right) || right.Kind == ast.Unknown) {
			return ast.TypeInfo{Kind: ast.Int}
		}
		line, col := e.Pos()
		a.fail(line, col, "operands of '%s' must be Int or Float", e.Operator)
		return ast.TypeInfo{Kind: ast.Unknown}
	}

	// comparisons/equality: left to the VM to reject non-numeric operands
	// at runtime, the analyzer only resolves operand types here.
	return ast.TypeInfo{Kind: ast.Bool}
}

func isNumeric(t ast.TypeInfo) bool {
	return t.Kind == ast.Int || t.Kind == ast.Float
}

// literalType maps a literal's value to its type: Number→Int,
// String→String, Bool→Bool, Null→Null(optional).
func literalType(value any) ast.TypeInfo {
	switch value.(type) {
	case float64:
		return ast.TypeInfo{Kind: ast.Int}
	case string:
		return ast.TypeInfo{Kind: ast.StringType}
	case bool:
		return ast.TypeInfo{Kind: ast.Bool}
	default:
		return ast.TypeInfo{Kind: ast.Null, IsOptional: true}
	}
}
