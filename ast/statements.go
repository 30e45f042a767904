// statements.go contains all the statement AST nodes. A statement node
// does not itself produce a stack value.
package ast

import "riau/token"

// ExpressionStmt is a statement consisting of a single expression, whose
// result is discarded. Example: `foo + bar`.
type ExpressionStmt struct {
	Position
	Expression Expression
}

func (e ExpressionStmt) Accept(v StmtVisitor) any { return v.VisitExpressionStmt(e) }

// VarStmt is a `let` variable declaration: a name, an optional type
// annotation, and an optional initializer expression.
type VarStmt struct {
	Position
	Name        token.Token
	Type        *TypeInfo
	Initializer Expression // nil if the declaration has no initializer
}

func (va VarStmt) Accept(v StmtVisitor) any { return v.VisitVarStmt(va) }

// BlockStmt is a brace-delimited sequence of declarations/statements; it
// introduces a new lexical scope.
type BlockStmt struct {
	Position
	Statements []Stmt
}

func (b BlockStmt) Accept(v StmtVisitor) any { return v.VisitBlockStmt(b) }

// IfStmt is `if cond { ... } (else { ... })?`. Else is nil when absent.
type IfStmt struct {
	Position
	Condition Expression
	Then      Stmt
	Else      Stmt
}

func (i IfStmt) Accept(v StmtVisitor) any { return v.VisitIfStmt(i) }

// ForInStmt is `for name in iterable { ... }`.
type ForInStmt struct {
	Position
	Name     token.Token
	Iterable Expression
	Body     Stmt
}

func (f ForInStmt) Accept(v StmtVisitor) any { return v.VisitForInStmt(f) }

// ReturnStmt is `return expr?`; Value is nil when the return carries no
// expression (i.e. the next token was `}` or EOF).
type ReturnStmt struct {
	Position
	Value Expression
}

func (r ReturnStmt) Accept(v StmtVisitor) any { return v.VisitReturnStmt(r) }

// FunctionStmt is a named function declaration: `fn name(params) : ret? => expr`
// or `fn name(params) : ret? { block }`. Body holds a BlockStmt in the
// block-bodied form, or an ExpressionStmt wrapping the arrow expression in
// the arrow-bodied form.
type FunctionStmt struct {
	Position
	Name       token.Token
	Params     []Parameter
	ReturnType *TypeInfo
	Body       Stmt
}

func (fn FunctionStmt) Accept(v StmtVisitor) any { return v.VisitFunctionStmt(fn) }

// EntityField is one `name (: type)? (= default)?` entry of an entity
// declaration.
type EntityField struct {
	Position
	Name    string
	Type    *TypeInfo
	Default Expression // nil if no default value
}

// EntityStmt is this language's record type: a named bundle of typed
// fields with optional defaults. Parsed but not executed.
type EntityStmt struct {
	Position
	Name   token.Token
	Fields []EntityField
}

func (e EntityStmt) Accept(v StmtVisitor) any { return v.VisitEntityStmt(e) }

// TryCatchStmt is `try { ... } catch err as Type { ... }`.
type TryCatchStmt struct {
	Position
	Try        Stmt
	ErrorName  token.Token
	ErrorType  token.Token
	CatchBlock Stmt
}

func (t TryCatchStmt) Accept(v StmtVisitor) any { return v.VisitTryCatchStmt(t) }

// UseStmt is `use module(.submodule)*`; the module path has no loader in
// this implementation.
type UseStmt struct {
	Position
	Path []token.Token
}

func (u UseStmt) Accept(v StmtVisitor) any { return v.VisitUseStmt(u) }

// SpawnStmt is `spawn { ... }`. The surface language describes concurrent
// execution, but the executable core is single-threaded and synchronous;
// the compiler does not emit code to actually parallelize the block.
type SpawnStmt struct {
	Position
	Body Stmt
}

func (s SpawnStmt) Accept(v StmtVisitor) any { return v.VisitSpawnStmt(s) }
