// interfaces.go contains the visitor interfaces that any code traversing
// expression and statement AST nodes must implement, plus the Expression
// and Stmt interfaces every node satisfies via the visitor design pattern.
package ast

// ExpressionVisitor is the interface for operating on all Expression AST
// nodes. A semantic analyzer, a compiler, or a tree-walking interpreter
// all implement this interface, each providing its own behaviour per node
// kind.
type ExpressionVisitor interface {
	VisitBinary(binary Binary) any
	VisitUnary(unary Unary) any
	VisitLiteral(literal Literal) any
	VisitGrouping(grouping Grouping) any
	VisitVariableExpression(variable Variable) any
	VisitAssignExpression(assign Assign) any
	VisitLogicalExpression(logical Logical) any
	VisitCallExpression(call Call) any
	VisitGetExpression(get Get) any
	VisitIndexExpression(index Index) any
	VisitArrayLiteral(array ArrayLiteral) any
	VisitObjectLiteral(object ObjectLiteral) any
}

// StmtVisitor is the interface for operating on all Statement AST nodes.
type StmtVisitor interface {
	VisitExpressionStmt(exprStmt ExpressionStmt) any
	VisitVarStmt(varStmt VarStmt) any
	VisitBlockStmt(blockStmt BlockStmt) any
	VisitIfStmt(stmt IfStmt) any
	VisitForInStmt(stmt ForInStmt) any
	VisitReturnStmt(stmt ReturnStmt) any
	VisitFunctionStmt(stmt FunctionStmt) any
	VisitEntityStmt(stmt EntityStmt) any
	VisitTryCatchStmt(stmt TryCatchStmt) any
	VisitUseStmt(stmt UseStmt) any
	VisitSpawnStmt(stmt SpawnStmt) any
}

// Stmt is the base interface for all statement nodes in the AST. A
// statement represents an action in a program; unlike expressions,
// statements do not themselves produce a stack value.
type Stmt interface {
	Accept(v StmtVisitor) any
	Pos() (line, column int)
}

// Expression is the core interface for all expression nodes in the AST.
// The Accept method enables the Visitor design pattern so operations can
// be performed on expressions without the expression types needing to know
// the details of those operations.
type Expression interface {
	Accept(v ExpressionVisitor) any
	Pos() (line, column int)
}

// Program is the root of a parsed source file: a flat sequence of
// top-level declarations and statements, evaluated in order.
type Program struct {
	Statements []Stmt
}
