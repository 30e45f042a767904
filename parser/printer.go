package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"riau/ast"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements ast.ExpressionVisitor/ast.StmtVisitor and builds a
// JSON-friendly representation of the AST out of maps and slices. Each
// Visit method returns a value that can be marshaled directly.
type astPrinter struct{}

func (p astPrinter) VisitExpressionStmt(s ast.ExpressionStmt) any {
	return map[string]any{"type": "ExpressionStmt", "expression": s.Expression.Accept(p)}
}

func (p astPrinter) VisitVarStmt(s ast.VarStmt) any {
	return map[string]any{"type": "VarStmt", "name": s.Name.Lexeme, "initializer": nilOrAccept(s.Initializer, p)}
}

func (p astPrinter) VisitBlockStmt(s ast.BlockStmt) any {
	stmts := make([]any, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{"type": "BlockStmt", "statements": stmts}
}

func (p astPrinter) VisitIfStmt(s ast.IfStmt) any {
	var elseVal any
	if s.Else != nil {
		elseVal = s.Else.Accept(p)
	}
	return map[string]any{"type": "IfStmt", "condition": s.Condition.Accept(p), "then": s.Then.Accept(p), "else": elseVal}
}

func (p astPrinter) VisitForInStmt(s ast.ForInStmt) any {
	return map[string]any{"type": "ForInStmt", "name": s.Name.Lexeme, "iterable": s.Iterable.Accept(p), "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitReturnStmt(s ast.ReturnStmt) any {
	return map[string]any{"type": "ReturnStmt", "value": nilOrAccept(s.Value, p)}
}

func (p astPrinter) VisitFunctionStmt(s ast.FunctionStmt) any {
	params := make([]any, 0, len(s.Params))
	for _, param := range s.Params {
		params = append(params, param.Name)
	}
	return map[string]any{"type": "FunctionStmt", "name": s.Name.Lexeme, "params": params, "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitEntityStmt(s ast.EntityStmt) any {
	fields := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Name)
	}
	return map[string]any{"type": "EntityStmt", "name": s.Name.Lexeme, "fields": fields}
}

func (p astPrinter) VisitTryCatchStmt(s ast.TryCatchStmt) any {
	return map[string]any{
		"type": "TryCatchStmt", "try": s.Try.Accept(p),
		"errorName": s.ErrorName.Lexeme, "errorType": s.ErrorType.Lexeme, "catch": s.CatchBlock.Accept(p),
	}
}

func (p astPrinter) VisitUseStmt(s ast.UseStmt) any {
	parts := make([]any, 0, len(s.Path))
	for _, tok := range s.Path {
		parts = append(parts, tok.Lexeme)
	}
	return map[string]any{"type": "UseStmt", "path": parts}
}

func (p astPrinter) VisitSpawnStmt(s ast.SpawnStmt) any {
	return map[string]any{"type": "SpawnStmt", "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitLogicalExpression(e ast.Logical) any {
	return map[string]any{"type": "Logical", "operator": e.Operator, "left": e.Left.Accept(p), "right": e.Right.Accept(p)}
}

func (p astPrinter) VisitAssignExpression(e ast.Assign) any {
	return map[string]any{"type": "Assign", "name": e.Name.Lexeme, "value": e.Value.Accept(p)}
}

func (p astPrinter) VisitVariableExpression(e ast.Variable) any {
	return map[string]any{"type": "Variable", "name": e.Name.Lexeme}
}

func (p astPrinter) VisitBinary(e ast.Binary) any {
	return map[string]any{"type": "Binary", "operator": e.Operator, "left": e.Left.Accept(p), "right": e.Right.Accept(p)}
}

func (p astPrinter) VisitUnary(e ast.Unary) any {
	return map[string]any{"type": "Unary", "operator": e.Operator, "right": e.Right.Accept(p)}
}

func (p astPrinter) VisitLiteral(e ast.Literal) any {
	return e.Value
}

func (p astPrinter) VisitGrouping(e ast.Grouping) any {
	return map[string]any{"type": "Grouping", "expression": e.Expression.Accept(p)}
}

func (p astPrinter) VisitCallExpression(e ast.Call) any {
	args := make([]any, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, a.Accept(p))
	}
	return map[string]any{"type": "Call", "callee": e.Callee.Accept(p), "arguments": args}
}

func (p astPrinter) VisitGetExpression(e ast.Get) any {
	return map[string]any{"type": "Get", "object": e.Object.Accept(p), "name": e.Name.Lexeme}
}

func (p astPrinter) VisitIndexExpression(e ast.Index) any {
	return map[string]any{"type": "Index", "object": e.Object.Accept(p), "key": e.Key.Accept(p)}
}

func (p astPrinter) VisitArrayLiteral(e ast.ArrayLiteral) any {
	elems := make([]any, 0, len(e.Elements))
	for _, el := range e.Elements {
		elems = append(elems, el.Accept(p))
	}
	return map[string]any{"type": "ArrayLiteral", "elements": elems}
}

func (p astPrinter) VisitObjectLiteral(e ast.ObjectLiteral) any {
	fields := map[string]any{}
	for i, k := range e.Keys {
		fields[k.Lexeme] = e.Values[i].Accept(p)
	}
	return map[string]any{"type": "ObjectLiteral", "fields": fields}
}

func nilOrAccept(expr ast.Expression, v ast.ExpressionVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(v)
}

// PrintASTJSON converts a parsed Program into a prettified JSON string and
// prints it to standard output.
func PrintASTJSON(program ast.Program) (string, error) {
	printer := astPrinter{}
	out := make([]any, 0, len(program.Statements))
	for _, s := range program.Statements {
		out = append(out, s.Accept(printer))
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	jsonStr := string(raw)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON for program to path.
func WriteASTJSONToFile(program ast.Program, path string) error {
	s, err := PrintASTJSON(program)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %w", err)
	}
	return nil
}
