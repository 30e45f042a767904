package parser

import (
	"testing"

	"riau/ast"
	"riau/lexer"

	"github.com/hashicorp/go-multierror"
)

func parse(t *testing.T, src string) (ast.Program, error) {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return New(tokens).Parse()
}

func TestParseArithmeticPrecedence(t *testing.T) {
	program, err := parse(t, "1 + 2 * 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(program.Statements))
	}
	exprStmt, ok := program.Statements[0].(ast.ExpressionStmt)
	if !ok {
		t.Fatalf("statement is %T, want ast.ExpressionStmt", program.Statements[0])
	}
	bin, ok := exprStmt.Expression.(ast.Binary)
	if !ok {
		t.Fatalf("expression is %T, want ast.Binary", exprStmt.Expression)
	}
	if bin.Operator != "+" {
		t.Fatalf("top-level operator = %q, want %q (multiplication must bind tighter)", bin.Operator, "+")
	}
	if _, ok := bin.Right.(ast.Binary); !ok {
		t.Fatalf("right operand is %T, want ast.Binary for '2 * 3'", bin.Right)
	}
}

func TestParseVariableDeclarationWithType(t *testing.T) {
	program, err := parse(t, `let x: int = 10`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	decl := program.Statements[0].(ast.VarStmt)
	if decl.Name.Lexeme != "x" {
		t.Errorf("Name = %q, want x", decl.Name.Lexeme)
	}
	if decl.Type == nil || decl.Type.Kind != ast.Int {
		t.Errorf("Type = %+v, want Int", decl.Type)
	}
}

func TestParseOptionalType(t *testing.T) {
	program, err := parse(t, `let x: string?`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	decl := program.Statements[0].(ast.VarStmt)
	if !decl.Type.IsOptional {
		t.Errorf("Type.IsOptional = false, want true")
	}
}

func TestParseIfElse(t *testing.T) {
	program, err := parse(t, `if 1 < 2 { print(1) } else { print(2) }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ifStmt := program.Statements[0].(ast.IfStmt)
	if ifStmt.Else == nil {
		t.Fatal("Else is nil, want a block")
	}
}

func TestParseForIn(t *testing.T) {
	program, err := parse(t, `for item in items { print(item) }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	forStmt := program.Statements[0].(ast.ForInStmt)
	if forStmt.Name.Lexeme != "item" {
		t.Errorf("Name = %q, want item", forStmt.Name.Lexeme)
	}
}

func TestParseCallChain(t *testing.T) {
	program, err := parse(t, `a.b(1, 2)[0]`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	exprStmt := program.Statements[0].(ast.ExpressionStmt)
	if _, ok := exprStmt.Expression.(ast.Index); !ok {
		t.Fatalf("top-level call-chain expression is %T, want ast.Index", exprStmt.Expression)
	}
}

func TestParseEntityDeclaration(t *testing.T) {
	program, err := parse(t, `entity Point { x: int = 0 y: int = 0 }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	entity := program.Statements[0].(ast.EntityStmt)
	if len(entity.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(entity.Fields))
	}
}

func TestParseAssignmentExpression(t *testing.T) {
	program, err := parse(t, "x = 5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	exprStmt := program.Statements[0].(ast.ExpressionStmt)
	assign, ok := exprStmt.Expression.(ast.Assign)
	if !ok {
		t.Fatalf("expression is %T, want ast.Assign", exprStmt.Expression)
	}
	if assign.Name.Lexeme != "x" {
		t.Errorf("Name = %q, want x", assign.Name.Lexeme)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	program, err := parse(t, "a = b = 1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer := program.Statements[0].(ast.ExpressionStmt).Expression.(ast.Assign)
	if _, ok := outer.Value.(ast.Assign); !ok {
		t.Fatalf("outer value is %T, want nested ast.Assign", outer.Value)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	if _, err := parse(t, "1 + 2 = 3"); err == nil {
		t.Fatal("expected an invalid-assignment-target error")
	}
}

func TestParseObjectLiteral(t *testing.T) {
	program, err := parse(t, `let p = { x: 1, y: 2 }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	decl := program.Statements[0].(ast.VarStmt)
	obj, ok := decl.Initializer.(ast.ObjectLiteral)
	if !ok {
		t.Fatalf("initializer is %T, want ast.ObjectLiteral", decl.Initializer)
	}
	if len(obj.Keys) != 2 || obj.Keys[0].Lexeme != "x" || obj.Keys[1].Lexeme != "y" {
		t.Fatalf("keys = %v, want [x y]", obj.Keys)
	}
}

func TestParsePanicModeRecoversMultipleErrors(t *testing.T) {
	_, err := parse(t, "let = \nlet = \nlet x = 1")
	if err == nil {
		t.Fatal("expected parse errors for malformed declarations")
	}
	merr, ok := err.(*multierror.Error)
	if !ok || len(merr.Errors) != 2 {
		t.Fatalf("expected 2 accumulated syntax errors, got %v", err)
	}
}

func TestReturnWithoutExpressionBeforeClosingBrace(t *testing.T) {
	program, err := parse(t, `fn f() { return }`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fn := program.Statements[0].(ast.FunctionStmt)
	block := fn.Body.(ast.BlockStmt)
	ret := block.Statements[0].(ast.ReturnStmt)
	if ret.Value != nil {
		t.Errorf("Value = %v, want nil", ret.Value)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := `let x = 1 + 2 * 3 if x > 0 { print(x) }`
	first, err := parse(t, src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := parse(t, src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	firstJSON, err := PrintASTJSON(first)
	if err != nil {
		t.Fatalf("PrintASTJSON error = %v", err)
	}
	secondJSON, err := PrintASTJSON(second)
	if err != nil {
		t.Fatalf("PrintASTJSON error = %v", err)
	}
	if firstJSON != secondJSON {
		t.Error("parsing the same source twice produced structurally different ASTs")
	}
}
