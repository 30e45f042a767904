// Recursive descent parser
// https://en.wikipedia.org/wiki/Recursive_descent_parser
//
// A recursive descent parser is a top-down parser: it starts from the top
// grammar rule and works its way down into nested sub-expressions before
// reaching the leaves of the syntax tree (terminal rules). Expression
// precedence is handled by one parsing method per precedence level
// (Pratt-style, without an explicit operator table).
package parser

import (
	"fmt"

	"riau/ast"
	"riau/token"

	"github.com/hashicorp/go-multierror"
)

// statementStarters are the synchronisation tokens panic-mode recovery
// looks for: declaration/statement keywords that are safe to resume
// parsing from.
var statementStarters = map[token.TokenType]bool{
	token.LET:    true,
	token.FN:     true,
	token.ENTITY: true,
	token.IF:     true,
	token.FOR:    true,
	token.RETURN: true,
	token.TRY:    true,
	token.USE:    true,
	token.SPAWN:  true,
}

// Parser turns a token stream into an ast.Program. Errors are accumulated
// into a *multierror.Error rather than stopping at the first one, so
// panic-mode recovery can surface more than one diagnostic per run.
type Parser struct {
	tokens   []token.Token
	position int
	errors   *multierror.Error
}

// New constructs a Parser over an already-scanned token stream.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) peek() token.Token     { return p.tokens[p.position] }
func (p *Parser) previous() token.Token { return p.tokens[p.position-1] }

func (p *Parser) isFinished() bool { return p.peek().TokenType == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) checkType(tt token.TokenType) bool {
	return !p.isFinished() && p.peek().TokenType == tt
}

func (p *Parser) isMatch(types ...token.TokenType) bool {
	for _, tt := range types {
		if p.checkType(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt token.TokenType, errorMessage string) (token.Token, error) {
	if p.checkType(tt) {
		return p.advance(), nil
	}
	cur := p.peek()
	return token.Token{}, NewSyntaxError(cur.Line, cur.Column, errorMessage)
}

// synchronize discards tokens until it reaches a point panic-mode recovery
// considers safe to resume at: just past a consumed '}', or right before
// one of the statement-starter keywords.
func (p *Parser) synchronize() {
	for !p.isFinished() {
		if p.position > 0 && p.previous().TokenType == token.RCUR {
			return
		}
		if statementStarters[p.peek().TokenType] {
			return
		}
		p.advance()
	}
}

// Parse parses the entire token stream into an ast.Program, continuing
// past errors via panic-mode recovery so multiple diagnostics can surface
// in one run. The returned Program is always non-nil (possibly partial)
// so downstream stages can choose to inspect it; the pipeline driver
// still refuses to proceed once any stage reported errors.
func (p *Parser) Parse() (ast.Program, error) {
	program := ast.Program{}
	for !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = multierror.Append(p.errors, err)
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
	}
	if p.errors != nil {
		p.errors.ErrorFormat = func(errs []error) string {
			lines := make([]string, len(errs))
			for i, e := range errs {
				lines[i] = e.Error()
			}
			out := ""
			for i, l := range lines {
				if i > 0 {
					out += "\n"
				}
				out += l
			}
			return out
		}
		return program, p.errors.ErrorOrNil()
	}
	return program, nil
}

// declaration := var_decl | fn_decl | entity_decl | statement
func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.isMatch(token.LET):
		return p.variableDeclaration()
	case p.isMatch(token.FN):
		return p.functionDeclaration()
	case p.isMatch(token.ENTITY):
		return p.entityDeclaration()
	default:
		return p.statement()
	}
}

// typeAnnotation parses an optional `: name ?`.
func (p *Parser) typeAnnotation() (*ast.TypeInfo, error) {
	if !p.isMatch(token.COLON) {
		return nil, nil
	}
	name, err := p.consume(token.IDENTIFIER, "Expected type name after ':'")
	if err != nil {
		return nil, err
	}
	info := &ast.TypeInfo{Kind: ast.ParseTypeName(name.Lexeme), Name: name.Lexeme}
	if p.isMatch(token.QUESTION) {
		info.IsOptional = true
	}
	return info, nil
}

// var_decl := 'let' IDENT type_ann? ( '=' expr )?
func (p *Parser) variableDeclaration() (ast.Stmt, error) {
	letTok := p.previous()
	name, err := p.consume(token.IDENTIFIER, "Expected variable name")
	if err != nil {
		return nil, err
	}
	typeInfo, err := p.typeAnnotation()
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.isMatch(token.ASSIGN) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	return ast.VarStmt{
		Position:    ast.Position{Line: letTok.Line, Column: letTok.Column},
		Name:        name,
		Type:        typeInfo,
		Initializer: initializer,
	}, nil
}

// fn_decl := 'fn' IDENT '(' params? ')' type_ann? ( '=>' expr | block )
func (p *Parser) functionDeclaration() (ast.Stmt, error) {
	fnTok := p.previous()
	name, err := p.consume(token.IDENTIFIER, "Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LPA, "Expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []ast.Parameter
	if !p.checkType(token.RPA) {
		for {
			paramName, err := p.consume(token.IDENTIFIER, "Expected parameter name")
			if err != nil {
				return nil, err
			}
			paramType, err := p.typeAnnotation()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Parameter{
				Position: ast.Position{Line: paramName.Line, Column: paramName.Column},
				Name:     paramName.Lexeme,
				Type:     paramType,
			})
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPA, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	retType, err := p.typeAnnotation()
	if err != nil {
		return nil, err
	}

	var body ast.Stmt
	if p.isMatch(token.ARROW) {
		arrowTok := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		body = ast.ExpressionStmt{Position: ast.Position{Line: arrowTok.Line, Column: arrowTok.Column}, Expression: expr}
	} else {
		if _, err := p.consume(token.LCUR, "Expected '=>' or '{' for function body"); err != nil {
			return nil, err
		}
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		body = ast.BlockStmt{Position: ast.Position{Line: fnTok.Line, Column: fnTok.Column}, Statements: stmts}
	}

	return ast.FunctionStmt{
		Position:   ast.Position{Line: fnTok.Line, Column: fnTok.Column},
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
	}, nil
}

// entity_decl := 'entity' IDENT '{' ( IDENT type_ann? ( '=' expr )? )* '}'
func (p *Parser) entityDeclaration() (ast.Stmt, error) {
	entityTok := p.previous()
	name, err := p.consume(token.IDENTIFIER, "Expected entity name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LCUR, "Expected '{' after entity name"); err != nil {
		return nil, err
	}
	var fields []ast.EntityField
	for !p.checkType(token.RCUR) && !p.isFinished() {
		fieldName, err := p.consume(token.IDENTIFIER, "Expected field name")
		if err != nil {
			return nil, err
		}
		fieldType, err := p.typeAnnotation()
		if err != nil {
			return nil, err
		}
		var def ast.Expression
		if p.isMatch(token.ASSIGN) {
			def, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		fields = append(fields, ast.EntityField{
			Position: ast.Position{Line: fieldName.Line, Column: fieldName.Column},
			Name:     fieldName.Lexeme,
			Type:     fieldType,
			Default:  def,
		})
	}
	if _, err := p.consume(token.RCUR, "Expected '}' after entity fields"); err != nil {
		return nil, err
	}
	return ast.EntityStmt{Position: ast.Position{Line: entityTok.Line, Column: entityTok.Column}, Name: name, Fields: fields}, nil
}

// statement := if_stmt | for_stmt | return_stmt | try_stmt | use_stmt | spawn_stmt | expr_stmt
func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.isMatch(token.IF):
		return p.ifStatement()
	case p.isMatch(token.FOR):
		return p.forInStatement()
	case p.isMatch(token.RETURN):
		return p.returnStatement()
	case p.isMatch(token.TRY):
		return p.tryStatement()
	case p.isMatch(token.USE):
		return p.useStatement()
	case p.isMatch(token.SPAWN):
		return p.spawnStatement()
	case p.isMatch(token.LCUR):
		lcur := p.previous()
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Position: ast.Position{Line: lcur.Line, Column: lcur.Column}, Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

// if_stmt := 'if' expr block ( 'else' block )?
func (p *Parser) ifStatement() (ast.Stmt, error) {
	ifTok := p.previous()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LCUR, "Expected '{' after if condition"); err != nil {
		return nil, err
	}
	thenStmts, err := p.block()
	if err != nil {
		return nil, err
	}
	thenStmt := ast.Stmt(ast.BlockStmt{Position: ast.Position{Line: ifTok.Line, Column: ifTok.Column}, Statements: thenStmts})

	var elseStmt ast.Stmt
	if p.isMatch(token.ELSE) {
		elseTok := p.previous()
		if _, err := p.consume(token.LCUR, "Expected '{' after else"); err != nil {
			return nil, err
		}
		elseStmts, err := p.block()
		if err != nil {
			return nil, err
		}
		elseStmt = ast.BlockStmt{Position: ast.Position{Line: elseTok.Line, Column: elseTok.Column}, Statements: elseStmts}
	}

	return ast.IfStmt{
		Position:  ast.Position{Line: ifTok.Line, Column: ifTok.Column},
		Condition: cond,
		Then:      thenStmt,
		Else:      elseStmt,
	}, nil
}

// for_stmt := 'for' IDENT 'in' expr block
func (p *Parser) forInStatement() (ast.Stmt, error) {
	forTok := p.previous()
	name, err := p.consume(token.IDENTIFIER, "Expected loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.IN, "Expected 'in' after loop variable"); err != nil {
		return nil, err
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LCUR, "Expected '{' after for-in iterable"); err != nil {
		return nil, err
	}
	bodyStmts, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.ForInStmt{
		Position: ast.Position{Line: forTok.Line, Column: forTok.Column},
		Name:     name,
		Iterable: iterable,
		Body:     ast.BlockStmt{Position: ast.Position{Line: forTok.Line, Column: forTok.Column}, Statements: bodyStmts},
	}, nil
}

// return_stmt := 'return' expr? -- expr omitted iff next is '}' or EOF
func (p *Parser) returnStatement() (ast.Stmt, error) {
	returnTok := p.previous()
	var value ast.Expression
	if !p.checkType(token.RCUR) && !p.isFinished() {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	return ast.ReturnStmt{Position: ast.Position{Line: returnTok.Line, Column: returnTok.Column}, Value: value}, nil
}

// try_stmt := 'try' block 'catch' IDENT 'as' IDENT block
func (p *Parser) tryStatement() (ast.Stmt, error) {
	tryTok := p.previous()
	if _, err := p.consume(token.LCUR, "Expected '{' after try"); err != nil {
		return nil, err
	}
	tryStmts, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.CATCH, "Expected 'catch' after try block"); err != nil {
		return nil, err
	}
	errName, err := p.consume(token.IDENTIFIER, "Expected caught error name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.AS, "Expected 'as' after caught error name"); err != nil {
		return nil, err
	}
	errType, err := p.consume(token.IDENTIFIER, "Expected error type after 'as'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LCUR, "Expected '{' after catch clause"); err != nil {
		return nil, err
	}
	catchStmts, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.TryCatchStmt{
		Position:   ast.Position{Line: tryTok.Line, Column: tryTok.Column},
		Try:        ast.BlockStmt{Position: ast.Position{Line: tryTok.Line, Column: tryTok.Column}, Statements: tryStmts},
		ErrorName:  errName,
		ErrorType:  errType,
		CatchBlock: ast.BlockStmt{Position: ast.Position{Line: errType.Line, Column: errType.Column}, Statements: catchStmts},
	}, nil
}

// use_stmt := 'use' IDENT ( '.' IDENT )*
func (p *Parser) useStatement() (ast.Stmt, error) {
	useTok := p.previous()
	first, err := p.consume(token.IDENTIFIER, "Expected module name after 'use'")
	if err != nil {
		return nil, err
	}
	path := []token.Token{first}
	for p.isMatch(token.DOT) {
		next, err := p.consume(token.IDENTIFIER, "Expected submodule name after '.'")
		if err != nil {
			return nil, err
		}
		path = append(path, next)
	}
	return ast.UseStmt{Position: ast.Position{Line: useTok.Line, Column: useTok.Column}, Path: path}, nil
}

// spawn_stmt := 'spawn' block
func (p *Parser) spawnStatement() (ast.Stmt, error) {
	spawnTok := p.previous()
	if _, err := p.consume(token.LCUR, "Expected '{' after spawn"); err != nil {
		return nil, err
	}
	stmts, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.SpawnStmt{
		Position: ast.Position{Line: spawnTok.Line, Column: spawnTok.Column},
		Body:     ast.BlockStmt{Position: ast.Position{Line: spawnTok.Line, Column: spawnTok.Column}, Statements: stmts},
	}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	line, column := expr.Pos()
	return ast.ExpressionStmt{Position: ast.Position{Line: line, Column: column}, Expression: expr}, nil
}

// block := '{' declaration* '}' -- the leading '{' has already been consumed.
func (p *Parser) block() ([]ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.checkType(token.RCUR) && !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.RCUR, "Expected '}' to close block"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

// assignment := IDENT '=' assignment | logical_or
//
// Right-associative: `a = b = 1` assigns b first. The left side is parsed
// as a full expression and then validated, the usual single-token-lookahead
// trick for telling an assignment target from a plain expression.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.ASSIGN) {
		eq := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(ast.Variable); ok {
			return ast.Assign{Position: ast.Position{Line: eq.Line, Column: eq.Column}, Name: variable.Name, Value: value}, nil
		}
		return nil, NewSyntaxError(eq.Line, eq.Column, "Invalid assignment target")
	}
	return expr, nil
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.OR_OR) {
		op := p.previous()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: "||", Right: right}
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.AND_AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: "&&", Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.EQUAL_EQUAL, token.NOT_EQUAL) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: string(op.TokenType), Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: string(op.TokenType), Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PLUS, token.MINUS) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: string(op.TokenType), Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Left: expr, Operator: string(op.TokenType), Right: right}
	}
	return expr, nil
}

// unary := ( '!' | '-' ) unary | call
func (p *Parser) unary() (ast.Expression, error) {
	if p.isMatch(token.BANG, token.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Position: ast.Position{Line: op.Line, Column: op.Column}, Operator: string(op.TokenType), Right: right}, nil
	}
	return p.call()
}

// call := primary ( '(' args ')' | '.' IDENT | '[' expr ']' )*
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isMatch(token.LPA):
			lpa := p.previous()
			var args []ast.Expression
			if !p.checkType(token.RPA) {
				for {
					arg, err := p.expression()
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if !p.isMatch(token.COMMA) {
						break
					}
				}
			}
			if _, err := p.consume(token.RPA, "Expected ')' after call arguments"); err != nil {
				return nil, err
			}
			expr = ast.Call{Position: ast.Position{Line: lpa.Line, Column: lpa.Column}, Callee: expr, Arguments: args}
		case p.isMatch(token.DOT):
			dot := p.previous()
			name, err := p.consume(token.IDENTIFIER, "Expected property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.Get{Position: ast.Position{Line: dot.Line, Column: dot.Column}, Object: expr, Name: name}
		case p.isMatch(token.LBRACKET):
			lbr := p.previous()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RBRACKET, "Expected ']' after index expression"); err != nil {
				return nil, err
			}
			expr = ast.Index{Position: ast.Position{Line: lbr.Line, Column: lbr.Column}, Object: expr, Key: index}
		default:
			return expr, nil
		}
	}
}

// primary := NUMBER | STRING | 'true' | 'false' | IDENT
//          | '(' expr ')' | '[' args? ']' | '{' obj_fields? '}'
func (p *Parser) primary() (ast.Expression, error) {
	if p.isMatch(token.TRUE) {
		t := p.previous()
		return ast.Literal{Position: ast.Position{Line: t.Line, Column: t.Column}, Value: true}, nil
	}
	if p.isMatch(token.FALSE) {
		t := p.previous()
		return ast.Literal{Position: ast.Position{Line: t.Line, Column: t.Column}, Value: false}, nil
	}
	if p.isMatch(token.NUMBER, token.STRING) {
		t := p.previous()
		return ast.Literal{Position: ast.Position{Line: t.Line, Column: t.Column}, Value: t.Literal}, nil
	}
	if p.isMatch(token.IDENTIFIER) {
		t := p.previous()
		return ast.Variable{Position: ast.Position{Line: t.Line, Column: t.Column}, Name: t}, nil
	}
	if p.isMatch(token.LPA) {
		lpa := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPA, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{Position: ast.Position{Line: lpa.Line, Column: lpa.Column}, Expression: expr}, nil
	}
	if p.isMatch(token.LBRACKET) {
		lbr := p.previous()
		var elems []ast.Expression
		if !p.checkType(token.RBRACKET) {
			for {
				elem, err := p.expression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
				if !p.isMatch(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.consume(token.RBRACKET, "Expected ']' after array elements"); err != nil {
			return nil, err
		}
		return ast.ArrayLiteral{Position: ast.Position{Line: lbr.Line, Column: lbr.Column}, Elements: elems}, nil
	}
	if p.isMatch(token.LCUR) {
		return p.objectLiteral()
	}

	cur := p.peek()
	return nil, NewSyntaxError(cur.Line, cur.Column, fmt.Sprintf("Unrecognised expression near %q", cur.Lexeme))
}

// objectLiteral := '{' ( IDENT ':' expr ( ',' IDENT ':' expr )* )? '}'
// The leading '{' has already been consumed. Only reachable in expression
// position, so there is no ambiguity with blocks.
func (p *Parser) objectLiteral() (ast.Expression, error) {
	lcur := p.previous()
	var keys []token.Token
	var values []ast.Expression
	if !p.checkType(token.RCUR) {
		for {
			key, err := p.consume(token.IDENTIFIER, "Expected field name in object literal")
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.COLON, "Expected ':' after object field name"); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
			values = append(values, value)
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RCUR, "Expected '}' after object fields"); err != nil {
		return nil, err
	}
	return ast.ObjectLiteral{Position: ast.Position{Line: lcur.Line, Column: lcur.Column}, Keys: keys, Values: values}, nil
}
