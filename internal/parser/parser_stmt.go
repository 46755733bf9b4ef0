package parser

import (
	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/token"
)

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{Position: p.cur().Position}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		p.skipNewlines()
	}
	return prog, nil
}

// parseStatement dispatches on the leading keyword.3.1.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.VAR:
		return p.parseVarDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.IMPORT:
		return p.parseImport()
	case token.EXPORT:
		return p.parseExport()
	case token.BREAK:
		tok := p.advance()
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.Break{Position: tok.Position}, nil
	case token.CONTINUE:
		tok := p.advance()
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &ast.Continue{Position: tok.Position}, nil
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	pos := p.cur().Position
	expr, err := p.parseExpression(precBase)
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Position: pos, Expr: expr}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Position: open.Position}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, newError(p.cur().Position, "missing closing '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	tok := p.advance() // 'var'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Position: tok.Position, Name: name.Lexeme}
	if p.curIs(token.ASSIGN) {
		p.advance()
		decl.Init, err = p.parseExpression(precBase)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseConstDecl() (ast.Stmt, error) {
	tok := p.advance() // 'const'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, newError(name.Position, "const %q requires an initializer", name.Lexeme)
	}
	init, err := p.parseExpression(precBase)
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &ast.ConstDecl{Position: tok.Position, Name: name.Lexeme, Init: init}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	tok := p.advance() // 'if'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precBase)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	p.skipNewlines()
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Position: tok.Position, Cond: cond, Then: then}

	// Look ahead for an optional "else" possibly preceded by newlines.
	save := p.pos
	p.skipNewlines()
	if p.curIs(token.ELSE) {
		p.advance()
		p.skipNewlines()
		elseBranch, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBranch
	} else {
		p.pos = save
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok := p.advance() // 'while'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precBase)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: tok.Position, Cond: cond, Body: body}, nil
}

// parseFor requires exactly three sub-forms separated by semicolons.
func (p *Parser) parseFor() (ast.Stmt, error) {
	tok := p.advance() // 'for'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	if p.curIs(token.SEMI) {
		init = nil
	} else if p.curIs(token.VAR) {
		init, err = p.parseVarDeclNoTerminator()
	} else {
		exprPos := p.cur().Position
		expr, exprErr := p.parseExpression(precBase)
		if exprErr != nil {
			return nil, exprErr
		}
		init = &ast.ExpressionStmt{Position: exprPos, Expr: expr}
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, newError(p.cur().Position, "for-loop head requires exactly three ';'-separated clauses")
	}

	var cond ast.Expr
	if !p.curIs(token.SEMI) {
		cond, err = p.parseExpression(precBase)
		if err != nil {
			return nil, err
		}
	} else {
		cond = &ast.Null{Position: p.cur().Position}
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, newError(p.cur().Position, "for-loop head requires exactly three ';'-separated clauses")
	}

	var incr ast.Stmt
	if !p.curIs(token.RPAREN) {
		incrPos := p.cur().Position
		incrExpr, incrErr := p.parseExpression(precBase)
		if incrErr != nil {
			return nil, incrErr
		}
		incr = &ast.ExpressionStmt{Position: incrPos, Expr: incrExpr}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	p.skipNewlines()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.For{Position: tok.Position, Init: init, Cond: cond, Incr: incr, Body: body}, nil
}

// parseVarDeclNoTerminator parses "var name (= expr)?" without requiring a
// statement terminator, for use inside a for-loop head.
func (p *Parser) parseVarDeclNoTerminator() (ast.Stmt, error) {
	tok := p.advance() // 'var'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Position: tok.Position, Name: name.Lexeme}
	if p.curIs(token.ASSIGN) {
		p.advance()
		decl.Init, err = p.parseExpression(precBase)
		if err != nil {
			return nil, err
		}
	}
	return decl, nil
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	tok := p.advance() // 'function'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Position: tok.Position, Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	var params []ast.Param
	p.skipNewlines()
	for !p.curIs(token.RPAREN) {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: name.Lexeme}
		if p.curIs(token.ASSIGN) {
			p.advance()
			param.Default, err = p.parseExpression(precBase + 1)
			if err != nil {
				return nil, err
			}
		}
		params = append(params, param)
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	tok := p.advance() // 'return'
	ret := &ast.Return{Position: tok.Position}
	if !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) && !p.curIs(token.RBRACE) {
		val, err := p.parseExpression(precBase)
		if err != nil {
			return nil, err
		}
		ret.Value = val
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseImport parses `import <selector> from "<path>"`.3.1.
func (p *Parser) parseImport() (ast.Stmt, error) {
	tok := p.advance() // 'import'
	imp := &ast.Import{Position: tok.Position}

	if p.curIs(token.STAR) {
		p.advance()
		imp.Star = true
	} else if p.curIs(token.LBRACE) {
		p.advance()
		p.skipNewlines()
		for !p.curIs(token.RBRACE) {
			name, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			imp.Names = append(imp.Names, name.Lexeme)
			p.skipNewlines()
			if p.curIs(token.COMMA) {
				p.advance()
				p.skipNewlines()
				continue
			}
			break
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
	} else {
		return nil, newError(p.cur().Position, "malformed import: expected '*' or '{' selector")
	}

	if _, err := p.expect(token.FROM); err != nil {
		return nil, newError(p.cur().Position, "malformed import: expected 'from'")
	}
	pathTok, err := p.expect(token.STRING)
	if err != nil {
		return nil, newError(p.cur().Position, "malformed import: expected string path")
	}
	imp.Path = pathTok.Lexeme

	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return imp, nil
}

// parseExport wraps exactly one declaration statement from {ConstDecl,
// FunctionDecl}; other exports are rejected.
func (p *Parser) parseExport() (ast.Stmt, error) {
	tok := p.advance() // 'export'
	switch p.cur().Kind {
	case token.CONST:
		decl, err := p.parseConstDecl()
		if err != nil {
			return nil, err
		}
		return &ast.Export{Position: tok.Position, Decl: decl}, nil
	case token.FUNCTION:
		decl, err := p.parseFunctionDecl()
		if err != nil {
			return nil, err
		}
		return &ast.Export{Position: tok.Position, Decl: decl}, nil
	default:
		return nil, newError(p.cur().Position, "export may only wrap a const or function declaration")
	}
}
