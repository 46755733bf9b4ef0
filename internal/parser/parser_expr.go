package parser

import (
	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/token"
)

// parseExpression implements precedence climbing: a prefix
// is parsed once, then infix/postfix operators at or above minPrec are
// folded in left to right, recursing with the operator's own precedence
// (right-associative) or one above it (left-associative) for the
// operator's right-hand side.
func (p *Parser) parseExpression(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		opTok := p.cur()
		prec, rightAssoc, ok := infixInfo(opTok.Kind)
		if !ok || prec < minPrec {
			break
		}

		switch opTok.Kind {
		case token.INCR, token.DECR:
			p.advance()
			left = &ast.SuffixUnary{Position: opTok.Position, Op: opTok.Kind, Operand: left}
			continue
		case token.LPAREN, token.LBRACKET:
			grouping, err := p.parseGrouping()
			if err != nil {
				return nil, err
			}
			left = &ast.GroupingApplication{Position: left.Pos(), Callee: left, Grouping: grouping}
			continue
		case token.DOT:
			p.advance()
			p.skipInsignificant()
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, newError(nameTok.Position, "expected member name after '.'")
			}
			right := &ast.Identifier{Position: nameTok.Position, Token: nameTok, Name: nameTok.Lexeme}
			left = &ast.Binary{Position: opTok.Position, Op: token.DOT, Left: left, Right: right}
			continue
		}

		p.advance()
		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		p.skipInsignificant()
		right, err := p.parseExpression(nextMinPrec)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: opTok.Position, Op: opTok.Kind, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary handles prefix operators (!, ~, ++, --) and falls through to
// parsePrimary otherwise.
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.BANG, token.TILDE, token.INCR, token.DECR:
		p.advance()
		operand, err := p.parseExpression(precUnaryPrefix)
		if err != nil {
			return nil, err
		}
		return &ast.PrefixUnary{Position: tok.Position, Op: tok.Kind, Operand: operand}, nil
	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses a literal, identifier, grouping, or association.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL:
		p.advance()
		return &ast.Literal{Position: tok.Position, Token: tok}, nil
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Position: tok.Position, Token: tok, Name: tok.Lexeme}, nil
	case token.LPAREN, token.LBRACKET:
		return p.parseGrouping()
	case token.LBRACE:
		return p.parseAssociation()
	default:
		return nil, newError(tok.Position, "unexpected token %s %q", tok.Kind, tok.Lexeme)
	}
}

// parseGrouping parses a comma-separated list delimited by matching
// parens/brackets, used both as a standalone tuple/list literal and, via
// parseExpression's infix loop, as a call/index application.
func (p *Parser) parseGrouping() (*ast.Grouping, error) {
	open := p.advance()
	closing := token.RPAREN
	if open.Kind == token.LBRACKET {
		closing = token.RBRACKET
	}

	g := &ast.Grouping{Position: open.Position, Opening: open.Kind}
	p.skipNewlines()
	for !p.curIs(closing) {
		item, err := p.parseExpression(precBase + 1)
		if err != nil {
			return nil, err
		}
		g.Items = append(g.Items, item)
		p.skipNewlines()
		if p.curIs(token.COMMA) {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(closing); err != nil {
		return nil, err
	}
	return g, nil
}

// parseAssociation parses an object literal "{ key: value, ... }". A key is
// either a bare IDENT/STRING/NUMBER literal or a bracketed dynamic
// expression.
func (p *Parser) parseAssociation() (*ast.Association, error) {
	open := p.advance() // '{'
	assoc := &ast.Association{Position: open.Position}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) {
		entry, err := p.parseAssociationEntry()
		if err != nil {
			return nil, err
		}
		assoc.Entries = append(assoc.Entries, entry)
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
	return assoc, nil
}

func (p *Parser) parseAssociationEntry() (ast.AssociationEntry, error) {
	var entry ast.AssociationEntry
	tok := p.cur()
	switch tok.Kind {
	case token.LBRACKET:
		p.advance()
		key, err := p.parseExpression(precBase + 1)
		if err != nil {
			return entry, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return entry, err
		}
		entry.DynamicKey = key
	case token.IDENT, token.STRING, token.NUMBER:
		p.advance()
		entry.Key = &ast.Literal{Position: tok.Position, Token: tok}
		if tok.Kind == token.IDENT {
			entry.Key = &ast.Identifier{Position: tok.Position, Token: tok, Name: tok.Lexeme}
		}
	default:
		return entry, newError(tok.Position, "expected association key, got %s %q", tok.Kind, tok.Lexeme)
	}

	p.skipInsignificant()
	if _, err := p.expect(token.COLON); err != nil {
		return entry, newError(p.cur().Position, "expected ':' after association key")
	}
	p.skipNewlines()
	val, err := p.parseExpression(precBase + 1)
	if err != nil {
		return entry, err
	}
	entry.Value = val
	return entry, nil
}
