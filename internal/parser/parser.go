// Package parser implements a Pratt-style recursive-descent parser that
// interleaves keyword-dispatched statement parsing with operator-precedence
// expression parsing. The precedence table is centralized in this file,
// in infixInfo, a single switch keyed by token kind.
package parser

import (
	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/lexer"
	"github.com/breeze-lang/breeze/internal/token"
)

// Precedence ranks, lowest to highest. base is the sentinel used to start
// top-level expression parsing.
const (
	precBase           = -1
	precAssign         = 0
	precOr             = 1
	precAnd            = 2
	precEquality       = 3
	precRelational     = 4
	precCompoundAssign = 5
	precAdditive       = 6
	precMultiplicative = 7
	precBitwise        = 8
	precUnaryPrefix    = 9
	precAffix          = 10
	precGrouping       = 11
	precMember         = 12
)

// infixInfo reports the precedence and associativity of a token kind when
// used as an infix (or postfix) operator. ok is false for tokens that are
// never infix operators.
func infixInfo(kind token.Kind) (prec int, rightAssoc bool, ok bool) {
	switch kind {
	case token.ASSIGN:
		return precAssign, true, true
	case token.OR:
		return precOr, false, true
	case token.AND:
		return precAnd, false, true
	case token.EQ, token.NEQ:
		return precEquality, false, true
	case token.LT, token.LTE, token.GT, token.GTE:
		return precRelational, false, true
	case token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.PERCENT_EQ,
		token.POW_EQ, token.AMP_EQ, token.PIPE_EQ, token.CARET_EQ, token.SHL_EQ, token.SHR_EQ:
		return precCompoundAssign, true, true
	case token.PLUS, token.MINUS:
		return precAdditive, false, true
	case token.STAR, token.SLASH, token.PERCENT, token.POW:
		return precMultiplicative, false, true
	case token.AMP, token.PIPEOP, token.CARET, token.SHL, token.SHR:
		return precBitwise, false, true
	case token.INCR, token.DECR:
		return precAffix, false, true
	case token.LPAREN, token.LBRACKET:
		return precGrouping, false, true
	case token.DOT:
		return precMember, false, true
	default:
		return 0, false, false
	}
}

func isCompoundAssign(kind token.Kind) bool {
	_, _, ok := infixInfo(kind)
	return ok && kind != token.ASSIGN &&
		(kind == token.PLUS_EQ || kind == token.MINUS_EQ || kind == token.STAR_EQ ||
			kind == token.SLASH_EQ || kind == token.PERCENT_EQ || kind == token.POW_EQ ||
			kind == token.AMP_EQ || kind == token.PIPE_EQ || kind == token.CARET_EQ ||
			kind == token.SHL_EQ || kind == token.SHR_EQ)
}

// Parser consumes a token stream and produces an ast.Program.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over the full token stream produced by the lexer
// (SPACE/NEWLINE/COMMENT retained; whitespace is skipped lazily as needed so
// that NEWLINE can still serve as a statement terminator).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes src and parses it into a Program.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

// --- token stream helpers ---------------------------------------------

func (p *Parser) curRaw() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

// skipInsignificant advances past SPACE and COMMENT tokens (never NEWLINE,
// which callers decide whether to skip based on grammatical context).
func (p *Parser) skipInsignificant() {
	for {
		k := p.curRaw().Kind
		if k == token.SPACE || k == token.COMMENT {
			p.pos++
			continue
		}
		break
	}
}

// cur returns the current significant token (SPACE/COMMENT skipped).
func (p *Parser) cur() token.Token {
	p.skipInsignificant()
	return p.curRaw()
}

// curIs reports whether the current significant token has the given kind.
func (p *Parser) curIs(k token.Kind) bool {
	return p.cur().Kind == k
}

// advance returns the current significant token and moves past it.
func (p *Parser) advance() token.Token {
	tok := p.cur()
	p.pos++
	return tok
}

// skipNewlines skips NEWLINE, SPACE and COMMENT tokens (used where the
// grammar treats newlines as pure whitespace: inside groupings/associations,
// after "else", between statements).
func (p *Parser) skipNewlines() {
	for {
		k := p.cur().Kind
		if k == token.NEWLINE {
			p.pos++
			continue
		}
		break
	}
}

// expect consumes the current token if it has kind k, else returns a
// parser Error.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.cur()
	if tok.Kind != k {
		return token.Token{}, newError(tok.Position, "expected %s, got %s %q", k, tok.Kind, tok.Lexeme)
	}
	p.pos++
	return tok, nil
}

// expectStatementEnd requires a NEWLINE or EOF terminator
// §4.3.1: "Every top-level statement ... must be terminated by a newline or
// end-of-input."
func (p *Parser) expectStatementEnd() error {
	tok := p.cur()
	switch tok.Kind {
	case token.NEWLINE, token.EOF:
		if tok.Kind == token.NEWLINE {
			p.pos++
		}
		return nil
	case token.RBRACE:
		// A block's closing brace also terminates the preceding statement.
		return nil
	default:
		return newError(tok.Position, "expected newline after statement, got %s %q", tok.Kind, tok.Lexeme)
	}
}
