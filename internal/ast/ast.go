// Package ast defines the abstract syntax tree produced by the parser: one
// Go struct per expression/statement variant, tagged by its own type.
package ast

import "github.com/breeze-lang/breeze/internal/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// Null is the sentinel expression for an absent optional expression (e.g. an
// elided for-loop clause needs an expression node where the grammar requires
// one).
type Null struct {
	Position token.Position
}

func (n *Null) Pos() token.Position { return n.Position }
func (*Null) exprNode()             {}

// Literal wraps a NUMBER or STRING token (or true/false/null keyword token).
type Literal struct {
	Position token.Position
	Token    token.Token
}

func (n *Literal) Pos() token.Position { return n.Position }
func (*Literal) exprNode()             {}

// Identifier is a bare name reference.
type Identifier struct {
	Position token.Position
	Token    token.Token
	Name     string
}

func (n *Identifier) Pos() token.Position { return n.Position }
func (*Identifier) exprNode()             {}

// PrefixUnary is a prefix-only (!, ~) or prefix-form affix (++, --) unary op.
type PrefixUnary struct {
	Position token.Position
	Op       token.Kind
	Operand  Expr
}

func (n *PrefixUnary) Pos() token.Position { return n.Position }
func (*PrefixUnary) exprNode()             {}

// SuffixUnary is the suffix form of an affix operator (x++, x--).
type SuffixUnary struct {
	Position token.Position
	Op       token.Kind
	Operand  Expr
}

func (n *SuffixUnary) Pos() token.Position { return n.Position }
func (*SuffixUnary) exprNode()             {}

// Binary is any binary operator, including assignment and compound-assign.
type Binary struct {
	Position token.Position
	Op       token.Kind
	Left     Expr
	Right    Expr
}

func (n *Binary) Pos() token.Position { return n.Position }
func (*Binary) exprNode()             {}

// Grouping is a comma-separated list in "(" or "[", used as a literal
// (tuple or list) when it is not applied to a preceding primary.
type Grouping struct {
	Position token.Position
	Opening  token.Kind // token.LPAREN or token.LBRACKET
	Items    []Expr
}

func (n *Grouping) Pos() token.Position { return n.Position }
func (*Grouping) exprNode()             {}

// GroupingApplication is a Grouping applied to a preceding primary: a call
// (opening "(") or an index/subscript (opening "[").
type GroupingApplication struct {
	Position token.Position
	Callee   Expr
	Grouping *Grouping
}

func (n *GroupingApplication) Pos() token.Position { return n.Position }
func (*GroupingApplication) exprNode()             {}

// AssociationEntry is one "key: value" pair of an object literal. Key is nil
// when the entry uses a bracketed dynamic key expression, in which case
// DynamicKey holds that expression.
type AssociationEntry struct {
	Key        Expr // Literal or Identifier (bare key), nil if DynamicKey set
	DynamicKey Expr // bracketed expression, nil if Key set
	Value      Expr
}

// Association is an object-literal expression "{ k: v, ... }".
type Association struct {
	Position token.Position
	Entries  []AssociationEntry
}

func (n *Association) Pos() token.Position { return n.Position }
func (*Association) exprNode()             {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Position token.Position
	Expr     Expr
}

func (n *ExpressionStmt) Pos() token.Position { return n.Position }
func (*ExpressionStmt) stmtNode()             {}

// Block is a brace-delimited sequence of statements introducing a new scope.
type Block struct {
	Position token.Position
	Stmts    []Stmt
}

func (n *Block) Pos() token.Position { return n.Position }
func (*Block) stmtNode()             {}

// VarDecl declares a mutable (Transform) binding.
type VarDecl struct {
	Position token.Position
	Name     string
	Init     Expr // nil if no initializer
}

func (n *VarDecl) Pos() token.Position { return n.Position }
func (*VarDecl) stmtNode()             {}

// ConstDecl declares a Readable binding; Init is required.
type ConstDecl struct {
	Position token.Position
	Name     string
	Init     Expr
}

func (n *ConstDecl) Pos() token.Position { return n.Position }
func (*ConstDecl) stmtNode()             {}

// If is a conditional with an optional else branch (itself a Stmt, making
// "else if" arise naturally from an If nested in the Else slot).
type If struct {
	Position token.Position
	Cond     Expr
	Then     Stmt
	Else     Stmt // nil if absent
}

func (n *If) Pos() token.Position { return n.Position }
func (*If) stmtNode()             {}

// While is a pre-tested loop.
type While struct {
	Position token.Position
	Cond     Expr
	Body     Stmt
}

func (n *While) Pos() token.Position { return n.Position }
func (*While) stmtNode()             {}

// For is a C-style three-clause loop; Init/Incr are statements, Cond is an
// expression evaluated before each iteration.
type For struct {
	Position token.Position
	Init     Stmt
	Cond     Expr
	Incr     Stmt
	Body     Stmt
}

func (n *For) Pos() token.Position { return n.Position }
func (*For) stmtNode()             {}

// Break exits the nearest enclosing loop.
type Break struct {
	Position token.Position
}

func (n *Break) Pos() token.Position { return n.Position }
func (*Break) stmtNode()             {}

// Continue skips to the next iteration of the nearest enclosing loop.
type Continue struct {
	Position token.Position
}

func (n *Continue) Pos() token.Position { return n.Position }
func (*Continue) stmtNode()             {}

// Param is one parameter of a function declaration; Default is nil for a
// required parameter.
type Param struct {
	Name    string
	Default Expr
}

// FunctionDecl declares a named function, binding a Function value in the
// current scope with the current Stack as its closure.
type FunctionDecl struct {
	Position token.Position
	Name     string
	Params   []Param
	Body     *Block
}

func (n *FunctionDecl) Pos() token.Position { return n.Position }
func (*FunctionDecl) stmtNode()             {}

// Return exits the active call frame with an optional value.
type Return struct {
	Position token.Position
	Value    Expr // nil if bare "return"
}

func (n *Return) Pos() token.Position { return n.Position }
func (*Return) stmtNode()             {}

// Import brings bindings from another module's exports into scope.
// Star indicates a "*" selector; Names holds the selector's identifiers
// otherwise. Path is the raw string literal naming the target module.
type Import struct {
	Position token.Position
	Path     string
	Star     bool
	Names    []string
}

func (n *Import) Pos() token.Position { return n.Position }
func (*Import) stmtNode()             {}

// Export wraps exactly one declaration statement (ConstDecl or
// FunctionDecl) and appends its resulting Container to the module's Exports.
type Export struct {
	Position token.Position
	Decl     Stmt
}

func (n *Export) Pos() token.Position { return n.Position }
func (*Export) stmtNode()             {}

// Program is the root of a parsed module: a flat sequence of top-level
// statements.
type Program struct {
	Position token.Position
	Stmts    []Stmt
}

func (n *Program) Pos() token.Position { return n.Position }
func (*Program) stmtNode()             {}
