package ast

import (
	"fmt"
	"strings"
)

// Dump renders a Node as an s-expression-ish tree, used by `breeze ast` and
// diffed in parser tests, via a recursive dumper over the full node set.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dump(b *strings.Builder, n Node, depth int) {
	indent(b, depth)
	if n == nil {
		b.WriteString("<nil>\n")
		return
	}
	switch v := n.(type) {
	case *Program:
		b.WriteString("Program\n")
		for _, s := range v.Stmts {
			dump(b, s, depth+1)
		}
	case *Null:
		b.WriteString("Null\n")
	case *Literal:
		fmt.Fprintf(b, "Literal(%s)\n", v.Token.Lexeme)
	case *Identifier:
		fmt.Fprintf(b, "Identifier(%s)\n", v.Name)
	case *PrefixUnary:
		fmt.Fprintf(b, "PrefixUnary(%s)\n", v.Op)
		dump(b, v.Operand, depth+1)
	case *SuffixUnary:
		fmt.Fprintf(b, "SuffixUnary(%s)\n", v.Op)
		dump(b, v.Operand, depth+1)
	case *Binary:
		fmt.Fprintf(b, "Binary(%s)\n", v.Op)
		dump(b, v.Left, depth+1)
		dump(b, v.Right, depth+1)
	case *Grouping:
		fmt.Fprintf(b, "Grouping(%s)\n", v.Opening)
		for _, item := range v.Items {
			dump(b, item, depth+1)
		}
	case *GroupingApplication:
		b.WriteString("GroupingApplication\n")
		dump(b, v.Callee, depth+1)
		dump(b, v.Grouping, depth+1)
	case *Association:
		b.WriteString("Association\n")
		for _, e := range v.Entries {
			indent(b, depth+1)
			b.WriteString("Entry\n")
			if e.Key != nil {
				dump(b, e.Key, depth+2)
			} else {
				dump(b, e.DynamicKey, depth+2)
			}
			dump(b, e.Value, depth+2)
		}
	case *ExpressionStmt:
		b.WriteString("ExpressionStmt\n")
		dump(b, v.Expr, depth+1)
	case *Block:
		b.WriteString("Block\n")
		for _, s := range v.Stmts {
			dump(b, s, depth+1)
		}
	case *VarDecl:
		fmt.Fprintf(b, "VarDecl(%s)\n", v.Name)
		if v.Init != nil {
			dump(b, v.Init, depth+1)
		}
	case *ConstDecl:
		fmt.Fprintf(b, "ConstDecl(%s)\n", v.Name)
		dump(b, v.Init, depth+1)
	case *If:
		b.WriteString("If\n")
		dump(b, v.Cond, depth+1)
		dump(b, v.Then, depth+1)
		if v.Else != nil {
			dump(b, v.Else, depth+1)
		}
	case *While:
		b.WriteString("While\n")
		dump(b, v.Cond, depth+1)
		dump(b, v.Body, depth+1)
	case *For:
		b.WriteString("For\n")
		dump(b, v.Init, depth+1)
		dump(b, v.Cond, depth+1)
		dump(b, v.Incr, depth+1)
		dump(b, v.Body, depth+1)
	case *Break:
		b.WriteString("Break\n")
	case *Continue:
		b.WriteString("Continue\n")
	case *FunctionDecl:
		fmt.Fprintf(b, "FunctionDecl(%s)\n", v.Name)
		for _, p := range v.Params {
			indent(b, depth+1)
			fmt.Fprintf(b, "Param(%s)\n", p.Name)
			if p.Default != nil {
				dump(b, p.Default, depth+2)
			}
		}
		dump(b, v.Body, depth+1)
	case *Return:
		b.WriteString("Return\n")
		if v.Value != nil {
			dump(b, v.Value, depth+1)
		}
	case *Import:
		if v.Star {
			fmt.Fprintf(b, "Import(*, from=%s)\n", v.Path)
		} else {
			fmt.Fprintf(b, "Import(%s, from=%s)\n", strings.Join(v.Names, ","), v.Path)
		}
	case *Export:
		b.WriteString("Export\n")
		dump(b, v.Decl, depth+1)
	default:
		fmt.Fprintf(b, "%T\n", v)
	}
}
