package formula

import (
	"strings"
)

// Node is an expression tree node. The set of implementations is closed;
// consumers switch over the concrete types.
type Node interface {
	node()
}

// NumberLiteral is a run of decimal digits.
type NumberLiteral struct {
	Digits string
}

// CellRef is a well-formed reference as written (case preserved).
type CellRef struct {
	Ref string
}

// Parenthesized wraps a grouped sub-expression.
type Parenthesized struct {
	Inner Node
}

// UnarySign is a prefix + or -.
type UnarySign struct {
	Op      string
	Operand Node
}

// Multiplicative is one of * / mod div. Op keeps the source spelling, so
// keyword operators may arrive in any case.
type Multiplicative struct {
	Op          string
	Left, Right Node
}

// Additive is + or -.
type Additive struct {
	Op          string
	Left, Right Node
}

// FunctionCall applies a named function to exactly one argument.
type FunctionCall struct {
	Name string
	Arg  Node
}

// InvalidRef is text shaped like a reference that names no cell, such as
// "A0" or "B007". It parses cleanly and fails at evaluation.
type InvalidRef struct {
	Ref string
}

func (*NumberLiteral) node()  {}
func (*CellRef) node()        {}
func (*Parenthesized) node()  {}
func (*UnarySign) node()      {}
func (*Multiplicative) node() {}
func (*Additive) node()       {}
func (*FunctionCall) node()   {}
func (*InvalidRef) node()     {}

// Format renders a tree with every binary and unary operation fully
// parenthesized, which makes precedence and associativity visible.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("<nil>")
	case *NumberLiteral:
		b.WriteString(n.Digits)
	case *CellRef:
		b.WriteString(n.Ref)
	case *InvalidRef:
		b.WriteString("!" + n.Ref)
	case *Parenthesized:
		format(b, n.Inner)
	case *UnarySign:
		b.WriteString("(" + n.Op)
		format(b, n.Operand)
		b.WriteString(")")
	case *Multiplicative:
		formatBinary(b, n.Op, n.Left, n.Right)
	case *Additive:
		formatBinary(b, n.Op, n.Left, n.Right)
	case *FunctionCall:
		b.WriteString(n.Name + "(")
		format(b, n.Arg)
		b.WriteString(")")
	}
}

func formatBinary(b *strings.Builder, op string, left, right Node) {
	b.WriteString("(")
	format(b, left)
	b.WriteString(" " + op + " ")
	format(b, right)
	b.WriteString(")")
}
