package ast

import (
	"github.com/nakala-lang/nakala/lang/token"
)

// LiteralExpr is a bool, int, float, string or null literal.
type LiteralExpr struct {
	ExprBase
	Kind  token.Token // INT, FLOAT, STRING, TRUE, FALSE, NULLKW
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

func (n *LiteralExpr) Walk(Visitor) {}

// UnaryExpr is `!x` or `-x`.
type UnaryExpr struct {
	ExprBase
	Op      token.Token
	OpPos   token.Pos
	Operand Expr
}

func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Operand) }

// BinaryExpr is an arithmetic or comparison operator application.
type BinaryExpr struct {
	ExprBase
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
}

func (n *BinaryExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }

// LogicalExpr is `and`/`or`, kept distinct from BinaryExpr because it
// short-circuits.
type LogicalExpr struct {
	ExprBase
	Left  Expr
	Op    token.Token
	OpPos token.Pos
	Right Expr
}

func (n *LogicalExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }

// GroupingExpr is a parenthesized expression; transparent to evaluation,
// kept only so the span of the parens is preserved.
type GroupingExpr struct {
	ExprBase
	Inner Expr
}

func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Inner) }

// VariableExpr references a name bound in the symbol table.
type VariableExpr struct {
	ExprBase
	Name Ident
}

func (n *VariableExpr) Walk(Visitor) {}

// ThisExpr references the implicit `this` binding inside a method body.
type ThisExpr struct {
	ExprBase
}

func (n *ThisExpr) Walk(Visitor) {}

// AssignExpr is `target = value`. Per the grammar, target must resolve to a
// variable; property and index assignment have their own node kinds
// (SetExpr, IndexSetExpr).
type AssignExpr struct {
	ExprBase
	Name  Ident
	Value Expr
}

func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Value) }

// CallExpr is `callee(args...)`. Callee is any expression whose static type
// is callable, typically a *VariableExpr (a function or class bound to a
// name) or a *GetExpr (a bound method read off an instance); the grammar's
// `call` production chains `.name` and `(args)` suffixes onto the same
// primary, which is how `c.get()` parses.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
	RParen token.Pos
}

func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// GetExpr is `receiver.name`, a property or bound-method read.
type GetExpr struct {
	ExprBase
	Receiver Expr
	Name     Ident
}

func (n *GetExpr) Walk(v Visitor) { Walk(v, n.Receiver) }

// SetExpr is `receiver.name = value`, a property write.
type SetExpr struct {
	ExprBase
	Receiver Expr
	Name     Ident
	Value    Expr
}

func (n *SetExpr) Walk(v Visitor) { Walk(v, n.Receiver); Walk(v, n.Value) }

// IndexGetExpr is `list[index]`.
type IndexGetExpr struct {
	ExprBase
	List   Expr
	Index  Expr
	RBrack token.Pos
}

func (n *IndexGetExpr) Walk(v Visitor) { Walk(v, n.List); Walk(v, n.Index) }

// IndexSetExpr is `list[index] = value`.
type IndexSetExpr struct {
	ExprBase
	List  Expr
	Index Expr
	Value Expr
}

func (n *IndexSetExpr) Walk(v Visitor) { Walk(v, n.List); Walk(v, n.Index); Walk(v, n.Value) }

// ListExpr is a `[e0, e1, ...]` literal.
type ListExpr struct {
	ExprBase
	Elems []Expr
}

func (n *ListExpr) Walk(v Visitor) {
	for _, e := range n.Elems {
		Walk(v, e)
	}
}

// BadExpr is a placeholder inserted where the parser could not make sense
// of an expression, so that parsing can resynchronize at statement
// boundaries and report more than the first error.
type BadExpr struct {
	ExprBase
}

func (n *BadExpr) Walk(Visitor) {}

var (
	_ Expr = (*LiteralExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*LogicalExpr)(nil)
	_ Expr = (*GroupingExpr)(nil)
	_ Expr = (*VariableExpr)(nil)
	_ Expr = (*ThisExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*GetExpr)(nil)
	_ Expr = (*SetExpr)(nil)
	_ Expr = (*IndexGetExpr)(nil)
	_ Expr = (*IndexSetExpr)(nil)
	_ Expr = (*ListExpr)(nil)
	_ Expr = (*BadExpr)(nil)
)
