// Package ast defines the typed abstract syntax tree produced by the
// parser: every Expr carries the Type assigned to it during parsing, and
// every node carries the Span of source text it was parsed from.
package ast

import (
	"fmt"

	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

// Node is implemented by every AST node.
type Node interface {
	// Span reports the source range of the node.
	Span() token.Span

	// Walk enters each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr is a typed expression node.
type Expr interface {
	Node
	// Type reports the static type assigned to this expression by the
	// parser/type-checker.
	Type() types.Type
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Ident is a name with its source span.
type Ident struct {
	Name string
	Pos  token.Span
}

// Binding is a parameter or variable declaration: a name with a static
// type, the type either declared explicitly or refined from an
// initializer.
type Binding struct {
	Name Ident
	Type types.Type
}

// Program is the root of a parsed file or REPL input: a flat sequence of
// top-level declarations and statements.
type Program struct {
	Decls []Stmt
	Span_ token.Span
}

func (p *Program) Span() token.Span { return p.Span_ }
func (p *Program) Walk(v Visitor) {
	for _, d := range p.Decls {
		Walk(v, d)
	}
}

// Base is embedded by every statement node to supply its Span method.
type Base struct {
	Span_ token.Span
}

func (b Base) Span() token.Span { return b.Span_ }
func (Base) stmtNode()          {}

// ExprBase is embedded by every expression node to supply its Span and
// Type methods.
type ExprBase struct {
	Base
	Ty types.Type
}

func (e ExprBase) Type() types.Type { return e.Ty }
func (ExprBase) exprNode()          {}

var _ fmt.Stringer = Ident{}

func (i Ident) String() string { return i.Name }
