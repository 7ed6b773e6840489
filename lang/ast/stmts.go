package ast

import (
	"github.com/nakala-lang/nakala/lang/types"
)

// ExprStmt is an expression evaluated for its side effect, its value
// discarded.
type ExprStmt struct {
	Base
	X Expr
}

func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }

// PrintStmt is the `print expr;` statement form (distinct from the
// `print`/`println` built-in functions, which share the same output
// channel).
type PrintStmt struct {
	Base
	X Expr
}

func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.X) }

// VarStmt is `let name[: type] [= init];`.
type VarStmt struct {
	Base
	Name Binding
	Init Expr // nil if no initializer; defaults to Null at evaluation
}

func (n *VarStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}

// BlockStmt is `{ stmt* }`.
type BlockStmt struct {
	Base
	Stmts []Stmt
}

func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// IfStmt is `if (cond) then [else elseBranch]`.
type IfStmt struct {
	Base
	Cond Expr
	Then *BlockStmt
	Else Stmt // *BlockStmt, *IfStmt (else-if chain), or nil
}

func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

// UntilStmt is `until (cond) body`, looping while cond is false.
type UntilStmt struct {
	Base
	Cond Expr
	Body *BlockStmt
}

func (n *UntilStmt) Walk(v Visitor) { Walk(v, n.Cond); Walk(v, n.Body) }

// ReturnStmt is `ret [expr];`.
type ReturnStmt struct {
	Base
	Value Expr // nil means return Null
}

func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}

// FuncStmt is `func name(params) [-> type] body`.
type FuncStmt struct {
	Base
	Name       Ident
	Params     []Binding
	ReturnType types.Type
	Body       *BlockStmt
}

func (n *FuncStmt) Walk(v Visitor) { Walk(v, n.Body) }

// ClassStmt is `class name { func_decl* }`.
type ClassStmt struct {
	Base
	Name    Ident
	Methods []*FuncStmt
}

func (n *ClassStmt) Walk(v Visitor) {
	for _, m := range n.Methods {
		Walk(v, m)
	}
}

// BadStmt is inserted by the parser in place of a statement it failed to
// parse, after resynchronizing to the next statement boundary.
type BadStmt struct {
	Base
}

func (n *BadStmt) Walk(Visitor) {}

var (
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*PrintStmt)(nil)
	_ Stmt = (*VarStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*UntilStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*FuncStmt)(nil)
	_ Stmt = (*ClassStmt)(nil)
	_ Stmt = (*BadStmt)(nil)
)
