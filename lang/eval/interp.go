package eval

import (
	"fmt"
	"io"

	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/token"
)

// Interp walks a typed *ast.Program against an Environment, the tree-walking
// counterpart of the parser's static pass: it never re-checks types (the
// parser already proved every operation is well-typed or deferred to
// runtime via Any), it only dispatches on the dynamic Go type of the
// Values it produces.
type Interp struct {
	Env *Environment
	out io.Writer
}

// NewInterp creates an Interp with a fresh Environment, seeded with the
// standard builtins (print, println, len) writing to w. The `print`
// statement form (as opposed to the built-in of the same name) writes to
// the same w directly, per §6's "they share an output channel".
func NewInterp(w io.Writer) *Interp {
	it := &Interp{Env: NewEnvironment(), out: w}
	builtins, _ := Builtins(w)
	for _, b := range builtins {
		// global scope starts empty, so Define cannot fail here.
		_ = it.Env.Global.Define(b.Name, b)
	}
	return it
}

// RuntimeError wraps an evaluation failure with the span of the expression
// or statement that raised it, per §7's error taxonomy.
type RuntimeError struct {
	Span token.Span
	Err  error
}

func (e *RuntimeError) Error() string { return e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

func (it *Interp) fail(span token.Span, err error) error {
	return &RuntimeError{Span: span, Err: err}
}

// flow is the control-flow signal threaded through statement execution: an
// EarlyReturn (§4.5/§7) is not an error, it unwinds exactly to the nearest
// call frame.
type flow struct {
	isReturn bool
	value    Value
}

var noFlow = flow{}

// Run executes every top-level declaration/statement of prog against the
// Interp's global scope, in source order. It returns the value of the last
// top-level expression-statement executed, even when other statements follow
// it (Null if prog has no top-level expression statement), for the REPL and
// -i driver to print as
// the program's "result-yielding output" (§6).
func (it *Interp) Run(prog *ast.Program) (Value, error) {
	var last Value = Null{}
	for _, stmt := range prog.Decls {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			v, err := it.evalExpr(it.Env.Global, es.X)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		fl, err := it.execStmt(it.Env.Global, stmt)
		if err != nil {
			return nil, err
		}
		if fl.isReturn {
			// a `ret` outside of any function; the parser rejects this
			// statically, so this only happens if eval runs a program that
			// failed to parse. Treat it as the program's result and stop.
			return fl.value, nil
		}
	}
	return last, nil
}

func (it *Interp) execStmt(scope *Scope, stmt ast.Stmt) (flow, error) {
	switch n := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.evalExpr(scope, n.X)
		return noFlow, err

	case *ast.PrintStmt:
		v, err := it.evalExpr(scope, n.X)
		if err != nil {
			return noFlow, err
		}
		fmt.Fprint(it.out, v.String())
		return noFlow, nil

	case *ast.VarStmt:
		var v Value = Null{}
		if n.Init != nil {
			var err error
			v, err = it.evalExpr(scope, n.Init)
			if err != nil {
				return noFlow, err
			}
		}
		if err := scope.Define(n.Name.Name.Name, v); err != nil {
			return noFlow, it.fail(n.Span(), err)
		}
		return noFlow, nil

	case *ast.BlockStmt:
		return it.execBlock(scope, n)

	case *ast.IfStmt:
		cond, err := it.evalExpr(scope, n.Cond)
		if err != nil {
			return noFlow, err
		}
		b, err := it.toBool(n.Cond.Span(), cond)
		if err != nil {
			return noFlow, err
		}
		if b {
			return it.execBlock(scope, n.Then)
		}
		if n.Else != nil {
			return it.execStmt(scope, n.Else)
		}
		return noFlow, nil

	case *ast.UntilStmt:
		for {
			cond, err := it.evalExpr(scope, n.Cond)
			if err != nil {
				return noFlow, err
			}
			b, err := it.toBool(n.Cond.Span(), cond)
			if err != nil {
				return noFlow, err
			}
			if b {
				return noFlow, nil
			}
			fl, err := it.execBlock(scope, n.Body)
			if err != nil || fl.isReturn {
				return fl, err
			}
		}

	case *ast.ReturnStmt:
		v := Value(Null{})
		if n.Value != nil {
			var err error
			v, err = it.evalExpr(scope, n.Value)
			if err != nil {
				return noFlow, err
			}
		}
		return flow{isReturn: true, value: v}, nil

	case *ast.FuncStmt:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name.Name
		}
		fn := &Function{Name: n.Name.Name, Params: params, Body: n.Body, Closure: scope}
		if err := scope.Define(n.Name.Name, fn); err != nil {
			return noFlow, it.fail(n.Span(), err)
		}
		return noFlow, nil

	case *ast.ClassStmt:
		cls := &Class{Name: n.Name.Name, Methods: map[string]*Function{}}
		for _, m := range n.Methods {
			params := make([]string, len(m.Params))
			for i, p := range m.Params {
				params[i] = p.Name.Name
			}
			cls.Methods[m.Name.Name] = &Function{Name: m.Name.Name, Params: params, Body: m.Body, Closure: scope}
		}
		if err := scope.Define(n.Name.Name, cls); err != nil {
			return noFlow, it.fail(n.Span(), err)
		}
		return noFlow, nil

	case *ast.BadStmt:
		return noFlow, nil

	default:
		return noFlow, it.fail(stmt.Span(), fmt.Errorf("eval: unhandled statement %T", stmt))
	}
}

// execBlock runs stmts in a fresh child scope of parent, per §4.5's
// begin_scope-on-block-entry rule.
func (it *Interp) execBlock(parent *Scope, block *ast.BlockStmt) (flow, error) {
	inner := NewScope(parent)
	for _, s := range block.Stmts {
		fl, err := it.execStmt(inner, s)
		if err != nil || fl.isReturn {
			return fl, err
		}
	}
	return noFlow, nil
}

func (it *Interp) toBool(span token.Span, v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, it.fail(span, &UnexpectedValueTypeError{Expected: "bool", Actual: v.Type()})
	}
	return bool(b), nil
}
