package eval

import (
	"fmt"

	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/token"
)

func (it *Interp) evalExpr(scope *Scope, expr ast.Expr) (Value, error) {
	switch n := expr.(type) {
	case *ast.LiteralExpr:
		return it.evalLiteral(n), nil

	case *ast.UnaryExpr:
		return it.evalUnary(scope, n)

	case *ast.BinaryExpr:
		return it.evalBinary(scope, n)

	case *ast.LogicalExpr:
		return it.evalLogical(scope, n)

	case *ast.GroupingExpr:
		return it.evalExpr(scope, n.Inner)

	case *ast.VariableExpr:
		v, err := scope.Get(n.Name.Name)
		if err != nil {
			return nil, it.fail(n.Span(), err)
		}
		return v, nil

	case *ast.ThisExpr:
		v, err := scope.Get("this")
		if err != nil {
			return nil, it.fail(n.Span(), err)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := it.evalExpr(scope, n.Value)
		if err != nil {
			return nil, err
		}
		if err := scope.Assign(n.Name.Name, v); err != nil {
			return nil, it.fail(n.Span(), err)
		}
		return Null{}, nil

	case *ast.CallExpr:
		return it.evalCall(scope, n)

	case *ast.GetExpr:
		return it.evalGet(scope, n)

	case *ast.SetExpr:
		return it.evalSet(scope, n)

	case *ast.IndexGetExpr:
		return it.evalIndexGet(scope, n)

	case *ast.IndexSetExpr:
		return it.evalIndexSet(scope, n)

	case *ast.ListExpr:
		elems := make([]Value, len(n.Elems))
		for i, e := range n.Elems {
			v, err := it.evalExpr(scope, e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return it.Env.NewList(elems), nil

	case *ast.BadExpr:
		return Null{}, nil

	default:
		return nil, it.fail(expr.Span(), fmt.Errorf("eval: unhandled expression %T", expr))
	}
}

func (it *Interp) evalLiteral(n *ast.LiteralExpr) Value {
	switch n.Kind {
	case token.TRUE, token.FALSE:
		return Bool(n.Bool)
	case token.INT:
		return Int(n.Int)
	case token.FLOAT:
		return Float(n.Float)
	case token.STRING:
		return String(n.Str)
	case token.NULLKW:
		return Null{}
	default:
		return Null{}
	}
}

func (it *Interp) evalUnary(scope *Scope, n *ast.UnaryExpr) (Value, error) {
	v, err := it.evalExpr(scope, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.MINUS:
		switch x := v.(type) {
		case Int:
			return -x, nil
		case Float:
			return -x, nil
		default:
			return nil, it.fail(n.Span(), &MismatchedTypesError{Expected: "int or float", Actual: v.Type()})
		}
	case token.BANG, token.NOT:
		b, err := it.toBool(n.Operand.Span(), v)
		if err != nil {
			return nil, err
		}
		return Bool(!b), nil
	default:
		return nil, it.fail(n.Span(), fmt.Errorf("eval: unsupported unary operator %s", n.Op))
	}
}

func (it *Interp) evalLogical(scope *Scope, n *ast.LogicalExpr) (Value, error) {
	lv, err := it.evalExpr(scope, n.Left)
	if err != nil {
		return nil, err
	}
	lb, err := it.toBool(n.Left.Span(), lv)
	if err != nil {
		return nil, err
	}

	if n.Op == token.OR && lb {
		return Bool(true), nil
	}
	if n.Op == token.AND && !lb {
		return Bool(false), nil
	}

	rv, err := it.evalExpr(scope, n.Right)
	if err != nil {
		return nil, err
	}
	rb, err := it.toBool(n.Right.Span(), rv)
	if err != nil {
		return nil, err
	}
	return Bool(rb), nil
}
