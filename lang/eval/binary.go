package eval

import (
	"fmt"

	"github.com/nakala-lang/nakala/lang/ast"
	"github.com/nakala-lang/nakala/lang/token"
)

func (it *Interp) evalBinary(scope *Scope, n *ast.BinaryExpr) (Value, error) {
	lv, err := it.evalExpr(scope, n.Left)
	if err != nil {
		return nil, err
	}
	rv, err := it.evalExpr(scope, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.EQEQ:
		return Bool(valuesEqual(lv, rv)), nil
	case token.BANGEQ:
		return Bool(!valuesEqual(lv, rv)), nil
	case token.PLUS:
		return it.evalAdd(n, lv, rv)
	case token.MINUS, token.STAR, token.SLASH:
		return it.evalArith(n, lv, rv)
	case token.LT, token.LE, token.GT, token.GE:
		return it.evalCompare(n, lv, rv)
	default:
		return nil, it.fail(n.Span(), fmt.Errorf("eval: unsupported binary operator %s", n.Op))
	}
}

func (it *Interp) evalAdd(n *ast.BinaryExpr, lv, rv Value) (Value, error) {
	switch l := lv.(type) {
	case Int:
		switch r := rv.(type) {
		case Int:
			return l + r, nil
		case Float:
			return Float(l) + r, nil
		case String:
			return String(l.String() + string(r)), nil
		}
	case Float:
		switch r := rv.(type) {
		case Int:
			return l + Float(r), nil
		case Float:
			return l + r, nil
		}
	case String:
		switch r := rv.(type) {
		case String:
			return l + r, nil
		case Int:
			return String(string(l) + r.String()), nil
		}
	case *List:
		if r, ok := rv.(*List); ok {
			ldata, _ := it.Env.GetList(l.id)
			rdata, _ := it.Env.GetList(r.id)
			elems := make([]Value, 0, len(ldata.Elems)+len(rdata.Elems))
			elems = append(elems, ldata.Elems...)
			elems = append(elems, rdata.Elems...)
			return it.Env.NewList(elems), nil
		}
	}
	return nil, it.fail(n.Span(), &MismatchedTypesError{Expected: lv.Type(), Actual: rv.Type()})
}

func (it *Interp) evalArith(n *ast.BinaryExpr, lv, rv Value) (Value, error) {
	li, lIsInt := lv.(Int)
	ri, rIsInt := rv.(Int)
	lf, lIsFloat := asFloat(lv)
	rf, rIsFloat := asFloat(rv)

	if !lIsFloat || !rIsFloat {
		return nil, it.fail(n.Span(), &MismatchedTypesError{Expected: "int or float", Actual: lv.Type() + "/" + rv.Type()})
	}

	switch n.Op {
	case token.MINUS:
		if lIsInt && rIsInt {
			return li - ri, nil
		}
		return Float(lf - rf), nil
	case token.STAR:
		if lIsInt && rIsInt {
			return li * ri, nil
		}
		return Float(lf * rf), nil
	case token.SLASH:
		if rf == 0 {
			return nil, it.fail(n.Span(), &DivideByZeroError{})
		}
		if lIsInt && rIsInt {
			if li%ri == 0 {
				return li / ri, nil
			}
			return Float(lf / rf), nil
		}
		return Float(lf / rf), nil
	default:
		return nil, it.fail(n.Span(), fmt.Errorf("eval: unsupported arithmetic operator %s", n.Op))
	}
}

func (it *Interp) evalCompare(n *ast.BinaryExpr, lv, rv Value) (Value, error) {
	lf, lok := asFloat(lv)
	rf, rok := asFloat(rv)
	if !lok || !rok {
		return nil, it.fail(n.Span(), &MismatchedTypesError{Expected: "int or float", Actual: lv.Type() + "/" + rv.Type()})
	}
	switch n.Op {
	case token.LT:
		return Bool(lf < rf), nil
	case token.LE:
		return Bool(lf <= rf), nil
	case token.GT:
		return Bool(lf > rf), nil
	case token.GE:
		return Bool(lf >= rf), nil
	default:
		return nil, it.fail(n.Span(), fmt.Errorf("eval: unsupported comparison operator %s", n.Op))
	}
}

func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	default:
		return 0, false
	}
}

// valueRank orders the variants of Value for the total-order equality
// relation of §4.5/§9: Bool < Int < Float < String < Instance < Null,
// with every other kind (List, Function, Class, Builtin) ranked after Null
// and compared only to its own kind.
func valueRank(v Value) int {
	switch v.(type) {
	case Bool:
		return 0
	case Int:
		return 1
	case Float:
		return 2
	case String:
		return 3
	case *Instance:
		return 4
	case Null:
		return 5
	default:
		return 6
	}
}

// valuesEqual implements the total ordering across variants chosen by §9:
// equality holds only for values of the same variant with equal contents;
// values of different variants (including Int vs Float) are never equal,
// even when numerically the same.
func valuesEqual(lv, rv Value) bool {
	if valueRank(lv) != valueRank(rv) {
		return false
	}
	switch l := lv.(type) {
	case Bool:
		return l == rv.(Bool)
	case Int:
		return l == rv.(Int)
	case Float:
		return l == rv.(Float)
	case String:
		return l == rv.(String)
	case *Instance:
		return l == rv.(*Instance)
	case Null:
		return true
	default:
		return lv == rv
	}
}
