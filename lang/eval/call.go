package eval

import (
	"github.com/nakala-lang/nakala/lang/ast"
)

func (it *Interp) evalCall(scope *Scope, n *ast.CallExpr) (Value, error) {
	callee, err := it.evalExpr(scope, n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := it.evalExpr(scope, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *Function:
		return it.callFunction(n, fn, args)
	case *Class:
		return it.instantiate(n, fn, args)
	case *Builtin:
		if len(args) != fn.Arity {
			return nil, it.fail(n.Span(), &ArityMismatchError{Expected: fn.Arity, Got: len(args)})
		}
		v, err := fn.Fn(args)
		if err != nil {
			return nil, it.fail(n.Span(), err)
		}
		return v, nil
	default:
		return nil, it.fail(n.Callee.Span(), &UncallableError{Actual: callee.Type()})
	}
}

func (it *Interp) callFunction(n *ast.CallExpr, fn *Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, it.fail(n.Span(), &ArityMismatchError{Expected: len(fn.Params), Got: len(args)})
	}
	callScope := NewScope(fn.Closure)
	for i, p := range fn.Params {
		// arity already checked; Define cannot fail on a fresh scope with
		// distinct parameter names (the parser rejects duplicate params at
		// the symtab level when the function was declared).
		_ = callScope.Define(p, args[i])
	}
	fl, err := it.execBlock(callScope, fn.Body)
	if err != nil {
		return nil, err
	}
	if fl.isReturn {
		return fl.value, nil
	}
	return Null{}, nil
}

func (it *Interp) instantiate(n *ast.CallExpr, cls *Class, args []Value) (Value, error) {
	inst := it.Env.NewInstance(cls)
	ctor, ok := cls.Methods["constructor"]
	if !ok {
		return inst, nil
	}
	bound := it.bindThis(ctor, inst)
	if _, err := it.callFunction(n, bound, args); err != nil {
		return nil, err
	}
	return inst, nil
}

// bindThis returns a copy of fn whose closure is a fresh scope, parented at
// fn's original closure, with "this" bound to receiver — the runtime effect
// described in §9's "Bound methods" note. The AST function is unchanged;
// only the returned Value differs.
func (it *Interp) bindThis(fn *Function, receiver *Instance) *Function {
	bound := NewScope(fn.Closure)
	_ = bound.Define("this", receiver)
	return &Function{Name: fn.Name, Params: fn.Params, Body: fn.Body, Closure: bound}
}

func (it *Interp) evalGet(scope *Scope, n *ast.GetExpr) (Value, error) {
	rv, err := it.evalExpr(scope, n.Receiver)
	if err != nil {
		return nil, err
	}
	inst, ok := rv.(*Instance)
	if !ok {
		return nil, it.fail(n.Span(), &UnexpectedValueTypeError{Expected: "instance", Actual: rv.Type()})
	}
	data, _ := it.Env.GetInstance(inst.id)
	if v, ok := data.Fields[n.Name.Name]; ok {
		return v, nil
	}
	if m, ok := data.Class.Methods[n.Name.Name]; ok {
		return it.bindThis(m, inst), nil
	}
	return nil, it.fail(n.Span(), &UndefinedPropertyError{Name: n.Name.Name})
}

func (it *Interp) evalSet(scope *Scope, n *ast.SetExpr) (Value, error) {
	rv, err := it.evalExpr(scope, n.Receiver)
	if err != nil {
		return nil, err
	}
	inst, ok := rv.(*Instance)
	if !ok {
		return nil, it.fail(n.Span(), &UnexpectedValueTypeError{Expected: "instance", Actual: rv.Type()})
	}
	v, err := it.evalExpr(scope, n.Value)
	if err != nil {
		return nil, err
	}
	data, _ := it.Env.GetInstanceMut(inst.id)
	data.Fields[n.Name.Name] = v
	return Null{}, nil
}

func (it *Interp) evalIndexGet(scope *Scope, n *ast.IndexGetExpr) (Value, error) {
	lv, err := it.evalExpr(scope, n.List)
	if err != nil {
		return nil, err
	}
	list, ok := lv.(*List)
	if !ok {
		return nil, it.fail(n.Span(), &InvalidIndexOperationError{Receiver: lv.Type()})
	}
	iv, err := it.evalExpr(scope, n.Index)
	if err != nil {
		return nil, err
	}
	idx, ok := iv.(Int)
	if !ok {
		return nil, it.fail(n.Index.Span(), &ListIndicesMustBeIntegersError{})
	}
	data, _ := it.Env.GetList(list.id)
	if int(idx) < 0 || int(idx) >= len(data.Elems) {
		return nil, it.fail(n.Span(), &IndexOutOfBoundsError{Index: int(idx), Len: len(data.Elems)})
	}
	return data.Elems[idx], nil
}

func (it *Interp) evalIndexSet(scope *Scope, n *ast.IndexSetExpr) (Value, error) {
	lv, err := it.evalExpr(scope, n.List)
	if err != nil {
		return nil, err
	}
	list, ok := lv.(*List)
	if !ok {
		return nil, it.fail(n.Span(), &InvalidIndexOperationError{Receiver: lv.Type()})
	}
	iv, err := it.evalExpr(scope, n.Index)
	if err != nil {
		return nil, err
	}
	idx, ok := iv.(Int)
	if !ok {
		return nil, it.fail(n.Index.Span(), &ListIndicesMustBeIntegersError{})
	}
	data, _ := it.Env.GetListMut(list.id)
	if int(idx) < 0 || int(idx) >= len(data.Elems) {
		return nil, it.fail(n.Span(), &IndexOutOfBoundsError{Index: int(idx), Len: len(data.Elems)})
	}
	v, err := it.evalExpr(scope, n.Value)
	if err != nil {
		return nil, err
	}
	data.Elems[idx] = v
	return Null{}, nil
}
