package eval

import (
	"fmt"
	"io"

	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/types"
)

// Builtins returns the host-installed functions of §6: print (no trailing
// newline; the `print` statement form shares this channel), println, and
// len. Each is wired into syms as a Function symbol too, so the parser
// accepts calls to them with the right arity and argument types.
func Builtins(w io.Writer) (map[string]*Builtin, []*symtab.Symbol) {
	builtins := map[string]*Builtin{
		"println": {
			Name: "println", Arity: 1, Params: []string{"value"},
			Fn: func(args []Value) (Value, error) {
				fmt.Fprintln(w, args[0].String())
				return Null{}, nil
			},
		},
		"print": {
			Name: "print", Arity: 1, Params: []string{"value"},
			Fn: func(args []Value) (Value, error) {
				fmt.Fprint(w, args[0].String())
				return Null{}, nil
			},
		},
		"len": {
			Name: "len", Arity: 1, Params: []string{"value"},
			Fn: func(args []Value) (Value, error) {
				switch v := args[0].(type) {
				case *List:
					data, _ := v.env.GetList(v.id)
					return Int(len(data.Elems)), nil
				case String:
					return Int(len(v)), nil
				default:
					return nil, &InvalidLenOperationError{Actual: v.Type()}
				}
			},
		},
	}

	syms := []*symtab.Symbol{
		{Name: "println", Kind: symtab.Function, Arity: 1,
			Type: types.NewFunction([]types.Type{types.TAny}, types.TNull)},
		{Name: "print", Kind: symtab.Function, Arity: 1,
			Type: types.NewFunction([]types.Type{types.TAny}, types.TNull)},
		{Name: "len", Kind: symtab.Function, Arity: 1,
			Type: types.NewFunction([]types.Type{types.TAny}, types.TInt)},
	}
	return builtins, syms
}
