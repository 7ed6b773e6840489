package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/nakala-lang/nakala/lang/eval"
	"github.com/nakala-lang/nakala/lang/parser"
	"github.com/nakala-lang/nakala/lang/scanner"
	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/token"
)

// EvalInline implements `nakala -i "<program>"`: parse and evaluate src as
// a single program, printing any side effects (print/println), then the
// value of the last expression statement unless that value is Null, then a
// final newline.
func EvalInline(_ context.Context, stdio mainer.Stdio, src string) error {
	_, builtinSyms := eval.Builtins(stdio.Stdout)
	syms := symtab.New(builtinSyms...)

	fs := token.NewFileSet()
	prog, err := parser.Parse(fs, "-i", []byte(src), syms)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}

	it := eval.NewInterp(stdio.Stdout)
	v, err := it.Run(prog)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if v != nil {
		if _, isNull := v.(eval.Null); !isNull {
			fmt.Fprint(stdio.Stdout, v.String())
		}
	}
	fmt.Fprintln(stdio.Stdout)
	return nil
}
