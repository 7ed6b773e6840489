package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/nakala-lang/nakala/lang/eval"
	"github.com/nakala-lang/nakala/lang/parser"
	"github.com/nakala-lang/nakala/lang/scanner"
	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/token"
)

const replPrompt = "> "

// REPL implements `nakala` with no arguments: each line read from
// stdio.Stdin is parsed and evaluated against a persistent symbol table
// and environment (§6); a failing line prints its diagnostic to
// stdio.Stderr and the prompt continues with state intact.
func REPL(ctx context.Context, stdio mainer.Stdio) {
	it := eval.NewInterp(stdio.Stdout)
	_, builtinSyms := eval.Builtins(stdio.Stdout)
	syms := symtab.New(builtinSyms...)
	fs := token.NewFileSet()

	scan := bufio.NewScanner(stdio.Stdin)
	fmt.Fprint(stdio.Stdout, replPrompt)
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := scan.Text()
		if line != "" {
			evalLine(stdio, it, syms, fs, line)
		}
		fmt.Fprint(stdio.Stdout, replPrompt)
	}
}

// evalLine parses line against a scratch symbol table seeded from syms's
// current globals, so a failed parse never pollutes syms with half-formed
// declarations; a successful parse merges its new globals back into syms.
func evalLine(stdio mainer.Stdio, it *eval.Interp, syms *symtab.Table, fs *token.FileSet, line string) {
	_, builtinSyms := eval.Builtins(stdio.Stdout)
	lineSyms := symtab.New(builtinSyms...)
	lineSyms.MergeWith(syms)

	prog, err := parser.Parse(fs, "<repl>", []byte(line), lineSyms)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return
	}
	syms.MergeWith(lineSyms)

	v, err := it.Run(prog)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return
	}
	if v != nil {
		if _, isNull := v.(eval.Null); !isNull {
			fmt.Fprintf(stdio.Stdout, "%s\n", v.String())
		}
	}
}
