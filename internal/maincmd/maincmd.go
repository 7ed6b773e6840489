package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "nakala"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [-v|--version] [-i|--inline <program>]
Run with no arguments to start the REPL.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...]
       %[1]s -v|--version
       %[1]s -i|--inline "<program>"

A statically type-checked, dynamically executed scripting language.

With no options, %[1]s starts a REPL: each line is parsed and
type-checked against a persistent symbol table, then evaluated against a
persistent environment. Errors are printed and the prompt continues.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -i --inline <program>     Evaluate <program> as a single source
                                 text and exit, printing any side
                                 effects followed by the value of the
                                 last expression statement.
`, binName)
)

// Cmd is the flag/argument target for mainer.Parser, and the entry point
// called by cmd/nakala's main. It has no subcommands: the language's CLI
// surface (§6) is exactly three invocation forms, selected by flag.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool   `flag:"h,help"`
	Version bool   `flag:"v,version"`
	Inline  string `flag:"i,inline"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 0 {
		return fmt.Errorf("unexpected argument: %s", c.args[0])
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s\n", binName, c.BuildVersion)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if c.flags["i"] || c.flags["inline"] {
		if err := EvalInline(ctx, stdio, c.Inline); err != nil {
			return mainer.Failure
		}
		return mainer.Success
	}

	REPL(ctx, stdio)
	return mainer.Success
}
