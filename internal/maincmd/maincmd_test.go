package maincmd_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakala-lang/nakala/internal/maincmd"
)

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	c := maincmd.Cmd{BuildVersion: "1.2.3"}
	code := c.Main([]string{"nakala", "--version"}, mainer.Stdio{Stdout: &out})
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "nakala 1.2.3\n", out.String())
}

func TestUnexpectedArgumentIsInvalid(t *testing.T) {
	var out, eout bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main([]string{"nakala", "bogus"}, mainer.Stdio{Stdout: &out, Stderr: &eout})
	assert.Equal(t, mainer.InvalidArgs, code)
}

func TestEvalInlinePrintsSideEffectsThenFinalValue(t *testing.T) {
	var out bytes.Buffer
	err := maincmd.EvalInline(context.Background(), mainer.Stdio{Stdout: &out}, `print "hi"; 1 + 2;`)
	require.NoError(t, err)
	assert.Equal(t, "hi3\n", out.String())
}

func TestEvalInlineSuppressesTrailingNull(t *testing.T) {
	var out bytes.Buffer
	err := maincmd.EvalInline(context.Background(), mainer.Stdio{Stdout: &out}, `func add(a: int, b: int) -> int { ret a + b; } print add(2, 3);`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out.String())
}

func TestEvalInlineReportsRuntimeErrors(t *testing.T) {
	var out, eout bytes.Buffer
	err := maincmd.EvalInline(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &eout}, `let x: any = 1; let y: any = 0; print x / y;`)
	require.Error(t, err)
	assert.NotEmpty(t, eout.String())
}

func TestEvalInlineReportsParseErrors(t *testing.T) {
	var out, eout bytes.Buffer
	err := maincmd.EvalInline(context.Background(), mainer.Stdio{Stdout: &out, Stderr: &eout}, `let x = ;`)
	require.Error(t, err)
	assert.NotEmpty(t, eout.String())
}

func TestREPLSharesStateAcrossLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("let x = 1;\nx = x + 41;\nprint x;\n")
	maincmd.REPL(context.Background(), mainer.Stdio{Stdin: in, Stdout: &out})
	assert.Contains(t, out.String(), "42")
}

func TestREPLRecoversFromErrorAndKeepsPriorState(t *testing.T) {
	var out, eout bytes.Buffer
	in := strings.NewReader("let x = 10;\nundeclared_name;\nprint x;\n")
	maincmd.REPL(context.Background(), mainer.Stdio{Stdin: in, Stdout: &out, Stderr: &eout})
	assert.NotEmpty(t, eout.String())
	assert.Contains(t, out.String(), "10")
}
