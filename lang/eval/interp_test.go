package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakala-lang/nakala/lang/eval"
	"github.com/nakala-lang/nakala/lang/parser"
	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/token"
)

// run parses and evaluates src against a fresh Interp, returning everything
// written to the print/println channel.
func run(t *testing.T, src string) (string, eval.Value, error) {
	t.Helper()

	var buf bytes.Buffer
	it := eval.NewInterp(&buf)

	_, builtinSyms := eval.Builtins(&buf)
	syms := symtab.New(builtinSyms...)

	fs := token.NewFileSet()
	prog, err := parser.Parse(fs, "test.nak", []byte(src), syms)
	require.NoError(t, err)

	v, err := it.Run(prog)
	return buf.String(), v, err
}

func TestUntilLoopPrintsEachIteration(t *testing.T) {
	out, _, err := run(t, `let x: int = 0; until (x == 3) { print x; x = x + 1; }`)
	require.NoError(t, err)
	assert.Equal(t, "012", out)
}

func TestFunctionDeclarationAndCall(t *testing.T) {
	out, _, err := run(t, `func add(a: int, b: int) -> int { ret a + b; } print add(2,3);`)
	require.NoError(t, err)
	assert.Equal(t, "5", out)
}

func TestClassConstructorAndMethod(t *testing.T) {
	out, _, err := run(t, `class C { func constructor(v) { this.v = v; } func get() { ret this.v; } } let c = C(42); print c.get();`)
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestListIndexGetAndSet(t *testing.T) {
	out, _, err := run(t, `let xs = [1,2,3]; xs[1] = 20; print xs;`)
	require.NoError(t, err)
	assert.Equal(t, "[1,20,3]", out)
}

func TestClosureRetainsCapturedVariable(t *testing.T) {
	out, _, err := run(t, `func mk() { let n = 0; func step() { n = n + 1; ret n; } ret step; } let s = mk(); print s(); print s();`)
	require.NoError(t, err)
	assert.Equal(t, "12", out)
}

func TestIntegerDivisionExactStaysInt(t *testing.T) {
	out, _, err := run(t, `print 7 / 2; print 7 / 1;`)
	require.NoError(t, err)
	assert.Equal(t, "3.57", out)
}

func TestDivideByZeroIsARuntimeError(t *testing.T) {
	_, _, err := run(t, `let x: any = 1; let y: any = 0; print x / y;`)
	require.Error(t, err)
	var divErr *eval.DivideByZeroError
	require.ErrorAs(t, err, &divErr)
}

func TestEmptyListIndexIsOutOfBounds(t *testing.T) {
	_, _, err := run(t, `let xs: any = []; print xs[0];`)
	require.Error(t, err)
	var oob *eval.IndexOutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, 0, oob.Index)
	assert.Equal(t, 0, oob.Len)
}

func TestShortCircuitAndDoesNotEvaluateRHS(t *testing.T) {
	out, _, err := run(t, `func boom() -> bool { print "boom"; ret true; } print false and boom();`)
	require.NoError(t, err)
	assert.Equal(t, "false", out)
}

func TestShortCircuitOrDoesNotEvaluateRHS(t *testing.T) {
	out, _, err := run(t, `func boom() -> bool { print "boom"; ret true; } print true or boom();`)
	require.NoError(t, err)
	assert.Equal(t, "true", out)
}

func TestAliasedListMutationVisibleThroughAllAliases(t *testing.T) {
	out, _, err := run(t, `let xs = [1,2]; let ys: any = xs; ys[0] = 99; print xs[0];`)
	require.NoError(t, err)
	assert.Equal(t, "99", out)
}

func TestAliasedInstanceMutationVisibleThroughAllAliases(t *testing.T) {
	out, _, err := run(t, `class C { func constructor() { this.v = 1; } } let c = C(); let d: any = c; d.v = 2; print c.v;`)
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestEqualityIsTotalAcrossVariants(t *testing.T) {
	out, _, err := run(t, `print 1 == 1.0; print 1 == 1; print null == null;`)
	require.NoError(t, err)
	assert.Equal(t, "falsetruetrue", out)
}

func TestLenBuiltinOnListAndString(t *testing.T) {
	out, _, err := run(t, `print len([1,2,3]); print len("abcd");`)
	require.NoError(t, err)
	assert.Equal(t, "34", out)
}

func TestPrintlnAddsNewline(t *testing.T) {
	out, _, err := run(t, `println(1); println(2);`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestArityMismatchIsARuntimeErrorThroughAny(t *testing.T) {
	// property reads are always typed Any (§4.3), so a function stashed in a
	// field and called back out defers its arity check to runtime.
	_, _, err := run(t, `
class Box { func constructor(fn) { this.fn = fn; } }
func one(a: int) -> int { ret a; }
let b = Box(one);
print b.fn(1, 2);`)
	require.Error(t, err)
	var arityErr *eval.ArityMismatchError
	require.ErrorAs(t, err, &arityErr)
}
