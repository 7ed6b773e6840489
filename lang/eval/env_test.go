package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakala-lang/nakala/lang/eval"
)

func TestScopeDefineAndGet(t *testing.T) {
	s := eval.NewScope(nil)
	require.NoError(t, s.Define("x", eval.Int(1)))

	v, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, eval.Int(1), v)
}

func TestScopeRedefineInSameScopeFails(t *testing.T) {
	s := eval.NewScope(nil)
	require.NoError(t, s.Define("x", eval.Int(1)))
	err := s.Define("x", eval.Int(2))
	require.Error(t, err)
}

func TestScopeGetWalksParentChain(t *testing.T) {
	parent := eval.NewScope(nil)
	require.NoError(t, parent.Define("x", eval.Int(7)))
	child := eval.NewScope(parent)

	v, err := child.Get("x")
	require.NoError(t, err)
	assert.Equal(t, eval.Int(7), v)
}

func TestScopeAssignUpdatesNearestBindingScope(t *testing.T) {
	parent := eval.NewScope(nil)
	require.NoError(t, parent.Define("x", eval.Int(1)))
	child := eval.NewScope(parent)

	require.NoError(t, child.Assign("x", eval.Int(2)))

	v, err := parent.Get("x")
	require.NoError(t, err)
	assert.Equal(t, eval.Int(2), v)
}

func TestScopeAssignUndeclaredFails(t *testing.T) {
	s := eval.NewScope(nil)
	err := s.Assign("missing", eval.Int(1))
	require.Error(t, err)
	var undeclared *eval.UndeclaredVariableError
	assert.ErrorAs(t, err, &undeclared)
}

func TestEnvironmentInstanceArenaSharesMutations(t *testing.T) {
	env := eval.NewEnvironment()
	cls := &eval.Class{Name: "C", Methods: map[string]*eval.Function{}}
	inst := env.NewInstance(cls)

	data, ok := env.GetInstanceMut(inst.ID())
	require.True(t, ok)
	data.Fields["v"] = eval.Int(1)

	got, ok := env.GetInstance(inst.ID())
	require.True(t, ok)
	assert.Same(t, data, got)
	assert.Equal(t, eval.Int(1), got.Fields["v"])
}

func TestEnvironmentListArenaSharesMutations(t *testing.T) {
	env := eval.NewEnvironment()
	list := env.NewList([]eval.Value{eval.Int(1), eval.Int(2)})

	data, ok := env.GetListMut(list.ID())
	require.True(t, ok)
	data.Elems[0] = eval.Int(99)

	got, ok := env.GetList(list.ID())
	require.True(t, ok)
	assert.Same(t, data, got)
	assert.Equal(t, eval.Int(99), got.Elems[0])
}
