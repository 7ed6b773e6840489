package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakala-lang/nakala/lang/symtab"
	"github.com/nakala-lang/nakala/lang/types"
)

func TestInsertAndLookup(t *testing.T) {
	tab := symtab.New()
	err := tab.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TInt})
	require.NoError(t, err)

	sym, ok := tab.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TInt, sym.Type)
}

func TestLookupUndeclaredFails(t *testing.T) {
	tab := symtab.New()
	_, ok := tab.Lookup("missing")
	assert.False(t, ok)
}

func TestInsertSameScopeRedeclarationErrors(t *testing.T) {
	tab := symtab.New()
	require.NoError(t, tab.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TInt}))

	err := tab.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TString})
	require.Error(t, err)
	var redeclared *symtab.NameRedeclaredError
	assert.ErrorAs(t, err, &redeclared)
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	tab := symtab.New()
	require.NoError(t, tab.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TInt}))

	tab.LevelUp()
	err := tab.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TString})
	require.NoError(t, err)

	sym, ok := tab.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TString, sym.Type)

	tab.LevelDown()
	sym, ok = tab.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TInt, sym.Type)
}

func TestLevelDownAtGlobalScopePanics(t *testing.T) {
	tab := symtab.New()
	assert.Panics(t, func() { tab.LevelDown() })
}

func TestNewSeedsBuiltins(t *testing.T) {
	tab := symtab.New(&symtab.Symbol{
		Name: "len", Kind: symtab.Function,
		Type:  types.NewFunction([]types.Type{types.NewList(types.TAny)}, types.TInt),
		Arity: 1,
	})

	sym, ok := tab.Lookup("len")
	require.True(t, ok)
	assert.Equal(t, 1, sym.Arity)
}

func TestMergeWithCopiesGlobalScope(t *testing.T) {
	a := symtab.New()
	require.NoError(t, a.Insert(&symtab.Symbol{Name: "x", Kind: symtab.Variable, Type: types.TInt}))

	b := symtab.New()
	b.MergeWith(a)

	sym, ok := b.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TInt, sym.Type)
}

func TestGlobalNamesIsSorted(t *testing.T) {
	tab := symtab.New()
	require.NoError(t, tab.Insert(&symtab.Symbol{Name: "zebra", Kind: symtab.Variable, Type: types.TInt}))
	require.NoError(t, tab.Insert(&symtab.Symbol{Name: "apple", Kind: symtab.Variable, Type: types.TInt}))

	assert.Equal(t, []string{"apple", "zebra"}, tab.GlobalNames())
}
