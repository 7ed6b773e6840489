package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nakala-lang/nakala/lang/token"
	"github.com/nakala-lang/nakala/lang/types"
)

func TestCompatReflexiveAndNumericCoercion(t *testing.T) {
	assert.True(t, types.Compat(types.TInt, types.TInt))
	assert.True(t, types.Compat(types.TInt, types.TFloat))
	assert.True(t, types.Compat(types.TFloat, types.TInt))
	assert.False(t, types.Compat(types.TInt, types.TString))
}

func TestCompatAnyAndNullAreUniversal(t *testing.T) {
	assert.True(t, types.Compat(types.TAny, types.TString))
	assert.True(t, types.Compat(types.TBool, types.TAny))
	assert.True(t, types.Compat(types.TNull, types.TInt))
	assert.True(t, types.Compat(types.TInt, types.TNull))
}

func TestCompatListsAreElementWise(t *testing.T) {
	ints := types.NewList(types.TInt)
	floats := types.NewList(types.TFloat)
	strings := types.NewList(types.TString)

	assert.True(t, types.Compat(ints, floats))
	assert.False(t, types.Compat(ints, strings))
}

func TestCompatFunctionsCheckArityAndSignature(t *testing.T) {
	f1 := types.NewFunction([]types.Type{types.TInt}, types.TBool)
	f2 := types.NewFunction([]types.Type{types.TFloat}, types.TBool)
	f3 := types.NewFunction([]types.Type{types.TInt, types.TInt}, types.TBool)

	assert.True(t, types.Compat(f1, f2))
	assert.False(t, types.Compat(f1, f3))
}

func TestResultArithmeticPromotesToFloat(t *testing.T) {
	ty, ok := types.Result(types.TInt, token.PLUS, types.TInt)
	assert.True(t, ok)
	assert.Equal(t, types.TInt, ty)

	ty, ok = types.Result(types.TInt, token.PLUS, types.TFloat)
	assert.True(t, ok)
	assert.Equal(t, types.TFloat, ty)
}

func TestResultStringConcatenation(t *testing.T) {
	ty, ok := types.Result(types.TString, token.PLUS, types.TString)
	assert.True(t, ok)
	assert.Equal(t, types.TString, ty)

	ty, ok = types.Result(types.TString, token.PLUS, types.TInt)
	assert.True(t, ok)
	assert.Equal(t, types.TString, ty)
}

func TestResultComparisonYieldsBool(t *testing.T) {
	ty, ok := types.Result(types.TInt, token.LT, types.TFloat)
	assert.True(t, ok)
	assert.Equal(t, types.TBool, ty)

	_, ok = types.Result(types.TString, token.LT, types.TString)
	assert.False(t, ok)
}

func TestResultEqualityAlwaysDefined(t *testing.T) {
	ty, ok := types.Result(types.TString, token.EQEQ, types.TInt)
	assert.True(t, ok)
	assert.Equal(t, types.TBool, ty)
}

func TestResultAnyShortCircuitsToAny(t *testing.T) {
	ty, ok := types.Result(types.TAny, token.MINUS, types.TString)
	assert.True(t, ok)
	assert.Equal(t, types.TAny, ty)
}

func TestResultUndefinedOperatorCombination(t *testing.T) {
	_, ok := types.Result(types.TBool, token.STAR, types.TBool)
	assert.False(t, ok)
}

func TestUnaryResult(t *testing.T) {
	ty, ok := types.UnaryResult(token.MINUS, types.TInt)
	assert.True(t, ok)
	assert.Equal(t, types.TInt, ty)

	ty, ok = types.UnaryResult(token.BANG, types.TBool)
	assert.True(t, ok)
	assert.Equal(t, types.TBool, ty)

	ty, ok = types.UnaryResult(token.NOT, types.TBool)
	assert.True(t, ok)
	assert.Equal(t, types.TBool, ty)

	_, ok = types.UnaryResult(token.MINUS, types.TBool)
	assert.False(t, ok)

	ty, ok = types.UnaryResult(token.BANG, types.TAny)
	assert.True(t, ok)
	assert.Equal(t, types.TAny, ty)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "int", types.TInt.String())
	assert.Equal(t, "[int]", types.NewList(types.TInt).String())
	assert.Equal(t, "instanceof Counter", types.NewInstance("Counter").String())
	assert.Equal(t, "(int, string) -> bool",
		types.NewFunction([]types.Type{types.TInt, types.TString}, types.TBool).String())
}
