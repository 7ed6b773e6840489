// Package types implements the static type model enforced by the parser:
// the closed set of types a typed expression may carry, the compatibility
// relation between two types, and the per-operator result typing rules.
package types

import (
	"strings"

	"github.com/nakala-lang/nakala/lang/token"
)

// Kind is the tag of a Type.
type Kind int8

// The closed set of type kinds.
const (
	Int Kind = iota
	Float
	Bool
	String
	List
	Class
	Instance
	Function
	Null
	Any
)

// Type is a closed variant describing the static type of an expression or a
// binding. The zero Type is not meaningful; use one of the constructors.
type Type struct {
	Kind Kind

	Elem *Type // List

	Name string // Class, Instance

	Params  []Type // Function
	Returns *Type  // Function
}

// Convenience constructors for the non-parameterized kinds.
var (
	TInt    = Type{Kind: Int}
	TFloat  = Type{Kind: Float}
	TBool   = Type{Kind: Bool}
	TString = Type{Kind: String}
	TNull   = Type{Kind: Null}
	TAny    = Type{Kind: Any}
)

// NewList returns the type List(elem).
func NewList(elem Type) Type { return Type{Kind: List, Elem: &elem} }

// NewClass returns the type Class(name).
func NewClass(name string) Type { return Type{Kind: Class, Name: name} }

// NewInstance returns the type Instance(name).
func NewInstance(name string) Type { return Type{Kind: Instance, Name: name} }

// NewFunction returns the type Function{params, returns}.
func NewFunction(params []Type, returns Type) Type {
	return Type{Kind: Function, Params: params, Returns: &returns}
}

// IsNumeric reports whether t is Int or Float.
func (t Type) IsNumeric() bool { return t.Kind == Int || t.Kind == Float }

func (t Type) String() string {
	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case List:
		return "[" + t.Elem.String() + "]"
	case Class:
		return t.Name
	case Instance:
		return "instanceof " + t.Name
	case Function:
		var parts []string
		for _, p := range t.Params {
			parts = append(parts, p.String())
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.Returns.String()
	case Null:
		return "null"
	case Any:
		return "any"
	default:
		return "?"
	}
}

// Compat reports whether a value of type rhs may be used where lhs is
// expected: reflexive, Int<->Float, Null compatible with anything, Any
// compatible with anything in either direction, List element-wise, and
// Function arity-equal with pairwise-compatible params and return.
func Compat(lhs, rhs Type) bool {
	switch {
	case lhs.Kind == Any || rhs.Kind == Any:
		return true
	case lhs.Kind == Null || rhs.Kind == Null:
		return true
	case lhs.Kind == Int && rhs.Kind == Float, lhs.Kind == Float && rhs.Kind == Int:
		return true
	case lhs.Kind == List && rhs.Kind == List:
		return Compat(*lhs.Elem, *rhs.Elem)
	case lhs.Kind == Function && rhs.Kind == Function:
		if len(lhs.Params) != len(rhs.Params) {
			return false
		}
		for i := range lhs.Params {
			if !Compat(lhs.Params[i], rhs.Params[i]) {
				return false
			}
		}
		return Compat(*lhs.Returns, *rhs.Returns)
	default:
		return lhs.Kind == rhs.Kind && lhs.Name == rhs.Name
	}
}

// Result computes the static result type of applying the binary operator op
// to operands of type lhs and rhs, per the operator table of the language.
// The bool return is false if the operator is not defined for that operand
// pair.
func Result(lhs Type, op token.Token, rhs Type) (Type, bool) {
	if op == token.EQEQ || op == token.BANGEQ {
		return TBool, true
	}

	if lhs.Kind == Any || rhs.Kind == Any {
		return TAny, true
	}
	if lhs.Kind == Null || rhs.Kind == Null {
		return Type{}, false
	}

	switch op {
	case token.PLUS:
		switch {
		case lhs.Kind == Int && rhs.Kind == Int:
			return TInt, true
		case lhs.Kind.IsNumericWith(rhs.Kind):
			return TFloat, true
		case lhs.Kind == String && rhs.Kind == String:
			return TString, true
		case lhs.Kind == String && rhs.Kind == Int, lhs.Kind == Int && rhs.Kind == String:
			return TString, true
		case lhs.Kind == List && rhs.Kind == List && Compat(*lhs.Elem, *rhs.Elem):
			return lhs, true
		default:
			return Type{}, false
		}

	case token.MINUS, token.STAR, token.SLASH:
		switch {
		case lhs.Kind == Int && rhs.Kind == Int:
			return TInt, true
		case lhs.Kind.IsNumericWith(rhs.Kind):
			return TFloat, true
		default:
			return Type{}, false
		}

	case token.LT, token.LE, token.GT, token.GE:
		if lhs.IsNumeric() && rhs.IsNumeric() {
			return TBool, true
		}
		return Type{}, false

	case token.AND, token.OR:
		if lhs.Kind == Bool && rhs.Kind == Bool {
			return TBool, true
		}
		return Type{}, false

	default:
		return Type{}, false
	}
}

// IsNumericWith reports whether k and other are both numeric (Int or Float).
// Result checks the all-Int case first, so where it calls this the result
// selects the "mixed or float" case of its arithmetic rules.
func (k Kind) IsNumericWith(other Kind) bool {
	isNum := func(x Kind) bool { return x == Int || x == Float }
	return isNum(k) && isNum(other)
}

// UnaryResult computes the static result type of applying unary operator op
// (BANG, NOT or MINUS) to an operand of type t.
func UnaryResult(op token.Token, t Type) (Type, bool) {
	if t.Kind == Any {
		return TAny, true
	}
	switch op {
	case token.MINUS:
		if t.Kind == Int || t.Kind == Float {
			return t, true
		}
	case token.BANG, token.NOT:
		if t.Kind == Bool {
			return TBool, true
		}
	}
	return Type{}, false
}
