// Package eval implements the tree-walking evaluator: it runs a typed
// *ast.Program against an arena-backed Environment and produces runtime
// Values, the dynamic counterpart of the static types in lang/types.
package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nakala-lang/nakala/lang/ast"
)

// Value is the interface implemented by every runtime value. It mirrors the
// machine.Value shape (String/Type), trimmed to the closed set of variants
// the language actually has: there is no general extension mechanism, so
// operator dispatch below switches on concrete Go types rather than on
// optional capability interfaces.
type Value interface {
	String() string
	Type() string
}

// Null is the unique null value.
type Null struct{}

func (Null) String() string { return "null" }
func (Null) Type() string   { return "null" }

// Bool is a boolean value.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (Bool) Type() string     { return "bool" }

// Int is a 64-bit signed integer value.
type Int int64

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (Int) Type() string     { return "int" }

// Float is a 64-bit floating point value. Display uses the shortest
// decimal representation that round-trips (strconv's 'f' format, never
// exponent notation), with a trailing ".0" appended for exact integers so
// 2.0 never prints as "2".
type Float float64

func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
func (Float) Type() string { return "float" }

// String is a string value.
type String string

func (s String) String() string { return string(s) }
func (String) Type() string     { return "string" }

// List is an id handle into the Environment's list arena (ListData); it
// carries no element data of its own, so every copy of a List Value that
// shares an id reaches the same ListData through env and observes the same
// mutations (§3/§5's aliasing invariant).
type List struct {
	id  int
	env *Environment
}

// ID reports the list's arena id.
func (l *List) ID() int { return l.id }

func (l *List) String() string {
	data, _ := l.env.GetList(l.id)
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range data.Elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}
func (*List) Type() string { return "list" }

// Instance is an id handle into the Environment's instance arena
// (InstanceData); like List it carries no field data of its own, so aliases
// of the same instance share mutations through the arena rather than through
// this Go pointer.
type Instance struct {
	id  int
	env *Environment
}

// ID reports the instance's arena id.
func (in *Instance) ID() int { return in.id }

func (in *Instance) String() string {
	data, _ := in.env.GetInstance(in.id)
	return fmt.Sprintf("%s instance (id %d)", data.Class.Name, in.id)
}
func (*Instance) Type() string { return "instance" }

// Function is a closure: its declaration plus the scope it was declared in.
// Bound methods are represented as a Function whose Closure is a fresh
// scope with "this" defined, per the property-get binding rule in §4.5.
type Function struct {
	Name    string
	Params  []string
	Body    *ast.BlockStmt
	Closure *Scope
}

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "anonymous"
	}
	return fmt.Sprintf("%s (closure %d)", name, f.Closure.ID())
}
func (*Function) Type() string { return "function" }

// Class is a class value: its name and its method table, each method a
// Function closed over the scope the class was declared in.
type Class struct {
	Name    string
	Methods map[string]*Function
}

func (c *Class) String() string { return c.Name }
func (*Class) Type() string     { return "class" }

// BuiltinFunc is the host-side implementation of a builtin descriptor.
type BuiltinFunc func(args []Value) (Value, error)

// Builtin is a host-installed function such as print, println or len,
// called like any other function but implemented in Go.
type Builtin struct {
	Name   string
	Arity  int
	Params []string
	Fn     BuiltinFunc
}

func (b *Builtin) String() string { return "builtin " + b.Name }
func (*Builtin) Type() string     { return "function" }
