// Package symtab implements the shared symbol table used by the parser to
// resolve names and by the evaluator to seed the global environment with
// built-ins. It is a stack of scope maps: inserting at the top, looking up
// by walking the stack top-down.
package symtab

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nakala-lang/nakala/lang/types"
)

// Kind tags what a Symbol denotes.
type Kind int8

const (
	// Variable is a let-bound or parameter name.
	Variable Kind = iota
	// Function is a named function declaration.
	Function
	// Class is a named class declaration.
	Class
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Function:
		return "function"
	case Class:
		return "class"
	default:
		return "unknown"
	}
}

// Symbol is a name's static entry: its kind, its type, and (for Function)
// its arity or (for Class) its method table.
type Symbol struct {
	Name string
	Kind Kind
	Type types.Type

	Arity   int                // meaningful when Kind == Function
	Methods map[string]*Symbol // meaningful when Kind == Class, method name -> Function symbol
}

// NameRedeclaredError is returned by Insert when name is already bound in
// the current (top-of-stack) scope.
type NameRedeclaredError struct {
	Name string
}

func (e *NameRedeclaredError) Error() string {
	return fmt.Sprintf("name %q already declared in this scope", e.Name)
}

// Table is a stack of scope maps, index 0 being the global scope.
type Table struct {
	scopes []map[string]*Symbol
}

// New creates a table with a single global scope seeded with one symbol per
// built-in (typically a Function symbol, since built-ins are called like
// ordinary functions).
func New(builtins ...*Symbol) *Table {
	t := &Table{scopes: []map[string]*Symbol{{}}}
	for _, b := range builtins {
		t.scopes[0][b.Name] = b
	}
	return t
}

// AtGlobalScope reports whether the table is currently at depth 1 (only the
// global scope is active).
func (t *Table) AtGlobalScope() bool { return len(t.scopes) == 1 }

// Depth returns the current scope stack depth (1 at the global scope).
func (t *Table) Depth() int { return len(t.scopes) }

// LevelUp pushes a new, empty scope onto the stack.
func (t *Table) LevelUp() {
	t.scopes = append(t.scopes, map[string]*Symbol{})
}

// LevelDown pops the top scope. It panics if called at the global scope.
func (t *Table) LevelDown() {
	if t.AtGlobalScope() {
		panic("symtab: LevelDown at global scope")
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Insert adds sym to the top scope. It returns a *NameRedeclaredError if a
// symbol with the same name already exists in that same scope; shadowing a
// name bound in an outer scope is allowed.
func (t *Table) Insert(sym *Symbol) error {
	top := t.scopes[len(t.scopes)-1]
	if _, ok := top[sym.Name]; ok {
		return &NameRedeclaredError{Name: sym.Name}
	}
	top[sym.Name] = sym
	return nil
}

// Lookup searches the scope stack top-down and returns the nearest binding
// for name, or (nil, false) if undeclared.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupMut is like Lookup, returning the same *Symbol so callers may
// mutate it in place (e.g. to refine a variable's type on assignment).
func (t *Table) LookupMut(name string) (*Symbol, bool) { return t.Lookup(name) }

// MergeWith copies every global-scope symbol of other into t's global
// scope, overwriting any existing entry of the same name. This is used
// between REPL inputs so that declarations from one line are visible to
// the next.
func (t *Table) MergeWith(other *Table) {
	for name, sym := range other.scopes[0] {
		t.scopes[0][name] = sym
	}
}

// GlobalNames returns the names bound in the global scope, sorted, for use
// in deterministic diagnostics or a REPL "dump" command.
func (t *Table) GlobalNames() []string {
	names := maps.Keys(t.scopes[0])
	slices.Sort(names)
	return names
}
