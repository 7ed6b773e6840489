package eval

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// UndeclaredVariableError is returned by Scope.Get/Assign when name is not
// bound in the scope chain.
type UndeclaredVariableError struct{ Name string }

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable: %s", e.Name)
}

// NameAlreadyDefinedError is returned by Scope.Define when name is already
// bound directly in that scope.
type NameAlreadyDefinedError struct{ Name string }

func (e *NameAlreadyDefinedError) Error() string {
	return fmt.Sprintf("name already defined in this scope: %s", e.Name)
}

// Scope is one link of the evaluator's scope chain: a binding map plus a
// parent pointer, built fresh per block/call per §4.4's begin_scope.
type Scope struct {
	id       int
	parent   *Scope
	bindings map[string]Value
}

var nextScopeID int

// NewScope allocates a scope whose parent is parent (nil for the global
// scope). The id is used only for the closure display form (§6); it plays
// no role in lookup or aliasing.
func NewScope(parent *Scope) *Scope {
	id := nextScopeID
	nextScopeID++
	return &Scope{id: id, parent: parent, bindings: map[string]Value{}}
}

// ID reports the scope's display id.
func (s *Scope) ID() int { return s.id }

// Define inserts name into this scope directly. It fails if name is already
// present in this same scope; shadowing a name from an outer scope is fine.
func (s *Scope) Define(name string, v Value) error {
	if _, ok := s.bindings[name]; ok {
		return &NameAlreadyDefinedError{Name: name}
	}
	s.bindings[name] = v
	return nil
}

// Get walks the parent chain looking for name.
func (s *Scope) Get(name string) (Value, error) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.bindings[name]; ok {
			return v, nil
		}
	}
	return nil, &UndeclaredVariableError{Name: name}
}

// Assign walks the parent chain to the nearest scope that already binds
// name and overwrites it there. It fails if no such scope exists.
func (s *Scope) Assign(name string, v Value) error {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			cur.bindings[name] = v
			return nil
		}
	}
	return &UndeclaredVariableError{Name: name}
}

// InstanceData is the arena-resident state of an Instance: its class and
// mutable field map. An Instance Value carries only an arena id (§3:
// `Instance{id, name}`), so every alias of the same instance reaches the
// same InstanceData pointer and observes the same field mutations — the
// arena, not the Go pointer embedded in a Value, is the aliasing mechanism
// §5 requires.
type InstanceData struct {
	Class  *Class
	Fields map[string]Value
}

// ListData is the arena-resident state of a List: its backing element
// slice, looked up by id the same way InstanceData is.
type ListData struct {
	Elems []Value
}

// Environment owns the evaluator's arena state: the global scope plus the
// instance and list arenas. Lists and instances are allocated here rather
// than embedded by value so that every alias of the same list or instance
// observes the same mutations, per §8's aliasing invariant. The arenas are
// backed by swiss.Map rather than a built-in map, matching the teacher's use
// of the same table for its own hot id-keyed stores (lang/machine/map.go).
type Environment struct {
	Global *Scope

	instances  *swiss.Map[int, *InstanceData]
	lists      *swiss.Map[int, *ListData]
	nextInstID int
	nextListID int
}

// NewEnvironment creates an Environment with an empty global scope and empty
// arenas.
func NewEnvironment() *Environment {
	return &Environment{
		Global:    NewScope(nil),
		instances: swiss.NewMap[int, *InstanceData](16),
		lists:     swiss.NewMap[int, *ListData](16),
	}
}

// NewInstance allocates a new InstanceData entry of class in the arena and
// returns an Instance Value handle carrying only its id.
func (e *Environment) NewInstance(class *Class) *Instance {
	id := e.nextInstID
	e.nextInstID++
	e.instances.Put(id, &InstanceData{Class: class, Fields: map[string]Value{}})
	return &Instance{id: id, env: e}
}

// NewList allocates a new ListData entry seeded with elems in the arena and
// returns a List Value handle carrying only its id.
func (e *Environment) NewList(elems []Value) *List {
	id := e.nextListID
	e.nextListID++
	e.lists.Put(id, &ListData{Elems: elems})
	return &List{id: id, env: e}
}

// GetInstance looks up an instance's arena entry by id. This is the actual
// access path for every field read and method lookup (lang/eval/call.go);
// it is not merely an introspection convenience.
func (e *Environment) GetInstance(id int) (*InstanceData, bool) { return e.instances.Get(id) }

// GetInstanceMut is GetInstance's write-intent counterpart, mirroring
// spec §4.4's get_instance/get_instance_mut pair. The arena stores pointers
// already, so both return the same mutable entry; the distinct name marks
// call sites that write through it (property set).
func (e *Environment) GetInstanceMut(id int) (*InstanceData, bool) { return e.instances.Get(id) }

// GetList looks up a list's arena entry by id, mirroring GetInstance: every
// index read goes through this, not through a pointer embedded in the List
// Value.
func (e *Environment) GetList(id int) (*ListData, bool) { return e.lists.Get(id) }

// GetListMut is GetList's write-intent counterpart, used by index-set.
func (e *Environment) GetListMut(id int) (*ListData, bool) { return e.lists.Get(id) }
