package value

import "github.com/google/uuid"

// Cell is a storage location that can be the target of a pointer: a named
// binding, an alloc result, or a cell minted when the address of a struct
// field or list element is taken (fields and elements hold plain Values,
// not Cells). Whoever holds the Cell directly (a symbol table, or the
// pointer-producing expression) is the strong owner; a PointerValue only ever holds the Cell's ID plus a Registry
// reference, which is a weak handle that cannot extend the Cell's
// lifetime.
type Cell struct {
	ID    string
	Value Value
	Live  bool
}

// Registry is the single table of live cells an interpreter session owns.
// IDs are assigned from google/uuid so a PointerValue can carry a stable,
// inspectable handle instead of relying on Go pointer identity (which would
// make "has this been deallocated" unobservable once the underlying struct
// is unreachable but not yet collected).
type Registry struct {
	cells map[string]*Cell
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{cells: make(map[string]*Cell)}
}

// New allocates a fresh, live Cell wrapping v and returns it.
func (r *Registry) New(v Value) *Cell {
	c := &Cell{ID: uuid.NewString(), Value: v, Live: true}
	r.cells[c.ID] = c
	return c
}

// Kill marks the cell with the given ID dead: subsequent Lookups fail,
// modelling dealloc or scope-exit destruction of a local binding.
func (r *Registry) Kill(id string) {
	if c, ok := r.cells[id]; ok {
		c.Live = false
	}
}

// Lookup returns the cell for id if it exists and is still live.
func (r *Registry) Lookup(id string) (*Cell, bool) {
	c, ok := r.cells[id]
	if !ok || !c.Live {
		return nil, false
	}
	return c, true
}
