// Package value implements the runtime variable hierarchy: a tagged sum of
// scalar, pointer, list, struct, and function values, each carrying a type,
// a value category (lvalue/rvalue), and an optional symbolic name, plus the
// four core operations every variant supports: Clone, Assign, Compare,
// String (print).
package value

import "github.com/chloro-pn/wamon-go/types"

// Category is a value's lvalue/rvalue discipline tag.
type Category int

const (
	// RValue is a temporary: it may be moved from when consumed.
	RValue Category = iota
	// LValue can be assigned to and preserves identity across statements.
	LValue
)

func (c Category) String() string {
	if c == LValue {
		return "lvalue"
	}
	return "rvalue"
}

// Value is the interface every runtime variable variant implements.
type Value interface {
	Type() types.Type
	Category() Category
	Name() string

	// Clone returns a structural copy: same type, same category, same name,
	// independent payload. Never mutates the receiver.
	Clone() Value
	// Assign copies src's payload into the receiver in place. The
	// receiver's own name and category are preserved; only the payload
	// transfers. Returns an error if src's type does not match the
	// receiver's.
	Assign(src Value) error
	// Compare reports structural equality with other. Returns an error if
	// the two values do not share a type.
	Compare(other Value) (bool, error)
	// String renders the value's printed form.
	String() string

	// WithIdentity returns a copy of the receiver carrying a new name and
	// category, propagating the category to every transitively-owned
	// sub-value so the value-category invariant holds. Used by the
	// executor both for clone-then-bind (normal parameter/let binding) and
	// for move-then-bind (consuming an rvalue argument without copying its
	// payload).
	WithIdentity(name string, cat Category) Value
}

// header is embedded by every concrete Value variant.
type header struct {
	typ  types.Type
	cat  Category
	name string
}

func (h header) Type() types.Type  { return h.typ }
func (h header) Category() Category { return h.cat }
func (h header) Name() string      { return h.name }

// retagCategory returns v unchanged if it already carries cat, otherwise a
// copy re-tagged (recursively, for composite values) to cat. Anonymous
// (name-preserving) retag — used internally when a composite's category
// changes and its sub-values must follow.
func retagCategory(v Value, cat Category) Value {
	if v.Category() == cat {
		return v
	}
	return v.WithIdentity(v.Name(), cat)
}
