package value

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/types"
)

// PointerValue is a weak back-reference to a Cell. Dereferencing a pointer
// whose cell has been killed (dealloc, or exit of the scope that declared
// the binding the pointer was taken from) is a defined runtime error, never
// a crash.
type PointerValue struct {
	header
	Reg    *Registry
	CellID string
}

// NewPointer constructs a pointer value of type ptr(elem) referencing the
// given cell.
func NewPointer(reg *Registry, cellID string, elem types.Type, cat Category, name string) *PointerValue {
	return &PointerValue{
		header: header{typ: types.NewPointer(elem), cat: cat, name: name},
		Reg:    reg,
		CellID: cellID,
	}
}

// Deref returns the referent, or an error if it has been destroyed.
func (p *PointerValue) Deref() (Value, error) {
	c, ok := p.Reg.Lookup(p.CellID)
	if !ok {
		return nil, fmt.Errorf("value: dereference of a destroyed pointee")
	}
	return c.Value, nil
}

func (p *PointerValue) Clone() Value { c := *p; return &c }
func (p *PointerValue) String() string {
	if _, ok := p.Reg.Lookup(p.CellID); !ok {
		return "ptr(<destroyed>)"
	}
	return "ptr(" + p.CellID + ")"
}
func (p *PointerValue) WithIdentity(name string, cat Category) Value {
	np := *p
	np.name, np.cat = name, cat
	return &np
}
func (p *PointerValue) Assign(src Value) error {
	o, ok := src.(*PointerValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into %s", src.Type(), p.Type())
	}
	p.Reg = o.Reg
	p.CellID = o.CellID
	return nil
}

// Compare reports pointer equality as identity of the referent: two
// pointers to the same cell compare equal even if that cell has since been
// destroyed, since destruction is orthogonal to which cell was addressed.
func (p *PointerValue) Compare(other Value) (bool, error) {
	o, ok := other.(*PointerValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare %s with %s", p.Type(), other.Type())
	}
	return p.CellID == o.CellID, nil
}
