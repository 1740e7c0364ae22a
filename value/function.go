package value

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/types"
)

// FuncValue unifies every callable shape: a named global function
// (Receiver == nil, Captures empty), a lambda closure (Receiver == nil,
// Captures non-empty), and a struct value overloading the call operator
// (Receiver != nil). MangledName identifies which function/method body the
// executor runs.
type FuncValue struct {
	header
	MangledName string
	Receiver    *StructValue
	Captures    map[string]Value
}

// NewFunc constructs a function value of the given Func(...) type.
func NewFunc(sig types.Type, mangledName string, receiver *StructValue, captures map[string]Value, cat Category, name string) *FuncValue {
	return &FuncValue{
		header:      header{typ: sig, cat: cat, name: name},
		MangledName: mangledName,
		Receiver:    receiver,
		Captures:    captures,
	}
}

func (v *FuncValue) Clone() Value {
	var recv *StructValue
	if v.Receiver != nil {
		recv = v.Receiver.Clone().(*StructValue)
	}
	var caps map[string]Value
	if v.Captures != nil {
		caps = make(map[string]Value, len(v.Captures))
		for k, c := range v.Captures {
			caps[k] = c.Clone()
		}
	}
	nv := *v
	nv.Receiver = recv
	nv.Captures = caps
	return &nv
}

func (v *FuncValue) String() string { return "func(" + v.MangledName + ")" }

func (v *FuncValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	if cat != v.cat {
		if nv.Receiver != nil {
			nv.Receiver = retagCategory(nv.Receiver, cat).(*StructValue)
		}
		if nv.Captures != nil {
			retagged := make(map[string]Value, len(nv.Captures))
			for k, c := range nv.Captures {
				retagged[k] = retagCategory(c, cat)
			}
			nv.Captures = retagged
		}
	}
	return &nv
}

func (v *FuncValue) Assign(src Value) error {
	o, ok := src.(*FuncValue)
	if !ok || !o.Type().Equals(v.Type()) {
		return fmt.Errorf("value: cannot assign %s into %s", src.Type(), v.Type())
	}
	cloned := o.Clone().(*FuncValue)
	v.MangledName = cloned.MangledName
	v.Receiver = cloned.Receiver
	v.Captures = cloned.Captures
	return nil
}

// Compare is not defined for function values: the data model names
// Compare only between values of equal scalar/struct/list/pointer type.
func (v *FuncValue) Compare(Value) (bool, error) {
	return false, fmt.Errorf("value: function values are not comparable")
}
