package value

import (
	"fmt"
	"strings"

	"github.com/chloro-pn/wamon-go/types"
)

// ListValue is an ordered sequence of values sharing a common element type.
type ListValue struct {
	header
	Elem     types.Type
	Elements []Value
}

// NewList constructs a list value of the given element type. elements must
// already carry cat as their category (the composite-category invariant);
// callers building a list from mixed-category sources should retag first.
func NewList(elem types.Type, elements []Value, cat Category, name string) *ListValue {
	return &ListValue{
		header:   header{typ: types.NewList(elem), cat: cat, name: name},
		Elem:     elem,
		Elements: elements,
	}
}

func (v *ListValue) Clone() Value {
	out := make([]Value, len(v.Elements))
	for i, e := range v.Elements {
		out[i] = e.Clone()
	}
	nv := *v
	nv.Elements = out
	return &nv
}

func (v *ListValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range v.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (v *ListValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	if cat != v.cat {
		retagged := make([]Value, len(v.Elements))
		for i, e := range v.Elements {
			retagged[i] = retagCategory(e, cat)
		}
		nv.Elements = retagged
	}
	return &nv
}

func (v *ListValue) Assign(src Value) error {
	o, ok := src.(*ListValue)
	if !ok || !o.Elem.Equals(v.Elem) {
		return fmt.Errorf("value: cannot assign %s into %s", src.Type(), v.Type())
	}
	out := make([]Value, len(o.Elements))
	for i, e := range o.Elements {
		out[i] = retagCategory(e.Clone(), v.cat)
	}
	v.Elements = out
	return nil
}

func (v *ListValue) Compare(other Value) (bool, error) {
	o, ok := other.(*ListValue)
	if !ok || !o.Elem.Equals(v.Elem) {
		return false, fmt.Errorf("value: cannot compare %s with %s", v.Type(), other.Type())
	}
	if len(v.Elements) != len(o.Elements) {
		return false, nil
	}
	for i := range v.Elements {
		eq, err := v.Elements[i].Compare(o.Elements[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// Size returns the number of elements.
func (v *ListValue) Size() int { return len(v.Elements) }

// At returns the element at i, or an error if out of range.
func (v *ListValue) At(i int) (Value, error) {
	if i < 0 || i >= len(v.Elements) {
		return nil, fmt.Errorf("value: list index %d out of range (size %d)", i, len(v.Elements))
	}
	return v.Elements[i], nil
}

// PushBack appends x (retagged to the list's own category) to the end.
func (v *ListValue) PushBack(x Value) {
	v.Elements = append(v.Elements, retagCategory(x, v.cat))
}

// PopBack removes the last element, or errors if the list is empty.
func (v *ListValue) PopBack() error {
	if len(v.Elements) == 0 {
		return fmt.Errorf("value: pop_back on an empty list")
	}
	v.Elements = v.Elements[:len(v.Elements)-1]
	return nil
}

// Insert places x at index i, shifting subsequent elements right.
func (v *ListValue) Insert(i int, x Value) error {
	if i < 0 || i > len(v.Elements) {
		return fmt.Errorf("value: insert index %d out of range (size %d)", i, len(v.Elements))
	}
	v.Elements = append(v.Elements, nil)
	copy(v.Elements[i+1:], v.Elements[i:])
	v.Elements[i] = retagCategory(x, v.cat)
	return nil
}

// Erase removes the element at index i.
func (v *ListValue) Erase(i int) error {
	if i < 0 || i >= len(v.Elements) {
		return fmt.Errorf("value: erase index %d out of range (size %d)", i, len(v.Elements))
	}
	v.Elements = append(v.Elements[:i], v.Elements[i+1:]...)
	return nil
}

// Resize grows or shrinks the list to n elements, zero-filling new slots
// with the element type's zero value.
func (v *ListValue) Resize(n int, zero func() Value) error {
	if n < 0 {
		return fmt.Errorf("value: resize to negative length %d", n)
	}
	if n <= len(v.Elements) {
		v.Elements = v.Elements[:n]
		return nil
	}
	for len(v.Elements) < n {
		v.Elements = append(v.Elements, retagCategory(zero(), v.cat))
	}
	return nil
}

// Clear empties the list.
func (v *ListValue) Clear() { v.Elements = nil }

// Empty reports whether the list has no elements.
func (v *ListValue) Empty() bool { return len(v.Elements) == 0 }
