package value

import (
	"fmt"
	"strings"

	"github.com/chloro-pn/wamon-go/types"
)

// FieldValue is one (name, value) pair of a struct value's ordered field
// list.
type FieldValue struct {
	Name string
	Val  Value
}

// StructValue is an ordered list of (field_name, value) pairs. TraitView,
// when non-empty, names the trait this value is currently being viewed as
// (set by a Cast); dynamic dispatch always resolves through StructName's
// own method table regardless of TraitView.
type StructValue struct {
	header
	StructName string
	Fields     []FieldValue
	TraitView  string
}

// NewStruct constructs a struct value. fields must already carry cat as
// their category, matching the composite-category invariant.
func NewStruct(structName string, fields []FieldValue, cat Category, name string) *StructValue {
	return &StructValue{
		header:     header{typ: types.NewBasic(structName), cat: cat, name: name},
		StructName: structName,
		Fields:     fields,
	}
}

func (v *StructValue) Clone() Value {
	out := make([]FieldValue, len(v.Fields))
	for i, f := range v.Fields {
		out[i] = FieldValue{Name: f.Name, Val: f.Val.Clone()}
	}
	nv := *v
	nv.Fields = out
	return &nv
}

func (v *StructValue) String() string {
	var sb strings.Builder
	sb.WriteString(v.StructName)
	sb.WriteString("{ ")
	for i, f := range v.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Val.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

func (v *StructValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	if cat != v.cat {
		retagged := make([]FieldValue, len(v.Fields))
		for i, f := range v.Fields {
			retagged[i] = FieldValue{Name: f.Name, Val: retagCategory(f.Val, cat)}
		}
		nv.Fields = retagged
	}
	return &nv
}

func (v *StructValue) Assign(src Value) error {
	o, ok := src.(*StructValue)
	if !ok || o.StructName != v.StructName {
		return fmt.Errorf("value: cannot assign %s into %s", src.Type(), v.Type())
	}
	out := make([]FieldValue, len(o.Fields))
	for i, f := range o.Fields {
		out[i] = FieldValue{Name: f.Name, Val: retagCategory(f.Val.Clone(), v.cat)}
	}
	v.Fields = out
	return nil
}

func (v *StructValue) Compare(other Value) (bool, error) {
	o, ok := other.(*StructValue)
	if !ok || o.StructName != v.StructName {
		return false, fmt.Errorf("value: cannot compare %s with %s", v.Type(), other.Type())
	}
	for i := range v.Fields {
		eq, err := v.Fields[i].Val.Compare(o.Fields[i].Val)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// FieldByName returns the named field's value and true, or nil and false.
func (v *StructValue) FieldByName(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Val, true
		}
	}
	return nil, false
}

// SetField assigns val's payload into the named field in place, preserving
// the field slot's own identity header.
func (v *StructValue) SetField(name string, val Value) error {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return v.Fields[i].Val.Assign(val)
		}
	}
	return fmt.Errorf("value: struct %q has no field %q", v.StructName, name)
}
