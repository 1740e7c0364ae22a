package value

import (
	"fmt"
	"strconv"

	"github.com/chloro-pn/wamon-go/types"
)

// IntValue is a scalar "int".
type IntValue struct {
	header
	Val int64
}

// NewInt constructs an IntValue.
func NewInt(v int64, cat Category, name string) *IntValue {
	return &IntValue{header: header{typ: types.NewBasic(types.Int), cat: cat, name: name}, Val: v}
}

func (v *IntValue) Clone() Value { c := *v; return &c }
func (v *IntValue) String() string { return strconv.FormatInt(v.Val, 10) }
func (v *IntValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *IntValue) Assign(src Value) error {
	o, ok := src.(*IntValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into int", src.Type())
	}
	v.Val = o.Val
	return nil
}
func (v *IntValue) Compare(other Value) (bool, error) {
	o, ok := other.(*IntValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare int with %s", other.Type())
	}
	return v.Val == o.Val, nil
}

// DoubleValue is a scalar "double".
type DoubleValue struct {
	header
	Val float64
}

func NewDouble(v float64, cat Category, name string) *DoubleValue {
	return &DoubleValue{header: header{typ: types.NewBasic(types.Double), cat: cat, name: name}, Val: v}
}

func (v *DoubleValue) Clone() Value   { c := *v; return &c }
func (v *DoubleValue) String() string { return strconv.FormatFloat(v.Val, 'g', -1, 64) }
func (v *DoubleValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *DoubleValue) Assign(src Value) error {
	o, ok := src.(*DoubleValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into double", src.Type())
	}
	v.Val = o.Val
	return nil
}
func (v *DoubleValue) Compare(other Value) (bool, error) {
	o, ok := other.(*DoubleValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare double with %s", other.Type())
	}
	return v.Val == o.Val, nil
}

// ByteValue is a scalar "byte", printed as the character it represents.
type ByteValue struct {
	header
	Val byte
}

func NewByte(v byte, cat Category, name string) *ByteValue {
	return &ByteValue{header: header{typ: types.NewBasic(types.Byte), cat: cat, name: name}, Val: v}
}

func (v *ByteValue) Clone() Value   { c := *v; return &c }
func (v *ByteValue) String() string { return string(rune(v.Val)) }
func (v *ByteValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *ByteValue) Assign(src Value) error {
	o, ok := src.(*ByteValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into byte", src.Type())
	}
	v.Val = o.Val
	return nil
}
func (v *ByteValue) Compare(other Value) (bool, error) {
	o, ok := other.(*ByteValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare byte with %s", other.Type())
	}
	return v.Val == o.Val, nil
}

// BoolValue is a scalar "bool".
type BoolValue struct {
	header
	Val bool
}

func NewBool(v bool, cat Category, name string) *BoolValue {
	return &BoolValue{header: header{typ: types.NewBasic(types.Bool), cat: cat, name: name}, Val: v}
}

func (v *BoolValue) Clone() Value { c := *v; return &c }
func (v *BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}
func (v *BoolValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *BoolValue) Assign(src Value) error {
	o, ok := src.(*BoolValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into bool", src.Type())
	}
	v.Val = o.Val
	return nil
}
func (v *BoolValue) Compare(other Value) (bool, error) {
	o, ok := other.(*BoolValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare bool with %s", other.Type())
	}
	return v.Val == o.Val, nil
}

// StringValue is a scalar "string".
type StringValue struct {
	header
	Val string
}

func NewString(v string, cat Category, name string) *StringValue {
	return &StringValue{header: header{typ: types.NewBasic(types.String), cat: cat, name: name}, Val: v}
}

func (v *StringValue) Clone() Value   { c := *v; return &c }
func (v *StringValue) String() string { return v.Val }
func (v *StringValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *StringValue) Assign(src Value) error {
	o, ok := src.(*StringValue)
	if !ok {
		return fmt.Errorf("value: cannot assign %s into string", src.Type())
	}
	v.Val = o.Val
	return nil
}
func (v *StringValue) Compare(other Value) (bool, error) {
	o, ok := other.(*StringValue)
	if !ok {
		return false, fmt.Errorf("value: cannot compare string with %s", other.Type())
	}
	return v.Val == o.Val, nil
}

// VoidValue is the unique, payload-less "void" value produced by a
// void-returning call or a bare expression statement's evaluation.
type VoidValue struct {
	header
}

func NewVoid() *VoidValue {
	return &VoidValue{header: header{typ: types.NewBasic(types.Void), cat: RValue}}
}

func (v *VoidValue) Clone() Value   { c := *v; return &c }
func (v *VoidValue) String() string { return "void" }
func (v *VoidValue) WithIdentity(name string, cat Category) Value {
	nv := *v
	nv.name, nv.cat = name, cat
	return &nv
}
func (v *VoidValue) Assign(src Value) error {
	if !src.Type().IsVoid() {
		return fmt.Errorf("value: cannot assign %s into void", src.Type())
	}
	return nil
}
func (v *VoidValue) Compare(Value) (bool, error) {
	return false, fmt.Errorf("value: void is not comparable")
}
