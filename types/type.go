// Package types provides the wamon type system: representation, textual
// identity, and the construction-compatibility rules the semantic analyser
// and executor both consult.
//
// A type is one of four shapes (Basic, Pointer, List, Func). Two types are
// equal iff their canonical printed form (Type.Info) is equal — the
// interpreter never compares types structurally, only by that string, which
// keeps cyclic shapes (a Func returning a Func) trivially comparable.
package types

import "strings"

// Kind tags which of the four type shapes a Type carries.
type Kind int

const (
	// KindBasic covers int, double, byte, bool, string, void, and user structs.
	KindBasic Kind = iota
	KindPointer
	KindList
	KindFunc
)

// Basic type names built into the language. A struct name is also a valid
// Basic name — it is the user's responsibility (enforced by the semantic
// analyser) that it resolves to a declared struct.
const (
	Int    = "int"
	Double = "double"
	Byte   = "byte"
	Bool   = "bool"
	String = "string"
	Void   = "void"
)

// Type is an immutable type descriptor. Construct one with the New*
// constructors; never mutate a Type's fields after construction, clone it by
// value instead (Type is small and comparable by value for Basic/Pointer/List,
// and the struct aggregate is otherwise already copy-safe since its slice and
// pointer fields are themselves never mutated in place).
type Type struct {
	kind   Kind
	name   string // KindBasic
	inner  *Type  // KindPointer, KindList (element type)
	params []Type // KindFunc
	ret    *Type  // KindFunc
}

// NewBasic returns the basic type named name (a builtin scalar, void, or a
// struct name).
func NewBasic(name string) Type {
	return Type{kind: KindBasic, name: name}
}

// NewPointer returns the pointer-to-inner type.
func NewPointer(inner Type) Type {
	return Type{kind: KindPointer, inner: &inner}
}

// NewList returns the list-of-element type.
func NewList(element Type) Type {
	return Type{kind: KindList, inner: &element}
}

// NewFunc returns the function type with the given ordered parameter types
// and return type.
func NewFunc(params []Type, ret Type) Type {
	cp := make([]Type, len(params))
	copy(cp, params)
	return Type{kind: KindFunc, params: cp, ret: &ret}
}

// Kind reports which shape this type carries.
func (t Type) Kind() Kind { return t.kind }

// IsBasic reports whether t is a Basic type.
func (t Type) IsBasic() bool { return t.kind == KindBasic }

// BasicName returns the basic type's name. Only valid when Kind() == KindBasic.
func (t Type) BasicName() string { return t.name }

// IsVoid reports whether t is exactly the void basic type.
func (t Type) IsVoid() bool { return t.kind == KindBasic && t.name == Void }

// Elem returns the pointee type (KindPointer) or element type (KindList).
// Panics if t is not one of those kinds — callers must check Kind() first.
func (t Type) Elem() Type {
	if t.inner == nil {
		panic("types: Elem called on a type with no inner type")
	}
	return *t.inner
}

// Params returns the ordered parameter types. Only valid when Kind() == KindFunc.
func (t Type) Params() []Type {
	out := make([]Type, len(t.params))
	copy(out, t.params)
	return out
}

// Ret returns the return type. Only valid when Kind() == KindFunc.
func (t Type) Ret() Type {
	if t.ret == nil {
		panic("types: Ret called on a non-func type")
	}
	return *t.ret
}

// Info returns the canonical textual identity of t. Two types are equal iff
// their Info strings are equal.
func (t Type) Info() string {
	switch t.kind {
	case KindBasic:
		return t.name
	case KindPointer:
		return "ptr(" + t.inner.Info() + ")"
	case KindList:
		return "list(" + t.inner.Info() + ")"
	case KindFunc:
		var sb strings.Builder
		sb.WriteString("f((")
		for i, p := range t.params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Info())
		}
		sb.WriteString(") -> ")
		sb.WriteString(t.ret.Info())
		sb.WriteString(")")
		return sb.String()
	default:
		return "<invalid type>"
	}
}

// String implements fmt.Stringer via the canonical textual identity.
func (t Type) String() string { return t.Info() }

// Equals reports whether t and other denote the same type: textual equality
// of the canonical printed form, per spec.
func (t Type) Equals(other Type) bool {
	return t.Info() == other.Info()
}

// EqualsAll reports whether a and b have the same length and every element
// is pairwise Equal, in order. Used throughout for parameter-list and
// field-type comparisons.
func EqualsAll(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

// IsScalarBuiltin reports whether name is one of the built-in scalar type
// names (int, double, byte, bool, string) — i.e. every Basic type except
// void and user struct names.
func IsScalarBuiltin(name string) bool {
	switch name {
	case Int, Double, Byte, Bool, String:
		return true
	default:
		return false
	}
}
