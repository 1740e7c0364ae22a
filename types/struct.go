package types

// Field is one (name, type) pair of a struct's ordered field list. Field
// order is the canonical construction order an aggregate-construct call
// must match argument-for-argument.
type Field struct {
	Name string
	Type Type
}

// StructDef is an ordered list of fields plus an unordered set of method
// names (the methods themselves live in the ast package — this package only
// needs to know a struct's shape for type-checking purposes).
type StructDef struct {
	Name    string
	Fields  []Field
	Methods map[string]Type // method name -> Func(...) type, for signature checks
}

// FieldType returns the declared type of a field and true, or the zero Type
// and false if no such field exists.
func (s *StructDef) FieldType(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

// FieldTypes returns the ordered list of declared field types, the
// constructor signature a copy- or aggregate-construct call must match.
func (s *StructDef) FieldTypes() []Type {
	out := make([]Type, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Type
	}
	return out
}

// TraitDef is a struct declared with the `trait` modifier: an unordered set
// of required fields and required method signatures a concrete struct must
// structurally satisfy to be cast to it. Satisfaction is purely structural —
// a concrete struct never names the traits it implements.
type TraitDef struct {
	Name    string
	Fields  []Field
	Methods map[string]Type
}

// SatisfiedBy reports whether concrete structurally satisfies every field and
// method the trait requires: each trait field must be present on the
// concrete struct with an identical type, and each trait method must be
// present with an identical Func signature.
func (t *TraitDef) SatisfiedBy(concrete *StructDef) bool {
	for _, tf := range t.Fields {
		ct, ok := concrete.FieldType(tf.Name)
		if !ok || !ct.Equals(tf.Type) {
			return false
		}
	}
	for name, sig := range t.Methods {
		ct, ok := concrete.Methods[name]
		if !ok || !ct.Equals(sig) {
			return false
		}
	}
	return true
}
