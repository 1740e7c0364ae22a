package executor

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
)

// cloneInto returns an independent copy of v carrying the given name and
// category, recursively retagging any owned sub-values. Used everywhere a
// new storage location takes ownership of an argument's payload rather than
// sharing the argument's own identity.
func cloneInto(v value.Value, name string, cat value.Category) value.Value {
	return v.Clone().WithIdentity(name, cat)
}

// bindParam implements the function-invocation binding rule: a parameter is
// bound to a clone of the argument, unless the argument is itself an rvalue
// temporary, in which case its payload may be moved in directly instead of
// cloned — nothing else can still observe that temporary once the call
// proceeds.
func bindParam(arg value.Value, name string) value.Value {
	if arg.Category() == value.RValue {
		return arg.WithIdentity(name, value.LValue)
	}
	return cloneInto(arg, name, value.LValue)
}

// bindReturn implements the return-value binding rule: an rvalue result
// passes straight through to the caller; an lvalue result is cloned so the
// callee's about-to-be-destroyed local does not leak its identity outward.
func bindReturn(v value.Value) value.Value {
	if v.Category() == value.RValue {
		return v.WithIdentity("", value.RValue)
	}
	return cloneInto(v, "", value.RValue)
}

// zeroValue returns the default-constructed value of t, used to zero-fill
// newly grown list slots (list.resize). cells is still the owning
// interpreter's cell registry even for a pointer zero value: the pointer
// carries no live cell (CellID "" never resolves), but it must reference a
// real, non-nil registry so Deref/String/Compare can fail cleanly instead of
// dereferencing a nil map.
func zeroValue(reg *types.Registry, cells *value.Registry, t types.Type) value.Value {
	switch t.Kind() {
	case types.KindPointer:
		return value.NewPointer(cells, "", t.Elem(), value.RValue, "")
	case types.KindList:
		return value.NewList(t.Elem(), nil, value.RValue, "")
	case types.KindFunc:
		return value.NewFunc(t, "", nil, nil, value.RValue, "")
	case types.KindBasic:
		switch t.BasicName() {
		case types.Int:
			return value.NewInt(0, value.RValue, "")
		case types.Double:
			return value.NewDouble(0, value.RValue, "")
		case types.Byte:
			return value.NewByte(0, value.RValue, "")
		case types.Bool:
			return value.NewBool(false, value.RValue, "")
		case types.String:
			return value.NewString("", value.RValue, "")
		default:
			if def := reg.LookupStruct(t.BasicName()); def != nil {
				fields := make([]value.FieldValue, len(def.Fields))
				for i, f := range def.Fields {
					fields[i] = value.FieldValue{Name: f.Name, Val: zeroValue(reg, cells, f.Type)}
				}
				return value.NewStruct(t.BasicName(), fields, value.RValue, "")
			}
		}
	}
	return value.NewVoid()
}

// constructValue builds a value of type target from args, per the same
// three shapes types.CheckConstruct validates: list aggregate, struct
// aggregate (field-by-field, declaration order), or scalar/copy-construct
// (a single argument of target's own type). The caller has already run
// CheckConstruct; this only has to perform the construction.
func (ip *Interpreter) constructValue(target types.Type, args []value.Value, name string, cat value.Category) (value.Value, error) {
	if target.Kind() == types.KindList {
		elem := target.Elem()
		elems := make([]value.Value, len(args))
		for i, a := range args {
			elems[i] = cloneInto(a, "", cat)
		}
		return value.NewList(elem, elems, cat, name), nil
	}
	if target.IsBasic() {
		if def := ip.Registry.LookupStruct(target.BasicName()); def != nil {
			fields := make([]value.FieldValue, len(args))
			for i, a := range args {
				fields[i] = value.FieldValue{Name: def.Fields[i].Name, Val: cloneInto(a, def.Fields[i].Name, cat)}
			}
			return value.NewStruct(target.BasicName(), fields, cat, name), nil
		}
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("executor: cannot construct %s from %d argument(s)", target, len(args))
	}
	// A struct overloading the call operator binds directly into a Func-typed
	// location: the resulting value is the callable wrapping that struct as
	// its receiver, not a second copy of the struct itself.
	if target.Kind() == types.KindFunc && args[0].Type().IsBasic() {
		if sv, ok := args[0].(*value.StructValue); ok {
			return value.NewFunc(target, "", sv.Clone().(*value.StructValue), nil, cat, name), nil
		}
	}
	return cloneInto(args[0], name, cat), nil
}
