package types

import "fmt"

// ConstructError is a typed constructability failure: the target type T does
// not admit a constructor call with the given argument types. Pos is the
// 1-based index (within the argument list) of the first mismatched
// argument, or 0 when the mismatch is about arity rather than a specific
// argument.
type ConstructError struct {
	Target Type
	Args   []Type
	Pos    int
	Reason string
}

func (e *ConstructError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("cannot construct %s from argument %d (%s): %s", e.Target, e.Pos, e.Args[e.Pos-1], e.Reason)
	}
	return fmt.Sprintf("cannot construct %s from %d argument(s): %s", e.Target, len(e.Args), e.Reason)
}

// CallOperatorMethod is the struct method-table key a struct's overloaded
// call operator is registered under (a struct field/method can never
// literally be named "()", which is what makes it safe as a sentinel).
// A struct declaring one becomes usable wherever a Func value of the
// matching signature is expected — construction, assignment, and ordinary
// callable dispatch all go through this single registration point.
const CallOperatorMethod = "()"

// BindCompatible reports whether a value of type source may be bound
// (construct or assign) into a storage location declared as target: either
// the two types are textually equal, or target is a Func(...) type and
// source names a struct whose call operator has exactly that signature.
func BindCompatible(reg *Registry, target, source Type) bool {
	if source.Equals(target) {
		return true
	}
	if target.Kind() != KindFunc || !source.IsBasic() || reg == nil {
		return false
	}
	def := reg.LookupStruct(source.BasicName())
	if def == nil {
		return false
	}
	sig, ok := def.Methods[CallOperatorMethod]
	return ok && sig.Equals(target)
}

// CheckConstruct decides whether target admits a constructor call with the
// ordered argument types args:
//
//   - void is never constructible.
//   - copy-construct: exactly one argument whose type equals target.
//   - List(E): every argument's type equals E (zero arguments build an empty list).
//   - Struct S: argument count equals the number of declared fields, and each
//     argument's type equals the corresponding field's declared type, in order.
//   - scalar builtin: same rule as copy-construct.
//
// Returns nil on success, or a *ConstructError naming the first mismatch.
func CheckConstruct(reg *Registry, target Type, args []Type) error {
	if target.IsVoid() {
		return &ConstructError{Target: target, Args: args, Reason: "void is never constructible"}
	}

	if target.Kind() == KindList {
		elem := target.Elem()
		for i, a := range args {
			if !a.Equals(elem) {
				return &ConstructError{Target: target, Args: args, Pos: i + 1, Reason: fmt.Sprintf("expected element type %s", elem)}
			}
		}
		return nil
	}

	if target.IsBasic() && reg != nil {
		if def := reg.LookupStruct(target.BasicName()); def != nil {
			if len(args) != len(def.Fields) {
				return &ConstructError{Target: target, Args: args, Reason: fmt.Sprintf("expected %d field(s), got %d", len(def.Fields), len(args))}
			}
			for i, f := range def.Fields {
				if !args[i].Equals(f.Type) {
					return &ConstructError{Target: target, Args: args, Pos: i + 1, Reason: fmt.Sprintf("field %q expects %s", f.Name, f.Type)}
				}
			}
			return nil
		}
	}

	// Copy-construct / scalar builtin: exactly one argument of the same type,
	// or (target a Func type) a struct with a matching call-operator overload.
	if len(args) != 1 {
		return &ConstructError{Target: target, Args: args, Reason: fmt.Sprintf("expected exactly 1 argument, got %d", len(args))}
	}
	if !BindCompatible(reg, target, args[0]) {
		return &ConstructError{Target: target, Args: args, Pos: 1, Reason: fmt.Sprintf("expected %s", target)}
	}
	return nil
}

// CallableError reports a mismatched call against a function/method/callable
// signature.
type CallableError struct {
	Params []Type
	Args   []Type
	Pos    int
	Reason string
}

func (e *CallableError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("argument %d (%s) does not match parameter type %s", e.Pos, e.Args[e.Pos-1], e.Params[e.Pos-1])
	}
	return e.Reason
}

// CheckCallable checks an invocation of a value whose parameter types are
// params against the ordered argument types args: arity must match, then
// each argument's type must equal the corresponding parameter's type.
func CheckCallable(params []Type, args []Type) error {
	if len(params) != len(args) {
		return &CallableError{Params: params, Args: args, Reason: fmt.Sprintf("expected %d argument(s), got %d", len(params), len(args))}
	}
	for i := range params {
		if !args[i].Equals(params[i]) {
			return &CallableError{Params: params, Args: args, Pos: i + 1}
		}
	}
	return nil
}

// MemberType returns the declared type of field on struct structName, or an
// error if the struct or the field does not exist.
func MemberType(reg *Registry, structName, field string) (Type, error) {
	def := reg.LookupStruct(structName)
	if def == nil {
		return Type{}, fmt.Errorf("types: %q is not a struct", structName)
	}
	ft, ok := def.FieldType(field)
	if !ok {
		return Type{}, fmt.Errorf("types: struct %q has no field %q", structName, field)
	}
	return ft, nil
}
