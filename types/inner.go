package types

import "fmt"

// InnerMethod is one entry of a built-in receiver's fixed method table: its
// declared parameter types and return type. string's "append" is the one
// entry with more than one valid overload (string or byte), which is why
// InnerMethodSigs returns a slice of candidate signatures rather than one.
type InnerMethod struct {
	Params []Type
	Ret    Type
}

// InnerMethodSigs returns every declared overload of method on a receiver of
// type recv (a string, or any list), or ok=false if recv has no inner
// method table or method is not one of its entries.
func InnerMethodSigs(recv Type, method string) ([]InnerMethod, bool) {
	if recv.IsBasic() && recv.BasicName() == String {
		switch method {
		case "len":
			return []InnerMethod{{Ret: NewBasic(Int)}}, true
		case "at":
			return []InnerMethod{{Params: []Type{NewBasic(Int)}, Ret: NewBasic(Byte)}}, true
		case "append":
			return []InnerMethod{
				{Params: []Type{NewBasic(String)}, Ret: NewBasic(Void)},
				{Params: []Type{NewBasic(Byte)}, Ret: NewBasic(Void)},
			}, true
		}
		return nil, false
	}
	if recv.Kind() == KindList {
		elem := recv.Elem()
		void := NewBasic(Void)
		switch method {
		case "size":
			return []InnerMethod{{Ret: NewBasic(Int)}}, true
		case "at":
			return []InnerMethod{{Params: []Type{NewBasic(Int)}, Ret: elem}}, true
		case "insert":
			return []InnerMethod{{Params: []Type{NewBasic(Int), elem}, Ret: void}}, true
		case "push_back":
			return []InnerMethod{{Params: []Type{elem}, Ret: void}}, true
		case "pop_back":
			return []InnerMethod{{Ret: void}}, true
		case "resize":
			return []InnerMethod{{Params: []Type{NewBasic(Int)}, Ret: void}}, true
		case "erase":
			return []InnerMethod{{Params: []Type{NewBasic(Int)}, Ret: void}}, true
		case "clear":
			return []InnerMethod{{Ret: void}}, true
		case "empty":
			return []InnerMethod{{Ret: NewBasic(Bool)}}, true
		}
		return nil, false
	}
	return nil, false
}

// CheckInnerMethod resolves method against recv's inner-method table and
// checks argTypes against whichever declared overload matches arity and
// argument types, returning its declared return type.
func CheckInnerMethod(recv Type, method string, argTypes []Type) (Type, error) {
	sigs, ok := InnerMethodSigs(recv, method)
	if !ok {
		return Type{}, fmt.Errorf("%s has no inner method %q", recv, method)
	}
	for _, sig := range sigs {
		if CheckCallable(sig.Params, argTypes) == nil {
			return sig.Ret, nil
		}
	}
	return Type{}, fmt.Errorf("%s.%s: no overload matches argument types %v", recv, method, argTypes)
}

// HasInnerMethods reports whether recv is a receiver kind with a built-in
// method table (string, or any list) — the call-resolution order consults
// this before falling through to a struct/trait's own method table.
func HasInnerMethods(recv Type) bool {
	return (recv.IsBasic() && recv.BasicName() == String) || recv.Kind() == KindList
}
