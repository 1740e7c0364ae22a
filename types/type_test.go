package types

import "testing"

func TestTypeInfoAndEquals(t *testing.T) {
	i := NewBasic(Int)
	if i.Info() != "int" {
		t.Fatalf("Info() = %q, want %q", i.Info(), "int")
	}

	p := NewPointer(NewBasic(Int))
	if p.Info() != "ptr(int)" {
		t.Fatalf("Info() = %q, want %q", p.Info(), "ptr(int)")
	}

	l := NewList(NewBasic(String))
	if l.Info() != "list(string)" {
		t.Fatalf("Info() = %q, want %q", l.Info(), "list(string)")
	}

	f := NewFunc([]Type{NewBasic(Int), NewBasic(Int)}, NewBasic(Int))
	if f.Info() != "f((int, int) -> int)" {
		t.Fatalf("Info() = %q, want %q", f.Info(), "f((int, int) -> int)")
	}

	if !NewBasic(Int).Equals(NewBasic(Int)) {
		t.Fatalf("expected int == int")
	}
	if NewBasic(Int).Equals(NewBasic(Double)) {
		t.Fatalf("expected int != double")
	}
	if !NewList(NewBasic(Int)).Equals(NewList(NewBasic(Int))) {
		t.Fatalf("expected list(int) == list(int)")
	}
}

func TestCheckConstruct(t *testing.T) {
	reg := NewRegistry()
	point := &StructDef{
		Name: "point",
		Fields: []Field{
			{Name: "x", Type: NewBasic(Int)},
			{Name: "y", Type: NewBasic(Int)},
		},
		Methods: map[string]Type{},
	}
	if err := reg.RegisterStruct(point); err != nil {
		t.Fatal(err)
	}

	if err := CheckConstruct(reg, NewBasic("point"), []Type{NewBasic(Int), NewBasic(Int)}); err != nil {
		t.Fatalf("expected construct ok, got %v", err)
	}
	if err := CheckConstruct(reg, NewBasic("point"), []Type{NewBasic(Int)}); err == nil {
		t.Fatalf("expected arity mismatch error")
	}
	if err := CheckConstruct(reg, NewBasic("point"), []Type{NewBasic(Double), NewBasic(Int)}); err == nil {
		t.Fatalf("expected field type mismatch error")
	}
	if err := CheckConstruct(reg, NewBasic(Void), []Type{NewBasic(Int)}); err == nil {
		t.Fatalf("expected void never constructible")
	}
	if err := CheckConstruct(reg, NewList(NewBasic(Int)), nil); err != nil {
		t.Fatalf("expected empty list construct ok, got %v", err)
	}
	if err := CheckConstruct(reg, NewBasic(Int), []Type{NewBasic(Int)}); err != nil {
		t.Fatalf("expected scalar copy-construct ok, got %v", err)
	}
}

func TestStructAcyclic(t *testing.T) {
	reg := NewRegistry()
	_ = reg.RegisterStruct(&StructDef{Name: "a", Fields: []Field{{Name: "b", Type: NewBasic("b")}}})
	_ = reg.RegisterStruct(&StructDef{Name: "b", Fields: []Field{{Name: "a", Type: NewBasic("a")}}})

	if _, err := CheckStructAcyclic(reg); err == nil {
		t.Fatalf("expected cycle error")
	}

	reg2 := NewRegistry()
	_ = reg2.RegisterStruct(&StructDef{Name: "leaf", Fields: nil})
	_ = reg2.RegisterStruct(&StructDef{Name: "node", Fields: []Field{{Name: "l", Type: NewBasic("leaf")}}})
	order, err := CheckStructAcyclic(reg2)
	if err != nil {
		t.Fatalf("unexpected cycle error: %v", err)
	}
	if len(order) != 2 || order[0] != "leaf" || order[1] != "node" {
		t.Fatalf("unexpected order: %v", order)
	}

	// A struct holding a *pointer* to another that points back is not a
	// value-containment cycle and must be accepted: pointer cells are a
	// different value category, reference not aggregate.
	reg3 := NewRegistry()
	_ = reg3.RegisterStruct(&StructDef{Name: "x", Fields: []Field{{Name: "p", Type: NewPointer(NewBasic("y"))}}})
	_ = reg3.RegisterStruct(&StructDef{Name: "y", Fields: []Field{{Name: "p", Type: NewPointer(NewBasic("x"))}}})
	if _, err := CheckStructAcyclic(reg3); err != nil {
		t.Fatalf("expected pointer cycle to be accepted, got %v", err)
	}
}

// TestStructAcyclicUnwrapsListToFindCycle matches a cycle a list field hides
// behind: a list is a collection cell, not a pointer, so the struct still
// depends on its element existing and the dependency edge must be found by
// unwrapping the list, however deeply nested.
func TestStructAcyclicUnwrapsListToFindCycle(t *testing.T) {
	reg := NewRegistry()
	_ = reg.RegisterStruct(&StructDef{Name: "a", Fields: []Field{{Name: "items", Type: NewList(NewBasic("b"))}}})
	_ = reg.RegisterStruct(&StructDef{Name: "b", Fields: []Field{{Name: "parent", Type: NewBasic("a")}}})
	if _, err := CheckStructAcyclic(reg); err == nil {
		t.Fatalf("expected a list-hidden cycle to be rejected")
	}

	reg2 := NewRegistry()
	_ = reg2.RegisterStruct(&StructDef{Name: "c", Fields: []Field{{Name: "items", Type: NewList(NewList(NewBasic("b")))}}})
	_ = reg2.RegisterStruct(&StructDef{Name: "b", Fields: []Field{{Name: "parent", Type: NewBasic("c")}}})
	if _, err := CheckStructAcyclic(reg2); err == nil {
		t.Fatalf("expected a doubly-nested list-hidden cycle to be rejected")
	}

	// A list of a pointer to the enclosing struct is still not a containment
	// cycle: the pointer stops the walk before the list unwrap would matter.
	reg3 := NewRegistry()
	_ = reg3.RegisterStruct(&StructDef{Name: "d", Fields: []Field{{Name: "items", Type: NewList(NewPointer(NewBasic("d")))}}})
	if _, err := CheckStructAcyclic(reg3); err != nil {
		t.Fatalf("expected list-of-pointer self-reference to be accepted, got %v", err)
	}
}
