package value

import "testing"

func TestCloneIsStructurallyEqualAndIndependent(t *testing.T) {
	orig := NewInt(7, LValue, "x")
	clone := orig.Clone()

	if !clone.Type().Equals(orig.Type()) {
		t.Fatalf("clone type mismatch: %s vs %s", clone.Type(), orig.Type())
	}
	eq, err := clone.Compare(orig)
	if err != nil || !eq {
		t.Fatalf("clone should compare equal to original: eq=%v err=%v", eq, err)
	}

	clone.(*IntValue).Val = 99
	if orig.Val != 7 {
		t.Fatalf("mutating the clone must not affect the original, got %d", orig.Val)
	}
}

func TestAssignPreservesNameAndCategory(t *testing.T) {
	target := NewInt(0, LValue, "a")
	src := NewInt(5, RValue, "")

	if err := target.Assign(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Val != 5 {
		t.Fatalf("assign did not transfer payload: %d", target.Val)
	}
	if target.Name() != "a" || target.Category() != LValue {
		t.Fatalf("assign must preserve target identity, got name=%q cat=%s", target.Name(), target.Category())
	}
}

func TestListPushBackSizeAndAt(t *testing.T) {
	l := NewList(NewInt(0, RValue, "").Type(), nil, LValue, "l")
	l.PushBack(NewInt(5, RValue, ""))
	l.PushBack(NewInt(6, RValue, ""))

	if l.Size() != 2 {
		t.Fatalf("expected size 2, got %d", l.Size())
	}
	last, err := l.At(l.Size() - 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last.(*IntValue).Val != 6 {
		t.Fatalf("at(size-1) should be the just-pushed value, got %v", last)
	}

	if _, err := l.At(5); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestListEmptyAfterClear(t *testing.T) {
	l := NewList(NewInt(0, RValue, "").Type(), []Value{NewInt(1, RValue, "")}, LValue, "l")
	l.Clear()
	if !l.Empty() {
		t.Fatalf("expected empty list after Clear")
	}
	if err := l.PopBack(); err == nil {
		t.Fatalf("pop_back on empty list should error")
	}
}

func TestListElementsInheritParentCategory(t *testing.T) {
	l := NewList(NewInt(0, RValue, "").Type(), []Value{NewInt(1, RValue, "")}, RValue, "")
	bound := l.WithIdentity("xs", LValue)
	for _, e := range bound.(*ListValue).Elements {
		if e.Category() != LValue {
			t.Fatalf("element category should follow composite category, got %s", e.Category())
		}
	}
}

func TestStructFieldByNameAndSetField(t *testing.T) {
	s := NewStruct("point", []FieldValue{
		{Name: "x", Val: NewInt(1, LValue, "")},
		{Name: "y", Val: NewInt(2, LValue, "")},
	}, LValue, "p")

	fx, ok := s.FieldByName("x")
	if !ok || fx.(*IntValue).Val != 1 {
		t.Fatalf("unexpected field x: %v ok=%v", fx, ok)
	}
	if err := s.SetField("y", NewInt(9, RValue, "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fy, _ := s.FieldByName("y")
	if fy.(*IntValue).Val != 9 {
		t.Fatalf("SetField did not update field, got %v", fy)
	}
	if _, ok := s.FieldByName("z"); ok {
		t.Fatalf("expected false for undefined field")
	}
}

func TestStructConstructMatchesFieldsInOrder(t *testing.T) {
	s := NewStruct("point", []FieldValue{
		{Name: "x", Val: NewInt(3, LValue, "")},
		{Name: "y", Val: NewInt(4, LValue, "")},
	}, LValue, "p")
	for i, want := range []int64{3, 4} {
		if s.Fields[i].Val.(*IntValue).Val != want {
			t.Fatalf("field %d: want %d, got %d", i, want, s.Fields[i].Val.(*IntValue).Val)
		}
	}
}

func TestPointerDerefAndDanglingAfterKill(t *testing.T) {
	reg := NewRegistry()
	cell := reg.New(NewInt(42, LValue, "n"))
	ptr := NewPointer(reg, cell.ID, NewInt(0, RValue, "").Type(), RValue, "")

	got, err := ptr.Deref()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*IntValue).Val != 42 {
		t.Fatalf("unexpected deref value: %v", got)
	}

	reg.Kill(cell.ID)
	if _, err := ptr.Deref(); err == nil {
		t.Fatalf("expected dereference of a destroyed pointee to error")
	}
}

func TestPointerEqualityIsReferentIdentity(t *testing.T) {
	reg := NewRegistry()
	cell := reg.New(NewInt(1, LValue, "n"))
	a := NewPointer(reg, cell.ID, NewInt(0, RValue, "").Type(), RValue, "")
	b := NewPointer(reg, cell.ID, NewInt(0, RValue, "").Type(), RValue, "")

	eq, err := a.Compare(b)
	if err != nil || !eq {
		t.Fatalf("pointers to the same cell should compare equal: eq=%v err=%v", eq, err)
	}

	other := reg.New(NewInt(1, LValue, "n2"))
	c := NewPointer(reg, other.ID, NewInt(0, RValue, "").Type(), RValue, "")
	eq, err = a.Compare(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eq {
		t.Fatalf("pointers to different cells must not compare equal")
	}
}

func TestFunctionValuesAreNotComparable(t *testing.T) {
	f := NewFunc(NewInt(0, RValue, "").Type(), "pkg$f", nil, nil, LValue, "f")
	if _, err := f.Compare(f.Clone()); err == nil {
		t.Fatalf("expected function comparison to be rejected")
	}
}
