package executor

import (
	"testing"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
)

func basic(name string) ast.TypeExpr { return &ast.BasicTypeExpr{Name: name} }

func ident(name string) ast.Expression { return &ast.Identifier{Name: name} }

func intLit(v int64) ast.Expression { return &ast.IntLiteral{Value: v} }

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }

func bin(op string, l, r ast.Expression) ast.Expression {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

// newInterp builds an Interpreter directly from a MergedUnit-shaped table,
// bypassing semantic.Analyzer: executor correctness does not depend on
// type-checking having run first, only on the tables it consumes having the
// shape the analyser would have produced (mangled keys, resolved types).
// When reg is nil, every non-trait struct in structs is registered with its
// resolved field list, which is all constructValue reads from the registry.
func newInterp(funcs map[string]*ast.FunctionDef, structs map[string]*ast.StructDef, globals []*ast.GlobalVarDef, reg *types.Registry) *Interpreter {
	if reg == nil {
		reg = types.NewRegistry()
		for name, def := range structs {
			if def.Trait {
				continue
			}
			fields := make([]types.Field, len(def.Fields))
			for i, f := range def.Fields {
				fields[i] = types.Field{Name: f.Name, Type: f.Type.Resolve()}
			}
			_ = reg.RegisterStruct(&types.StructDef{Name: name, Fields: fields})
		}
	}
	if structs == nil {
		structs = map[string]*ast.StructDef{}
	}
	return New(structs, funcs, globals, reg)
}

func TestAssignmentChainCopiesByValue(t *testing.T) {
	ip := newInterp(nil, nil, []*ast.GlobalVarDef{
		{Name: "a", Type: basic(types.Int), Args: []ast.Expression{intLit(1)}},
		{Name: "b", Type: basic(types.Int), Args: []ast.Expression{intLit(0)}},
	}, nil)
	if err := ip.InitGlobals(); err != nil {
		t.Fatalf("InitGlobals: %v", err)
	}

	stack := NewStack(ip.global)
	if _, err := ip.eval(stack, "", nil, bin("=", ident("b"), ident("a"))); err != nil {
		t.Fatalf("b = a: %v", err)
	}
	if _, err := ip.eval(stack, "", nil, bin("=", ident("a"), intLit(5))); err != nil {
		t.Fatalf("a = 5: %v", err)
	}

	bv, _ := ip.FindGlobal("b")
	if bv.(*value.IntValue).Val != 1 {
		t.Fatalf("b should keep its own copy (1), got %d", bv.(*value.IntValue).Val)
	}
	av, _ := ip.FindGlobal("a")
	if av.(*value.IntValue).Val != 5 {
		t.Fatalf("a should now be 5, got %d", av.(*value.IntValue).Val)
	}
}

func TestPointerLifetimeDerefAfterDeallocErrors(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	allocExpr := &ast.AllocExpr{Type: basic(types.Int), Args: []ast.Expression{intLit(7)}}
	p, err := ip.eval(stack, "", nil, allocExpr)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	stack.Declare("p", ip.Cells.New(p))

	deref, err := ip.eval(stack, "", nil, &ast.UnaryExpr{Op: "*", Operand: ident("p")})
	if err != nil {
		t.Fatalf("deref before dealloc: %v", err)
	}
	if deref.(*value.IntValue).Val != 7 {
		t.Fatalf("expected 7, got %d", deref.(*value.IntValue).Val)
	}

	if _, err := ip.eval(stack, "", nil, &ast.DeallocExpr{Pointer: ident("p")}); err != nil {
		t.Fatalf("dealloc: %v", err)
	}

	if _, err := ip.eval(stack, "", nil, &ast.UnaryExpr{Op: "*", Operand: ident("p")}); err == nil {
		t.Fatalf("expected deref-after-dealloc to error")
	}
}

func TestScopeExitKillsLocalCell(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	stack.Push(FrameBlock)
	allocExpr := &ast.AllocExpr{Type: basic(types.Int), Args: []ast.Expression{intLit(1)}}
	p, err := ip.eval(stack, "", nil, allocExpr)
	if err != nil {
		t.Fatalf("alloc: %v", err)
	}
	// p's pointee cell was minted directly by evalAlloc, not via
	// stack.Declare, so popping the frame kills only the local it declared:
	// that local's cell must be dead, while the alloc'd pointee survives.
	unrelated := ip.Cells.New(value.NewInt(0, value.LValue, "unrelated"))
	stack.Declare("unrelated", unrelated)
	stack.Pop(ip.Cells)

	if _, ok := ip.Cells.Lookup(unrelated.ID); ok {
		t.Fatalf("a local declared in the popped frame must have its cell killed")
	}
	pv := p.(*value.PointerValue)
	if _, err := pv.Deref(); err != nil {
		t.Fatalf("pointer owned by an outer scope must survive an unrelated frame's exit: %v", err)
	}
}

func TestBubbleSortsAscending(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	letList := &ast.LetStmt{Name: "xs", Type: &ast.ListTypeExpr{Element: basic(types.Int)}, Args: []ast.Expression{
		intLit(5), intLit(3), intLit(4), intLit(1), intLit(2),
	}}
	letI := &ast.LetStmt{Name: "i", Type: basic(types.Int), Args: []ast.Expression{intLit(0)}}
	letJ := &ast.LetStmt{Name: "j", Type: basic(types.Int), Args: []ast.Expression{intLit(0)}}

	outer := &ast.ForStmt{
		Init: letI,
		Cond: bin("<", ident("i"), intLit(5)),
		Update: &ast.ExprStmt{Expr: bin("=", ident("i"), bin("+", ident("i"), intLit(1)))},
		Body: block(&ast.ForStmt{
			Init: letJ,
			Cond: bin("<", ident("j"), bin("-", intLit(4), ident("i"))),
			Update: &ast.ExprStmt{Expr: bin("=", ident("j"), bin("+", ident("j"), intLit(1)))},
			Body: block(&ast.IfStmt{
				Cond: bin(">", bin("[]", ident("xs"), ident("j")), bin("[]", ident("xs"), bin("+", ident("j"), intLit(1)))),
				Then: block(
					&ast.LetStmt{Name: "tmp", Type: basic(types.Int), Args: []ast.Expression{bin("[]", ident("xs"), ident("j"))}},
					&ast.ExprStmt{Expr: bin("=", bin("[]", ident("xs"), ident("j")), bin("[]", ident("xs"), bin("+", ident("j"), intLit(1))))},
					&ast.ExprStmt{Expr: bin("=", bin("[]", ident("xs"), bin("+", ident("j"), intLit(1))), ident("tmp"))},
				),
			}),
		}),
	}

	stack.Push(FrameBlock)
	if err := ip.execLet(stack, frameCtx{}, letList); err != nil {
		t.Fatalf("let xs: %v", err)
	}
	if _, err := ip.execStmt(stack, frameCtx{}, outer); err != nil {
		t.Fatalf("sort loop: %v", err)
	}

	xsCell, _ := stack.Lookup("xs")
	xs := xsCell.Value.(*value.ListValue)
	want := []int64{1, 2, 3, 4, 5}
	for i, w := range want {
		got := xs.Elements[i].(*value.IntValue).Val
		if got != w {
			t.Fatalf("xs[%d] = %d, want %d (full: %v)", i, got, w, xs.Elements)
		}
	}
}

func TestCallOperatorStructBoundToFuncViaMove(t *testing.T) {
	structs := map[string]*ast.StructDef{
		"Adder": {
			Name:   "Adder",
			Fields: []ast.FieldDecl{{Name: "n", Type: basic(types.Int)}},
			Methods: map[string]*ast.MethodDef{
				"()": {
					Struct:     "Adder",
					Name:       "()",
					Operator:   "()",
					Params:     []ast.Param{{Name: "x", Type: basic(types.Int)}},
					ReturnType: basic(types.Int),
					Body: block(&ast.ReturnStmt{
						Value: bin("+", &ast.BinaryExpr{Op: ".", Left: &ast.SelfExpr{}, Right: ident("n")}, ident("x")),
					}),
				},
			},
		},
	}
	ip := newInterp(nil, structs, nil, nil)
	stack := NewStack(ip.global)

	adder := &ast.NewExpr{Type: basic("Adder"), Args: []ast.Expression{intLit(10)}}
	callableType := &ast.FuncTypeExpr{Params: []ast.TypeExpr{basic(types.Int)}, Ret: basic(types.Int)}
	letF := &ast.LetStmt{Name: "f", Type: callableType, Args: []ast.Expression{adder}}
	if err := ip.execLet(stack, frameCtx{}, letF); err != nil {
		t.Fatalf("let f: %v", err)
	}

	fCell, _ := stack.Lookup("f")
	fv, ok := fCell.Value.(*value.FuncValue)
	if !ok {
		t.Fatalf("f should be a FuncValue, got %T", fCell.Value)
	}
	result, err := ip.CallCallable(fv, []value.Value{value.NewInt(3, value.RValue, "")})
	if err != nil {
		t.Fatalf("call f(3): %v", err)
	}
	if result.(*value.IntValue).Val != 13 {
		t.Fatalf("expected 13, got %d", result.(*value.IntValue).Val)
	}
}

func TestStructTraitCastDispatchesThroughConcreteType(t *testing.T) {
	structs := map[string]*ast.StructDef{
		"Circle": {
			Name:   "Circle",
			Fields: []ast.FieldDecl{{Name: "r", Type: basic(types.Double)}},
			Methods: map[string]*ast.MethodDef{
				"area": {
					Struct:     "Circle",
					Name:       "area",
					ReturnType: basic(types.Double),
					Body: block(&ast.ReturnStmt{
						Value: bin("*", &ast.BinaryExpr{Op: ".", Left: &ast.SelfExpr{}, Right: ident("r")}, &ast.BinaryExpr{Op: ".", Left: &ast.SelfExpr{}, Right: ident("r")}),
					}),
				},
			},
		},
	}
	ip := newInterp(nil, structs, nil, nil)
	stack := NewStack(ip.global)

	circle := &ast.NewExpr{Type: basic("Circle"), Args: []ast.Expression{&ast.DoubleLiteral{Value: 3}}}
	cast := &ast.CastExpr{Value: circle, Trait: basic("Shape")}
	casted, err := ip.eval(stack, "", nil, cast)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	sv, ok := casted.(*value.StructValue)
	if !ok {
		t.Fatalf("cast result should still be a StructValue, got %T", casted)
	}
	if sv.TraitView != "Shape" {
		t.Fatalf("expected TraitView %q, got %q", "Shape", sv.TraitView)
	}
	if sv.StructName != "Circle" {
		t.Fatalf("cast must not change the concrete struct name, got %q", sv.StructName)
	}

	area, err := ip.CallMethodByName(sv, "area", nil)
	if err != nil {
		t.Fatalf("area(): %v", err)
	}
	if area.(*value.DoubleValue).Val != 9 {
		t.Fatalf("expected 9, got %v", area.(*value.DoubleValue).Val)
	}
}

func TestHostFunctionRegistrationAndCall(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	ip.RegisterHostFunc("double_it", &HostFunc{
		Sig: types.NewFunc([]types.Type{types.NewBasic(types.Int)}, types.NewBasic(types.Int)),
		Call: func(args []value.Value) (value.Value, error) {
			n := args[0].(*value.IntValue).Val
			return value.NewInt(n*2, value.RValue, ""), nil
		},
	})

	result, err := ip.CallFunctionByName("double_it", []value.Value{value.NewInt(21, value.RValue, "")})
	if err != nil {
		t.Fatalf("call double_it: %v", err)
	}
	if result.(*value.IntValue).Val != 42 {
		t.Fatalf("expected 42, got %d", result.(*value.IntValue).Val)
	}
}

func TestIntegerDivisionByZeroErrors(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	_, err := ip.eval(stack, "", nil, bin("/", intLit(1), intLit(0)))
	if err == nil {
		t.Fatalf("expected division by zero to error")
	}
}

func TestListSubscriptOutOfRangeErrors(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	letList := &ast.LetStmt{Name: "xs", Type: &ast.ListTypeExpr{Element: basic(types.Int)}, Args: []ast.Expression{intLit(1)}}
	if err := ip.execLet(stack, frameCtx{}, letList); err != nil {
		t.Fatalf("let xs: %v", err)
	}
	if _, err := ip.eval(stack, "", nil, bin("[]", ident("xs"), intLit(5))); err == nil {
		t.Fatalf("expected out-of-range subscript to error")
	}
}

func TestStringAppendAcceptsStringAndByte(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	letS := &ast.LetStmt{Name: "s", Type: basic(types.String), Args: []ast.Expression{&ast.StringLiteral{Value: "ab"}}}
	if err := ip.execLet(stack, frameCtx{}, letS); err != nil {
		t.Fatalf("let s: %v", err)
	}
	call := &ast.CallExpr{Receiver: ident("s"), Name: "append", Args: []ast.Expression{&ast.StringLiteral{Value: "cd"}}}
	if _, err := ip.eval(stack, "", nil, call); err != nil {
		t.Fatalf("append string: %v", err)
	}
	callByte := &ast.CallExpr{Receiver: ident("s"), Name: "append", Args: []ast.Expression{&ast.ByteLiteral{Value: 'e'}}}
	if _, err := ip.eval(stack, "", nil, callByte); err != nil {
		t.Fatalf("append byte: %v", err)
	}

	sCell, _ := stack.Lookup("s")
	if got := sCell.Value.(*value.StringValue).Val; got != "abcde" {
		t.Fatalf("expected %q, got %q", "abcde", got)
	}
}

func TestEmptyListPopBackErrors(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	letList := &ast.LetStmt{Name: "xs", Type: &ast.ListTypeExpr{Element: basic(types.Int)}}
	if err := ip.execLet(stack, frameCtx{}, letList); err != nil {
		t.Fatalf("let xs: %v", err)
	}
	call := &ast.CallExpr{Receiver: ident("xs"), Name: "pop_back"}
	if _, err := ip.eval(stack, "", nil, call); err == nil {
		t.Fatalf("expected pop_back on an empty list to error")
	}
}

func TestListResizeZeroFillsGrownSlots(t *testing.T) {
	ip := newInterp(nil, nil, nil, nil)
	stack := NewStack(ip.global)

	letList := &ast.LetStmt{Name: "xs", Type: &ast.ListTypeExpr{Element: basic(types.Int)}, Args: []ast.Expression{intLit(9)}}
	if err := ip.execLet(stack, frameCtx{}, letList); err != nil {
		t.Fatalf("let xs: %v", err)
	}
	call := &ast.CallExpr{Receiver: ident("xs"), Name: "resize", Args: []ast.Expression{intLit(3)}}
	if _, err := ip.eval(stack, "", nil, call); err != nil {
		t.Fatalf("resize: %v", err)
	}

	xsCell, _ := stack.Lookup("xs")
	xs := xsCell.Value.(*value.ListValue)
	if xs.Size() != 3 {
		t.Fatalf("expected size 3, got %d", xs.Size())
	}
	if xs.Elements[0].(*value.IntValue).Val != 9 {
		t.Fatalf("original element must survive, got %d", xs.Elements[0].(*value.IntValue).Val)
	}
	for i := 1; i < 3; i++ {
		if xs.Elements[i].(*value.IntValue).Val != 0 {
			t.Fatalf("grown slot %d should zero-fill to 0, got %d", i, xs.Elements[i].(*value.IntValue).Val)
		}
	}
}

func TestMethodTakesPrecedenceOverFreeFunctionOfSameName(t *testing.T) {
	funcs := map[string]*ast.FunctionDef{
		"greet": {
			Name:       "greet",
			Package:    "main",
			ReturnType: basic(types.String),
			Body:       block(&ast.ReturnStmt{Value: &ast.StringLiteral{Value: "free"}}),
		},
	}
	structs := map[string]*ast.StructDef{
		"Greeter": {
			Name: "Greeter",
			Methods: map[string]*ast.MethodDef{
				"greet": {
					Struct:     "Greeter",
					Name:       "greet",
					ReturnType: basic(types.String),
					Body:       block(&ast.ReturnStmt{Value: &ast.StringLiteral{Value: "method"}}),
				},
			},
		},
	}
	ip := newInterp(funcs, structs, nil, nil)
	stack := NewStack(ip.global)

	// Greeter has no fields; its receiver is built inline by a `new`
	// expression (evalNew, through constructValue) that evalCall evaluates
	// as the explicit Receiver, with no intermediate `let`.
	call := &ast.CallExpr{Receiver: &ast.NewExpr{Type: basic("Greeter")}, Name: "greet"}
	res, err := ip.eval(stack, "main", nil, call)
	if err != nil {
		t.Fatalf("call g:greet(): %v", err)
	}
	if res.(*value.StringValue).Val != "method" {
		t.Fatalf("explicit-receiver call must resolve to the method, got %q", res.(*value.StringValue).Val)
	}
}
