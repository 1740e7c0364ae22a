package semantic

import (
	"strings"
	"testing"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

func basic(name string) ast.TypeExpr { return &ast.BasicTypeExpr{Name: name} }

func ident(name string) ast.Expression { return &ast.Identifier{Name: name} }

func intLit(v int64) ast.Expression { return &ast.IntLiteral{Value: v} }

func block(stmts ...ast.Statement) *ast.Block { return &ast.Block{Statements: stmts} }

func TestCheckAllAcceptsValidProgram(t *testing.T) {
	unit := &ast.MergedUnit{
		Funcs: map[string]*ast.FunctionDef{
			"main$add": {
				Name:       "add",
				Package:    "main",
				MangledName: "main$add",
				Params: []ast.Param{
					{Name: "a", Type: basic(types.Int)},
					{Name: "b", Type: basic(types.Int)},
				},
				ReturnType: basic(types.Int),
				Body: block(&ast.ReturnStmt{
					Value: &ast.BinaryExpr{Op: "+", Left: ident("a"), Right: ident("b")},
				}),
			},
		},
		Structs: map[string]*ast.StructDef{},
		Globals: []*ast.GlobalVarDef{
			{Name: "main$x", Type: basic(types.Int), Args: []ast.Expression{intLit(1)}},
		},
	}

	a := NewAnalyzer()
	errs := a.CheckAll(unit)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCheckAllRejectsNonWellFormedParamType(t *testing.T) {
	unit := &ast.MergedUnit{
		Funcs: map[string]*ast.FunctionDef{
			"main$f": {
				Name:        "f",
				Package:     "main",
				MangledName: "main$f",
				Params: []ast.Param{
					{Name: "a", Type: basic("main$undefined_struct")},
				},
				ReturnType: basic(types.Void),
				Body:       block(),
			},
		},
		Structs: map[string]*ast.StructDef{},
	}

	a := NewAnalyzer()
	errs := a.CheckAll(unit)
	if len(errs) == 0 {
		t.Fatalf("expected well-formedness error, got none")
	}
	if !strings.Contains(errs[0].Error(), "not well-formed") {
		t.Fatalf("expected a not-well-formed error, got %v", errs[0])
	}
}

func TestCheckAllRejectsStructCycle(t *testing.T) {
	unit := &ast.MergedUnit{
		Funcs: map[string]*ast.FunctionDef{},
		Structs: map[string]*ast.StructDef{
			"main$a": {
				Name:   "main$a",
				Fields: []ast.FieldDecl{{Name: "b", Type: basic("main$b")}},
			},
			"main$b": {
				Name:   "main$b",
				Fields: []ast.FieldDecl{{Name: "a", Type: basic("main$a")}},
			},
		},
	}

	a := NewAnalyzer()
	errs := a.CheckAll(unit)
	if len(errs) == 0 {
		t.Fatalf("expected a struct dependency cycle error, got none")
	}
	if !strings.Contains(errs[0].Error(), "cycle") {
		t.Fatalf("expected a cycle error, got %v", errs[0])
	}
}

func TestCheckAllRejectsGlobalForwardReference(t *testing.T) {
	unit := &ast.MergedUnit{
		Funcs:   map[string]*ast.FunctionDef{},
		Structs: map[string]*ast.StructDef{},
		Globals: []*ast.GlobalVarDef{
			{Name: "main$x", Type: basic(types.Int), Args: []ast.Expression{ident("main$y")}},
			{Name: "main$y", Type: basic(types.Int), Args: []ast.Expression{intLit(1)}},
		},
	}

	a := NewAnalyzer()
	errs := a.CheckAll(unit)
	if len(errs) == 0 {
		t.Fatalf("expected an undefined-identifier error referencing a later global, got none")
	}
}

func TestCheckAllRejectsNonDeterministicReturn(t *testing.T) {
	unit := &ast.MergedUnit{
		Funcs: map[string]*ast.FunctionDef{
			"main$f": {
				Name:        "f",
				Package:     "main",
				MangledName: "main$f",
				ReturnType:  basic(types.Int),
				Body: block(&ast.IfStmt{
					Cond: &ast.BoolLiteral{Value: true},
					Then: block(&ast.ReturnStmt{Value: intLit(1)}),
				}),
			},
		},
		Structs: map[string]*ast.StructDef{},
	}

	a := NewAnalyzer()
	errs := a.CheckAll(unit)
	if len(errs) == 0 {
		t.Fatalf("expected a deterministic-return error, got none")
	}
	found := false
	for _, e := range errs {
		if e.Kind == wamonerr.DeterministicReturn {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DeterministicReturn-kind error, got %v", errs)
	}
}

func TestDeterministicReturnAcceptsIfElseBothTerminate(t *testing.T) {
	b := block(&ast.IfStmt{
		Cond: &ast.BoolLiteral{Value: true},
		Then: block(&ast.ReturnStmt{Value: intLit(1)}),
		Else: block(&ast.ReturnStmt{Value: intLit(2)}),
	})
	if !DeterministicReturn(b) {
		t.Fatalf("expected an if/else where both branches return to be deterministic")
	}
}

func TestDeterministicReturnRejectsMissingElse(t *testing.T) {
	b := block(&ast.IfStmt{
		Cond: &ast.BoolLiteral{Value: true},
		Then: block(&ast.ReturnStmt{Value: intLit(1)}),
	})
	if DeterministicReturn(b) {
		t.Fatalf("expected an if with no else to be non-deterministic")
	}
}

func TestCallResolutionPrefersLocalCallableOverFreeFunction(t *testing.T) {
	a := NewAnalyzer()
	a.Registry = types.NewRegistry()
	a.Funcs = map[string]*ast.FunctionDef{
		"main$helper": {
			Name:        "helper",
			Package:     "main",
			MangledName: "main$helper",
			ReturnType:  basic(types.Int),
			Body:        block(&ast.ReturnStmt{Value: intLit(1)}),
		},
	}
	stack := NewStack()
	stack.Push(KindFunction)
	// A local variable named "helper" of Func(() -> string) shadows the free
	// function of the same name; the call should resolve to the local.
	localSig := types.NewFunc(nil, types.NewBasic(types.String))
	if err := stack.Declare("helper", localSig); err != nil {
		t.Fatalf("unexpected declare error: %v", err)
	}

	call := &ast.CallExpr{Name: "helper"}
	got, err := a.exprType(stack, "main", call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equals(types.NewBasic(types.String)) {
		t.Fatalf("expected the call to resolve to the local callable's string return, got %s", got)
	}
}

// TestCallResolutionImplicitMethodKeyedOffFirstArgument exercises rule 2 of
// call resolution per its actual definition: a receiver-less call with a
// non-empty argument list resolves as an implicit method call when the
// *first argument's type* (not the calling context) names a struct
// defining a method of that name; the first argument becomes the receiver
// and the rest match the method's own parameter list. Calling from a plain
// function body (not a method) is the point — this must work with no
// enclosing self at all.
func TestCallResolutionImplicitMethodKeyedOffFirstArgument(t *testing.T) {
	a := NewAnalyzer()
	reg := types.NewRegistry()
	if err := reg.RegisterStruct(&types.StructDef{
		Name: "main$Point",
		Methods: map[string]types.Type{
			"Get": types.NewFunc(nil, types.NewBasic(types.Int)),
		},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Registry = reg
	a.Funcs = map[string]*ast.FunctionDef{}

	stack := NewStack()
	stack.Push(KindFunction)
	if err := stack.Declare("p", types.NewBasic("main$Point")); err != nil {
		t.Fatalf("unexpected declare error: %v", err)
	}

	call := &ast.CallExpr{Name: "Get", Args: []ast.Expression{ident("p")}}
	got, err := a.exprType(stack, "main", call)
	if err != nil {
		t.Fatalf("unexpected error resolving implicit method call: %v", err)
	}
	if !got.Equals(types.NewBasic(types.Int)) {
		t.Fatalf("expected Get's declared int return, got %s", got)
	}
}

// TestCallResolutionFallsBackToFreeFunctionWhenFirstArgHasNoMatchingMethod
// confirms rule 2 only fires when the first argument's type actually
// defines a method of that name — otherwise rule 3 (free/host function)
// still applies, the same as if no arguments were struct-typed at all.
func TestCallResolutionFallsBackToFreeFunctionWhenFirstArgHasNoMatchingMethod(t *testing.T) {
	a := NewAnalyzer()
	a.Registry = types.NewRegistry()
	a.Funcs = map[string]*ast.FunctionDef{
		"main$double": {
			Name:        "double",
			Package:     "main",
			MangledName: "main$double",
			Params:      []ast.Param{{Name: "n", Type: basic(types.Int)}},
			ReturnType:  basic(types.Int),
			Body:        block(&ast.ReturnStmt{Value: ident("n")}),
		},
	}

	stack := NewStack()
	stack.Push(KindFunction)

	call := &ast.CallExpr{Name: "double", Args: []ast.Expression{intLit(21)}}
	got, err := a.exprType(stack, "main", call)
	if err != nil {
		t.Fatalf("unexpected error resolving free function call: %v", err)
	}
	if !got.Equals(types.NewBasic(types.Int)) {
		t.Fatalf("expected double's declared int return, got %s", got)
	}
}

func TestLambdaLoweringRegistersSyntheticFunctionAndValidatesCaptures(t *testing.T) {
	a := NewAnalyzer()
	a.Registry = types.NewRegistry()
	a.Funcs = map[string]*ast.FunctionDef{}

	stack := NewStack()
	stack.Push(KindFunction)
	if err := stack.Declare("total", types.NewBasic(types.Int)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.pushLabel("main$outer")

	lambda := &ast.LambdaExpr{
		Captures:   []ast.Capture{{Name: "total", Mode: ast.CaptureNormal}},
		Params:     []ast.Param{{Name: "x", Type: basic(types.Int)}},
		ReturnType: basic(types.Int),
		Body: block(&ast.ReturnStmt{
			Value: &ast.BinaryExpr{Op: "+", Left: ident("total"), Right: ident("x")},
		}),
	}

	got, err := a.exprType(stack, "main", lambda)
	if err != nil {
		t.Fatalf("unexpected error lowering lambda: %v", err)
	}
	if !got.Equals(types.NewFunc([]types.Type{types.NewBasic(types.Int)}, types.NewBasic(types.Int))) {
		t.Fatalf("unexpected lambda signature: %s", got)
	}
	if lambda.MangledName != "main$outer$__lambda_0" {
		t.Fatalf("unexpected lambda name: %s", lambda.MangledName)
	}
	if _, ok := a.Funcs[lambda.MangledName]; !ok {
		t.Fatalf("expected the lowered lambda to be registered under %q", lambda.MangledName)
	}
}

func TestLambdaLoweringRejectsCaptureOfUndefinedName(t *testing.T) {
	a := NewAnalyzer()
	a.Registry = types.NewRegistry()
	a.Funcs = map[string]*ast.FunctionDef{}
	stack := NewStack()
	stack.Push(KindFunction)
	a.pushLabel("main$outer")

	lambda := &ast.LambdaExpr{
		Captures:   []ast.Capture{{Name: "missing", Mode: ast.CaptureNormal}},
		ReturnType: basic(types.Void),
		Body:       block(),
	}

	if _, err := a.exprType(stack, "main", lambda); err == nil {
		t.Fatalf("expected an error capturing an undefined name")
	}
}
