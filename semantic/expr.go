package semantic

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

var (
	intT    = types.NewBasic(types.Int)
	doubleT = types.NewBasic(types.Double)
	byteT   = types.NewBasic(types.Byte)
	boolT   = types.NewBasic(types.Bool)
	stringT = types.NewBasic(types.String)
	voidT   = types.NewBasic(types.Void)
)

// exprType infers e's type against stack, qualifying any bare free-function
// reference against pkg (the package the enclosing function/method body
// belongs to).
func (a *Analyzer) exprType(stack *Stack, pkg string, e ast.Expression) (types.Type, error) {
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return intT, nil
	case *ast.DoubleLiteral:
		return doubleT, nil
	case *ast.ByteLiteral:
		return byteT, nil
	case *ast.BoolLiteral:
		return boolT, nil
	case *ast.StringLiteral:
		return stringT, nil
	case *ast.Identifier:
		return a.identifierType(stack, pkg, ex)
	case *ast.SelfExpr:
		fn := stack.EnclosingFunc()
		if fn == nil || fn.SelfStruct == "" {
			return types.Type{}, fmt.Errorf("self used outside a method body")
		}
		return types.NewBasic(fn.SelfStruct), nil
	case *ast.BinaryExpr:
		return a.binaryType(stack, pkg, ex)
	case *ast.UnaryExpr:
		return a.unaryType(stack, pkg, ex)
	case *ast.CallExpr:
		return a.callType(stack, pkg, ex)
	case *ast.LambdaExpr:
		return a.lambdaType(stack, pkg, ex)
	case *ast.AllocExpr:
		return a.allocType(stack, pkg, ex)
	case *ast.NewExpr:
		return a.newType(stack, pkg, ex)
	case *ast.DeallocExpr:
		pt, err := a.exprType(stack, pkg, ex.Pointer)
		if err != nil {
			return types.Type{}, err
		}
		if pt.Kind() != types.KindPointer {
			return types.Type{}, fmt.Errorf("dealloc requires a pointer, got %s", pt)
		}
		return voidT, nil
	case *ast.CastExpr:
		return a.castType(stack, pkg, ex)
	default:
		return types.Type{}, fmt.Errorf("semantic: unhandled expression %T", e)
	}
}

func (a *Analyzer) identifierType(stack *Stack, pkg string, e *ast.Identifier) (types.Type, error) {
	if t, ok := stack.Lookup(e.Name); ok {
		return t, nil
	}
	if fn, ok := a.lookupFunc(pkg, e.Name); ok {
		return funcSigOf(fn), nil
	}
	if t, ok := a.HostFuncs[e.Name]; ok {
		return t, nil
	}
	return types.Type{}, fmt.Errorf("undefined identifier %q", e.Name)
}

func funcSigOf(fn *ast.FunctionDef) types.Type {
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type.Resolve()
	}
	return types.NewFunc(params, fn.ReturnType.Resolve())
}

func builtinBinaryType(op string, l, r types.Type) (types.Type, bool) {
	switch op {
	case "+", "-", "*", "/":
		if l.Equals(r) && (l.Equals(intT) || l.Equals(doubleT)) {
			return l, true
		}
		if op == "+" && l.Equals(stringT) && r.Equals(stringT) {
			return stringT, true
		}
		return types.Type{}, false
	case "==", "!=":
		if l.Equals(r) {
			return boolT, true
		}
		return types.Type{}, false
	case "<", ">", "<=", ">=":
		if l.Equals(r) && (l.Equals(intT) || l.Equals(doubleT) || l.Equals(byteT) || l.Equals(stringT)) {
			return boolT, true
		}
		return types.Type{}, false
	case "&&", "||":
		if l.Equals(boolT) && r.Equals(boolT) {
			return boolT, true
		}
		return types.Type{}, false
	default:
		return types.Type{}, false
	}
}

func (a *Analyzer) binaryType(stack *Stack, pkg string, e *ast.BinaryExpr) (types.Type, error) {
	switch e.Op {
	case ".":
		return a.memberType(stack, pkg, e)
	case "[]":
		return a.subscriptType(stack, pkg, e)
	case "=":
		lt, err := a.exprType(stack, pkg, e.Left)
		if err != nil {
			return types.Type{}, err
		}
		rt, err := a.exprType(stack, pkg, e.Right)
		if err != nil {
			return types.Type{}, err
		}
		if !types.BindCompatible(a.Registry, lt, rt) {
			return types.Type{}, fmt.Errorf("cannot assign %s to %s", rt, lt)
		}
		return lt, nil
	}

	lt, err := a.exprType(stack, pkg, e.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := a.exprType(stack, pkg, e.Right)
	if err != nil {
		return types.Type{}, err
	}
	if t, ok := builtinBinaryType(e.Op, lt, rt); ok {
		return t, nil
	}
	mangled := types.MangleOperator(e.Op, []types.Type{lt, rt})
	if fn, ok := a.Funcs[mangled]; ok {
		return fn.ReturnType.Resolve(), nil
	}
	return types.Type{}, fmt.Errorf("no builtin or user-defined operator %q for (%s, %s)", e.Op, lt, rt)
}

func (a *Analyzer) memberType(stack *Stack, pkg string, e *ast.BinaryExpr) (types.Type, error) {
	lt, err := a.exprType(stack, pkg, e.Left)
	if err != nil {
		return types.Type{}, err
	}
	ident, ok := e.Right.(*ast.Identifier)
	if !ok {
		return types.Type{}, fmt.Errorf("member access requires a field name")
	}
	if lt.Kind() != types.KindBasic {
		return types.Type{}, fmt.Errorf("%s has no fields", lt)
	}
	if def := a.Registry.LookupStruct(lt.BasicName()); def != nil {
		if ft, ok := def.FieldType(ident.Name); ok {
			return ft, nil
		}
		return types.Type{}, fmt.Errorf("struct %s has no field %q", lt, ident.Name)
	}
	if trait := a.Registry.LookupTrait(lt.BasicName()); trait != nil {
		for _, f := range trait.Fields {
			if f.Name == ident.Name {
				return f.Type, nil
			}
		}
		return types.Type{}, fmt.Errorf("trait %s has no field %q", lt, ident.Name)
	}
	return types.Type{}, fmt.Errorf("%s is not a struct or trait", lt)
}

func (a *Analyzer) subscriptType(stack *Stack, pkg string, e *ast.BinaryExpr) (types.Type, error) {
	lt, err := a.exprType(stack, pkg, e.Left)
	if err != nil {
		return types.Type{}, err
	}
	rt, err := a.exprType(stack, pkg, e.Right)
	if err != nil {
		return types.Type{}, err
	}
	if lt.Kind() != types.KindList {
		return types.Type{}, fmt.Errorf("%s is not a list", lt)
	}
	if !rt.Equals(intT) {
		return types.Type{}, fmt.Errorf("list index must be int, got %s", rt)
	}
	return lt.Elem(), nil
}

func (a *Analyzer) unaryType(stack *Stack, pkg string, e *ast.UnaryExpr) (types.Type, error) {
	ot, err := a.exprType(stack, pkg, e.Operand)
	if err != nil {
		return types.Type{}, err
	}
	switch e.Op {
	case "-":
		if ot.Equals(intT) || ot.Equals(doubleT) {
			return ot, nil
		}
		return types.Type{}, fmt.Errorf("unary - requires int or double, got %s", ot)
	case "!":
		if ot.Equals(boolT) {
			return ot, nil
		}
		return types.Type{}, fmt.Errorf("unary ! requires bool, got %s", ot)
	case "*":
		if ot.Kind() != types.KindPointer {
			return types.Type{}, fmt.Errorf("cannot dereference non-pointer %s", ot)
		}
		return ot.Elem(), nil
	case "&":
		return types.NewPointer(ot), nil
	default:
		return types.Type{}, fmt.Errorf("unknown unary operator %q", e.Op)
	}
}

func (a *Analyzer) argTypes(stack *Stack, pkg string, args []ast.Expression) ([]types.Type, error) {
	out := make([]types.Type, len(args))
	for i, arg := range args {
		t, err := a.exprType(stack, pkg, arg)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// callType implements the call-resolution order: an explicit receiver
// always resolves as a method call on the receiver's type; a receiver-less
// call tries, in order, a callable-object (a local/global Func-typed value),
// a UFCS-style implicit method call keyed off the first argument's type
// (args[0] becomes the receiver, args[1:] match the method's parameters),
// then a free or host function.
func (a *Analyzer) callType(stack *Stack, pkg string, e *ast.CallExpr) (types.Type, error) {
	argTypes, err := a.argTypes(stack, pkg, e.Args)
	if err != nil {
		return types.Type{}, err
	}

	if e.Receiver != nil {
		recvType, err := a.exprType(stack, pkg, e.Receiver)
		if err != nil {
			return types.Type{}, err
		}
		return a.resolveMethodCall(recvType, e.Name, argTypes)
	}

	if t, ok := stack.Lookup(e.Name); ok && t.Kind() == types.KindFunc {
		if err := types.CheckCallable(t.Params(), argTypes); err != nil {
			return types.Type{}, err
		}
		return t.Ret(), nil
	}

	if len(argTypes) > 0 {
		if def := a.structDefOf(argTypes[0]); def != nil {
			if _, ok := def.Methods[e.Name]; ok {
				return a.resolveMethodCall(argTypes[0], e.Name, argTypes[1:])
			}
		}
	}

	if fn, ok := a.lookupFunc(pkg, e.Name); ok {
		sig := funcSigOf(fn)
		if err := types.CheckCallable(sig.Params(), argTypes); err != nil {
			return types.Type{}, err
		}
		return sig.Ret(), nil
	}

	if sig, ok := a.HostFuncs[e.Name]; ok {
		if err := types.CheckCallable(sig.Params(), argTypes); err != nil {
			return types.Type{}, err
		}
		return sig.Ret(), nil
	}

	return types.Type{}, fmt.Errorf("no callable, method, or function named %q", e.Name)
}

// structDefOf returns t's struct definition, or nil if t doesn't name a
// registered struct (traits and inner-method types don't count: rule 2 of
// call resolution is specifically "the first argument's type is a struct
// that defines a method named name").
func (a *Analyzer) structDefOf(t types.Type) *types.StructDef {
	if t.Kind() != types.KindBasic {
		return nil
	}
	return a.Registry.LookupStruct(t.BasicName())
}

func (a *Analyzer) resolveMethodCall(recvType types.Type, name string, argTypes []types.Type) (types.Type, error) {
	if types.HasInnerMethods(recvType) {
		return types.CheckInnerMethod(recvType, name, argTypes)
	}
	if recvType.Kind() != types.KindBasic {
		return types.Type{}, fmt.Errorf("%s is not a struct or trait", recvType)
	}
	var sig types.Type
	var ok bool
	if def := a.Registry.LookupStruct(recvType.BasicName()); def != nil {
		sig, ok = def.Methods[name]
	} else if trait := a.Registry.LookupTrait(recvType.BasicName()); trait != nil {
		sig, ok = trait.Methods[name]
	} else {
		return types.Type{}, fmt.Errorf("%s is not a struct or trait", recvType)
	}
	if !ok {
		return types.Type{}, fmt.Errorf("%s has no method %q", recvType, name)
	}
	if err := types.CheckCallable(sig.Params(), argTypes); err != nil {
		return types.Type{}, err
	}
	return sig.Ret(), nil
}

// castType type-checks `cast Value to Trait`: Value's static type must name
// a concrete struct, Trait must name a declared trait, and that struct must
// structurally satisfy it. The result type is the trait, not the struct.
func (a *Analyzer) castType(stack *Stack, pkg string, e *ast.CastExpr) (types.Type, error) {
	vt, err := a.exprType(stack, pkg, e.Value)
	if err != nil {
		return types.Type{}, err
	}
	if !vt.IsBasic() {
		return types.Type{}, fmt.Errorf("cannot cast %s, not a struct", vt)
	}
	def := a.Registry.LookupStruct(vt.BasicName())
	if def == nil {
		return types.Type{}, fmt.Errorf("cannot cast %s, not a concrete struct", vt)
	}
	traitType := e.Trait.Resolve()
	if !traitType.IsBasic() {
		return types.Type{}, fmt.Errorf("%s is not a trait", traitType)
	}
	trait := a.Registry.LookupTrait(traitType.BasicName())
	if trait == nil {
		return types.Type{}, fmt.Errorf("%s is not a declared trait", traitType)
	}
	if !trait.SatisfiedBy(def) {
		return types.Type{}, fmt.Errorf("struct %s does not satisfy trait %s", vt, traitType)
	}
	return traitType, nil
}

func (a *Analyzer) allocType(stack *Stack, pkg string, e *ast.AllocExpr) (types.Type, error) {
	argTypes, err := a.argTypes(stack, pkg, e.Args)
	if err != nil {
		return types.Type{}, err
	}
	target := e.Type.Resolve()
	if err := types.CheckConstruct(a.Registry, target, argTypes); err != nil {
		return types.Type{}, err
	}
	return types.NewPointer(target), nil
}

func (a *Analyzer) newType(stack *Stack, pkg string, e *ast.NewExpr) (types.Type, error) {
	argTypes, err := a.argTypes(stack, pkg, e.Args)
	if err != nil {
		return types.Type{}, err
	}
	target := e.Type.Resolve()
	if err := types.CheckConstruct(a.Registry, target, argTypes); err != nil {
		return types.Type{}, err
	}
	return target, nil
}

// lambdaType lowers e into a uniquely named synthetic function registered
// into a.Funcs, validates its captures against the surrounding scope, and
// returns its Func(...) type.
func (a *Analyzer) lambdaType(stack *Stack, pkg string, e *ast.LambdaExpr) (types.Type, error) {
	parent := a.currentLabel()
	name := a.nextLambdaName(parent)
	e.MangledName = name

	captureTypes := make(map[string]types.Type, len(e.Captures))
	seenCapture := make(map[string]bool, len(e.Captures))
	for _, c := range e.Captures {
		if seenCapture[c.Name] {
			return types.Type{}, fmt.Errorf("lambda captures %q more than once", c.Name)
		}
		seenCapture[c.Name] = true
		t, ok := stack.Lookup(c.Name)
		if !ok {
			return types.Type{}, fmt.Errorf("lambda captures undefined name %q", c.Name)
		}
		captureTypes[c.Name] = t
	}

	ctx := stack.Push(KindFunction)
	ctx.ReturnType = e.ReturnType.Resolve()
	a.pushLabel(name)

	var errs []*wamonerr.Error
	for _, c := range e.Captures {
		if err := stack.Declare(c.Name, captureTypes[c.Name]); err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, e.Pos(), name, "%v", err))
		}
	}
	seenParam := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		if seenParam[p.Name] || seenCapture[p.Name] {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, p.Type.Pos(), name, "duplicate parameter %q", p.Name))
			continue
		}
		seenParam[p.Name] = true
		if err := stack.Declare(p.Name, p.Type.Resolve()); err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, p.Type.Pos(), name, "%v", err))
		}
	}

	errs = append(errs, a.checkBlock(stack, pkg, e.Body)...)
	if !ctx.ReturnType.IsVoid() && !DeterministicReturn(e.Body) {
		errs = append(errs, wamonerr.New(wamonerr.DeterministicReturn, e.Body.Pos(), name, "not every path returns a value"))
	}

	a.popLabel()
	stack.Pop()

	if len(errs) > 0 {
		return types.Type{}, fmt.Errorf("%s", wamonerr.FormatErrors(errs))
	}

	a.Funcs[name] = &ast.FunctionDef{
		Name:        name,
		Params:      e.Params,
		ReturnType:  e.ReturnType,
		Body:        e.Body,
		MangledName: name,
		Package:     pkg,
	}

	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Type.Resolve()
	}
	return types.NewFunc(params, ctx.ReturnType), nil
}
