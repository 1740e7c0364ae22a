package executor

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
)

// eval evaluates e against stack, qualifying any bare free-function
// reference against pkg and resolving `self` to self (nil outside a method
// body) — the runtime mirror of semantic.Analyzer.exprType's switch.
func (ip *Interpreter) eval(stack *Stack, pkg string, self *value.StructValue, e ast.Expression) (value.Value, error) {
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return value.NewInt(ex.Value, value.RValue, ""), nil
	case *ast.DoubleLiteral:
		return value.NewDouble(ex.Value, value.RValue, ""), nil
	case *ast.ByteLiteral:
		return value.NewByte(ex.Value, value.RValue, ""), nil
	case *ast.BoolLiteral:
		return value.NewBool(ex.Value, value.RValue, ""), nil
	case *ast.StringLiteral:
		return value.NewString(ex.Value, value.RValue, ""), nil
	case *ast.Identifier:
		return ip.evalIdentifier(stack, pkg, ex)
	case *ast.SelfExpr:
		if self == nil {
			return nil, fmt.Errorf("executor: self used outside a method body")
		}
		return self, nil
	case *ast.BinaryExpr:
		return ip.evalBinary(stack, pkg, self, ex)
	case *ast.UnaryExpr:
		return ip.evalUnary(stack, pkg, self, ex)
	case *ast.CallExpr:
		return ip.evalCall(stack, pkg, self, ex)
	case *ast.LambdaExpr:
		return ip.evalLambda(stack, pkg, self, ex)
	case *ast.AllocExpr:
		return ip.evalAlloc(stack, pkg, self, ex)
	case *ast.NewExpr:
		return ip.evalNew(stack, pkg, self, ex)
	case *ast.DeallocExpr:
		return ip.evalDealloc(stack, pkg, self, ex)
	case *ast.CastExpr:
		return ip.evalCast(stack, pkg, self, ex)
	default:
		return nil, fmt.Errorf("executor: unhandled expression %T", e)
	}
}

func (ip *Interpreter) evalIdentifier(stack *Stack, pkg string, ex *ast.Identifier) (value.Value, error) {
	if c, ok := stack.Lookup(ex.Name); ok {
		return c.Value, nil
	}
	if fn, key, ok := ip.lookupFuncKey(pkg, ex.Name); ok {
		return value.NewFunc(funcSigOf(fn), key, nil, nil, value.RValue, ""), nil
	}
	if hf, ok := ip.HostFuncs[ex.Name]; ok {
		return value.NewFunc(hf.Sig, ex.Name, nil, nil, value.RValue, ""), nil
	}
	return nil, fmt.Errorf("executor: undefined identifier %q", ex.Name)
}

// lookupFunc mirrors semantic.Analyzer.lookupFunc: an already-qualified
// name is tried first, then the name qualified against pkg.
func (ip *Interpreter) lookupFunc(pkg, name string) (*ast.FunctionDef, bool) {
	fn, _, ok := ip.lookupFuncKey(pkg, name)
	return fn, ok
}

// lookupFuncKey is lookupFunc plus the ip.Funcs map key that resolved it —
// the key a FuncValue built from a bare identifier reference must carry as
// its MangledName so a later CallCallable can find the same definition.
func (ip *Interpreter) lookupFuncKey(pkg, name string) (*ast.FunctionDef, string, bool) {
	if fn, ok := ip.Funcs[name]; ok {
		return fn, name, true
	}
	if pkg != "" {
		key := types.MangleGlobal(pkg, name)
		if fn, ok := ip.Funcs[key]; ok {
			return fn, key, true
		}
	}
	return nil, "", false
}

func funcSigOf(fn *ast.FunctionDef) types.Type {
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type.Resolve()
	}
	return types.NewFunc(params, fn.ReturnType.Resolve())
}

// lvalueRef is what resolveLvalue returns for e: the actual, mutable Value
// object backing it plus (for address-of) a Cell that may be reused as-is.
// identifiers and pointer-dereferences reuse an existing, already-tracked
// Cell; a member or subscript target has no Cell of its own, so mkCell mints
// a fresh one
// that still wraps the identical shared Value object, giving genuine
// write-through semantics for the new pointer without requiring every
// struct field or list element to carry a Cell of its own.
type lvalueRef struct {
	val     value.Value
	cell    *value.Cell // non-nil when an existing cell already backs val
	mkCell  func() *value.Cell
}

func (ip *Interpreter) resolveLvalue(stack *Stack, pkg string, self *value.StructValue, e ast.Expression) (*lvalueRef, error) {
	switch ex := e.(type) {
	case *ast.Identifier:
		c, ok := stack.Lookup(ex.Name)
		if !ok {
			return nil, fmt.Errorf("executor: undefined identifier %q", ex.Name)
		}
		return &lvalueRef{val: c.Value, cell: c}, nil
	case *ast.SelfExpr:
		if self == nil {
			return nil, fmt.Errorf("executor: self used outside a method body")
		}
		return &lvalueRef{val: self}, nil
	case *ast.UnaryExpr:
		if ex.Op != "*" {
			return nil, fmt.Errorf("executor: %s is not an addressable expression", ex.Op)
		}
		pv, err := ip.eval(stack, pkg, self, ex.Operand)
		if err != nil {
			return nil, err
		}
		p, ok := pv.(*value.PointerValue)
		if !ok {
			return nil, fmt.Errorf("executor: cannot dereference non-pointer %s", pv.Type())
		}
		c, ok := p.Reg.Lookup(p.CellID)
		if !ok {
			return nil, fmt.Errorf("executor: dereference of a destroyed pointee")
		}
		return &lvalueRef{val: c.Value, cell: c}, nil
	case *ast.BinaryExpr:
		switch ex.Op {
		case ".":
			lv, err := ip.eval(stack, pkg, self, ex.Left)
			if err != nil {
				return nil, err
			}
			sv, ok := lv.(*value.StructValue)
			if !ok {
				return nil, fmt.Errorf("executor: %s has no fields", lv.Type())
			}
			ident, ok := ex.Right.(*ast.Identifier)
			if !ok {
				return nil, fmt.Errorf("executor: member access requires a field name")
			}
			fv, ok := sv.FieldByName(ident.Name)
			if !ok {
				return nil, fmt.Errorf("executor: struct %q has no field %q", sv.StructName, ident.Name)
			}
			return &lvalueRef{val: fv, mkCell: func() *value.Cell { return ip.Cells.New(fv) }}, nil
		case "[]":
			lv, err := ip.eval(stack, pkg, self, ex.Left)
			if err != nil {
				return nil, err
			}
			lst, ok := lv.(*value.ListValue)
			if !ok {
				return nil, fmt.Errorf("executor: %s is not a list", lv.Type())
			}
			iv, err := ip.eval(stack, pkg, self, ex.Right)
			if err != nil {
				return nil, err
			}
			idx, ok := iv.(*value.IntValue)
			if !ok {
				return nil, fmt.Errorf("executor: list index must be int")
			}
			ev, err := lst.At(int(idx.Val))
			if err != nil {
				return nil, err
			}
			return &lvalueRef{val: ev, mkCell: func() *value.Cell { return ip.Cells.New(ev) }}, nil
		}
	}
	return nil, fmt.Errorf("executor: %T is not an addressable expression", e)
}

func (ip *Interpreter) evalBinary(stack *Stack, pkg string, self *value.StructValue, e *ast.BinaryExpr) (value.Value, error) {
	switch e.Op {
	case ".":
		ref, err := ip.resolveLvalue(stack, pkg, self, e)
		if err != nil {
			return nil, err
		}
		return ref.val, nil
	case "[]":
		ref, err := ip.resolveLvalue(stack, pkg, self, e)
		if err != nil {
			return nil, err
		}
		return ref.val, nil
	case "=":
		rv, err := ip.eval(stack, pkg, self, e.Right)
		if err != nil {
			return nil, err
		}
		ref, err := ip.resolveLvalue(stack, pkg, self, e.Left)
		if err != nil {
			return nil, err
		}
		if err := assignInto(ip.Registry, ref.val, rv); err != nil {
			return nil, err
		}
		return ref.val, nil
	}

	lv, err := ip.eval(stack, pkg, self, e.Left)
	if err != nil {
		return nil, err
	}
	rv, err := ip.eval(stack, pkg, self, e.Right)
	if err != nil {
		return nil, err
	}
	if v, ok, err := builtinBinary(e.Op, lv, rv); ok || err != nil {
		return v, err
	}
	mangled := types.MangleOperator(e.Op, []types.Type{lv.Type(), rv.Type()})
	if fn, ok := ip.Funcs[mangled]; ok {
		return ip.invokeFunc(fn, []value.Value{lv, rv}, nil, nil)
	}
	return nil, fmt.Errorf("executor: no builtin or user-defined operator %q for (%s, %s)", e.Op, lv.Type(), rv.Type())
}

// assignInto assigns src's payload into dst, honoring the call-operator
// coercion: assigning a struct overloading "()" into a Func-typed location
// wraps it into a FuncValue instead of calling StructValue.Assign directly.
func assignInto(reg *types.Registry, dst, src value.Value) error {
	if fv, ok := dst.(*value.FuncValue); ok {
		if sv, ok := src.(*value.StructValue); ok && !sv.Type().Equals(fv.Type()) {
			def := reg.LookupStruct(sv.StructName)
			if def == nil {
				return fmt.Errorf("executor: %q is not a known struct", sv.StructName)
			}
			if _, ok := def.Methods[types.CallOperatorMethod]; ok {
				return dst.Assign(value.NewFunc(fv.Type(), "", sv.Clone().(*value.StructValue), nil, fv.Category(), fv.Name()))
			}
		}
	}
	return dst.Assign(src)
}

// builtinBinary implements the fixed scalar/string operator table; ok is
// false when op/operand types name no builtin operator at all (the caller
// then falls through to a user overload), and err is non-nil for a
// builtin-shaped operation that fails at runtime (integer division by
// zero).
func builtinBinary(op string, l, r value.Value) (value.Value, bool, error) {
	switch op {
	case "+", "-", "*", "/":
		return arith(op, l, r)
	case "==", "!=":
		eq, err := l.Compare(r)
		if err != nil {
			return nil, false, err
		}
		if op == "!=" {
			eq = !eq
		}
		return value.NewBool(eq, value.RValue, ""), true, nil
	case "<", ">", "<=", ">=":
		return compareOrdered(op, l, r)
	case "&&", "||":
		lb, ok1 := l.(*value.BoolValue)
		rb, ok2 := r.(*value.BoolValue)
		if !ok1 || !ok2 {
			return nil, false, nil
		}
		if op == "&&" {
			return value.NewBool(lb.Val && rb.Val, value.RValue, ""), true, nil
		}
		return value.NewBool(lb.Val || rb.Val, value.RValue, ""), true, nil
	default:
		return nil, false, nil
	}
}

func arith(op string, l, r value.Value) (value.Value, bool, error) {
	switch lv := l.(type) {
	case *value.IntValue:
		rv, ok := r.(*value.IntValue)
		if !ok {
			return nil, false, nil
		}
		switch op {
		case "+":
			return value.NewInt(lv.Val+rv.Val, value.RValue, ""), true, nil
		case "-":
			return value.NewInt(lv.Val-rv.Val, value.RValue, ""), true, nil
		case "*":
			return value.NewInt(lv.Val*rv.Val, value.RValue, ""), true, nil
		case "/":
			if rv.Val == 0 {
				return nil, true, fmt.Errorf("executor: integer division by zero")
			}
			return value.NewInt(lv.Val/rv.Val, value.RValue, ""), true, nil
		}
	case *value.DoubleValue:
		rv, ok := r.(*value.DoubleValue)
		if !ok {
			return nil, false, nil
		}
		switch op {
		case "+":
			return value.NewDouble(lv.Val+rv.Val, value.RValue, ""), true, nil
		case "-":
			return value.NewDouble(lv.Val-rv.Val, value.RValue, ""), true, nil
		case "*":
			return value.NewDouble(lv.Val*rv.Val, value.RValue, ""), true, nil
		case "/":
			return value.NewDouble(lv.Val/rv.Val, value.RValue, ""), true, nil
		}
	case *value.StringValue:
		rv, ok := r.(*value.StringValue)
		if !ok || op != "+" {
			return nil, false, nil
		}
		return value.NewString(lv.Val+rv.Val, value.RValue, ""), true, nil
	}
	return nil, false, nil
}

func compareOrdered(op string, l, r value.Value) (value.Value, bool, error) {
	var cmp int
	switch lv := l.(type) {
	case *value.IntValue:
		rv, ok := r.(*value.IntValue)
		if !ok {
			return nil, false, nil
		}
		cmp = cmpInt64(lv.Val, rv.Val)
	case *value.DoubleValue:
		rv, ok := r.(*value.DoubleValue)
		if !ok {
			return nil, false, nil
		}
		cmp = cmpFloat64(lv.Val, rv.Val)
	case *value.ByteValue:
		rv, ok := r.(*value.ByteValue)
		if !ok {
			return nil, false, nil
		}
		cmp = int(lv.Val) - int(rv.Val)
	case *value.StringValue:
		rv, ok := r.(*value.StringValue)
		if !ok {
			return nil, false, nil
		}
		switch {
		case lv.Val < rv.Val:
			cmp = -1
		case lv.Val > rv.Val:
			cmp = 1
		}
	default:
		return nil, false, nil
	}
	var b bool
	switch op {
	case "<":
		b = cmp < 0
	case ">":
		b = cmp > 0
	case "<=":
		b = cmp <= 0
	case ">=":
		b = cmp >= 0
	}
	return value.NewBool(b, value.RValue, ""), true, nil
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (ip *Interpreter) evalUnary(stack *Stack, pkg string, self *value.StructValue, e *ast.UnaryExpr) (value.Value, error) {
	if e.Op == "&" {
		ref, err := ip.resolveLvalue(stack, pkg, self, e.Operand)
		if err != nil {
			return nil, err
		}
		cell := ref.cell
		if cell == nil {
			if ref.mkCell != nil {
				cell = ref.mkCell()
			} else {
				cell = ip.Cells.New(ref.val)
			}
		}
		return value.NewPointer(ip.Cells, cell.ID, ref.val.Type(), value.RValue, ""), nil
	}

	ov, err := ip.eval(stack, pkg, self, e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "-":
		switch v := ov.(type) {
		case *value.IntValue:
			return value.NewInt(-v.Val, value.RValue, ""), nil
		case *value.DoubleValue:
			return value.NewDouble(-v.Val, value.RValue, ""), nil
		}
		return nil, fmt.Errorf("executor: unary - requires int or double, got %s", ov.Type())
	case "!":
		b, ok := ov.(*value.BoolValue)
		if !ok {
			return nil, fmt.Errorf("executor: unary ! requires bool, got %s", ov.Type())
		}
		return value.NewBool(!b.Val, value.RValue, ""), nil
	case "*":
		p, ok := ov.(*value.PointerValue)
		if !ok {
			return nil, fmt.Errorf("executor: cannot dereference non-pointer %s", ov.Type())
		}
		return p.Deref()
	default:
		return nil, fmt.Errorf("executor: unknown unary operator %q", e.Op)
	}
}

func (ip *Interpreter) evalArgs(stack *Stack, pkg string, self *value.StructValue, args []ast.Expression) ([]value.Value, error) {
	out := make([]value.Value, len(args))
	for i, a := range args {
		v, err := ip.eval(stack, pkg, self, a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalCall implements the runtime mirror of the call-resolution order: an
// explicit receiver always resolves as a method (or, for a string/list
// receiver, an inner-method) call; a receiver-less call tries, in order, a
// local callable-object value, a UFCS-style implicit method call keyed off
// the first argument's value (it becomes the receiver, the remaining args
// match the method's parameters), then a free/qualified function, then a
// host function.
func (ip *Interpreter) evalCall(stack *Stack, pkg string, self *value.StructValue, e *ast.CallExpr) (value.Value, error) {
	args, err := ip.evalArgs(stack, pkg, self, e.Args)
	if err != nil {
		return nil, err
	}

	if e.Receiver != nil {
		recv, err := ip.eval(stack, pkg, self, e.Receiver)
		if err != nil {
			return nil, err
		}
		return ip.dispatchMethod(recv, e.Name, args)
	}

	if c, ok := stack.Lookup(e.Name); ok {
		if fv, ok := c.Value.(*value.FuncValue); ok {
			return ip.CallCallable(fv, args)
		}
	}

	if len(args) > 0 {
		if sv, ok := args[0].(*value.StructValue); ok {
			if def := ip.Structs[sv.StructName]; def != nil {
				if _, ok := def.Methods[e.Name]; ok {
					return ip.dispatchMethod(sv, e.Name, args[1:])
				}
			}
		}
	}

	if fn, ok := ip.lookupFunc(pkg, e.Name); ok {
		return ip.invokeFunc(fn, args, nil, nil)
	}

	if hf, ok := ip.HostFuncs[e.Name]; ok {
		return ip.invokeHost(hf, args)
	}

	return nil, fmt.Errorf("executor: no callable, method, or function named %q", e.Name)
}

// dispatchMethod resolves a call against an already-evaluated receiver: the
// built-in inner-method table for a string/list receiver, otherwise the
// receiver struct's own method table (TraitView, if set by a Cast, plays no
// part — dispatch always uses the concrete struct's methods).
func (ip *Interpreter) dispatchMethod(recv value.Value, name string, args []value.Value) (value.Value, error) {
	switch rv := recv.(type) {
	case *value.StringValue:
		return ip.callStringInner(rv, name, args)
	case *value.ListValue:
		return ip.callListInner(rv, name, args)
	case *value.StructValue:
		def := ip.Structs[rv.StructName]
		if def == nil {
			return nil, fmt.Errorf("executor: %q is not a known struct", rv.StructName)
		}
		m, ok := def.Methods[name]
		if !ok {
			return nil, fmt.Errorf("executor: struct %q has no method %q", rv.StructName, name)
		}
		return ip.invokeMethod(m, rv, args)
	default:
		return nil, fmt.Errorf("executor: %s is not a struct, string, or list", recv.Type())
	}
}

func (ip *Interpreter) callStringInner(s *value.StringValue, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "len":
		return value.NewInt(int64(len(s.Val)), value.RValue, ""), nil
	case "at":
		i, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(s.Val) {
			return nil, fmt.Errorf("executor: string index %d out of range (len %d)", i, len(s.Val))
		}
		return value.NewByte(s.Val[i], value.RValue, ""), nil
	case "append":
		if len(args) != 1 {
			return nil, fmt.Errorf("executor: string.append takes exactly one argument")
		}
		switch a := args[0].(type) {
		case *value.StringValue:
			s.Val += a.Val
		case *value.ByteValue:
			s.Val += string(rune(a.Val))
		default:
			return nil, fmt.Errorf("executor: string.append argument must be string or byte")
		}
		return value.NewVoid(), nil
	default:
		return nil, fmt.Errorf("executor: string has no inner method %q", name)
	}
}

func (ip *Interpreter) callListInner(l *value.ListValue, name string, args []value.Value) (value.Value, error) {
	switch name {
	case "size":
		return value.NewInt(int64(l.Size()), value.RValue, ""), nil
	case "empty":
		return value.NewBool(l.Empty(), value.RValue, ""), nil
	case "clear":
		l.Clear()
		return value.NewVoid(), nil
	case "at":
		i, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		return l.At(i)
	case "push_back":
		if len(args) != 1 {
			return nil, fmt.Errorf("executor: list.push_back takes exactly one argument")
		}
		l.PushBack(cloneInto(args[0], "", l.Category()))
		return value.NewVoid(), nil
	case "pop_back":
		return value.NewVoid(), l.PopBack()
	case "insert":
		i, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, fmt.Errorf("executor: list.insert takes exactly two arguments")
		}
		return value.NewVoid(), l.Insert(i, cloneInto(args[1], "", l.Category()))
	case "erase":
		i, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.NewVoid(), l.Erase(i)
	case "resize":
		n, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		elem := l.Elem
		return value.NewVoid(), l.Resize(n, func() value.Value { return zeroValue(ip.Registry, ip.Cells, elem) })
	default:
		return nil, fmt.Errorf("executor: list has no inner method %q", name)
	}
}

func intArg(args []value.Value, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("executor: missing argument %d", i)
	}
	iv, ok := args[i].(*value.IntValue)
	if !ok {
		return 0, fmt.Errorf("executor: argument %d must be int", i)
	}
	return int(iv.Val), nil
}

// evalLambda constructs a FuncValue closure: each capture is resolved
// against stack per its declared mode — normal clones the captured value so
// the closure owns an independent copy, ref and move both share the same
// underlying Value object directly (the executor has no further need to
// distinguish a shared reference from a moved-from source at runtime).
func (ip *Interpreter) evalLambda(stack *Stack, pkg string, self *value.StructValue, e *ast.LambdaExpr) (value.Value, error) {
	captures := make(map[string]value.Value, len(e.Captures))
	for _, c := range e.Captures {
		cell, ok := stack.Lookup(c.Name)
		if !ok {
			return nil, fmt.Errorf("executor: lambda captures undefined name %q", c.Name)
		}
		switch c.Mode {
		case ast.CaptureNormal:
			captures[c.Name] = cloneInto(cell.Value, c.Name, value.LValue)
		default:
			captures[c.Name] = cell.Value
		}
	}
	sig := funcSigOfLambda(e)
	return value.NewFunc(sig, e.MangledName, nil, captures, value.RValue, ""), nil
}

func funcSigOfLambda(e *ast.LambdaExpr) types.Type {
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Type.Resolve()
	}
	return types.NewFunc(params, e.ReturnType.Resolve())
}

func (ip *Interpreter) evalAlloc(stack *Stack, pkg string, self *value.StructValue, e *ast.AllocExpr) (value.Value, error) {
	args, err := ip.evalArgs(stack, pkg, self, e.Args)
	if err != nil {
		return nil, err
	}
	target := e.Type.Resolve()
	v, err := ip.constructValue(target, args, "", value.LValue)
	if err != nil {
		return nil, err
	}
	cell := ip.Cells.New(v)
	return value.NewPointer(ip.Cells, cell.ID, target, value.RValue, ""), nil
}

func (ip *Interpreter) evalNew(stack *Stack, pkg string, self *value.StructValue, e *ast.NewExpr) (value.Value, error) {
	args, err := ip.evalArgs(stack, pkg, self, e.Args)
	if err != nil {
		return nil, err
	}
	target := e.Type.Resolve()
	return ip.constructValue(target, args, "", value.RValue)
}

func (ip *Interpreter) evalDealloc(stack *Stack, pkg string, self *value.StructValue, e *ast.DeallocExpr) (value.Value, error) {
	pv, err := ip.eval(stack, pkg, self, e.Pointer)
	if err != nil {
		return nil, err
	}
	p, ok := pv.(*value.PointerValue)
	if !ok {
		return nil, fmt.Errorf("executor: dealloc requires a pointer, got %s", pv.Type())
	}
	ip.Cells.Kill(p.CellID)
	return value.NewVoid(), nil
}

// evalCast carries no runtime conversion: it tags the struct with the trait
// it is now viewed as (purely informational — method dispatch never
// consults TraitView) on a copy of the struct value, and returns that copy.
func (ip *Interpreter) evalCast(stack *Stack, pkg string, self *value.StructValue, e *ast.CastExpr) (value.Value, error) {
	v, err := ip.eval(stack, pkg, self, e.Value)
	if err != nil {
		return nil, err
	}
	sv, ok := v.(*value.StructValue)
	if !ok {
		return nil, fmt.Errorf("executor: cannot cast %s, not a struct", v.Type())
	}
	out := sv.Clone().(*value.StructValue)
	out.TraitView = e.Trait.Resolve().BasicName()
	return out, nil
}
