package semantic

import (
	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

// Analyzer holds everything the four-step check needs: the resolved type
// registry, the merged function/struct tables (mutated in place as lambda
// expressions are lowered into synthetic functions), and the scope stack
// shared across the whole pass.
type Analyzer struct {
	Registry *types.Registry
	Structs  map[string]*ast.StructDef
	Funcs    map[string]*ast.FunctionDef
	Stack    *Stack

	// HostFuncs carries the embedder-registered host function signatures
	// (set by the caller before CheckAll, e.g. the script package), so a
	// bare call to a host function type-checks the same as a call to a
	// script-defined free function.
	HostFuncs map[string]types.Type

	lambdaSeq  map[string]int
	labelStack []string
}

// NewAnalyzer returns an Analyzer ready for CheckAll.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		Funcs:     make(map[string]*ast.FunctionDef),
		lambdaSeq: make(map[string]int),
	}
}

// CheckAll runs the fixed four-step check over unit:
//
//  1. every declared type (field, parameter, return, global) is well-formed
//  2. the struct dependency graph has no value-containment cycle
//  3. every global is processed in source order, no forward references
//  4. every function and method body type-checks and, if non-void, returns
//     deterministically on every path
//
// A step that fails outright (steps 1-2) short-circuits the remaining steps
// since nothing downstream can be trusted once the type surface itself is
// broken; steps 3-4 instead accumulate every error found.
func (a *Analyzer) CheckAll(unit *ast.MergedUnit) []*wamonerr.Error {
	reg, err := buildRegistry(unit)
	if err != nil {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, ast.Position{}, "building type registry", "%v", err)}
	}
	a.Registry = reg
	a.Structs = unit.Structs
	for k, v := range unit.Funcs {
		a.Funcs[k] = v
	}
	a.Stack = NewStack()

	if errs := a.checkWellFormed(unit); len(errs) > 0 {
		return errs
	}
	if _, err := types.CheckStructAcyclic(a.Registry); err != nil {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, ast.Position{}, "struct dependency check", "%v", err)}
	}

	var errs []*wamonerr.Error
	errs = append(errs, a.checkGlobals(unit)...)
	errs = append(errs, a.checkFunctions()...)
	errs = append(errs, a.checkMethods()...)
	return errs
}

func (a *Analyzer) checkWellFormed(unit *ast.MergedUnit) []*wamonerr.Error {
	var errs []*wamonerr.Error
	notWellFormed := func(pos ast.Position, context string, t types.Type) {
		errs = append(errs, wamonerr.New(wamonerr.TypeCheck, pos, context, "type %s is not well-formed", t))
	}

	for name, def := range unit.Structs {
		for _, f := range def.Fields {
			if t := f.Type.Resolve(); !a.Registry.IsWellFormed(t, false) {
				notWellFormed(def.Pos(), "struct "+name, t)
			}
		}
		for mname, m := range def.Methods {
			for _, p := range m.Params {
				if t := p.Type.Resolve(); !a.Registry.IsWellFormed(t, false) {
					notWellFormed(m.Pos(), name+"::"+mname, t)
				}
			}
			if t := m.ReturnType.Resolve(); !a.Registry.IsWellFormed(t, true) {
				notWellFormed(m.Pos(), name+"::"+mname, t)
			}
		}
	}
	for name, fn := range unit.Funcs {
		for _, p := range fn.Params {
			if t := p.Type.Resolve(); !a.Registry.IsWellFormed(t, false) {
				notWellFormed(fn.Pos(), name, t)
			}
		}
		if t := fn.ReturnType.Resolve(); !a.Registry.IsWellFormed(t, true) {
			notWellFormed(fn.Pos(), name, t)
		}
	}
	for _, g := range unit.Globals {
		if t := g.Type.Resolve(); !a.Registry.IsWellFormed(t, false) {
			notWellFormed(g.Pos(), "global "+g.Name, t)
		}
	}
	return errs
}

func (a *Analyzer) checkGlobals(unit *ast.MergedUnit) []*wamonerr.Error {
	var errs []*wamonerr.Error
	for _, g := range unit.Globals {
		target := g.Type.Resolve()
		argTypes := make([]types.Type, 0, len(g.Args))
		bad := false
		for _, arg := range g.Args {
			t, err := a.exprType(a.Stack, "", arg)
			if err != nil {
				errs = append(errs, wamonerr.New(wamonerr.TypeCheck, arg.Pos(), "global "+g.Name, "%v", err))
				bad = true
				continue
			}
			argTypes = append(argTypes, t)
		}
		if bad {
			continue
		}
		if err := types.CheckConstruct(a.Registry, target, argTypes); err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, g.Pos(), "global "+g.Name, "%v", err))
			continue
		}
		if err := a.Stack.Declare(g.Name, target); err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, g.Pos(), "global "+g.Name, "%v", err))
		}
	}
	return errs
}

func (a *Analyzer) checkFunctions() []*wamonerr.Error {
	var errs []*wamonerr.Error
	for name, fn := range a.Funcs {
		if fn.Body == nil {
			continue
		}
		errs = append(errs, a.checkBody(name, name, fn.Package, fn.Params, fn.ReturnType, fn.Body, KindFunction, "")...)
	}
	return errs
}

func (a *Analyzer) checkMethods() []*wamonerr.Error {
	var errs []*wamonerr.Error
	for structName, def := range a.Structs {
		if def.Trait {
			continue
		}
		for mname, m := range def.Methods {
			if m.Body == nil {
				continue
			}
			label := structName + "::" + mname
			lambdaParent := structName + "$" + mname
			errs = append(errs, a.checkBody(label, lambdaParent, m.Package, m.Params, m.ReturnType, m.Body, KindMethod, structName)...)
		}
	}
	return errs
}

// checkBody pushes a function/method context, declares its parameters, walks
// its body, and (for a non-void return type) verifies every path returns.
// lambdaParent is the name a lambda lowered out of this body's MangleLambda
// parent should use; it need not match any registry key for a method.
func (a *Analyzer) checkBody(label, lambdaParent, pkg string, params []ast.Param, retType ast.TypeExpr, body *ast.Block, kind Kind, selfStruct string) []*wamonerr.Error {
	ctx := a.Stack.Push(kind)
	ctx.ReturnType = retType.Resolve()
	ctx.SelfStruct = selfStruct
	a.pushLabel(lambdaParent)

	var errs []*wamonerr.Error
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, p.Type.Pos(), label, "duplicate parameter %q", p.Name))
			continue
		}
		seen[p.Name] = true
		if err := a.Stack.Declare(p.Name, p.Type.Resolve()); err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, p.Type.Pos(), label, "%v", err))
		}
	}

	errs = append(errs, a.checkBlock(a.Stack, pkg, body)...)

	if !ctx.ReturnType.IsVoid() && !DeterministicReturn(body) {
		errs = append(errs, wamonerr.New(wamonerr.DeterministicReturn, body.Pos(), label, "not every path returns a value"))
	}

	a.popLabel()
	a.Stack.Pop()
	return errs
}

func (a *Analyzer) pushLabel(name string) { a.labelStack = append(a.labelStack, name) }
func (a *Analyzer) popLabel()             { a.labelStack = a.labelStack[:len(a.labelStack)-1] }
func (a *Analyzer) currentLabel() string {
	if len(a.labelStack) == 0 {
		return ""
	}
	return a.labelStack[len(a.labelStack)-1]
}

// nextLambdaName assigns the next synthetic name for a lambda lowered out of
// parent, e.g. "pkg$foo$__lambda_0", "pkg$foo$__lambda_1", ...
func (a *Analyzer) nextLambdaName(parent string) string {
	n := a.lambdaSeq[parent]
	a.lambdaSeq[parent] = n + 1
	return types.MangleLambda(parent, n)
}

// lookupFunc resolves a call/identifier name against the merged function
// table: an already-fully-qualified name (operator overload, lambda, or a
// caller that already wrote the mangled form) is tried first, then the name
// qualified against the calling function's own package.
func (a *Analyzer) lookupFunc(pkg, name string) (*ast.FunctionDef, bool) {
	if fn, ok := a.Funcs[name]; ok {
		return fn, true
	}
	if pkg != "" {
		if fn, ok := a.Funcs[types.MangleGlobal(pkg, name)]; ok {
			return fn, true
		}
	}
	return nil, false
}
