// Package executor implements the tree-walking runtime: a scoped call
// stack, statement execution, expression evaluation, operator and call
// dispatch, and the host-function registry. It consumes a merged,
// semantically-checked ast.MergedUnit and the types.Registry built for it —
// nothing here re-validates what the semantic package already accepted.
package executor

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

// HostFunc is one embedder-registered foreign function: its declared
// signature (checked against the arguments on every call) and the Go
// closure that implements it.
type HostFunc struct {
	Sig  types.Type
	Call func(args []value.Value) (value.Value, error)
}

// Interpreter owns everything a running program needs: the merged
// function/struct tables, the type registry, the cell registry backing
// every pointer in the program, the global frame, and the host function
// table an embedder populates before InitGlobals.
type Interpreter struct {
	Funcs     map[string]*ast.FunctionDef
	Structs   map[string]*ast.StructDef
	Globals   []*ast.GlobalVarDef
	Registry  *types.Registry
	Cells     *value.Registry
	HostFuncs map[string]*HostFunc

	global *Frame

	// MaxDepth bounds call nesting; 0 means unbounded. Guards against a
	// script whose own (buggy) recursion would otherwise exhaust the Go
	// stack instead of raising a Runtime error.
	MaxDepth int
	depth    int

	// selfStack tracks the receiver of every method call currently on the
	// Go call stack, innermost last, so an embedder's host-function
	// callback can resolve the reserved "__self__" id (script.Engine.
	// FindVariableByID) to whichever method invocation is presently
	// calling out to it.
	selfStack []*value.StructValue
}

// CurrentSelf returns the receiver of the innermost method call presently
// executing, or nil if none is (a host callback invoked from outside any
// method body, or from a free function).
func (ip *Interpreter) CurrentSelf() *value.StructValue {
	if len(ip.selfStack) == 0 {
		return nil
	}
	return ip.selfStack[len(ip.selfStack)-1]
}

// New returns an Interpreter ready to run a program: funcs must be the
// analyser's post-lowering function table (semantic.Analyzer.Funcs), not
// unit.Funcs directly — lambda expressions are lowered into synthetic
// entries added to the analyser's own table during CheckAll, and unit.Funcs
// never sees those additions since the analyser copies rather than aliases
// it. reg is the same types.Registry semantic.Analyzer.CheckAll built.
func New(structs map[string]*ast.StructDef, funcs map[string]*ast.FunctionDef, globals []*ast.GlobalVarDef, reg *types.Registry) *Interpreter {
	return &Interpreter{
		Funcs:     funcs,
		Structs:   structs,
		Globals:   globals,
		Registry:  reg,
		Cells:     value.NewRegistry(),
		HostFuncs: make(map[string]*HostFunc),
		global:    newFrame(FrameGlobal),
	}
}

// RegisterHostFunc adds a foreign function under name (already carrying any
// embedder-chosen prefix; the "wamon$" rewrite is the script package's
// concern, not the executor's).
func (ip *Interpreter) RegisterHostFunc(name string, fn *HostFunc) {
	ip.HostFuncs[name] = fn
}

// InitGlobals constructs every global variable in source order, the
// executor's first action once a program is loaded. Globals live in ip's
// own global frame for the life of the Interpreter; they are never killed
// by Stack.Pop since that frame is never popped.
func (ip *Interpreter) InitGlobals() error {
	stack := NewStack(ip.global)
	for _, g := range ip.Globals {
		args := make([]value.Value, len(g.Args))
		for i, a := range g.Args {
			v, err := ip.eval(stack, "", nil, a)
			if err != nil {
				return fmt.Errorf("executor: initializing global %s: %w", g.Name, err)
			}
			args[i] = v
		}
		target := g.Type.Resolve()
		v, err := ip.constructValue(target, args, g.Name, value.LValue)
		if err != nil {
			return fmt.Errorf("executor: constructing global %s: %w", g.Name, err)
		}
		stack.Declare(g.Name, ip.Cells.New(v))
	}
	return nil
}

// FindGlobal returns the current value bound to the mangled global name,
// or false if no such global exists.
func (ip *Interpreter) FindGlobal(name string) (value.Value, bool) {
	c, ok := ip.global.Vars[name]
	if !ok {
		return nil, false
	}
	return c.Value, true
}

// CallFunctionByName invokes the named script function (or, failing that,
// a registered host function) with args, returning its result.
func (ip *Interpreter) CallFunctionByName(name string, args []value.Value) (value.Value, error) {
	if fn, ok := ip.Funcs[name]; ok {
		return wrapRuntime(ip.invokeFunc(fn, args, nil, nil))
	}
	if hf, ok := ip.HostFuncs[name]; ok {
		return wrapRuntime(ip.invokeHost(hf, args))
	}
	return nil, wamonerr.New(wamonerr.Runtime, ast.Position{}, "", "no function or host function named %q", name)
}

// CallCallable invokes a Func-typed value directly: a named function, a
// lambda closure, or a struct overloading the call operator, unified by
// value.FuncValue.
func (ip *Interpreter) CallCallable(fv *value.FuncValue, args []value.Value) (value.Value, error) {
	v, err := ip.callCallable(fv, args)
	return wrapRuntime(v, err)
}

func (ip *Interpreter) callCallable(fv *value.FuncValue, args []value.Value) (value.Value, error) {
	if fv.Receiver != nil {
		def := ip.Structs[fv.Receiver.StructName]
		if def == nil {
			return nil, fmt.Errorf("executor: callable receiver %q is not a known struct", fv.Receiver.StructName)
		}
		m, ok := def.Methods[types.CallOperatorMethod]
		if !ok {
			return nil, fmt.Errorf("executor: struct %q has no call operator", fv.Receiver.StructName)
		}
		return ip.invokeMethod(m, fv.Receiver, args)
	}
	fn, ok := ip.Funcs[fv.MangledName]
	if !ok {
		if hf, ok := ip.HostFuncs[fv.MangledName]; ok {
			return ip.invokeHost(hf, args)
		}
		return nil, fmt.Errorf("executor: callable refers to undefined function %q", fv.MangledName)
	}
	return ip.invokeFunc(fn, args, nil, fv.Captures)
}

// CallMethodByName invokes an explicit method call on recv, the embedder-
// facing counterpart of a script-level `recv:name(args...)` call: if recv
// has a built-in type, the inner-method table is consulted, otherwise
// recv's own struct method table is.
func (ip *Interpreter) CallMethodByName(recv value.Value, name string, args []value.Value) (value.Value, error) {
	return wrapRuntime(ip.dispatchMethod(recv, name, args))
}

// wrapRuntime lifts an internal error (most of them bare fmt.Errorf,
// produced deep inside expression evaluation where no useful "Context"
// string is available — precisely the "most Runtime errors" case
// wamonerr.Error's own doc comment calls out) into a *wamonerr.Error at the
// one boundary every embedder-facing call passes through, rather than
// threading position/context plumbing into every internal check.
func wrapRuntime(v value.Value, err error) (value.Value, error) {
	if err == nil {
		return v, nil
	}
	if _, ok := err.(*wamonerr.Error); ok {
		return v, err
	}
	return v, wamonerr.New(wamonerr.Runtime, ast.Position{}, "", "%v", err)
}

func (ip *Interpreter) invokeHost(hf *HostFunc, args []value.Value) (value.Value, error) {
	if err := types.CheckCallable(hf.Sig.Params(), argTypesOf(args)); err != nil {
		return nil, err
	}
	return hf.Call(args)
}

func argTypesOf(args []value.Value) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = a.Type()
	}
	return out
}
