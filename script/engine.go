// Package script is the embedder-facing surface: merge package units,
// run semantic analysis, build a running executor.Interpreter, and expose
// the handful of entry points spec.md §6 names (find a variable by id,
// call a function/method/callable by name); host functions are registered
// at construction through Options.HostFunctions.
package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/executor"
	"github.com/chloro-pn/wamon-go/semantic"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/value"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

// HostFunction is one embedder-supplied foreign function: its fixed
// signature (the "type-check callback" spec.md describes, simplified here
// to a declared Func type, since both semantic.Analyzer.HostFuncs and
// executor.HostFunc already key a host function to one fixed signature
// rather than a dynamic per-call check) and the Go closure implementing it.
type HostFunction struct {
	Sig  types.Type
	Call func(args []value.Value) (value.Value, error)
}

// Options bundles the construction-time knobs: host-visible output,
// maximum call-stack depth, and the host functions to register before the
// program's globals are initialized (semantic analysis must see every host
// function's signature before it can type-check a call to one, so these
// cannot be registered after the fact the way cmd/dwscript's
// RegisterFunction is in the teacher).
type Options struct {
	Output        io.Writer
	MaxDepth      int
	HostFunctions map[string]HostFunction
}

// Engine owns a fully analysed and running program: the merged declaration
// tables, the type registry, and the executor.Interpreter built from them.
type Engine struct {
	ip       *executor.Interpreter
	registry *types.Registry
	out      io.Writer
}

// internalHostName rewrites the embedder-conventional "wamon::name" form
// into the "$"-separated mangling every other internal name in this module
// uses (package-qualified globals, operator overloads, lambdas); a name
// not carrying that conventional prefix is registered verbatim.
func internalHostName(name string) string {
	const convention = "wamon::"
	if strings.HasPrefix(name, convention) {
		return "wamon$" + strings.TrimPrefix(name, convention)
	}
	return name
}

// NewInterpreter merges units, type-checks the result, and returns a
// running Engine with every global already initialized. Per spec.md §6
// this is the construction entry point; per spec.md §4.5 every host
// function must be known to the semantic pass before CheckAll runs, so
// opts.HostFunctions is consumed here rather than through a later
// RegisterHostFunction call.
func NewInterpreter(units []*ast.PackageUnit, opts Options) (*Engine, error) {
	merged, err := ast.MergePackageUnits(units)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	printSig := types.NewFunc([]types.Type{types.NewBasic(types.String)}, types.NewBasic(types.Void))

	az := semantic.NewAnalyzer()
	az.HostFuncs = make(map[string]types.Type, len(opts.HostFunctions)+2)
	az.HostFuncs["print"] = printSig
	az.HostFuncs["println"] = printSig
	for name, hf := range opts.HostFunctions {
		az.HostFuncs[internalHostName(name)] = hf.Sig
	}

	if errs := az.CheckAll(merged); len(errs) > 0 {
		return nil, fmt.Errorf("script: %s", wamonerr.FormatErrors(errs))
	}

	ip := executor.New(az.Structs, az.Funcs, merged.Globals, az.Registry)
	if opts.MaxDepth > 0 {
		ip.MaxDepth = opts.MaxDepth
	}
	for name, hf := range opts.HostFunctions {
		ip.RegisterHostFunc(internalHostName(name), &executor.HostFunc{Sig: hf.Sig, Call: hf.Call})
	}

	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	registerPrint(ip, out, printSig)

	if err := ip.InitGlobals(); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	return &Engine{ip: ip, registry: az.Registry, out: out}, nil
}

// FindVariableByID resolves id per spec.md §6: "<package>$<name>" for a
// global, or the reserved "__self__" for the receiver of whichever method
// invocation is presently calling out to the embedder (nil, false outside
// any method body).
func (e *Engine) FindVariableByID(id string) (value.Value, bool) {
	if id == "__self__" {
		self := e.ip.CurrentSelf()
		if self == nil {
			return nil, false
		}
		return self, true
	}
	return e.ip.FindGlobal(id)
}

// CallFunctionByName calls the script function (or host function) named
// name, e.g. "<package>$<name>".
func (e *Engine) CallFunctionByName(name string, args []value.Value) (value.Value, error) {
	return e.ip.CallFunctionByName(name, args)
}

// CallMethodByName calls name on recv: a struct's own method table, or the
// built-in inner-method table for a string/list receiver.
func (e *Engine) CallMethodByName(recv value.Value, name string, args []value.Value) (value.Value, error) {
	return e.ip.CallMethodByName(recv, name, args)
}

// CallCallable invokes a Func-typed value directly: a named function, a
// lambda closure, or a struct overloading the call operator.
func (e *Engine) CallCallable(fn *value.FuncValue, args []value.Value) (value.Value, error) {
	return e.ip.CallCallable(fn, args)
}

// Registry exposes the type registry backing this program, for embedder
// code that needs to construct a value.Value of a script-declared struct
// type (e.g. to pass as a host function's argument).
func (e *Engine) Registry() *types.Registry {
	return e.registry
}
