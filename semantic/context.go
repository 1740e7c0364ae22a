package semantic

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/types"
)

// Kind tags what a context was pushed for.
type Kind int

const (
	KindGlobal Kind = iota
	KindFunction
	KindMethod
	KindBlock
	KindFor
	KindWhile
)

// Context is one lexical scope: a kind plus a mapping from identifier to
// declared type. ReturnType and SelfStruct are only meaningful on
// Function/Method contexts.
type Context struct {
	Kind       Kind
	Vars       map[string]types.Type
	ReturnType types.Type
	SelfStruct string // non-empty on a Method context
}

// Stack is the nested sequence of lexical contexts the analyser walks
// while checking a function or method body. Index 0 is always the single
// global context.
type Stack struct {
	frames []*Context
}

// NewStack returns a Stack containing only the global context.
func NewStack() *Stack {
	return &Stack{frames: []*Context{{Kind: KindGlobal, Vars: make(map[string]types.Type)}}}
}

// Push opens a new context on top of the stack.
func (s *Stack) Push(kind Kind) *Context {
	c := &Context{Kind: kind, Vars: make(map[string]types.Type)}
	s.frames = append(s.frames, c)
	return c
}

// Pop closes the innermost context.
func (s *Stack) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the innermost context.
func (s *Stack) Top() *Context {
	return s.frames[len(s.frames)-1]
}

// Global returns the outermost (package) context.
func (s *Stack) Global() *Context {
	return s.frames[0]
}

// Declare registers name in the innermost context. Returns an error if
// name is already declared there (names may still shadow an outer scope's
// binding of the same name; only same-scope redeclaration is rejected).
func (s *Stack) Declare(name string, t types.Type) error {
	top := s.Top()
	if _, exists := top.Vars[name]; exists {
		return fmt.Errorf("%q is already declared in this scope", name)
	}
	top.Vars[name] = t
	return nil
}

// Lookup searches from the innermost context outward, stopping at the
// nearest enclosing function/method boundary; if not found there, it falls
// back directly to the global context. A function body never closes over
// an arbitrary enclosing function's scope except through explicit lambda
// capture, which bypasses Lookup entirely.
func (s *Stack) Lookup(name string) (types.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		f := s.frames[i]
		if t, ok := f.Vars[name]; ok {
			return t, true
		}
		if f.Kind == KindFunction || f.Kind == KindMethod {
			break
		}
	}
	if t, ok := s.Global().Vars[name]; ok {
		return t, true
	}
	return types.Type{}, false
}

// EnclosingFunc returns the nearest enclosing Function/Method context, or
// nil if there is none (the global context is not itself one).
func (s *Stack) EnclosingFunc() *Context {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == KindFunction || s.frames[i].Kind == KindMethod {
			return s.frames[i]
		}
	}
	return nil
}

// InLoop reports whether break/continue is legal here: scanning upward
// through block contexts is allowed, but a function/method or the global
// context blocks the search.
func (s *Stack) InLoop() bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		switch s.frames[i].Kind {
		case KindFor, KindWhile:
			return true
		case KindFunction, KindMethod, KindGlobal:
			return false
		}
	}
	return false
}
