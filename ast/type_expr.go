package ast

import (
	"strings"

	"github.com/chloro-pn/wamon-go/types"
)

// TypeExpr is the syntactic shape of a declared type, as a parser would
// produce it from source text (e.g. "ptr(list(int))"). The semantic
// analyser resolves a TypeExpr into a types.Type via Resolve.
type TypeExpr interface {
	Node
	typeExprNode()
	// Resolve converts this syntactic type into the type system's
	// canonical representation. It never fails on its own — well-formedness
	// (whether a Basic name actually refers to a declared struct) is
	// checked separately by the semantic analyser's registry-aware pass.
	Resolve() types.Type
}

// BasicTypeExpr names a builtin scalar, void, or user struct/trait type.
type BasicTypeExpr struct {
	base
	Name string
}

func (*BasicTypeExpr) typeExprNode()      {}
func (e *BasicTypeExpr) String() string    { return e.Name }
func (e *BasicTypeExpr) Resolve() types.Type { return types.NewBasic(e.Name) }

// PointerTypeExpr is `ptr(Inner)`.
type PointerTypeExpr struct {
	base
	Inner TypeExpr
}

func (*PointerTypeExpr) typeExprNode()      {}
func (e *PointerTypeExpr) String() string    { return "ptr(" + e.Inner.String() + ")" }
func (e *PointerTypeExpr) Resolve() types.Type { return types.NewPointer(e.Inner.Resolve()) }

// ListTypeExpr is `list(Element)`.
type ListTypeExpr struct {
	base
	Element TypeExpr
}

func (*ListTypeExpr) typeExprNode()      {}
func (e *ListTypeExpr) String() string    { return "list(" + e.Element.String() + ")" }
func (e *ListTypeExpr) Resolve() types.Type { return types.NewList(e.Element.Resolve()) }

// FuncTypeExpr is `f((p1, p2, …) -> r)`.
type FuncTypeExpr struct {
	base
	Params []TypeExpr
	Ret    TypeExpr
}

func (*FuncTypeExpr) typeExprNode() {}
func (e *FuncTypeExpr) String() string {
	var sb strings.Builder
	sb.WriteString("f((")
	for i, p := range e.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(e.Ret.String())
	sb.WriteString(")")
	return sb.String()
}

func (e *FuncTypeExpr) Resolve() types.Type {
	params := make([]types.Type, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Resolve()
	}
	return types.NewFunc(params, e.Ret.Resolve())
}
