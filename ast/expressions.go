package ast

import (
	"strconv"
	"strings"
)

// IntLiteral is an int literal, e.g. 42.
type IntLiteral struct {
	base
	Value int64
}

func (*IntLiteral) expressionNode() {}
func (e *IntLiteral) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// DoubleLiteral is a double literal, e.g. 3.14.
type DoubleLiteral struct {
	base
	Value float64
}

func (*DoubleLiteral) expressionNode() {}
func (e *DoubleLiteral) String() string { return "<double>" }

// ByteLiteral is a byte literal.
type ByteLiteral struct {
	base
	Value byte
}

func (*ByteLiteral) expressionNode() {}
func (e *ByteLiteral) String() string { return string(rune(e.Value)) }

// BoolLiteral is a bool literal, true or false.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) expressionNode() {}
func (e *BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// StringLiteral is a string literal.
type StringLiteral struct {
	base
	Value string
}

func (*StringLiteral) expressionNode() {}
func (e *StringLiteral) String() string { return `"` + e.Value + `"` }

// Identifier is a bare name reference: a local/global variable, a function
// name, a host/builtin name, or (resolved by the semantic analyser, not the
// parser) a struct/trait name used as a TypeMetaValue-like reference.
type Identifier struct {
	base
	Name string
}

func (*Identifier) expressionNode() {}
func (e *Identifier) String() string { return e.Name }

// SelfExpr is the `self` expression, legal only inside a method context.
type SelfExpr struct {
	base
}

func (*SelfExpr) expressionNode() {}
func (*SelfExpr) String() string { return "self" }

// BinaryExpr is `left Op right`. Op is one of ".", "[]", "+", "-", "*", "/",
// "&&", "||", "==", "=", or a comparison/other operator resolved either by a
// builtin handler or a user-defined overload.
//
// Member access (".") requires Right to be an *Identifier naming the field;
// subscript ("[]") allows any int-typed Right.
type BinaryExpr struct {
	base
	Op    string
	Left  Expression
	Right Expression
}

func (*BinaryExpr) expressionNode() {}
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// UnaryExpr is `Op Operand`: "-" (int/double negation), "*" (pointer
// dereference), "&" (address-of), "!" (bool negation).
type UnaryExpr struct {
	base
	Op      string
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}
func (e *UnaryExpr) String() string { return e.Op + e.Operand.String() }

// CallExpr is a call expression. It covers both surface forms:
//
//   - `call name:(args…)`               — Receiver == nil
//   - `call obj:method(args…)`          — Receiver != nil, explicit method call
//
// The distinction matters for overload resolution: a Receiver-less call may
// resolve to a callable-object invocation, an implicit method call, or a
// free/host function, in that order; a call with an explicit Receiver
// always resolves as a method call on Receiver's type.
type CallExpr struct {
	base
	Name     string // function/method name
	Receiver Expression
	Args     []Expression
}

func (*CallExpr) expressionNode() {}
func (e *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString("call ")
	if e.Receiver != nil {
		sb.WriteString(e.Receiver.String())
		sb.WriteString(":")
	}
	sb.WriteString(e.Name)
	sb.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// CaptureMode is how a lambda captures an enclosing identifier.
type CaptureMode int

const (
	CaptureNormal CaptureMode = iota // clone
	CaptureRef                       // shared reference
	CaptureMove                      // transfer, source consumed
)

// Capture names one identifier captured by a lambda, with its capture mode.
type Capture struct {
	Name string
	Mode CaptureMode
}

// LambdaExpr is `lambda [captures] (params) -> ret { body }`. The semantic
// analyser lowers it into a uniquely named function; the lambda's own name
// (assigned at lowering time) is filled in by the analyser into
// MangledName so the executor can build a callable value without
// re-deriving the name.
type LambdaExpr struct {
	base
	Captures   []Capture
	Params     []Param
	ReturnType TypeExpr
	Body       *Block

	// MangledName is set by the semantic analyser's lowering pass:
	// <parent>$__lambda_<n>.
	MangledName string
}

func (*LambdaExpr) expressionNode() {}
func (e *LambdaExpr) String() string { return "lambda" }

// AllocExpr is `alloc T(args...)`: allocates a new heap value of type T,
// producing a pointer to it.
type AllocExpr struct {
	base
	Type TypeExpr
	Args []Expression
}

func (*AllocExpr) expressionNode() {}
func (e *AllocExpr) String() string { return "alloc " + e.Type.String() }

// DeallocExpr is `dealloc p`: releases the pointee referenced by p.
// Deallocation is a statement-shaped operation in practice (it produces
// void) but is modelled as an Expression alongside the other expression
// forms the executor consumes.
type DeallocExpr struct {
	base
	Pointer Expression
}

func (*DeallocExpr) expressionNode() {}
func (e *DeallocExpr) String() string { return "dealloc " + e.Pointer.String() }

// NewExpr is `new T(args...)`: constructs a value of type T in place and
// yields it directly (as opposed to AllocExpr, which yields a pointer).
type NewExpr struct {
	base
	Type TypeExpr
	Args []Expression
}

func (*NewExpr) expressionNode() {}
func (e *NewExpr) String() string { return "new " + e.Type.String() }

// CastExpr is `cast Value to Trait`: views a struct value through one of
// the traits it structurally satisfies. The cast carries no runtime
// conversion — dynamic dispatch always resolves through the concrete
// struct's own method table — it only changes the expression's static
// type so the result may be passed wherever the trait type is expected.
type CastExpr struct {
	base
	Value Expression
	Trait TypeExpr
}

func (*CastExpr) expressionNode() {}
func (e *CastExpr) String() string { return "cast " + e.Value.String() + " to " + e.Trait.String() }
