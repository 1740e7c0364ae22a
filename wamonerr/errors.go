// Package wamonerr formats the three kinds of failure the interpreter can
// report: TypeCheck (semantic analysis rejected the program),
// DeterministicReturn (a non-void function/method has a path that does not
// return), and Runtime (the executor detected a violated precondition).
package wamonerr

import (
	"fmt"
	"strings"

	"github.com/chloro-pn/wamon-go/ast"
)

// Kind tags which of the three failure categories an Error belongs to.
type Kind int

const (
	TypeCheck Kind = iota
	DeterministicReturn
	Runtime
)

func (k Kind) String() string {
	switch k {
	case TypeCheck:
		return "type check"
	case DeterministicReturn:
		return "deterministic return"
	case Runtime:
		return "runtime"
	default:
		return "error"
	}
}

// Error is a single reported failure: its kind, the position it occurred
// at, a short description of what was being checked (empty when not
// applicable, e.g. most Runtime errors), and the message itself.
type Error struct {
	Kind    Kind
	Pos     ast.Position
	Context string // e.g. the function/method name, or "checking global x"
	Message string
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(" error")
	if e.Pos.Line != 0 || e.Pos.Column != 0 {
		sb.WriteString(" at ")
		sb.WriteString(e.Pos.String())
	}
	if e.Context != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Context)
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// New constructs an Error of the given kind.
func New(kind Kind, pos ast.Position, context, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Context: context, Message: fmt.Sprintf(format, args...)}
}

// FormatErrors renders every error in errs, one per line, prefixed with its
// 1-based position in the list when there is more than one.
func FormatErrors(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d/%d] %s\n", i+1, len(errs), e.Error())
	}
	return strings.TrimRight(sb.String(), "\n")
}
