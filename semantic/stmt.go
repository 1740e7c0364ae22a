package semantic

import (
	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
	"github.com/chloro-pn/wamon-go/wamonerr"
)

// DeterministicReturn reports whether b terminates on every path: its last
// statement is a return, an if/else where both branches terminate, or a
// nested block that itself terminates. Purely syntactic — it does not
// reason about loop trip counts or early-return coverage inside a loop body.
func DeterministicReturn(b *ast.Block) bool {
	last := b.LastStatement()
	if last == nil {
		return false
	}
	switch s := last.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		if s.Else == nil {
			return false
		}
		return DeterministicReturn(s.Then) && DeterministicReturn(s.Else)
	case *ast.Block:
		return DeterministicReturn(s)
	default:
		return false
	}
}

func (a *Analyzer) checkBlock(stack *Stack, pkg string, b *ast.Block) []*wamonerr.Error {
	var errs []*wamonerr.Error
	for _, stmt := range b.Statements {
		errs = append(errs, a.checkStmt(stack, pkg, stmt)...)
	}
	return errs
}

func (a *Analyzer) checkStmt(stack *Stack, pkg string, stmt ast.Statement) []*wamonerr.Error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return a.checkLet(stack, pkg, s)
	case *ast.IfStmt:
		return a.checkIf(stack, pkg, s)
	case *ast.WhileStmt:
		return a.checkWhile(stack, pkg, s)
	case *ast.ForStmt:
		return a.checkFor(stack, pkg, s)
	case *ast.BreakStmt:
		if !stack.InLoop() {
			return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "break outside a loop")}
		}
	case *ast.ContinueStmt:
		if !stack.InLoop() {
			return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "continue outside a loop")}
		}
	case *ast.ReturnStmt:
		return a.checkReturn(stack, pkg, s)
	case *ast.ExprStmt:
		if _, err := a.exprType(stack, pkg, s.Expr); err != nil {
			return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "%v", err)}
		}
	case *ast.Block:
		stack.Push(KindBlock)
		errs := a.checkBlock(stack, pkg, s)
		stack.Pop()
		return errs
	}
	return nil
}

func (a *Analyzer) checkLet(stack *Stack, pkg string, s *ast.LetStmt) []*wamonerr.Error {
	var errs []*wamonerr.Error
	target := s.Type.Resolve()
	argTypes := make([]types.Type, 0, len(s.Args))
	bad := false
	for _, arg := range s.Args {
		t, err := a.exprType(stack, pkg, arg)
		if err != nil {
			errs = append(errs, wamonerr.New(wamonerr.TypeCheck, arg.Pos(), "let "+s.Name, "%v", err))
			bad = true
			continue
		}
		argTypes = append(argTypes, t)
	}
	if bad {
		return errs
	}
	if err := types.CheckConstruct(a.Registry, target, argTypes); err != nil {
		return append(errs, wamonerr.New(wamonerr.TypeCheck, s.Pos(), "let "+s.Name, "%v", err))
	}
	if err := stack.Declare(s.Name, target); err != nil {
		return append(errs, wamonerr.New(wamonerr.TypeCheck, s.Pos(), "let "+s.Name, "%v", err))
	}
	return errs
}

func (a *Analyzer) checkCond(stack *Stack, pkg string, cond ast.Expression) []*wamonerr.Error {
	t, err := a.exprType(stack, pkg, cond)
	if err != nil {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, cond.Pos(), "", "%v", err)}
	}
	if !t.Equals(types.NewBasic(types.Bool)) {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, cond.Pos(), "", "condition must be bool, got %s", t)}
	}
	return nil
}

func (a *Analyzer) checkIf(stack *Stack, pkg string, s *ast.IfStmt) []*wamonerr.Error {
	errs := a.checkCond(stack, pkg, s.Cond)

	stack.Push(KindBlock)
	errs = append(errs, a.checkBlock(stack, pkg, s.Then)...)
	stack.Pop()

	if s.Else != nil {
		stack.Push(KindBlock)
		errs = append(errs, a.checkBlock(stack, pkg, s.Else)...)
		stack.Pop()
	}
	return errs
}

func (a *Analyzer) checkWhile(stack *Stack, pkg string, s *ast.WhileStmt) []*wamonerr.Error {
	errs := a.checkCond(stack, pkg, s.Cond)
	stack.Push(KindWhile)
	errs = append(errs, a.checkBlock(stack, pkg, s.Body)...)
	stack.Pop()
	return errs
}

func (a *Analyzer) checkFor(stack *Stack, pkg string, s *ast.ForStmt) []*wamonerr.Error {
	stack.Push(KindFor)
	var errs []*wamonerr.Error
	if s.Init != nil {
		errs = append(errs, a.checkStmt(stack, pkg, s.Init)...)
	}
	if s.Cond != nil {
		errs = append(errs, a.checkCond(stack, pkg, s.Cond)...)
	}
	if s.Update != nil {
		errs = append(errs, a.checkStmt(stack, pkg, s.Update)...)
	}
	stack.Push(KindBlock)
	errs = append(errs, a.checkBlock(stack, pkg, s.Body)...)
	stack.Pop()
	stack.Pop()
	return errs
}

func (a *Analyzer) checkReturn(stack *Stack, pkg string, s *ast.ReturnStmt) []*wamonerr.Error {
	fn := stack.EnclosingFunc()
	if fn == nil {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "return outside a function or method")}
	}
	if s.Value == nil {
		if !fn.ReturnType.IsVoid() {
			return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "bare return in a function returning %s", fn.ReturnType)}
		}
		return nil
	}
	t, err := a.exprType(stack, pkg, s.Value)
	if err != nil {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "%v", err)}
	}
	if !t.Equals(fn.ReturnType) {
		return []*wamonerr.Error{wamonerr.New(wamonerr.TypeCheck, s.Pos(), "", "returned %s, expected %s", t, fn.ReturnType)}
	}
	return nil
}
