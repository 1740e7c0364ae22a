package executor

import (
	"fmt"

	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/value"
)

// signalKind tags why statement execution stopped early.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

// signal carries control flow up through nested blocks: sigReturn also
// carries the function's result value.
type signal struct {
	kind signalKind
	val  value.Value
}

var noSignal = signal{kind: sigNone}

// frameCtx bundles the pieces every statement/expression execution needs
// beyond the lexical stack itself: the package a bare free-function call
// should be qualified against, and the struct receiver self resolves to
// (nil outside a method body).
type frameCtx struct {
	pkg  string
	self *value.StructValue
}

func (ip *Interpreter) invokeFunc(fn *ast.FunctionDef, args []value.Value, receiver *value.StructValue, captures map[string]value.Value) (value.Value, error) {
	if ip.MaxDepth > 0 && ip.depth >= ip.MaxDepth {
		return nil, fmt.Errorf("executor: call stack depth exceeded %d", ip.MaxDepth)
	}
	ip.depth++
	defer func() { ip.depth-- }()

	stack := NewStack(ip.global)
	top := stack.Push(FrameFunction)
	for name, v := range captures {
		// The lambda evaluator already chose, per the capture's declared
		// mode, whether v is an independent clone or a shared reference —
		// binding it again here must not reclone it.
		top.Vars[name] = ip.Cells.New(v)
	}
	for i, p := range fn.Params {
		top.Vars[p.Name] = ip.Cells.New(bindParam(args[i], p.Name))
	}

	if receiver != nil {
		ip.selfStack = append(ip.selfStack, receiver)
		defer func() { ip.selfStack = ip.selfStack[:len(ip.selfStack)-1] }()
	}

	ctx := frameCtx{pkg: fn.Package, self: receiver}
	sig, err := ip.execBlock(stack, ctx, fn.Body)
	stack.Pop(ip.Cells)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return bindReturn(sig.val), nil
	}
	return value.NewVoid(), nil
}

func (ip *Interpreter) invokeMethod(m *ast.MethodDef, recv *value.StructValue, args []value.Value) (value.Value, error) {
	fn := &ast.FunctionDef{Name: m.Name, Params: m.Params, ReturnType: m.ReturnType, Body: m.Body, Package: m.Package}
	return ip.invokeFunc(fn, args, recv, nil)
}

func (ip *Interpreter) execBlock(stack *Stack, ctx frameCtx, b *ast.Block) (signal, error) {
	for _, stmt := range b.Statements {
		sig, err := ip.execStmt(stack, ctx, stmt)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (ip *Interpreter) execStmt(stack *Stack, ctx frameCtx, stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return noSignal, ip.execLet(stack, ctx, s)
	case *ast.IfStmt:
		return ip.execIf(stack, ctx, s)
	case *ast.WhileStmt:
		return ip.execWhile(stack, ctx, s)
	case *ast.ForStmt:
		return ip.execFor(stack, ctx, s)
	case *ast.BreakStmt:
		return signal{kind: sigBreak}, nil
	case *ast.ContinueStmt:
		return signal{kind: sigContinue}, nil
	case *ast.ReturnStmt:
		if s.Value == nil {
			return signal{kind: sigReturn, val: value.NewVoid()}, nil
		}
		v, err := ip.eval(stack, ctx.pkg, ctx.self, s.Value)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: sigReturn, val: v}, nil
	case *ast.ExprStmt:
		_, err := ip.eval(stack, ctx.pkg, ctx.self, s.Expr)
		return noSignal, err
	case *ast.Block:
		stack.Push(FrameBlock)
		sig, err := ip.execBlock(stack, ctx, s)
		stack.Pop(ip.Cells)
		return sig, err
	default:
		return noSignal, fmt.Errorf("executor: unhandled statement %T", stmt)
	}
}

func (ip *Interpreter) execLet(stack *Stack, ctx frameCtx, s *ast.LetStmt) error {
	args := make([]value.Value, len(s.Args))
	for i, a := range s.Args {
		v, err := ip.eval(stack, ctx.pkg, ctx.self, a)
		if err != nil {
			return err
		}
		args[i] = v
	}
	target := s.Type.Resolve()
	v, err := ip.constructValue(target, args, s.Name, value.LValue)
	if err != nil {
		return err
	}
	stack.Declare(s.Name, ip.Cells.New(v))
	return nil
}

func (ip *Interpreter) execIf(stack *Stack, ctx frameCtx, s *ast.IfStmt) (signal, error) {
	cond, err := ip.eval(stack, ctx.pkg, ctx.self, s.Cond)
	if err != nil {
		return noSignal, err
	}
	b, ok := cond.(*value.BoolValue)
	if !ok {
		return noSignal, fmt.Errorf("executor: if condition did not evaluate to bool")
	}
	var branch *ast.Block
	if b.Val {
		branch = s.Then
	} else {
		branch = s.Else
	}
	if branch == nil {
		return noSignal, nil
	}
	stack.Push(FrameBlock)
	sig, err := ip.execBlock(stack, ctx, branch)
	stack.Pop(ip.Cells)
	return sig, err
}

func (ip *Interpreter) execWhile(stack *Stack, ctx frameCtx, s *ast.WhileStmt) (signal, error) {
	for {
		cond, err := ip.eval(stack, ctx.pkg, ctx.self, s.Cond)
		if err != nil {
			return noSignal, err
		}
		b, ok := cond.(*value.BoolValue)
		if !ok {
			return noSignal, fmt.Errorf("executor: while condition did not evaluate to bool")
		}
		if !b.Val {
			return noSignal, nil
		}
		stack.Push(FrameBlock)
		sig, err := ip.execBlock(stack, ctx, s.Body)
		stack.Pop(ip.Cells)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return noSignal, nil
		case sigReturn:
			return sig, nil
		}
	}
}

func (ip *Interpreter) execFor(stack *Stack, ctx frameCtx, s *ast.ForStmt) (signal, error) {
	stack.Push(FrameBlock)
	defer stack.Pop(ip.Cells)

	if s.Init != nil {
		if _, err := ip.execStmt(stack, ctx, s.Init); err != nil {
			return noSignal, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := ip.eval(stack, ctx.pkg, ctx.self, s.Cond)
			if err != nil {
				return noSignal, err
			}
			b, ok := cond.(*value.BoolValue)
			if !ok {
				return noSignal, fmt.Errorf("executor: for condition did not evaluate to bool")
			}
			if !b.Val {
				return noSignal, nil
			}
		}

		stack.Push(FrameBlock)
		sig, err := ip.execBlock(stack, ctx, s.Body)
		stack.Pop(ip.Cells)
		if err != nil {
			return noSignal, err
		}
		if sig.kind == sigBreak {
			return noSignal, nil
		}
		if sig.kind == sigReturn {
			return sig, nil
		}

		if s.Update != nil {
			if _, err := ip.execStmt(stack, ctx, s.Update); err != nil {
				return noSignal, err
			}
		}
	}
}
