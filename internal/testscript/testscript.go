// Package testscript builds ast.PackageUnit trees by hand, the same shape
// an (out-of-scope) parser would hand to semantic.Analyzer/executor.New,
// so executor and script tests can exercise realistic programs without a
// parser.
package testscript

import (
	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
)

// Type expressions.

func Basic(name string) ast.TypeExpr        { return &ast.BasicTypeExpr{Name: name} }
func Ptr(inner ast.TypeExpr) ast.TypeExpr    { return &ast.PointerTypeExpr{Inner: inner} }
func List(elem ast.TypeExpr) ast.TypeExpr    { return &ast.ListTypeExpr{Element: elem} }
func FuncType(ret ast.TypeExpr, params ...ast.TypeExpr) ast.TypeExpr {
	return &ast.FuncTypeExpr{Params: params, Ret: ret}
}

// Expressions.

func Int(v int64) ast.Expression       { return &ast.IntLiteral{Value: v} }
func Double(v float64) ast.Expression  { return &ast.DoubleLiteral{Value: v} }
func Byte(v byte) ast.Expression       { return &ast.ByteLiteral{Value: v} }
func Bool(v bool) ast.Expression       { return &ast.BoolLiteral{Value: v} }
func Str(v string) ast.Expression      { return &ast.StringLiteral{Value: v} }
func Ident(name string) ast.Expression { return &ast.Identifier{Name: name} }
func Self() ast.Expression             { return &ast.SelfExpr{} }

func Bin(op string, l, r ast.Expression) ast.Expression {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func Un(op string, operand ast.Expression) ast.Expression {
	return &ast.UnaryExpr{Op: op, Operand: operand}
}

// Member is `recv.field`.
func Member(recv ast.Expression, field string) ast.Expression {
	return Bin(".", recv, Ident(field))
}

// Index is `recv[idx]`.
func Index(recv, idx ast.Expression) ast.Expression {
	return Bin("[]", recv, idx)
}

// Assign is `lhs = rhs`.
func Assign(lhs, rhs ast.Expression) ast.Expression {
	return Bin("=", lhs, rhs)
}

// Call is a receiver-less call: a free function, a host function, or a
// local callable-object value, resolved the same order executor.evalCall
// does.
func Call(name string, args ...ast.Expression) ast.Expression {
	return &ast.CallExpr{Name: name, Args: args}
}

// CallOn is an explicit method call `recv:name(args...)`.
func CallOn(recv ast.Expression, name string, args ...ast.Expression) ast.Expression {
	return &ast.CallExpr{Name: name, Receiver: recv, Args: args}
}

func Alloc(t ast.TypeExpr, args ...ast.Expression) ast.Expression {
	return &ast.AllocExpr{Type: t, Args: args}
}

func New(t ast.TypeExpr, args ...ast.Expression) ast.Expression {
	return &ast.NewExpr{Type: t, Args: args}
}

func Dealloc(p ast.Expression) ast.Expression {
	return &ast.DeallocExpr{Pointer: p}
}

func Cast(v ast.Expression, trait ast.TypeExpr) ast.Expression {
	return &ast.CastExpr{Value: v, Trait: trait}
}

func Lambda(params []ast.Param, ret ast.TypeExpr, body *ast.Block, captures ...ast.Capture) ast.Expression {
	return &ast.LambdaExpr{Captures: captures, Params: params, ReturnType: ret, Body: body}
}

// CaptureBy builds one lambda capture entry.
func CaptureBy(name string, mode ast.CaptureMode) ast.Capture {
	return ast.Capture{Name: name, Mode: mode}
}

// Statements.

func Let(name string, t ast.TypeExpr, args ...ast.Expression) ast.Statement {
	return &ast.LetStmt{Name: name, Type: t, Args: args}
}

func If(cond ast.Expression, then *ast.Block, els *ast.Block) ast.Statement {
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func While(cond ast.Expression, body *ast.Block) ast.Statement {
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func For(init ast.Statement, cond ast.Expression, update ast.Statement, body *ast.Block) ast.Statement {
	return &ast.ForStmt{Init: init, Cond: cond, Update: update, Body: body}
}

func Break() ast.Statement    { return &ast.BreakStmt{} }
func Continue() ast.Statement { return &ast.ContinueStmt{} }

func Return(v ast.Expression) ast.Statement { return &ast.ReturnStmt{Value: v} }

func ExprStmt(e ast.Expression) ast.Statement { return &ast.ExprStmt{Expr: e} }

func Body(stmts ...ast.Statement) *ast.Block {
	return &ast.Block{Statements: stmts}
}

// Declarations.

func P(name string, t ast.TypeExpr) ast.Param { return ast.Param{Name: name, Type: t} }

func Field(name string, t ast.TypeExpr) ast.FieldDecl {
	return ast.FieldDecl{Name: name, Type: t}
}

func FuncDef(name string, params []ast.Param, ret ast.TypeExpr, body *ast.Block) *ast.FunctionDef {
	return &ast.FunctionDef{Name: name, Params: params, ReturnType: ret, Body: body}
}

// OperatorDef builds an `operator` overload already mangled the way
// evalBinary's user-overload fallback looks it up: types.MangleOperator(op,
// operandTypes), operandTypes being the resolved parameter types in
// declaration order.
func OperatorDef(op string, operandTypes []types.Type, params []ast.Param, ret ast.TypeExpr, body *ast.Block) *ast.FunctionDef {
	name := types.MangleOperator(op, operandTypes)
	return &ast.FunctionDef{Name: name, MangledName: name, Operator: op, Params: params, ReturnType: ret, Body: body}
}

func MethodDef(structName, name string, params []ast.Param, ret ast.TypeExpr, body *ast.Block) *ast.MethodDef {
	return &ast.MethodDef{Struct: structName, Name: name, Params: params, ReturnType: ret, Body: body}
}

// CallOperatorMethod builds the `()` method that makes a struct usable as a
// Func value bound via CallOn/CallCallable.
func CallOperatorMethod(structName string, params []ast.Param, ret ast.TypeExpr, body *ast.Block) *ast.MethodDef {
	return &ast.MethodDef{Struct: structName, Name: "()", Operator: "()", Params: params, ReturnType: ret, Body: body}
}

func Struct(name string, fields []ast.FieldDecl, methods ...*ast.MethodDef) *ast.StructDef {
	m := make(map[string]*ast.MethodDef, len(methods))
	for _, md := range methods {
		m[md.Name] = md
	}
	return &ast.StructDef{Name: name, Fields: fields, Methods: m}
}

func Trait(name string, fields []ast.FieldDecl, methods ...*ast.MethodDef) *ast.StructDef {
	s := Struct(name, fields, methods...)
	s.Trait = true
	return s
}

func Global(name string, t ast.TypeExpr, args ...ast.Expression) *ast.GlobalVarDef {
	return &ast.GlobalVarDef{Name: name, Type: t, Args: args}
}

// Unit assembles a PackageUnit named pkg from the given globals, functions,
// and structs.
func Unit(pkg string, globals []*ast.GlobalVarDef, funcs []*ast.FunctionDef, structs []*ast.StructDef) *ast.PackageUnit {
	u := ast.NewPackageUnit(pkg)
	u.Globals = globals
	for _, f := range funcs {
		u.Funcs[f.Name] = f
	}
	for _, s := range structs {
		u.Structs[s.Name] = s
	}
	return u
}
