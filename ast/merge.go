package ast

import "fmt"

// MergedUnit is the canonical form after name-mangling: the executor's
// input. Every map is keyed by the mangled name an embedder or
// cross-package caller would use.
type MergedUnit struct {
	Funcs   map[string]*FunctionDef // key: "<pkg>$<name>" or "__op_..."
	Structs map[string]*StructDef  // key: "<pkg>$<name>"
	Globals []*GlobalVarDef        // ordered across all merged packages, in package-list then source order
}

// MergePackageUnits merges several package units into one canonical
// MergedUnit: every global name (global variable, free function, struct) is
// prefixed with "<package>$", except operator overloads, which already
// carry a synthetic name unrelated to package qualification. Lambdas are not
// part of a package unit: the semantic analyser lowers them into functions
// after the merge, under names derived from their already-mangled parent.
// Duplicate post-mangling names across packages are rejected as a hard
// correctness requirement, even though nothing upstream of this step can be
// trusted to have ruled them out already.
func MergePackageUnits(units []*PackageUnit) (*MergedUnit, error) {
	merged := &MergedUnit{
		Funcs:   make(map[string]*FunctionDef),
		Structs: make(map[string]*StructDef),
	}

	for _, u := range units {
		// Struct mangled name is "<pkg>$<name>"; every field/param/return
		// type referring to a locally-declared struct by its bare name is
		// rewritten below so type identity still holds after merge.
		rename := make(map[string]string, len(u.Structs))
		for localName := range u.Structs {
			rename[localName] = u.Name + "$" + localName
		}

		for localName, def := range u.Structs {
			mangled := rename[localName]
			if _, exists := merged.Structs[mangled]; exists {
				return nil, fmt.Errorf("ast: duplicate struct name %q after merge", mangled)
			}
			def.Name = mangled
			for i := range def.Fields {
				def.Fields[i].Type = rewriteTypeExpr(def.Fields[i].Type, rename)
			}
			for _, m := range def.Methods {
				m.Package = u.Name
				rewriteMethodTypes(m, rename)
			}
			merged.Structs[mangled] = def
		}

		for localName, fn := range u.Funcs {
			mangled := localName
			if fn.Operator == "" {
				mangled = u.Name + "$" + localName
			} else {
				mangled = fn.MangledName // operator overloads already carry their synthetic name
			}
			if _, exists := merged.Funcs[mangled]; exists {
				return nil, fmt.Errorf("ast: duplicate function name %q after merge", mangled)
			}
			fn.MangledName = mangled
			fn.Package = u.Name
			rewriteFuncTypes(fn, rename)
			merged.Funcs[mangled] = fn
		}

		for _, g := range u.Globals {
			mangled := u.Name + "$" + g.Name
			for _, existing := range merged.Globals {
				if existing.Name == mangled {
					return nil, fmt.Errorf("ast: duplicate global name %q after merge", mangled)
				}
			}
			g.Name = mangled
			g.Type = rewriteTypeExpr(g.Type, rename)
			merged.Globals = append(merged.Globals, g)
		}
	}

	return merged, nil
}

func rewriteFuncTypes(fn *FunctionDef, rename map[string]string) {
	for i := range fn.Params {
		fn.Params[i].Type = rewriteTypeExpr(fn.Params[i].Type, rename)
	}
	fn.ReturnType = rewriteTypeExpr(fn.ReturnType, rename)
	rewriteBlockTypes(fn.Body, rename)
}

func rewriteMethodTypes(m *MethodDef, rename map[string]string) {
	for i := range m.Params {
		m.Params[i].Type = rewriteTypeExpr(m.Params[i].Type, rename)
	}
	m.ReturnType = rewriteTypeExpr(m.ReturnType, rename)
	rewriteBlockTypes(m.Body, rename)
}

// rewriteTypeExpr substitutes any BasicTypeExpr naming a locally-declared
// struct with its post-merge mangled name, recursing through Pointer/List/
// Func shapes. nil is passed through (e.g. a procedure's implicit void
// return may be represented as a BasicTypeExpr(void), never nil, but
// defensive nonetheless since some call sites build partial ASTs in tests).
func rewriteTypeExpr(t TypeExpr, rename map[string]string) TypeExpr {
	if t == nil {
		return nil
	}
	switch te := t.(type) {
	case *BasicTypeExpr:
		if mangled, ok := rename[te.Name]; ok {
			return &BasicTypeExpr{base: te.base, Name: mangled}
		}
		return te
	case *PointerTypeExpr:
		return &PointerTypeExpr{base: te.base, Inner: rewriteTypeExpr(te.Inner, rename)}
	case *ListTypeExpr:
		return &ListTypeExpr{base: te.base, Element: rewriteTypeExpr(te.Element, rename)}
	case *FuncTypeExpr:
		params := make([]TypeExpr, len(te.Params))
		for i, p := range te.Params {
			params[i] = rewriteTypeExpr(p, rename)
		}
		return &FuncTypeExpr{base: te.base, Params: params, Ret: rewriteTypeExpr(te.Ret, rename)}
	default:
		return t
	}
}

// rewriteBlockTypes walks a statement block looking for the handful of
// expression/statement shapes that carry a TypeExpr of their own (alloc,
// new, lambda, cast, let) and rewrites those in place; call/identifier/member
// expressions are untouched because they are resolved by name lookup at
// semantic/execution time, not by direct type reference.
func rewriteBlockTypes(b *Block, rename map[string]string) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		rewriteStmtTypes(stmt, rename)
	}
}

func rewriteStmtTypes(s Statement, rename map[string]string) {
	switch st := s.(type) {
	case *LetStmt:
		st.Type = rewriteTypeExpr(st.Type, rename)
		for _, a := range st.Args {
			rewriteExprTypes(a, rename)
		}
	case *IfStmt:
		rewriteExprTypes(st.Cond, rename)
		rewriteBlockTypes(st.Then, rename)
		rewriteBlockTypes(st.Else, rename)
	case *WhileStmt:
		rewriteExprTypes(st.Cond, rename)
		rewriteBlockTypes(st.Body, rename)
	case *ForStmt:
		rewriteStmtTypes(st.Init, rename)
		rewriteExprTypes(st.Cond, rename)
		rewriteStmtTypes(st.Update, rename)
		rewriteBlockTypes(st.Body, rename)
	case *ReturnStmt:
		if st.Value != nil {
			rewriteExprTypes(st.Value, rename)
		}
	case *ExprStmt:
		rewriteExprTypes(st.Expr, rename)
	case *Block:
		rewriteBlockTypes(st, rename)
	}
}

func rewriteExprTypes(e Expression, rename map[string]string) {
	switch ex := e.(type) {
	case *BinaryExpr:
		rewriteExprTypes(ex.Left, rename)
		rewriteExprTypes(ex.Right, rename)
	case *UnaryExpr:
		rewriteExprTypes(ex.Operand, rename)
	case *CallExpr:
		if ex.Receiver != nil {
			rewriteExprTypes(ex.Receiver, rename)
		}
		for _, a := range ex.Args {
			rewriteExprTypes(a, rename)
		}
	case *AllocExpr:
		ex.Type = rewriteTypeExpr(ex.Type, rename)
		for _, a := range ex.Args {
			rewriteExprTypes(a, rename)
		}
	case *NewExpr:
		ex.Type = rewriteTypeExpr(ex.Type, rename)
		for _, a := range ex.Args {
			rewriteExprTypes(a, rename)
		}
	case *DeallocExpr:
		rewriteExprTypes(ex.Pointer, rename)
	case *LambdaExpr:
		for i := range ex.Params {
			ex.Params[i].Type = rewriteTypeExpr(ex.Params[i].Type, rename)
		}
		ex.ReturnType = rewriteTypeExpr(ex.ReturnType, rename)
		rewriteBlockTypes(ex.Body, rename)
	case *CastExpr:
		rewriteExprTypes(ex.Value, rename)
		ex.Trait = rewriteTypeExpr(ex.Trait, rename)
	}
}
