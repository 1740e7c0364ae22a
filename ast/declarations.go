package ast

// Param is one (type, name) pair of a function/method parameter list.
type Param struct {
	Name string
	Type TypeExpr
}

// FieldDecl is one (name, type) pair of a struct or trait's declared field
// list, in source (declaration) order.
type FieldDecl struct {
	Name string
	Type TypeExpr
}

// FunctionDef is a free (package-level) function declaration. Name is the
// declared, unmangled name; the merge step (MergePackageUnits) assigns the
// post-merge qualified name except for operator overloads, which carry
// their own synthetic name from the start. A lambda's FunctionDef is created
// by the semantic analyser after the merge, already under its synthetic name.
type FunctionDef struct {
	base
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Body       *Block

	// Operator is non-empty when this FunctionDef is the lowered form of an
	// `operator` declaration, internally rewritten to a specially-named
	// free function; MangledName then holds the synthetic __op_... name
	// instead of a package-qualified one.
	Operator    string
	MangledName string

	// Package is the owning package's name, stamped on by MergePackageUnits.
	// A bare identifier inside this function's body that isn't a local/
	// global variable is resolved by qualifying it against Package before
	// falling back to an exact (already-mangled) name match.
	Package string
}

func (*FunctionDef) statementNode() {} // a top-level FunctionDef is also addressable as a declaration statement
func (f *FunctionDef) String() string { return "func " + f.Name }

// MethodDef is a method declaration owned by a struct. Method names are
// unique within their owning struct.
type MethodDef struct {
	base
	Struct     string
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Body       *Block

	// Operator mirrors FunctionDef.Operator for operator overloads
	// implemented as methods (e.g. the call operator `()` bound to a
	// struct, making the struct itself usable as a Func value).
	Operator string

	// Package mirrors FunctionDef.Package: the package the owning struct was
	// declared in, for resolving bare free-function calls made from inside
	// this method's body.
	Package string
}

func (m *MethodDef) String() string { return m.Struct + "::" + m.Name }

// StructDef is a struct declaration: an ordered field list (construction
// order) plus its methods, keyed by name.
type StructDef struct {
	base
	Name    string
	Fields  []FieldDecl
	Methods map[string]*MethodDef
	// Trait marks this declaration as a trait rather than a concrete
	// struct — a trait's methods carry signatures only; Body is nil on a
	// trait's MethodDef entries.
	Trait bool
}

func (s *StructDef) String() string { return "struct " + s.Name }

// GlobalVarDef is a package-level `let` statement, evaluated once in
// source order as the executor enters the global scope.
type GlobalVarDef struct {
	base
	Name string
	Type TypeExpr
	Args []Expression
}

func (g *GlobalVarDef) String() string { return "let " + g.Name }

// Import names another package this package unit depends on. Import
// resolution itself — locating and parsing the imported source — is the
// (out-of-scope) parser's job; by the time a PackageUnit reaches this
// core, Import is retained only as provenance metadata.
type Import struct {
	Package string
}
