package ast

// PackageUnit is a named package: its import list, ordered global
// variable-define statements, and its function/struct maps. It is the unit
// the (external, out-of-scope) parser hands to this core.
type PackageUnit struct {
	Name    string
	Imports []Import
	Globals []*GlobalVarDef // ordered: construction order
	Funcs   map[string]*FunctionDef
	Structs map[string]*StructDef
}

// NewPackageUnit returns an empty PackageUnit named name.
func NewPackageUnit(name string) *PackageUnit {
	return &PackageUnit{
		Name:    name,
		Funcs:   make(map[string]*FunctionDef),
		Structs: make(map[string]*StructDef),
	}
}
