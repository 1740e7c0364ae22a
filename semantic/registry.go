package semantic

import (
	"github.com/chloro-pn/wamon-go/ast"
	"github.com/chloro-pn/wamon-go/types"
)

// buildRegistry converts every merged struct/trait declaration into the
// type system's structural representation, used for well-formedness,
// constructability, and member-type checks. Method bodies stay in
// unit.Structs (the ast-level definitions) since the type registry only
// needs signatures.
func buildRegistry(unit *ast.MergedUnit) (*types.Registry, error) {
	reg := types.NewRegistry()
	for name, def := range unit.Structs {
		fields := make([]types.Field, len(def.Fields))
		for i, f := range def.Fields {
			fields[i] = types.Field{Name: f.Name, Type: f.Type.Resolve()}
		}
		methods := make(map[string]types.Type, len(def.Methods))
		for mname, m := range def.Methods {
			params := make([]types.Type, len(m.Params))
			for i, p := range m.Params {
				params[i] = p.Type.Resolve()
			}
			methods[mname] = types.NewFunc(params, m.ReturnType.Resolve())
		}
		if def.Trait {
			if err := reg.RegisterTrait(&types.TraitDef{Name: name, Fields: fields, Methods: methods}); err != nil {
				return nil, err
			}
			continue
		}
		if err := reg.RegisterStruct(&types.StructDef{Name: name, Fields: fields, Methods: methods}); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
