package types

// CycleError reports a struct dependency cycle found during the struct
// well-formedness pass that must run before any function body is checked.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	s := "types: struct dependency cycle: "
	for i, name := range e.Cycle {
		if i > 0 {
			s += " -> "
		}
		s += name
	}
	return s
}

// CheckStructAcyclic topologically sorts the struct dependency graph of reg:
// an edge from A to B exists iff A mentions B anywhere in a field's type,
// unwrapping any number of List layers down to their element (a list is a
// growable collection cell, not an inline aggregate, but the struct still
// depends on its element type existing — matching the original dependency
// walk's GetDependent). Pointer still breaks the chain: a pointer field is a
// weak back-reference, not a containment relationship, so it contributes no
// edge at any depth.
//
// Returns the topologically sorted struct names (dependencies first) on
// success, or a *CycleError naming one discovered cycle.
func CheckStructAcyclic(reg *Registry) ([]string, error) {
	structs := reg.AllStructs()

	edges := make(map[string][]string, len(structs))
	for name, def := range structs {
		for _, f := range def.Fields {
			appendDependencyEdges(reg, name, f.Type, edges)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(structs))
	order := make([]string, 0, len(structs))
	path := make([]string, 0, len(structs))

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			cycle := append(append([]string{}, path...), name)
			return &CycleError{Cycle: cycle}
		}
		color[name] = gray
		path = append(path, name)
		for _, dep := range edges[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		order = append(order, name)
		return nil
	}

	// Deterministic iteration order keeps error messages reproducible.
	names := make([]string, 0, len(structs))
	for name := range structs {
		names = append(names, name)
	}
	sortStrings(names)

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// appendDependencyEdges records name -> t's dependency, unwrapping List
// field types (to any depth) down to their element and recording an edge to
// whatever struct/trait name is found there; Pointer is left alone, so a
// pointer field (at any depth) contributes no edge.
func appendDependencyEdges(reg *Registry, name string, t Type, edges map[string][]string) {
	switch t.Kind() {
	case KindBasic:
		if reg.HasStructOrTrait(t.BasicName()) {
			edges[name] = append(edges[name], t.BasicName())
		}
	case KindList:
		appendDependencyEdges(reg, name, t.Elem(), edges)
	}
}

// sortStrings is a tiny insertion sort to avoid pulling in "sort" for a
// handful of struct names; kept local since it is only ever used here.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
