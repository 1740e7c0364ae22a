package script

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/chloro-pn/wamon-go/types"
)

// hostFuncSpec is one entry of a host-function manifest file: the
// embedder-conventional name under which the function is exposed to script
// source, and its declared parameter/return type names.
type hostFuncSpec struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params"`
	Returns string   `yaml:"returns"`
}

// LoadHostFunctionManifest parses a YAML document describing a set of host
// functions an embedder intends to register — a declarative companion to
// hand-writing every types.NewFunc call, useful when the function list
// itself comes from a config file rather than Go source. It returns the
// declared signature for each entry, keyed by its manifest name (still the
// "wamon::"-prefixed convention internalHostName expects); the caller is
// responsible for supplying the matching Go closures, since a manifest can
// only describe a signature, not an implementation.
//
//	- name: wamon::log
//	  params: [string]
//	  returns: void
func LoadHostFunctionManifest(data []byte) (map[string]types.Type, error) {
	var specs []hostFuncSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("script: parsing host function manifest: %w", err)
	}

	out := make(map[string]types.Type, len(specs))
	for _, s := range specs {
		params := make([]types.Type, len(s.Params))
		for i, p := range s.Params {
			t, err := typeFromName(p)
			if err != nil {
				return nil, fmt.Errorf("script: manifest entry %q: %w", s.Name, err)
			}
			params[i] = t
		}
		ret, err := typeFromName(s.Returns)
		if err != nil {
			return nil, fmt.Errorf("script: manifest entry %q: %w", s.Name, err)
		}
		out[s.Name] = types.NewFunc(params, ret)
	}
	return out, nil
}

// typeFromName resolves one of the builtin scalar type names (the only
// shapes a manifest can name — pointer/list/func parameters need a real Go
// type.Type literal, not a string, so they stay out of this declarative
// path). "" defaults to void, the common case for a function declared with
// no return value.
func typeFromName(name string) (types.Type, error) {
	switch name {
	case "", types.Void:
		return types.NewBasic(types.Void), nil
	case types.Int, types.Double, types.Byte, types.Bool, types.String:
		return types.NewBasic(name), nil
	default:
		return types.Type{}, fmt.Errorf("unsupported manifest type name %q", name)
	}
}
