package manifest

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samber/lo"

	"caster/internal/diagnostic"
	"caster/registry"
)

// Symbols binds manifest names to runtime artifacts. Types maps dotted
// display names (the registry.TypeName form) to types; Funcs maps bare
// function names to operator functions.
type Symbols struct {
	Types map[string]reflect.Type
	Funcs map[string]any
}

// TypesOf builds a symbol table from sample values, keyed by display name.
// Interface types cannot be sampled by value; add them with reflect.TypeFor.
func TypesOf(samples ...any) map[string]reflect.Type {
	table := make(map[string]reflect.Type, len(samples))
	for _, s := range samples {
		t := reflect.TypeOf(s)
		table[registry.TypeName(t)] = t
	}

	return table
}

// Apply registers everything mf declares into reg, binding names through
// sym. Unknown names and rejected declaration shapes become error
// diagnostics; application continues past them so one bad declaration does
// not mask the rest. The returned error is the diagnostics' summary, nil
// when everything applied.
func Apply(mf *Manifest, reg *registry.Registry, sym Symbols) (diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	for i, name := range mf.Interfaces {
		decl := fmt.Sprintf("interfaces[%d]", i)

		t, ok := sym.Types[name]
		if !ok {
			diags.AddErrorWithSuggestions("unknown_type",
				fmt.Sprintf("interface %q is not in the symbol table", name),
				decl, name, suggest(name, sortedKeys(sym.Types)))

			continue
		}

		if err := reg.RegisterInterface(t); err != nil {
			diags.AddError("bad_interface", err.Error(), decl, name)
		}
	}

	for i, td := range mf.Types {
		decl := fmt.Sprintf("types[%d]", i)

		owner, ok := sym.Types[td.Type]
		if !ok {
			diags.AddErrorWithSuggestions("unknown_type",
				fmt.Sprintf("type %q is not in the symbol table", td.Type),
				decl, td.Type, suggest(td.Type, sortedKeys(sym.Types)))

			continue
		}

		reg.RegisterType(owner)

		for _, method := range td.Converters {
			if err := reg.RegisterConverter(owner, method); err != nil {
				diags.AddError("bad_converter", err.Error(), decl, method)
			}
		}

		for _, im := range td.Intermediates {
			applyIntermediate(&diags, reg, sym, decl, owner, im)
		}
	}

	for i, od := range mf.Operators {
		decl := fmt.Sprintf("operators[%d]", i)

		fn, ok := sym.Funcs[od.Func]
		if !ok {
			diags.AddErrorWithSuggestions("unknown_func",
				fmt.Sprintf("function %q is not in the symbol table", od.Func),
				decl, od.Func, suggest(od.Func, sortedKeys(sym.Funcs)))

			continue
		}

		if err := reg.RegisterOperator(fn); err != nil {
			diags.AddError("bad_operator", err.Error(), decl, od.Func)
		}
	}

	return diags, diags.Error()
}

func applyIntermediate(diags *diagnostic.Diagnostics, reg *registry.Registry, sym Symbols, decl string, owner reflect.Type, im IntermediateDecl) {
	bridge, ok := sym.Types[im.Bridge]
	if !ok {
		diags.AddErrorWithSuggestions("unknown_type",
			fmt.Sprintf("bridge %q is not in the symbol table", im.Bridge),
			decl, im.Bridge, suggest(im.Bridge, sortedKeys(sym.Types)))

		return
	}

	var target reflect.Type
	if im.Target != "" {
		if target, ok = sym.Types[im.Target]; !ok {
			diags.AddErrorWithSuggestions("unknown_type",
				fmt.Sprintf("target %q is not in the symbol table", im.Target),
				decl, im.Target, suggest(im.Target, sortedKeys(sym.Types)))

			return
		}
	}

	if err := reg.RegisterIntermediateFor(owner, bridge, target); err != nil {
		diags.AddError("bad_intermediate", err.Error(), decl, im.Bridge)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)

	return keys
}
