package registry

import (
	"reflect"

	"caster/internal/common"
)

// TypeName returns the dotted display name used in diagnostics and manifests:
// "pkg.Type" for defined types, the reflect string form otherwise.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return common.PkgAlias(t.PkgPath()) + "." + t.Name()
}
