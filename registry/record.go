package registry

import (
	"fmt"
	"reflect"
)

// GenericConverter builds a conversion closure specialized to one result
// type. The factory returns an error when the candidate violates its type
// constraints; such candidates are skipped during resolution.
type GenericConverter func(target reflect.Type) (func(v reflect.Value) (reflect.Value, error), error)

// GenericOperator builds a conversion closure specialized to a source and
// result type pair.
type GenericOperator func(src, target reflect.Type) (func(v reflect.Value) (reflect.Value, error), error)

// ConverterDecl describes one converter method declared on a type: a
// zero-argument method whose first result is the produced value, optionally
// followed by an ok bool, an error, or both. Generic converters carry a
// Factory instead of a fixed Result.
type ConverterDecl struct {
	Owner   reflect.Type
	Name    string
	Result  reflect.Type
	HasOK   bool
	HasErr  bool
	Factory GenericConverter
}

// OperatorDecl describes one conversion operator: a named single-parameter
// function producing a value of another type, with the same optional result
// tails as converter methods. Generic operators carry a Factory and leave Fn
// unset.
type OperatorDecl struct {
	Name    string
	Pkg     string
	Fn      reflect.Value
	In      reflect.Type
	Out     reflect.Type
	Owner   reflect.Type
	HasOK   bool
	HasErr  bool
	Factory GenericOperator
}

// Key returns a stable identity for deduplicating a declaration discovered
// through multiple chain members.
func (d OperatorDecl) Key() string {
	if d.Fn.IsValid() {
		return fmt.Sprintf("%s:%x", d.Name, d.Fn.Pointer())
	}

	return TypeName(d.Owner) + ":" + d.Name
}

// IntermediateDecl names a bridge type a conversion may pass through on its
// way to a destination. A nil Target leaves the bridge available for every
// destination; otherwise it applies to that exact destination only.
type IntermediateDecl struct {
	Bridge reflect.Type
	Target reflect.Type
}

// record holds everything the registry knows about one type.
type record struct {
	typ           reflect.Type
	chain         []reflect.Type // typ plus embedded ancestors, most derived first
	converters    []ConverterDecl
	operators     []OperatorDecl
	intermediates []IntermediateDecl
}
