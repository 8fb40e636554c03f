package engine

import (
	"reflect"

	"caster/internal/common"
)

// Relation classifies how a source type relates to a destination type for
// the automatic strategies. Higher values are stronger relations.
type Relation int

const (
	RelationNone Relation = iota
	RelationBridgeable
	RelationConvertible
	RelationAssignable
	RelationIdentical
)

const (
	verdictNone        = "none"
	verdictBridgeable  = "bridgeable"
	verdictConvertible = "convertible"
	verdictAssignable  = "assignable"
	verdictIdentical   = "identical"
)

func (r Relation) String() string {
	switch r {
	case RelationIdentical:
		return verdictIdentical
	case RelationAssignable:
		return verdictAssignable
	case RelationConvertible:
		return verdictConvertible
	case RelationBridgeable:
		return verdictBridgeable
	case RelationNone:
		return verdictNone
	default:
		return common.UnknownStr
	}
}

// Classify reports the strongest relation from src to dst.
//
// RelationConvertible is deliberately narrower than reflect's ConvertibleTo.
// It admits only reinterpretations that keep the machine representation: a
// defined type against its underlying form, and builtin scalars within one
// numeric family. Two defined types of the same kind classify as bridgeable
// instead when integer backed, so values travel through the shared builtin
// and stay subject to the conversions declared on it.
func Classify(src, dst reflect.Type) Relation {
	switch {
	case src == dst:
		return RelationIdentical
	case src.AssignableTo(dst):
		return RelationAssignable
	case sameRepresentation(src, dst):
		return RelationConvertible
	case isBridgePair(src, dst):
		return RelationBridgeable
	default:
		return RelationNone
	}
}

func sameRepresentation(src, dst reflect.Type) bool {
	if src.Kind() == reflect.Interface || dst.Kind() == reflect.Interface {
		return false
	}
	if !src.ConvertibleTo(dst) {
		return false
	}

	if src.Kind() == dst.Kind() {
		return !(isDefined(src) && isDefined(dst))
	}

	return isBuiltinScalar(src) && isBuiltinScalar(dst) && sameFamily(src.Kind(), dst.Kind())
}

func isDefined(t reflect.Type) bool {
	return t.PkgPath() != ""
}

func isBuiltinScalar(t reflect.Type) bool {
	return t.PkgPath() == "" && t.Name() != ""
}

func sameFamily(a, b reflect.Kind) bool {
	fa := kindFamily(a)
	return fa != 0 && fa == kindFamily(b)
}

func kindFamily(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 1
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	default:
		return 0
	}
}
