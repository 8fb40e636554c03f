package engine

import "reflect"

var builtinByKind = map[reflect.Kind]reflect.Type{
	reflect.Int:    reflect.TypeFor[int](),
	reflect.Int8:   reflect.TypeFor[int8](),
	reflect.Int16:  reflect.TypeFor[int16](),
	reflect.Int32:  reflect.TypeFor[int32](),
	reflect.Int64:  reflect.TypeFor[int64](),
	reflect.Uint:   reflect.TypeFor[uint](),
	reflect.Uint8:  reflect.TypeFor[uint8](),
	reflect.Uint16: reflect.TypeFor[uint16](),
	reflect.Uint32: reflect.TypeFor[uint32](),
	reflect.Uint64: reflect.TypeFor[uint64](),
}

// bridgeRep returns the builtin integer type backing a defined enumeration
// type, or nil when t is not one.
func bridgeRep(t reflect.Type) reflect.Type {
	if !isDefined(t) {
		return nil
	}

	return builtinByKind[t.Kind()]
}

func isBridgePair(src, dst reflect.Type) bool {
	rep := bridgeRep(src)
	return rep != nil && rep == bridgeRep(dst)
}

// enumBridge connects two defined integer-backed types through their shared
// builtin representation. Both legs resolve through the full chain, so
// conversions declared on the builtin apply on the way through.
func (rs *resolution) enumBridge(src, dst reflect.Type) (ConversionFunc, bool) {
	rep := bridgeRep(src)
	if rep == nil || rep != bridgeRep(dst) {
		return nil, false
	}

	left, ok := rs.lookup(src, rep)
	if !ok || !left.Valid {
		return nil, false
	}

	right, ok := rs.lookup(rep, dst)
	if !ok || !right.Valid {
		return nil, false
	}

	return compose(left.Fn, right.Fn), true
}
