package engine

import (
	"reflect"

	"caster/registry"
)

// TypeKey identifies one directed conversion pair.
type TypeKey struct {
	Src reflect.Type
	Dst reflect.Type
}

func (k TypeKey) String() string {
	return registry.TypeName(k.Src) + "->" + registry.TypeName(k.Dst)
}

// ConversionFunc turns a value of the entry's source type into a value of its
// destination type. Implementations report conversion failures through the
// error; they do not recover panics raised by user conversion code.
type ConversionFunc func(v reflect.Value) (reflect.Value, error)

// ConversionEntry is the immutable outcome of resolving one pair. Entries are
// shared between callers and held by the cache forever; treat them as read
// only.
//
// Fn is always callable. For an invalid entry it degrades to a dynamic
// assignability probe that yields the destination's zero value when the probe
// fails, so compositions built on top of it stay total.
type ConversionEntry struct {
	Key      TypeKey
	Fn       ConversionFunc
	Strategy StrategyKind
	Valid    bool
}

// compose chains two conversion legs into one function.
func compose(first, second ConversionFunc) ConversionFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		mid, err := first(v)
		if err != nil {
			return reflect.Value{}, err
		}

		return second(mid)
	}
}

// dynamicValue unwraps an interface-kinded value to the value it boxes, so
// assignability probes test the dynamic type rather than the static one.
func dynamicValue(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}

	return v
}

func fallbackFunc(dst reflect.Type) ConversionFunc {
	return func(v reflect.Value) (reflect.Value, error) {
		if dv := dynamicValue(v); dv.IsValid() && dv.Type().AssignableTo(dst) {
			return dv.Convert(dst), nil
		}

		return reflect.Zero(dst), nil
	}
}
