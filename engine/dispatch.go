package engine

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"

	"caster/registry"
)

// Cast converts v to dst best-effort: a nil v yields dst's zero value with
// ok false, and any fault raised by conversion code is absorbed into the
// same. The returned ok reports a genuine conversion.
func (e *Engine) Cast(v any, dst reflect.Type) (any, bool) {
	res := e.TryCast(v, dst)
	return res.Value, res.OK()
}

// TryCast is Cast with a tagged outcome instead of a bare bool.
func (e *Engine) TryCast(v any, dst reflect.Type) (res Result) {
	if v == nil {
		return Result{Value: zeroOf(dst), Reason: ReasonNilValue}
	}

	defer func() {
		if r := recover(); r != nil {
			e.faults.Add(1)
			e.log.V(1).Info("conversion fault", "dst", dst.String(), "panic", fmt.Sprint(r))
			res = Result{Value: zeroOf(dst), Reason: ReasonFault, Err: fmt.Errorf("conversion panic: %v", r)}
		}
	}()

	rv := reflect.ValueOf(v)

	ent := e.Resolve(rv.Type(), dst)
	if !ent.Valid {
		if dv := dynamicValue(rv); dv.IsValid() && dv.Type().AssignableTo(dst) {
			return Result{Value: dv.Convert(dst).Interface(), Reason: ReasonOK}
		}

		return Result{
			Value:  zeroOf(dst),
			Reason: ReasonNoConversion,
			Err:    fmt.Errorf("%w: %s", ErrNoConversion, ent.Key),
		}
	}

	out, err := ent.Fn(rv)
	if err != nil {
		e.faults.Add(1)
		e.log.V(1).Info("conversion fault", "pair", ent.Key.String(), "error", err.Error())

		return Result{Value: zeroOf(dst), Reason: ReasonFault, Err: err}
	}

	return Result{Value: out.Interface(), Reason: ReasonOK}
}

// CastableFrom reports whether a genuine conversion from source to target is
// known. With allowSubtypeTesting, static assignability in either direction
// also counts, covering downcast probes from a broader static type.
func (e *Engine) CastableFrom(target, source reflect.Type, allowSubtypeTesting bool) bool {
	if allowSubtypeTesting && (source.AssignableTo(target) || target.AssignableTo(source)) {
		return true
	}

	return e.Resolve(source, target).Valid
}

// ConverterInfo describes one converter method or operator visible on a
// type's chain.
type ConverterInfo struct {
	Name   string
	Kind   StrategyKind
	Owner  reflect.Type
	Result reflect.Type
}

// Converters lists the conversions declared on t's chain, excluding those
// that produce t itself. Generic declarations appear with a nil Result.
func (e *Engine) Converters(t reflect.Type) []ConverterInfo {
	infos := lo.Map(e.reg.ConvertersOn(t), func(d registry.ConverterDecl, _ int) ConverterInfo {
		return ConverterInfo{Name: d.Name, Kind: StrategyConverter, Owner: d.Owner, Result: d.Result}
	})

	for _, d := range e.reg.OperatorsOn(t) {
		infos = append(infos, ConverterInfo{Name: d.Name, Kind: StrategyOperator, Owner: d.Owner, Result: d.Out})
	}

	return lo.Filter(infos, func(info ConverterInfo, _ int) bool {
		return info.Result != t
	})
}

func zeroOf(t reflect.Type) any {
	return reflect.Zero(t).Interface()
}

// Cast converts v to dst using the default engine.
func Cast(v any, dst reflect.Type) (any, bool) {
	return Default().Cast(v, dst)
}

// TryCast converts v to dst using the default engine.
func TryCast(v any, dst reflect.Type) Result {
	return Default().TryCast(v, dst)
}

// CastTo converts v to T using the default engine.
func CastTo[T any](v any) (T, bool) {
	out, ok := Default().Cast(v, reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}

	return out.(T), true
}

// TryCastTo converts v to T using the default engine.
func TryCastTo[T any](v any) Result {
	return Default().TryCast(v, reflect.TypeFor[T]())
}

// CastableFrom probes the default engine.
func CastableFrom(target, source reflect.Type, allowSubtypeTesting bool) bool {
	return Default().CastableFrom(target, source, allowSubtypeTesting)
}

// Converters lists conversions visible on t through the default engine.
func Converters(t reflect.Type) []ConverterInfo {
	return Default().Converters(t)
}
