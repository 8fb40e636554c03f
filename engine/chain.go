package engine

import (
	"reflect"

	"caster/registry"
)

// resolution is one top-level walk through the strategy chain. The visited
// set holds the pairs on the current recursion path, so strategies that
// resolve their legs recursively cannot chase declaration cycles.
type resolution struct {
	eng     *Engine
	visited map[TypeKey]bool
}

type builtinStrategy struct {
	kind StrategyKind
	fn   func(rs *resolution, src, dst reflect.Type) (ConversionFunc, bool)
}

// builtins in chain order. The order is part of the contract: boxing into
// the universal interface wins over everything, declared conversions win
// over representation reinterpretation, and multi-hop bridges come last.
// Assigned in init rather than at declaration: the strategy methods refer
// back to builtins through compute, which the compiler rejects as an
// initialization cycle in a declaration initializer.
var builtins []builtinStrategy

func init() {
	builtins = []builtinStrategy{
		{StrategyUniversal, (*resolution).universal},
		{StrategyInherit, (*resolution).inherit},
		{StrategyConverter, (*resolution).converter},
		{StrategyOperator, (*resolution).operator},
		{StrategyRepresentation, (*resolution).representation},
		{StrategyEnumBridge, (*resolution).enumBridge},
		{StrategyIntermediate, (*resolution).intermediate},
	}
}

// lookup resolves a leg of a multi-hop conversion. Cached entries are reused;
// fresh legs are computed inline and deliberately not published, because a
// leg cut short by the visited set reflects this walk's path, not the pair's
// true resolution. The bool is false when the pair is already on the path.
func (rs *resolution) lookup(src, dst reflect.Type) (*ConversionEntry, bool) {
	key := TypeKey{Src: src, Dst: dst}

	if ent := rs.eng.cache.get(key); ent != nil {
		return ent, true
	}

	if rs.visited[key] {
		return nil, false
	}

	rs.visited[key] = true
	defer delete(rs.visited, key)

	return rs.compute(key), true
}

// compute runs the strategy chain for one pair and always produces an entry;
// when every strategy passes, the entry is the invalid fallback.
func (rs *resolution) compute(key TypeKey) *ConversionEntry {
	for _, b := range builtins {
		if !rs.eng.enabled.Has(b.kind) {
			continue
		}

		if fn, ok := b.fn(rs, key.Src, key.Dst); ok {
			rs.eng.log.V(1).Info("conversion resolved", "pair", key.String(), "strategy", b.kind.String())
			return &ConversionEntry{Key: key, Fn: fn, Strategy: b.kind, Valid: true}
		}
	}

	if rs.eng.enabled.Has(StrategyExtension) {
		for _, s := range rs.eng.extra {
			if fn, ok := s.Resolve(key.Src, key.Dst, rs); ok {
				rs.eng.log.V(1).Info("conversion resolved", "pair", key.String(), "strategy", s.Name())
				return &ConversionEntry{Key: key, Fn: fn, Strategy: StrategyExtension, Valid: true}
			}
		}
	}

	rs.eng.log.V(1).Info("no conversion found", "pair", key.String())

	return &ConversionEntry{Key: key, Fn: fallbackFunc(key.Dst), Strategy: StrategyFallback, Valid: false}
}

// Lookup implements Env for extension strategies: it exposes only genuine
// conversions.
func (rs *resolution) Lookup(src, dst reflect.Type) (ConversionFunc, bool) {
	ent, ok := rs.lookup(src, dst)
	if !ok || !ent.Valid {
		return nil, false
	}

	return ent.Fn, true
}

// Registry implements Env.
func (rs *resolution) Registry() *registry.Registry {
	return rs.eng.reg
}
