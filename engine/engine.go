// Package engine resolves and performs conversions between runtime types.
//
// A conversion is resolved once per directed type pair by walking a fixed
// strategy chain, and the outcome, genuine or not, is cached permanently.
// Strategies draw on metadata from a registry: declared converter methods,
// operator functions, intermediate bridges, and registered interfaces.
//
// Two call surfaces sit on top of resolution. Cast and TryCast absorb
// faults from user conversion code and hand back the destination's zero
// value; Convert is the strict form that propagates errors and lets panics
// escape.
package engine

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/go-logr/logr"

	"caster/registry"
)

// Config carries the engine knobs. Zero fields get working defaults in New.
type Config struct {
	// Registry supplies conversion metadata. Defaults to registry.Default().
	Registry *registry.Registry

	// Logger receives resolution traces at V(1) and candidate level detail
	// at V(2). Defaults to logr.Discard().
	Logger logr.Logger

	// Enabled restricts which strategies the chain tries. The zero value
	// selects EnableAll. The terminal fallback always runs.
	Enabled StrategySet

	// Extra holds extension strategies, tried in order after the built-in
	// chain.
	Extra []Strategy
}

func DefaultConfig() Config {
	return Config{
		Registry: registry.Default(),
		Logger:   logr.Discard(),
		Enabled:  EnableAll,
	}
}

// Engine resolves conversions against one registry and caches the outcomes.
// Safe for concurrent use.
type Engine struct {
	reg     *registry.Registry
	log     logr.Logger
	enabled StrategySet
	extra   []Strategy
	cache   *conversionCache
	faults  atomic.Int64
}

func New(cfg Config) *Engine {
	if cfg.Registry == nil {
		cfg.Registry = registry.Default()
	}
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	if cfg.Enabled == EnableNone {
		cfg.Enabled = EnableAll
	}

	return &Engine{
		reg:     cfg.Registry,
		log:     cfg.Logger,
		enabled: cfg.Enabled,
		extra:   cfg.Extra,
		cache:   newConversionCache(),
	}
}

var defaultEngine = New(DefaultConfig())

// Default returns the process-wide engine bound to registry.Default().
func Default() *Engine {
	return defaultEngine
}

// Resolve returns the permanent entry for the src to dst pair, computing it
// on first use. Concurrent callers for one pair share a single computation.
// The returned entry is shared; treat it as read only.
func (e *Engine) Resolve(src, dst reflect.Type) *ConversionEntry {
	key := TypeKey{Src: src, Dst: dst}

	if ent := e.cache.get(key); ent != nil {
		e.cache.hits.Add(1)
		return ent
	}

	e.cache.misses.Add(1)

	ent, _, _ := e.cache.flight.Do(flightKey(key), func() (any, error) {
		if ent := e.cache.get(key); ent != nil {
			return ent, nil
		}

		rs := &resolution{eng: e, visited: map[TypeKey]bool{key: true}}

		return e.cache.put(key, rs.compute(key)), nil
	})

	return ent.(*ConversionEntry)
}

// Convert is the strict conversion surface: it returns ErrNoConversion when
// no genuine conversion exists and the value's dynamic type does not satisfy
// dst, propagates errors from converter code, and lets panics escape.
func (e *Engine) Convert(v reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, ErrNilValue
	}

	ent := e.Resolve(v.Type(), dst)
	if !ent.Valid {
		if dv := dynamicValue(v); dv.IsValid() && dv.Type().AssignableTo(dst) {
			return dv.Convert(dst), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNoConversion, ent.Key)
	}

	return ent.Fn(v)
}

// Stats is a snapshot of the engine's cache and fault counters.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
	Faults  int64
}

func (e *Engine) Stats() Stats {
	return Stats{
		Entries: e.cache.size(),
		Hits:    e.cache.hits.Load(),
		Misses:  e.cache.misses.Load(),
		Faults:  e.faults.Load(),
	}
}
