package engine

import (
	"reflect"

	"caster/registry"
)

// StrategyKind labels the resolution strategies in the order the chain tries
// them. Lower values run first.
type StrategyKind int

//go:generate go tool stringer -type=StrategyKind -trimprefix=Strategy -output=strategykind_string.go

const (
	StrategyUniversal StrategyKind = iota
	StrategyInherit
	StrategyConverter
	StrategyOperator
	StrategyRepresentation
	StrategyEnumBridge
	StrategyIntermediate
	StrategyExtension
	StrategyFallback
)

// StrategySet is a bitmask of enabled strategies.
type StrategySet uint

const (
	EnableUniversal      StrategySet = 1 << StrategyUniversal      // destination is the universal interface
	EnableInherit        StrategySet = 1 << StrategyInherit        // assignability and embedded ancestor extraction
	EnableConverter      StrategySet = 1 << StrategyConverter      // declared converter methods
	EnableOperator       StrategySet = 1 << StrategyOperator       // declared operator functions
	EnableRepresentation StrategySet = 1 << StrategyRepresentation // same machine representation
	EnableEnumBridge     StrategySet = 1 << StrategyEnumBridge     // defined integer types via their shared builtin
	EnableIntermediate   StrategySet = 1 << StrategyIntermediate   // declared two-hop bridges
	EnableExtension      StrategySet = 1 << StrategyExtension      // caller supplied strategies

	EnableAll  StrategySet = 1<<(StrategyFallback+1) - 1
	EnableNone StrategySet = 0
)

// Has reports whether kind is enabled in the set.
func (s StrategySet) Has(kind StrategyKind) bool {
	return s&(1<<kind) != 0
}

// Strategy extends the resolution chain. Extensions run after every built-in
// strategy and before the terminal fallback.
type Strategy interface {
	// Name identifies the strategy in resolution traces.
	Name() string

	// Resolve returns a conversion for the pair, or false to pass. The env
	// gives recursive access to the engine for composing multi-hop
	// conversions.
	Resolve(src, dst reflect.Type, env Env) (ConversionFunc, bool)
}

// Env is the view of an in-flight resolution handed to extension strategies.
type Env interface {
	// Lookup resolves src to dst through the full chain and reports whether
	// a genuine conversion came out. Pairs already on the current resolution
	// path report false instead of recursing forever.
	Lookup(src, dst reflect.Type) (ConversionFunc, bool)

	// Registry exposes the conversion metadata the engine resolves against.
	Registry() *registry.Registry
}
