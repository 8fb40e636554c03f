// Package registry holds the conversion metadata the engine resolves
// against: converter methods and operators declared per type, intermediate
// bridge hints, and the set of interfaces considered during ancestor chain
// walks.
//
// Declarations are explicit. Nothing is discovered by scanning method sets;
// a method participates in resolution only after RegisterConverter names it.
// Register everything before the first resolution: resolved conversions are
// cached permanently, so later declarations only affect pairs that have not
// been resolved yet.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var (
	ErrNotAnInterface = errors.New("registered interface must be an interface type")
	ErrSelfBridge     = errors.New("intermediate bridge must differ from its owner")
)

// Registry is safe for concurrent use. The zero value is not usable; create
// instances with New.
type Registry struct {
	mu      sync.RWMutex
	records map[reflect.Type]*record
	ifaces  []reflect.Type
}

func New() *Registry {
	return &Registry{records: make(map[reflect.Type]*record)}
}

var defaultRegistry = New()

// Default returns the process-wide registry used by engines that are not
// given their own.
func Default() *Registry {
	return defaultRegistry
}

// rec returns the record for t, creating it on first use so unregistered
// types still get a computed ancestor chain.
func (r *Registry) rec(t reflect.Type) *record {
	r.mu.RLock()
	rc := r.records[t]
	r.mu.RUnlock()

	if rc != nil {
		return rc
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rc = r.records[t]; rc != nil {
		return rc
	}

	rc = &record{typ: t, chain: embeddedChain(t)}
	r.records[t] = rc

	return rc
}

// RegisterType makes t known to the registry and precomputes its embedded
// ancestor chain. Registration is implicit in every other Register call that
// names t; RegisterType exists for types that carry no declarations of their
// own.
func (r *Registry) RegisterType(t reflect.Type) {
	r.rec(t)
}

// RegisterInterface adds t to the set of interfaces included in ancestor
// chains of the types that implement it.
func (r *Registry) RegisterInterface(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Interface {
		return fmt.Errorf("%w: %s", ErrNotAnInterface, TypeName(t))
	}

	r.rec(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.ifaces, t) {
		r.ifaces = append(r.ifaces, t)
	}

	return nil
}

// RegisterConverter declares the named method of owner as a converter. The
// method shape is validated eagerly; see ParseConverterMethod.
func (r *Registry) RegisterConverter(owner reflect.Type, method string) error {
	decl, err := ParseConverterMethod(owner, method)
	if err != nil {
		return err
	}

	rc := r.rec(owner)

	r.mu.Lock()
	defer r.mu.Unlock()
	rc.converters = append(rc.converters, decl)

	return nil
}

// RegisterGenericConverter declares a converter on owner whose result type is
// chosen at resolution time by specializing factory.
func (r *Registry) RegisterGenericConverter(owner reflect.Type, name string, factory GenericConverter) error {
	if factory == nil {
		return fmt.Errorf("%w: %s.%s", ErrBadConverterShape, TypeName(owner), name)
	}

	rc := r.rec(owner)

	r.mu.Lock()
	defer r.mu.Unlock()
	rc.converters = append(rc.converters, ConverterDecl{Owner: owner, Name: name, Factory: factory})

	return nil
}

// RegisterOperator declares fn as a conversion operator. The declaration is
// attached to both its parameter and result types so either side's chain
// walk discovers it.
func (r *Registry) RegisterOperator(fn any) error {
	decl, err := ParseOperator(fn)
	if err != nil {
		return err
	}

	in, out := r.rec(decl.In), r.rec(decl.Out)

	r.mu.Lock()
	defer r.mu.Unlock()

	in.operators = append(in.operators, decl)
	if out != in {
		out.operators = append(out.operators, decl)
	}

	return nil
}

// RegisterGenericOperator declares an operator on owner whose parameter and
// result types are chosen at resolution time by specializing factory.
func (r *Registry) RegisterGenericOperator(owner reflect.Type, name string, factory GenericOperator) error {
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrBadOperatorShape, name)
	}

	rc := r.rec(owner)

	r.mu.Lock()
	defer r.mu.Unlock()
	rc.operators = append(rc.operators, OperatorDecl{Name: name, Owner: owner, Factory: factory})

	return nil
}

// RegisterIntermediate declares that conversions out of owner may pass
// through bridge on their way to any destination.
func (r *Registry) RegisterIntermediate(owner, bridge reflect.Type) error {
	return r.RegisterIntermediateFor(owner, bridge, nil)
}

// RegisterIntermediateFor declares a bridge restricted to one exact
// destination type. A nil target lifts the restriction.
func (r *Registry) RegisterIntermediateFor(owner, bridge, target reflect.Type) error {
	if owner == bridge {
		return fmt.Errorf("%w: %s", ErrSelfBridge, TypeName(owner))
	}

	rc := r.rec(owner)

	r.mu.Lock()
	defer r.mu.Unlock()
	rc.intermediates = append(rc.intermediates, IntermediateDecl{Bridge: bridge, Target: target})

	return nil
}

// Chain returns t's ancestor chain, most derived first: t itself, its
// embedded ancestors breadth-first, and (when withInterfaces is set) the
// registered interfaces t implements, broader interfaces later.
func (r *Registry) Chain(t reflect.Type, withInterfaces bool) []reflect.Type {
	chain := slices.Clone(r.rec(t).chain)
	if !withInterfaces {
		return chain
	}

	return lo.Uniq(append(chain, r.interfacesFor(t)...))
}

// ChainIndex returns the position of member on t's full chain, or -1 when
// member is not an ancestor of t.
func (r *Registry) ChainIndex(t, member reflect.Type) int {
	return slices.Index(r.Chain(t, true), member)
}

// DiscoverySet returns the deduplicated union of both chains, source side
// first. Strategies walk it to gather candidate declarations for a pair.
func (r *Registry) DiscoverySet(src, dst reflect.Type) []reflect.Type {
	return lo.Uniq(append(r.Chain(src, true), r.Chain(dst, true)...))
}

// EmbeddedIndex returns the field index path from src to its embedded
// ancestor dst.
func (r *Registry) EmbeddedIndex(src, dst reflect.Type) ([]int, bool) {
	return embeddedIndex(src, dst)
}

// DeclaredConverters returns the converters declared on exactly t.
func (r *Registry) DeclaredConverters(t reflect.Type) []ConverterDecl {
	rc := r.rec(t)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(rc.converters)
}

// DeclaredOperators returns the operators attached to exactly t.
func (r *Registry) DeclaredOperators(t reflect.Type) []OperatorDecl {
	rc := r.rec(t)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(rc.operators)
}

// ConvertersOn returns the converters visible anywhere on t's chain.
func (r *Registry) ConvertersOn(t reflect.Type) []ConverterDecl {
	var decls []ConverterDecl
	for _, member := range r.Chain(t, true) {
		decls = append(decls, r.DeclaredConverters(member)...)
	}

	return decls
}

// OperatorsOn returns the operators visible anywhere on t's chain. An
// operator attached to two chain members appears once.
func (r *Registry) OperatorsOn(t reflect.Type) []OperatorDecl {
	var decls []OperatorDecl
	for _, member := range r.Chain(t, true) {
		decls = append(decls, r.DeclaredOperators(member)...)
	}

	return lo.UniqBy(decls, OperatorDecl.Key)
}

// IntermediatesOn returns the bridge declarations visible anywhere on t's
// chain, nearest owner first.
func (r *Registry) IntermediatesOn(t reflect.Type) []IntermediateDecl {
	var decls []IntermediateDecl
	for _, member := range r.Chain(t, true) {
		rc := r.rec(member)

		r.mu.RLock()
		decls = append(decls, rc.intermediates...)
		r.mu.RUnlock()
	}

	return decls
}

func (r *Registry) interfacesFor(t reflect.Type) []reflect.Type {
	r.mu.RLock()
	ifaces := slices.Clone(r.ifaces)
	r.mu.RUnlock()

	impl := lo.Filter(ifaces, func(it reflect.Type, _ int) bool {
		return it != t && t.Implements(it)
	})

	sort.SliceStable(impl, func(i, j int) bool {
		if impl[i].NumMethod() != impl[j].NumMethod() {
			return impl[i].NumMethod() > impl[j].NumMethod()
		}

		return impl[i].String() < impl[j].String()
	})

	return impl
}
