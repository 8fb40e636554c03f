package engine

import (
	"fmt"
	"reflect"
	"sort"

	"caster/internal/common"
	"caster/registry"
)

var anyType = reflect.TypeFor[any]()

// universal boxes any source value into the empty interface.
func (rs *resolution) universal(src, dst reflect.Type) (ConversionFunc, bool) {
	if dst != anyType {
		return nil, false
	}

	return func(v reflect.Value) (reflect.Value, error) {
		return v.Convert(anyType), nil
	}, true
}

// inherit covers assignability (including boxing into narrower interfaces)
// and extraction of an embedded ancestor from a struct value. Extraction
// through a nil embedded pointer panics; strict callers see the panic and the
// absorbing callers count it as a fault.
func (rs *resolution) inherit(src, dst reflect.Type) (ConversionFunc, bool) {
	if src.AssignableTo(dst) {
		return func(v reflect.Value) (reflect.Value, error) {
			return v.Convert(dst), nil
		}, true
	}

	path, ok := rs.eng.reg.EmbeddedIndex(src, dst)
	if !ok {
		return nil, false
	}

	return func(v reflect.Value) (reflect.Value, error) {
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}

		return v.FieldByIndex(path), nil
	}, true
}

// representation reinterprets the value when both types share one machine
// representation.
func (rs *resolution) representation(src, dst reflect.Type) (ConversionFunc, bool) {
	if Classify(src, dst) != RelationConvertible {
		return nil, false
	}

	return func(v reflect.Value) (reflect.Value, error) {
		return v.Convert(dst), nil
	}, true
}

type converterCandidate struct {
	decl     registry.ConverterDecl
	ownerIdx int // position of the owner on the source chain, -1 if absent
	result   reflect.Type
	order    int
	apply    func(reflect.Value) (reflect.Value, error) // set for specialized generics
}

// converter picks the best declared converter method reachable from the
// pair. Candidates come from both chains; a concrete method additionally
// needs its owner on the source chain so the receiver is obtainable from the
// value being converted.
func (rs *resolution) converter(src, dst reflect.Type) (ConversionFunc, bool) {
	reg := rs.eng.reg

	var cands []converterCandidate
	order := 0
	for _, member := range reg.DiscoverySet(src, dst) {
		for _, decl := range reg.DeclaredConverters(member) {
			order++

			if decl.Factory != nil {
				apply, result, ok := rs.specializeConverter(decl, dst)
				if !ok {
					continue
				}

				cands = append(cands, converterCandidate{
					decl:     decl,
					ownerIdx: reg.ChainIndex(src, decl.Owner),
					result:   result,
					order:    order,
					apply:    apply,
				})

				continue
			}

			if !decl.Result.AssignableTo(dst) {
				continue
			}

			ownerIdx := reg.ChainIndex(src, decl.Owner)
			if ownerIdx < 0 {
				continue
			}

			cands = append(cands, converterCandidate{
				decl:     decl,
				ownerIdx: ownerIdx,
				result:   decl.Result,
				order:    order,
			})
		}
	}

	if common.IsEmpty(cands) {
		return nil, false
	}

	best := selectConverter(cands)
	rs.eng.log.V(2).Info("converter selected",
		"pair", TypeKey{Src: src, Dst: dst}.String(),
		"converter", best.decl.Name,
		"owner", registry.TypeName(best.decl.Owner),
		"candidates", len(cands))

	return converterFunc(best, dst), true
}

// selectConverter ranks candidates: owners on the source chain beat detached
// ones, nearer owners beat farther ones, narrower result types beat broader
// ones, and declaration order breaks the remaining ties.
func selectConverter(cands []converterCandidate) converterCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		ci, cj := cands[i], cands[j]
		if (ci.ownerIdx >= 0) != (cj.ownerIdx >= 0) {
			return ci.ownerIdx >= 0
		}
		if ci.ownerIdx != cj.ownerIdx {
			return ci.ownerIdx < cj.ownerIdx
		}

		iNarrower := ci.result.AssignableTo(cj.result)
		jNarrower := cj.result.AssignableTo(ci.result)
		if iNarrower != jNarrower {
			return iNarrower
		}

		return ci.order < cj.order
	})

	best, _ := common.First(cands)

	return best
}

// specializeConverter walks the destination's chain and asks the factory for
// a closure per candidate result type; factory rejections are skipped. Only
// candidates that can satisfy the destination are tried.
func (rs *resolution) specializeConverter(decl registry.ConverterDecl, dst reflect.Type) (func(reflect.Value) (reflect.Value, error), reflect.Type, bool) {
	for _, cand := range rs.eng.reg.Chain(dst, true) {
		if cand != dst && !cand.AssignableTo(dst) {
			continue
		}

		apply, err := decl.Factory(cand)
		if err != nil {
			rs.eng.log.V(2).Info("specialization rejected",
				"converter", decl.Name, "typeArg", cand.String(), "reason", err.Error())

			continue
		}

		return apply, cand, true
	}

	return nil, nil, false
}

func converterFunc(c converterCandidate, dst reflect.Type) ConversionFunc {
	if c.apply != nil {
		apply := c.apply
		return func(v reflect.Value) (reflect.Value, error) {
			out, err := apply(v)
			if err != nil {
				return reflect.Value{}, err
			}

			return retype(out, dst, c.decl.Name)
		}
	}

	name := c.decl.Name
	hasOK, hasErr := c.decl.HasOK, c.decl.HasErr

	return func(v reflect.Value) (reflect.Value, error) {
		outs := v.MethodByName(name).Call(nil)
		return tailResult(outs, hasOK, hasErr, dst, name)
	}
}

type operatorCandidate struct {
	decl   registry.OperatorDecl
	inIdx  int
	result reflect.Type
	order  int
	apply  func(reflect.Value) (reflect.Value, error)
}

// operator picks the best declared operator function for the pair. Unlike
// converter methods, operators need no receiver, so a declaration discovered
// through the destination's chain is invocable as long as the source value
// satisfies its parameter.
func (rs *resolution) operator(src, dst reflect.Type) (ConversionFunc, bool) {
	reg := rs.eng.reg

	var cands []operatorCandidate
	seen := make(map[string]bool)
	order := 0
	for _, member := range reg.DiscoverySet(src, dst) {
		for _, decl := range reg.DeclaredOperators(member) {
			if seen[decl.Key()] {
				continue
			}
			seen[decl.Key()] = true
			order++

			if decl.Factory != nil {
				apply, ok := rs.specializeOperator(decl, src, dst)
				if !ok {
					continue
				}

				cands = append(cands, operatorCandidate{
					decl:   decl,
					inIdx:  reg.ChainIndex(src, decl.Owner),
					result: dst,
					order:  order,
					apply:  apply,
				})

				continue
			}

			if !src.AssignableTo(decl.In) || !decl.Out.AssignableTo(dst) {
				continue
			}

			cands = append(cands, operatorCandidate{
				decl:   decl,
				inIdx:  reg.ChainIndex(src, decl.In),
				result: decl.Out,
				order:  order,
			})
		}
	}

	if common.IsEmpty(cands) {
		return nil, false
	}

	best := selectOperator(cands)
	rs.eng.log.V(2).Info("operator selected",
		"pair", TypeKey{Src: src, Dst: dst}.String(),
		"operator", best.decl.Name,
		"candidates", len(cands))

	return operatorFunc(best, dst), true
}

func selectOperator(cands []operatorCandidate) operatorCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		ci, cj := cands[i], cands[j]
		if (ci.inIdx >= 0) != (cj.inIdx >= 0) {
			return ci.inIdx >= 0
		}
		if ci.inIdx != cj.inIdx {
			return ci.inIdx < cj.inIdx
		}

		iNarrower := ci.result.AssignableTo(cj.result)
		jNarrower := cj.result.AssignableTo(ci.result)
		if iNarrower != jNarrower {
			return iNarrower
		}

		return ci.order < cj.order
	})

	best, _ := common.First(cands)

	return best
}

// specializeOperator tries source and destination candidates pairwise, source
// side outermost, and takes the first specialization the factory accepts.
func (rs *resolution) specializeOperator(decl registry.OperatorDecl, src, dst reflect.Type) (func(reflect.Value) (reflect.Value, error), bool) {
	for _, sc := range rs.eng.reg.Chain(src, true) {
		if sc != src && !src.AssignableTo(sc) {
			continue
		}

		for _, dc := range rs.eng.reg.Chain(dst, true) {
			if dc != dst && !dc.AssignableTo(dst) {
				continue
			}

			apply, err := decl.Factory(sc, dc)
			if err != nil {
				rs.eng.log.V(2).Info("specialization rejected",
					"operator", decl.Name, "src", sc.String(), "dst", dc.String(), "reason", err.Error())

				continue
			}

			return apply, true
		}
	}

	return nil, false
}

func operatorFunc(c operatorCandidate, dst reflect.Type) ConversionFunc {
	if c.apply != nil {
		apply := c.apply
		return func(v reflect.Value) (reflect.Value, error) {
			out, err := apply(v)
			if err != nil {
				return reflect.Value{}, err
			}

			return retype(out, dst, c.decl.Name)
		}
	}

	decl := c.decl

	return func(v reflect.Value) (reflect.Value, error) {
		in := v
		if in.Type() != decl.In {
			in = in.Convert(decl.In)
		}

		outs := decl.Fn.Call([]reflect.Value{in})

		return tailResult(outs, decl.HasOK, decl.HasErr, dst, decl.Name)
	}
}

// tailResult unpacks a converter or operator call: value first, then the
// optional ok and error tails.
func tailResult(outs []reflect.Value, hasOK, hasErr bool, dst reflect.Type, name string) (reflect.Value, error) {
	if hasErr {
		if errv := outs[len(outs)-1]; !errv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", name, errv.Interface().(error))
		}
	}
	if hasOK && !outs[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%s: %w", name, ErrDeclined)
	}

	return retype(outs[0], dst, name)
}

func retype(out reflect.Value, dst reflect.Type, name string) (reflect.Value, error) {
	if !out.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s: produced no value", name)
	}
	if out.Type() == dst {
		return out, nil
	}
	if out.Type().AssignableTo(dst) || out.Type().ConvertibleTo(dst) {
		return out.Convert(dst), nil
	}

	return reflect.Value{}, fmt.Errorf("%s: result %s does not satisfy %s", name, out.Type(), dst)
}
