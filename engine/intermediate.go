package engine

import "reflect"

// intermediate tries the declared two-hop bridges: first those visible on the
// source's chain, then those on the destination's, in declaration order. A
// bridge is taken only when both legs resolve and at least one of them is a
// genuine conversion; chaining two fallback legs would launder an invalid
// pair into a valid-looking one.
func (rs *resolution) intermediate(src, dst reflect.Type) (ConversionFunc, bool) {
	reg := rs.eng.reg

	decls := append(reg.IntermediatesOn(src), reg.IntermediatesOn(dst)...)
	for _, decl := range decls {
		bridge := decl.Bridge
		if bridge == src || bridge == dst {
			continue
		}
		if decl.Target != nil && decl.Target != dst {
			continue
		}

		left, ok := rs.lookup(src, bridge)
		if !ok {
			continue
		}

		right, ok := rs.lookup(bridge, dst)
		if !ok {
			continue
		}

		if !left.Valid && !right.Valid {
			continue
		}

		rs.eng.log.V(2).Info("bridge accepted", "pair", TypeKey{Src: src, Dst: dst}.String(), "bridge", bridge.String())

		return compose(left.Fn, right.Fn), true
	}

	return nil, false
}
